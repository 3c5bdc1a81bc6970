// Package glyphtest provides a deterministic metrics provider for tests.
package glyphtest

import (
	"sync"

	"github.com/ByLCY/lively/glyph"
	"github.com/ByLCY/lively/markup"
)

// Mono is a monospaced font: every glyph advances half the font size, ink is
// the full advance wide and 0.7 of the size tall. Spaces have no ink. Lines
// are 1.2 of the size apart with an ascent of 0.8.
type Mono struct {
	mu        sync.Mutex
	requested map[key]bool
	Requests  int
}

type key struct {
	r     rune
	size  float64
	style markup.FontStyle
}

// NewMono returns an empty provider.
func NewMono() *Mono { return &Mono{requested: map[key]bool{}} }

func (m *Mono) Request(text string, size float64, style markup.FontStyle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
	for _, r := range text {
		m.requested[key{r, size, style}] = true
	}
	return nil
}

func (m *Mono) Glyph(r rune, size float64, style markup.FontStyle) (glyph.Metrics, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.requested[key{r, size, style}] {
		return glyph.Metrics{}, false
	}
	adv := size / 2
	met := glyph.Metrics{Advance: adv}
	if r != ' ' {
		met.Bounds = glyph.Rect{XMax: adv, YMax: size * 0.7}
	}
	return met, true
}

func (m *Mono) LineMetrics(size float64, _ markup.FontStyle) (float64, float64) {
	return size * 1.2, size * 0.8
}

var _ glyph.MetricsProvider = (*Mono)(nil)
