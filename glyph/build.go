package glyph

import (
	"errors"
	"fmt"

	"github.com/ByLCY/lively/markup"
)

var (
	// ErrNoMetrics is returned when glyphs are built without a metrics provider.
	ErrNoMetrics = errors.New("glyph: no font metrics provider")
	// ErrMetricsUnavailable means the provider could not resolve a requested glyph.
	ErrMetricsUnavailable = errors.New("glyph: metrics not prepared")
)

// Metrics describes one glyph at one size and style. Bounds are ink bounds
// relative to the pen position on the baseline, y-up.
type Metrics struct {
	Advance float64
	Bounds  Rect
	UV      [4]Vec2
}

// MetricsProvider supplies font metrics. Request must be called for every
// character set, size and style before Glyph is asked for any of them.
type MetricsProvider interface {
	Request(text string, size float64, style markup.FontStyle) error
	Glyph(r rune, size float64, style markup.FontStyle) (Metrics, bool)
	LineMetrics(size float64, style markup.FontStyle) (lineHeight, ascent float64)
}

const tabSpaces = 5

// Build converts chunks into glyphs. '\r' is dropped, icon chunks become a
// single square icon glyph.
func Build(chunks []markup.Chunk, metrics MetricsProvider) ([]*Glyph, error) {
	if metrics == nil {
		return nil, ErrNoMetrics
	}
	var out []*Glyph
	for _, chunk := range chunks {
		style := chunk.Style
		if chunk.Tag == markup.TagIcon && chunk.Text == "" {
			out = append(out, newIcon(style))
			continue
		}
		if chunk.Text == "" {
			continue
		}
		size, fs := style.FontSize(), style.FontStyle()
		// 空格、制表符与换行依赖 ' ' 与 'X' 的度量
		if err := metrics.Request(chunk.Text+" X", size, fs); err != nil {
			return nil, fmt.Errorf("request metrics for %q: %w", chunk.Text, err)
		}
		lookup := func(r rune) (Metrics, error) {
			m, ok := metrics.Glyph(r, size, fs)
			if !ok {
				return Metrics{}, fmt.Errorf("%w: %q at %gpx %s", ErrMetricsUnavailable, r, size, fs)
			}
			return m, nil
		}
		for _, r := range chunk.Text {
			var g *Glyph
			switch r {
			case '\r':
				continue
			case ' ':
				m, err := lookup(' ')
				if err != nil {
					return nil, err
				}
				g = newGlyph(Space, r, style)
				g.advance, g.bounds, g.uv = m.Advance, m.Bounds, m.UV
			case '\t':
				m, err := lookup(' ')
				if err != nil {
					return nil, err
				}
				g = newGlyph(Tab, r, style)
				g.advance = m.Advance * tabSpaces
				g.bounds = m.Bounds
				g.bounds.XMax += m.Bounds.Width() * tabSpaces
				g.uv = m.UV
			case '\n':
				m, err := lookup('X')
				if err != nil {
					return nil, err
				}
				g = newGlyph(LineBreak, r, style)
				g.bounds = Rect{YMin: m.Bounds.YMin, YMax: m.Bounds.YMax}
			default:
				m, err := lookup(r)
				if err != nil {
					return nil, err
				}
				g = newGlyph(Char, r, style)
				g.advance, g.bounds, g.uv = m.Advance, m.Bounds, m.UV
			}
			out = append(out, g)
		}
	}
	return out, nil
}

// newIcon sizes the icon to the resolved font size and drops it a quarter
// of its size below the baseline.
func newIcon(style *markup.Style) *Glyph {
	g := newGlyph(Icon, 0, style)
	size := style.FontSize()
	drop := size / 4
	g.advance = size
	g.bounds = Rect{XMin: 0, YMin: -drop, XMax: size, YMax: size - drop}
	g.uv = [4]Vec2{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	g.icon = style.Name()
	return g
}
