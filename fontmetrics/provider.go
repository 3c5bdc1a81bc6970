// Package fontmetrics reads glyph metrics from TrueType/OpenType fonts with
// golang.org/x/image and caches them per rune, size and style.
package fontmetrics

import (
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/lively/fonts"
	"github.com/ByLCY/lively/glyph"
	"github.com/ByLCY/lively/markup"
)

type key struct {
	r     rune
	size  float64
	style markup.FontStyle
}

// Provider implements glyph.MetricsProvider. It is safe for concurrent use.
type Provider struct {
	mu    sync.Mutex
	fonts map[markup.FontStyle]*opentype.Font
	buf   sfnt.Buffer
	cache map[key]glyph.Metrics
	atlas *shelfAtlas
	log   *zap.Logger
}

var _ glyph.MetricsProvider = (*Provider)(nil)

// New parses one font per style. The regular style is required; missing
// styles fall back to it.
func New(sources map[markup.FontStyle][]byte, log *zap.Logger) (*Provider, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Provider{
		fonts: map[markup.FontStyle]*opentype.Font{},
		cache: map[key]glyph.Metrics{},
		atlas: newShelfAtlas(DefaultAtlasSize),
		log:   log,
	}
	for style, data := range sources {
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("fontmetrics: parse %s font: %w", style, err)
		}
		p.fonts[style] = f
	}
	if p.fonts[markup.FontNormal] == nil {
		return nil, fmt.Errorf("fontmetrics: regular font is required")
	}
	return p, nil
}

// NewGoFonts uses the embedded Go font family.
func NewGoFonts(log *zap.Logger) (*Provider, error) {
	return New(fonts.Builtin(), log)
}

func (p *Provider) font(style markup.FontStyle) *opentype.Font {
	if f := p.fonts[style]; f != nil {
		return f
	}
	return p.fonts[markup.FontNormal]
}

func ppem(size float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(size * 64)) }

func fixedToFloat64(x fixed.Int26_6) float64 { return float64(x) / 64.0 }

// Request loads metrics for every rune of text. Runes missing from the font
// resolve to the font's notdef glyph.
func (p *Provider) Request(text string, size float64, style markup.FontStyle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	f := p.font(style)
	added := 0
	for _, r := range text {
		k := key{r, size, style}
		if _, ok := p.cache[k]; ok {
			continue
		}
		m, err := p.measure(f, r, size)
		if err != nil {
			return fmt.Errorf("fontmetrics: measure %q: %w", r, err)
		}
		p.cache[k] = m
		added++
	}
	if added > 0 {
		p.log.Debug("glyph metrics cached",
			zap.Int("added", added),
			zap.Float64("size", size),
			zap.Stringer("style", style))
	}
	return nil
}

func (p *Provider) measure(f *opentype.Font, r rune, size float64) (glyph.Metrics, error) {
	idx, err := f.GlyphIndex(&p.buf, r)
	if err != nil {
		return glyph.Metrics{}, err
	}
	adv, err := f.GlyphAdvance(&p.buf, idx, ppem(size), font.HintingNone)
	if err != nil {
		return glyph.Metrics{}, err
	}
	b, _, err := f.GlyphBounds(&p.buf, idx, ppem(size), font.HintingNone)
	if err != nil {
		return glyph.Metrics{}, err
	}
	// sfnt 的 y 轴向下，这里翻转为 y 轴向上
	bounds := glyph.Rect{
		XMin: fixedToFloat64(b.Min.X),
		YMin: -fixedToFloat64(b.Max.Y),
		XMax: fixedToFloat64(b.Max.X),
		YMax: -fixedToFloat64(b.Min.Y),
	}
	if r == ' ' || bounds.Width() <= 0 || bounds.Height() <= 0 {
		bounds = glyph.Rect{}
	}
	uv, ok := p.atlas.place(bounds.Width(), bounds.Height())
	if !ok {
		p.log.Debug("glyph atlas full, uv left empty", zap.String("rune", string(r)))
	}
	return glyph.Metrics{Advance: fixedToFloat64(adv), Bounds: bounds, UV: uv}, nil
}

// Glyph returns cached metrics; ok is false if Request was not called first.
func (p *Provider) Glyph(r rune, size float64, style markup.FontStyle) (glyph.Metrics, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.cache[key{r, size, style}]
	return m, ok
}

// LineMetrics returns the font's line height and ascent at size.
func (p *Provider) LineMetrics(size float64, style markup.FontStyle) (float64, float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, err := p.font(style).Metrics(&p.buf, ppem(size), font.HintingNone)
	if err != nil {
		return size * 1.2, size
	}
	return fixedToFloat64(m.Height), fixedToFloat64(m.Ascent)
}

// Cached reports the number of cached glyph metrics.
func (p *Provider) Cached() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cache)
}
