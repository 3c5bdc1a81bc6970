package fontmetrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/lively/glyph"
	"github.com/ByLCY/lively/markup"
)

func newProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := NewGoFonts(nil)
	require.NoError(t, err)
	return p
}

func TestGlyphRequiresRequest(t *testing.T) {
	t.Parallel()

	p := newProvider(t)
	_, ok := p.Glyph('A', 20, markup.FontNormal)
	assert.False(t, ok)

	require.NoError(t, p.Request("A", 20, markup.FontNormal))
	m, ok := p.Glyph('A', 20, markup.FontNormal)
	require.True(t, ok)
	assert.Greater(t, m.Advance, 0.0)
	assert.Greater(t, m.Bounds.YMax, 0.0, "ink rises above the baseline")
	assert.GreaterOrEqual(t, m.Bounds.YMin, -1.0)

	_, ok = p.Glyph('A', 21, markup.FontNormal)
	assert.False(t, ok, "metrics are cached per size")
}

func TestDescenderBelowBaseline(t *testing.T) {
	t.Parallel()

	p := newProvider(t)
	require.NoError(t, p.Request("gX", 32, markup.FontNormal))
	g, _ := p.Glyph('g', 32, markup.FontNormal)
	x, _ := p.Glyph('X', 32, markup.FontNormal)
	assert.Less(t, g.Bounds.YMin, 0.0)
	assert.InDelta(t, 0.0, x.Bounds.YMin, 1.0)
}

func TestSpaceHasAdvanceButNoInk(t *testing.T) {
	t.Parallel()

	p := newProvider(t)
	require.NoError(t, p.Request(" ", 20, markup.FontNormal))
	m, ok := p.Glyph(' ', 20, markup.FontNormal)
	require.True(t, ok)
	assert.Greater(t, m.Advance, 0.0)
	assert.Equal(t, glyph.Rect{}, m.Bounds)
}

func TestStylesUseTheirOwnFace(t *testing.T) {
	t.Parallel()

	p := newProvider(t)
	require.NoError(t, p.Request("m", 40, markup.FontNormal))
	require.NoError(t, p.Request("m", 40, markup.FontBold))
	regular, _ := p.Glyph('m', 40, markup.FontNormal)
	bold, _ := p.Glyph('m', 40, markup.FontBold)
	assert.NotEqual(t, regular.Bounds, bold.Bounds)
}

func TestLineMetricsScaleWithSize(t *testing.T) {
	t.Parallel()

	p := newProvider(t)
	h10, a10 := p.LineMetrics(10, markup.FontNormal)
	h20, a20 := p.LineMetrics(20, markup.FontNormal)
	assert.Greater(t, h10, a10)
	assert.InDelta(t, 2*h10, h20, 1.0)
	assert.InDelta(t, 2*a10, a20, 1.0)
}

func TestRegularFontRequired(t *testing.T) {
	t.Parallel()

	_, err := New(map[markup.FontStyle][]byte{}, nil)
	require.Error(t, err)

	_, err = New(map[markup.FontStyle][]byte{markup.FontNormal: []byte("not a font")}, nil)
	require.Error(t, err)
}

func TestConcurrentRequests(t *testing.T) {
	t.Parallel()

	p := newProvider(t)
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.Request("hello world", float64(10+i%2), markup.FontNormal))
		}()
	}
	wg.Wait()
	// "helo wrd" 共 8 个不同字符，两种字号
	assert.Equal(t, 16, p.Cached())
}

func TestAtlasPacksShelves(t *testing.T) {
	t.Parallel()

	a := newShelfAtlas(16)
	uv, ok := a.place(7, 4)
	require.True(t, ok)
	assert.Equal(t, glyph.Vec2{}, uv[0])
	assert.Equal(t, glyph.Vec2{X: 7.0 / 16, Y: 4.0 / 16}, uv[2])

	uv, ok = a.place(7, 4)
	require.True(t, ok)
	assert.Equal(t, 8.0/16, uv[0].X, "same shelf, after padding")

	uv, ok = a.place(7, 4)
	require.True(t, ok)
	assert.Equal(t, glyph.Vec2{X: 0, Y: 5.0 / 16}, uv[0], "new shelf")

	_, ok = a.place(20, 1)
	assert.False(t, ok)
}
