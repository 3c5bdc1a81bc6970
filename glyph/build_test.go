package glyph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/lively/glyph"
	"github.com/ByLCY/lively/glyph/glyphtest"
	"github.com/ByLCY/lively/markup"
)

func build(t *testing.T, text string) []*glyph.Glyph {
	t.Helper()
	root := markup.NewRootStyle(markup.FontNormal, 20, markup.Uniform(markup.White))
	glyphs, err := glyph.Build(markup.Parse(text, root), glyphtest.NewMono())
	require.NoError(t, err)
	return glyphs
}

func TestBuildKinds(t *testing.T) {
	t.Parallel()

	glyphs := build(t, "a b\tc\r\n<icon=star>")
	kinds := make([]glyph.Kind, 0, len(glyphs))
	for _, g := range glyphs {
		kinds = append(kinds, g.Kind())
	}
	assert.Equal(t, []glyph.Kind{
		glyph.Char, glyph.Space, glyph.Char, glyph.Tab, glyph.Char, glyph.LineBreak, glyph.Icon,
	}, kinds)

	space, tab, br, icon := glyphs[1], glyphs[3], glyphs[5], glyphs[6]
	assert.Equal(t, 10.0, space.Advance())
	assert.Equal(t, 50.0, tab.Advance(), "tab is five spaces")
	assert.Equal(t, 0.0, br.Advance())
	assert.Equal(t, 0.0, br.Bounds().Width())
	assert.Equal(t, 14.0, br.Bounds().YMax, "line break takes the height of X")

	assert.Equal(t, "star", icon.IconName())
	assert.Equal(t, 20.0, icon.Advance())
	assert.Equal(t, glyph.Rect{XMin: 0, YMin: -5, XMax: 20, YMax: 15}, icon.Bounds())
}

func TestBuildIconFollowsSizeTag(t *testing.T) {
	t.Parallel()

	glyphs := build(t, "<size=2><icon=x></size>")
	require.Len(t, glyphs, 1)
	assert.Equal(t, 40.0, glyphs[0].Advance())
}

func TestBuildRequiresProvider(t *testing.T) {
	t.Parallel()

	root := markup.NewRootStyle(markup.FontNormal, 20, markup.Uniform(markup.White))
	_, err := glyph.Build(markup.Parse("x", root), nil)
	assert.ErrorIs(t, err, glyph.ErrNoMetrics)
}

type lazyProvider struct{ *glyphtest.Mono }

func (lazyProvider) Request(string, float64, markup.FontStyle) error { return nil }

func TestBuildFailsOnUnpreparedMetrics(t *testing.T) {
	t.Parallel()

	root := markup.NewRootStyle(markup.FontNormal, 20, markup.Uniform(markup.White))
	_, err := glyph.Build(markup.Parse("x", root), lazyProvider{glyphtest.NewMono()})
	assert.ErrorIs(t, err, glyph.ErrMetricsUnavailable)
}

func TestSettersReportRedraw(t *testing.T) {
	t.Parallel()

	g := build(t, "x")[0]
	assert.False(t, g.SetVisible(true))
	assert.True(t, g.SetVisible(false))
	assert.False(t, g.SetOpacity(3), "clamped to the current value")
	assert.True(t, g.SetOpacity(-2))
	assert.Equal(t, 0.0, g.Opacity(), "opacity is clamped")
	assert.True(t, g.SetOffset(glyph.Vec3{Y: 2}))
	assert.True(t, g.ResetOverrides())
	assert.False(t, g.ResetOverrides())
	assert.True(t, g.Visible())
}

func TestPaintBlendsHueAndOpacity(t *testing.T) {
	t.Parallel()

	g := build(t, "x")[0]
	g.SetHue(markup.Color{R: 1, G: 0, B: 0, A: 1})
	g.SetOpacity(0.5)
	for _, c := range g.Paint() {
		assert.Equal(t, markup.Color{R: 1, G: 0, B: 0, A: 0.5}, c)
	}

	g.SetVisible(false)
	q := g.Quad()
	assert.Equal(t, q[0], q[2], "hidden glyphs collapse")
}
