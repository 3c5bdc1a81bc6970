package textview

import (
	"image"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/lively/anim"
	"github.com/ByLCY/lively/glyph"
	"github.com/ByLCY/lively/glyph/glyphtest"
	"github.com/ByLCY/lively/icons"
	"github.com/ByLCY/lively/layout"
	"github.com/ByLCY/lively/markup"
)

// 等宽度量：20px 字号下每个字形宽 10，行高 24，上升 16。
func newView(t *testing.T, text string, w, h float64, deps Deps) *View {
	t.Helper()
	if deps.Metrics == nil {
		deps.Metrics = glyphtest.NewMono()
	}
	opts := DefaultOptions()
	opts.Text = text
	opts.FontSize = 20
	opts.Layout.Bounds = glyph.Rect{XMax: w, YMax: h}
	v, err := New(opts, deps)
	require.NoError(t, err)
	return v
}

func TestNewRequiresMetrics(t *testing.T) {
	t.Parallel()

	_, err := New(DefaultOptions(), Deps{})
	require.ErrorIs(t, err, glyph.ErrNoMetrics)
}

func TestPagingIsClamped(t *testing.T) {
	t.Parallel()

	v := newView(t, "Hi. aaa bbb ccc ddd", 75, 50, Deps{})
	require.Equal(t, 2, v.PageCount())
	assert.Equal(t, 1, v.Page())
	assert.Equal(t, "Hi.", v.PageText(1))
	assert.Equal(t, "aaa bbb\nccc ddd", v.PageText(2))
	assert.Equal(t, "", v.PageText(3))

	assert.Equal(t, 2, v.SetPage(9))
	assert.False(t, v.NextPage())
	assert.Equal(t, 1, v.SetPage(-4))
	assert.True(t, v.NextPage())
	assert.Equal(t, 2, v.Page())
	assert.Equal(t, v.Result().Page(2).Glyphs(), v.Glyphs())
}

func TestEmptyText(t *testing.T) {
	t.Parallel()

	v := newView(t, "", 100, 100, Deps{})
	assert.Equal(t, 0, v.PageCount())
	assert.Equal(t, 0, v.Page())
	assert.Equal(t, 0, v.SetPage(5))
	assert.Nil(t, v.Glyphs())
	assert.Nil(t, v.Icons())
}

func TestSetTextResetsToFirstPage(t *testing.T) {
	t.Parallel()

	v := newView(t, "aaa bbb ccc ddd eee", 35, 50, Deps{})
	require.Equal(t, 3, v.PageCount())
	v.SetPage(3)

	require.NoError(t, v.SetText("Hi. aaa bbb ccc ddd"))
	assert.Equal(t, 1, v.Page())
	assert.Equal(t, "Hi. aaa bbb ccc ddd", v.Text())
}

func TestSetBoundsKeepsPageWhenPossible(t *testing.T) {
	t.Parallel()

	v := newView(t, "aaa bbb ccc ddd eee", 35, 50, Deps{})
	v.SetPage(3)
	v.SetBounds(glyph.Rect{XMax: 1000, YMax: 1000})
	assert.Equal(t, 1, v.PageCount())
	assert.Equal(t, 1, v.Page(), "page is clamped to the new count")
}

func TestSetAlignmentOnlyRepositions(t *testing.T) {
	t.Parallel()

	v := newView(t, "ab", 100, 100, Deps{})
	first := v.Glyphs()[0]
	assert.Equal(t, glyph.Vec2{X: 0, Y: 84}, first.Position())

	v.SetAlignment(layout.LowerRight, false)
	assert.Same(t, first, v.Glyphs()[0], "glyphs are not rebuilt")
	assert.Equal(t, glyph.Vec2{X: 80, Y: 0}, first.Position())
}

func TestSetWrapOverflow(t *testing.T) {
	t.Parallel()

	v := newView(t, "aaa bbb ccc", 35, 1000, Deps{})
	assert.Equal(t, "aaa\nbbb\nccc", v.PageText(1))
	v.SetWrap(layout.Overflow, layout.Truncate, nil)
	assert.Equal(t, "aaa bbb ccc", v.PageText(1))
}

func TestPlainTextBypassesTags(t *testing.T) {
	t.Parallel()

	v := newView(t, "<b>x</b>", 1000, 1000, Deps{})
	assert.Equal(t, "x", v.PageText(1))
	require.NoError(t, v.SetRichText(false))
	assert.Equal(t, "<b>x</b>", v.PageText(1))
}

func TestSetStyleRebuilds(t *testing.T) {
	t.Parallel()

	v := newView(t, "ab", 1000, 1000, Deps{})
	require.NoError(t, v.SetStyle(markup.FontBold, 40, markup.Uniform(markup.Black)))
	g := v.Glyphs()[0]
	assert.Equal(t, 20.0, g.Advance())
	assert.Equal(t, markup.FontBold, g.Style().FontStyle())
	assert.Error(t, v.SetStyle(markup.FontBold, 0, markup.Uniform(markup.Black)))
}

func TestIconsResolveFromAtlas(t *testing.T) {
	t.Parallel()

	atlas := icons.Map{"coin": image.NewNRGBA(image.Rect(0, 0, 4, 4))}
	v := newView(t, "a<icon=coin>b<icon=gem>", 1000, 1000, Deps{Icons: atlas})
	placed := v.Icons()
	require.Len(t, placed, 2)
	assert.Equal(t, "coin", placed[0].Name)
	assert.NotNil(t, placed[0].Image)
	assert.Equal(t, "gem", placed[1].Name)
	assert.Nil(t, placed[1].Image)
	assert.Equal(t, 20.0, placed[0].Quad[2].X-placed[0].Quad[0].X, "icons are one font size wide")
}

func TestPreferredSize(t *testing.T) {
	t.Parallel()

	v := newView(t, "aaa bbb", 35, 10, Deps{})
	w, h := v.PreferredSize()
	assert.Equal(t, 70.0, w)
	assert.Equal(t, 40.0, h)
}

func TestPreferredSizeKeepsDisplayedPage(t *testing.T) {
	t.Parallel()

	v := newView(t, "aaa bbb ccc ddd eee fff", 75, 30, Deps{})
	require.Equal(t, 2, v.SetPage(2))
	snapshot := func() []glyph.Vec2 {
		var out []glyph.Vec2
		for _, g := range v.Glyphs() {
			out = append(out, g.Position())
		}
		return out
	}
	before := snapshot()
	debugBefore, err := layout.MarshalDebugJSON(v.Result())
	require.NoError(t, err)

	v.PreferredSize()
	assert.Equal(t, before, snapshot())
	debugAfter, err := layout.MarshalDebugJSON(v.Result())
	require.NoError(t, err)
	assert.JSONEq(t, string(debugBefore), string(debugAfter))
}

func TestAnimationsFollowTheCurrentPage(t *testing.T) {
	t.Parallel()

	wave := anim.NewWave()
	v := newView(t, "<anim=wave>Hi. aaa bbb ccc ddd", 75, 50, Deps{Drivers: []anim.Driver{wave}})
	assert.Len(t, wave.Glyphs(), 3)

	require.True(t, v.NextPage())
	page := v.Glyphs()
	require.Len(t, wave.Glyphs(), len(page))
	assert.Same(t, page[0], wave.Glyphs()[0])

	v.Close()
	assert.Empty(t, wave.Glyphs())
}

func TestTickIsSerializedWithRelayout(t *testing.T) {
	t.Parallel()

	wave := anim.NewWave()
	v := newView(t, "<anim=wave>aaa bbb ccc", 100, 100, Deps{Drivers: []anim.Driver{wave}})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 200 {
			v.Tick(time.Millisecond)
		}
	}()
	go func() {
		defer wg.Done()
		for i := range 50 {
			v.SetBounds(glyph.Rect{XMax: float64(40 + i), YMax: 100})
		}
	}()
	wg.Wait()
	assert.NotZero(t, v.PageCount())
}
