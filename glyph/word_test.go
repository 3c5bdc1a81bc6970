package glyph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/lively/glyph"
)

func TestAssembleGroupsCharacterRuns(t *testing.T) {
	t.Parallel()

	words := glyph.Assemble(build(t, "ab  cd\n<icon=i>ef"))
	texts := make([]string, 0, len(words))
	for _, w := range words {
		texts = append(texts, w.String())
	}
	assert.Equal(t, []string{"ab", " ", " ", "cd", "\n", "", "ef"}, texts)

	assert.True(t, words[1].IsWhitespace())
	assert.True(t, words[4].IsLineBreak())
	assert.False(t, words[0].IsWhitespace())
}

func TestWordExtents(t *testing.T) {
	t.Parallel()

	words := glyph.Assemble(build(t, "abc"))
	require.Len(t, words, 1)
	w := words[0]
	assert.Equal(t, 30.0, w.Advance())
	assert.Equal(t, glyph.Rect{XMax: 30, YMax: 14}, w.PixelBounds())
	assert.Equal(t, []float64{0, 10, 20}, []float64{w.Glyphs[0].LocalX, w.Glyphs[1].LocalX, w.Glyphs[2].LocalX})

	last := w.RemoveLast()
	assert.Equal(t, 'c', last.Rune())
	assert.Equal(t, 20.0, w.Advance())

	// 字形被另一个单词借用后，Reflow 恢复原始排布
	other := glyph.NewWord(w.Glyphs[1])
	assert.Equal(t, 0.0, other.Glyphs[0].LocalX)
	w.Reflow()
	assert.Equal(t, 10.0, w.Glyphs[1].LocalX)

	w.SetPosition(glyph.Vec2{X: 5, Y: -3})
	assert.Equal(t, glyph.Vec2{X: 15, Y: -3}, w.Glyphs[1].Position())
}
