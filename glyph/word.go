package glyph

import "strings"

// Word is a run of character glyphs or a single special glyph; the unit the
// layout engine wraps.
type Word struct {
	Glyphs []*Glyph

	// LocalX is the pen position inside the owning line.
	LocalX float64

	position Vec2
	advance  float64
	bounds   Rect
}

// NewWord builds a word from glyphs, laying them out left to right.
func NewWord(glyphs ...*Glyph) *Word {
	w := &Word{}
	for _, g := range glyphs {
		w.Add(g)
	}
	return w
}

// Add appends a glyph after the current pen position.
func (w *Word) Add(g *Glyph) {
	if n := len(w.Glyphs); n > 0 {
		prev := w.Glyphs[n-1]
		g.LocalX = prev.LocalX + prev.advance
	} else {
		g.LocalX = 0
	}
	w.Glyphs = append(w.Glyphs, g)
	w.grow(g)
}

// RemoveLast drops the final glyph.
func (w *Word) RemoveLast() *Glyph {
	n := len(w.Glyphs)
	if n == 0 {
		return nil
	}
	g := w.Glyphs[n-1]
	w.Glyphs = w.Glyphs[:n-1]
	w.Reflow()
	return g
}

// Reflow recomputes glyph pen positions and the cached extents. Glyphs can be
// borrowed by the fragments of a broken word, so a word is reflowed before it
// is laid out again.
func (w *Word) Reflow() {
	w.advance, w.bounds = 0, Rect{}
	x := 0.0
	for _, g := range w.Glyphs {
		g.LocalX = x
		x += g.advance
		w.grow(g)
	}
}

func (w *Word) grow(g *Glyph) {
	ink := g.bounds.Translate(g.LocalX, 0)
	if len(w.Glyphs) == 1 {
		w.bounds = ink
	} else {
		w.bounds = w.bounds.Union(ink)
	}
	w.advance += g.advance
}

// Advance is the sum of glyph advances.
func (w *Word) Advance() float64 { return w.advance }

// PixelBounds is the ink box of all glyphs, relative to the word origin.
func (w *Word) PixelBounds() Rect { return w.bounds }

// Position is the word origin on the baseline after layout.
func (w *Word) Position() Vec2 { return w.position }

// SetPosition places the word and its glyphs.
func (w *Word) SetPosition(p Vec2) {
	w.position = p
	for _, g := range w.Glyphs {
		g.SetPosition(Vec2{X: p.X + g.LocalX, Y: p.Y})
	}
}

// IsWhitespace is true for a word made of one space glyph.
func (w *Word) IsWhitespace() bool {
	return len(w.Glyphs) == 1 && w.Glyphs[0].kind == Space
}

// IsLineBreak is true for a word made of one line break glyph.
func (w *Word) IsLineBreak() bool {
	return len(w.Glyphs) == 1 && w.Glyphs[0].kind == LineBreak
}

// Last returns the final glyph or nil.
func (w *Word) Last() *Glyph {
	if len(w.Glyphs) == 0 {
		return nil
	}
	return w.Glyphs[len(w.Glyphs)-1]
}

func (w *Word) String() string {
	var sb strings.Builder
	for _, g := range w.Glyphs {
		sb.WriteString(string(g.Text()))
	}
	return sb.String()
}

// Assemble groups glyphs into words: maximal runs of character glyphs, and
// every other glyph on its own.
func Assemble(glyphs []*Glyph) []*Word {
	var words []*Word
	var run *Word
	for _, g := range glyphs {
		if g.kind == Char {
			if run == nil {
				run = &Word{}
				words = append(words, run)
			}
			run.Add(g)
			continue
		}
		run = nil
		words = append(words, NewWord(g))
	}
	return words
}
