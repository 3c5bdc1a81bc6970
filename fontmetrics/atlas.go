package fontmetrics

import (
	"math"

	"github.com/ByLCY/lively/glyph"
)

// DefaultAtlasSize is the side length in pixels of the virtual glyph atlas.
const DefaultAtlasSize = 1024

const atlasPadding = 1

// shelfAtlas hands out texture rectangles left to right on horizontal
// shelves. Nothing is rasterized here; the rectangles only give every glyph
// stable UV coordinates for a renderer that does rasterize.
type shelfAtlas struct {
	size    int
	shelves []shelf
}

type shelf struct {
	y, height, x int
}

func newShelfAtlas(size int) *shelfAtlas {
	return &shelfAtlas{size: size}
}

// place reserves a w×h pixel cell and returns its corners in UV space in
// bottom-left, top-left, top-right, bottom-right order. Empty glyphs get a
// zero-area cell and ok is false when the atlas is full.
func (a *shelfAtlas) place(w, h float64) ([4]glyph.Vec2, bool) {
	if w <= 0 || h <= 0 {
		return [4]glyph.Vec2{}, true
	}
	x, y, ok := a.allocate(int(math.Ceil(w)), int(math.Ceil(h)))
	if !ok {
		return [4]glyph.Vec2{}, false
	}
	s := float64(a.size)
	u0, v0 := float64(x)/s, float64(y)/s
	u1, v1 := (float64(x)+w)/s, (float64(y)+h)/s
	return [4]glyph.Vec2{{X: u0, Y: v0}, {X: u0, Y: v1}, {X: u1, Y: v1}, {X: u1, Y: v0}}, true
}

func (a *shelfAtlas) allocate(w, h int) (int, int, bool) {
	pw, ph := w+atlasPadding, h+atlasPadding
	for i := range a.shelves {
		sh := &a.shelves[i]
		if sh.x+pw > a.size {
			continue
		}
		if h > sh.height {
			// 只有最后一层可以向上增高
			if i != len(a.shelves)-1 || sh.y+ph > a.size {
				continue
			}
			sh.height = h
		}
		x := sh.x
		sh.x += pw
		return x, sh.y, true
	}
	y := 0
	if n := len(a.shelves); n > 0 {
		last := a.shelves[n-1]
		y = last.y + last.height + atlasPadding
	}
	if y+ph > a.size || pw > a.size {
		return 0, 0, false
	}
	a.shelves = append(a.shelves, shelf{y: y, height: h, x: pw})
	return 0, y, true
}
