// Package glyph turns style chunks into positioned-ready glyphs and words.
package glyph

import (
	"math"
	"slices"

	"github.com/ByLCY/lively/markup"
)

// Kind tags the glyph variants.
type Kind int

const (
	Char Kind = iota
	Space
	Tab
	LineBreak
	Icon
)

func (k Kind) String() string {
	switch k {
	case Space:
		return "space"
	case Tab:
		return "tab"
	case LineBreak:
		return "linebreak"
	case Icon:
		return "icon"
	default:
		return "char"
	}
}

// Vec2 is a 2D point or vector.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec3 is a 3D vector, used for animation offsets.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Rect is an axis-aligned box in y-up pixel space.
type Rect struct {
	XMin float64 `json:"xMin"`
	YMin float64 `json:"yMin"`
	XMax float64 `json:"xMax"`
	YMax float64 `json:"yMax"`
}

func (r Rect) Width() float64  { return r.XMax - r.XMin }
func (r Rect) Height() float64 { return r.YMax - r.YMin }

// Translate moves the rect by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{r.XMin + dx, r.YMin + dy, r.XMax + dx, r.YMax + dy}
}

// Union returns the smallest rect covering both.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		XMin: math.Min(r.XMin, o.XMin),
		YMin: math.Min(r.YMin, o.YMin),
		XMax: math.Max(r.XMax, o.XMax),
		YMax: math.Max(r.YMax, o.YMax),
	}
}

// QuadIndices triangulates the four corners returned by Glyph.Quad.
var QuadIndices = [6]int{0, 1, 2, 2, 3, 0}

// noHue leaves the style color untouched.
var noHue = markup.Color{R: 1, G: 1, B: 1, A: 0}

// Glyph is the smallest renderable unit. Geometry is fixed at construction;
// only visibility, opacity, hue and offset change afterwards, and each setter
// reports whether the glyph needs to be redrawn.
type Glyph struct {
	kind    Kind
	r       rune
	style   *markup.Style
	advance float64
	bounds  Rect
	uv      [4]Vec2
	icon    string

	// LocalX is the pen position inside the owning word.
	LocalX float64

	position Vec2

	visible bool
	opacity float64
	hue     markup.Color
	offset  Vec3
}

func newGlyph(kind Kind, r rune, style *markup.Style) *Glyph {
	return &Glyph{kind: kind, r: r, style: style, visible: true, opacity: 1, hue: noHue}
}

func (g *Glyph) Kind() Kind             { return g.kind }
func (g *Glyph) Rune() rune             { return g.r }
func (g *Glyph) Style() *markup.Style   { return g.style }
func (g *Glyph) Advance() float64       { return g.advance }
func (g *Glyph) Bounds() Rect           { return g.bounds }
func (g *Glyph) UV() [4]Vec2            { return g.uv }
func (g *Glyph) IconName() string       { return g.icon }
func (g *Glyph) FontSize() float64      { return g.style.FontSize() }
func (g *Glyph) Position() Vec2         { return g.position }
func (g *Glyph) SetPosition(p Vec2)     { g.position = p }
func (g *Glyph) Visible() bool          { return g.visible }
func (g *Glyph) Opacity() float64       { return g.opacity }
func (g *Glyph) Hue() markup.Color      { return g.hue }
func (g *Glyph) Offset() Vec3           { return g.offset }
func (g *Glyph) String() string         { return string(g.Text()) }
func (g *Glyph) IsChar(set []rune) bool { return g.kind == Char && slices.Contains(set, g.r) }

// Text is the character this glyph stands for in plain text.
func (g *Glyph) Text() []rune {
	switch g.kind {
	case Char:
		return []rune{g.r}
	case Space:
		return []rune{' '}
	case Tab:
		return []rune{'\t'}
	case LineBreak:
		return []rune{'\n'}
	}
	return nil
}

// SetVisible shows or hides the glyph.
func (g *Glyph) SetVisible(v bool) bool {
	if g.visible == v {
		return false
	}
	g.visible = v
	return true
}

// SetOpacity clamps to [0,1].
func (g *Glyph) SetOpacity(v float64) bool {
	v = math.Max(0, math.Min(1, v))
	if g.opacity == v {
		return false
	}
	g.opacity = v
	return true
}

// SetHue sets the tint; its alpha is the blend weight toward the tint.
func (g *Glyph) SetHue(c markup.Color) bool {
	if g.hue == c {
		return false
	}
	g.hue = c
	return true
}

// SetOffset displaces the glyph from its laid out position.
func (g *Glyph) SetOffset(v Vec3) bool {
	if g.offset == v {
		return false
	}
	g.offset = v
	return true
}

// ResetOverrides restores every animation-driven field.
func (g *Glyph) ResetOverrides() bool {
	changed := g.SetVisible(true)
	changed = g.SetOpacity(1) || changed
	changed = g.SetHue(noHue) || changed
	changed = g.SetOffset(Vec3{}) || changed
	return changed
}

// Paint returns the corner colors after hue blending and opacity.
func (g *Glyph) Paint() markup.Corners {
	out := g.style.Colors()
	for i, c := range out {
		alpha := c.A
		c = c.Lerp(g.hue, g.hue.A)
		c.A = alpha * g.opacity
		out[i] = c
	}
	return out
}

// Origin is the final baseline origin including the animation offset.
func (g *Glyph) Origin() Vec3 {
	return Vec3{X: g.position.X, Y: g.position.Y}.Add(g.offset)
}

// Quad returns the ink corners (bottom-left, top-left, top-right, bottom-right).
// Hidden glyphs collapse onto their origin.
func (g *Glyph) Quad() [4]Vec3 {
	o := g.Origin()
	if !g.visible {
		return [4]Vec3{o, o, o, o}
	}
	b := g.bounds
	return [4]Vec3{
		{X: o.X + b.XMin, Y: o.Y + b.YMin, Z: o.Z},
		{X: o.X + b.XMin, Y: o.Y + b.YMax, Z: o.Z},
		{X: o.X + b.XMax, Y: o.Y + b.YMax, Z: o.Z},
		{X: o.X + b.XMax, Y: o.Y + b.YMin, Z: o.Z},
	}
}
