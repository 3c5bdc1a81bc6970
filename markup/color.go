package markup

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is a straight (non-premultiplied) RGBA color with channels in [0,1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Corners holds one color per quad corner: bottom-left, top-left, top-right, bottom-right.
type Corners [4]Color

const (
	BottomLeft = iota
	TopLeft
	TopRight
	BottomRight
)

var (
	White   = Color{R: 1, G: 1, B: 1, A: 1}
	Black   = Color{A: 1}
	Magenta = Color{R: 1, B: 1, A: 1}
)

// Uniform returns four identical corners.
func Uniform(c Color) Corners { return Corners{c, c, c, c} }

// Lerp blends c toward o by t.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// NRGBA converts to an 8-bit color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

func to8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Hex formats the color as #RRGGBBAA.
func (c Color) Hex() string {
	n := c.NRGBA()
	var b strings.Builder
	b.WriteByte('#')
	for _, v := range []uint8{n.R, n.G, n.B, n.A} {
		if v < 0x10 {
			b.WriteByte('0')
		}
		b.WriteString(strconv.FormatUint(uint64(v), 16))
	}
	return strings.ToUpper(b.String())
}

// ParseColor accepts #RGB, #RGBA, #RRGGBB, #RRGGBBAA and SVG color names.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, false
	}
	if !strings.HasPrefix(s, "#") {
		named, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return Color{}, false
		}
		return fromNRGBA(color.NRGBA(named)), true
	}
	hex := s[1:]
	switch len(hex) {
	case 3, 4:
		// 单个十六进制位扩展为两位
		var sb strings.Builder
		for _, ch := range hex {
			sb.WriteRune(ch)
			sb.WriteRune(ch)
		}
		hex = sb.String()
	case 6, 8:
	default:
		return Color{}, false
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return fromNRGBA(color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}), true
}

func fromNRGBA(n color.NRGBA) Color {
	return Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// ParseCorners expands up to four color parameters onto the quad corners.
// Entries that are missing or fail to parse come out magenta.
func ParseCorners(params []string) Corners {
	var out Corners
	for i := range out {
		out[i] = Magenta
		if i < len(params) {
			if c, ok := ParseColor(params[i]); ok {
				out[i] = c
			}
		}
	}
	switch len(params) {
	case 1:
		out = Uniform(out[BottomLeft])
	case 2:
		out[BottomRight] = out[BottomLeft]
		out[TopRight] = out[TopLeft]
	case 3:
		out[BottomRight] = out[BottomLeft]
	}
	return out
}
