package markup

import (
	"strconv"
	"strings"
)

// Unit represents the unit a size tag parameter was written in.
type Unit int

const (
	UnitNone    Unit = iota // unit-less numbers like factors
	UnitPercent             // percent of the root size
	UnitPX                  // pixels
	UnitPT                  // points
)

// Conversion constants between pt and px at 96 dpi.
const (
	PtToPx = 96.0 / 72.0
	PxToPt = 1.0 / PtToPx
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPercent:
		return "%"
	case UnitPX:
		return "px"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ToPX converts an absolute length to pixels. Relative units return the value as is.
func (l Length) ToPX() float64 {
	if l.Unit == UnitPT {
		return l.Value * PtToPx
	}
	return l.Value
}

// ParseLength parses "12", "12px", "9pt" or "150%" preserving the unit.
func ParseLength(value string) (Length, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, false
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"%", UnitPercent}, {"px", UnitPX}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}

// SizeKind distinguishes factor-based vs absolute size tags.
type SizeKind int

const (
	SizeFactor SizeKind = iota
	SizeAbsolute
)

// SizeSpec keeps what a size tag asked for: a factor of the root size (1.5, 150%)
// or an absolute length (24px, 18pt).
type SizeSpec struct {
	Kind   SizeKind `json:"kind"`
	Factor float64  `json:"factor,omitempty"`
	Len    Length   `json:"len,omitempty"`
}

// ParseSizeSpec never fails; anything it cannot read means "unchanged" (factor 1).
func ParseSizeSpec(param string) SizeSpec {
	l, ok := ParseLength(param)
	if !ok {
		return SizeSpec{Kind: SizeFactor, Factor: 1}
	}
	switch l.Unit {
	case UnitPercent:
		return SizeSpec{Kind: SizeFactor, Factor: l.Value / 100}
	case UnitPX, UnitPT:
		return SizeSpec{Kind: SizeAbsolute, Len: l}
	default:
		return SizeSpec{Kind: SizeFactor, Factor: l.Value}
	}
}

// Resolve computes the pixel size against the root font size.
func (s SizeSpec) Resolve(root float64) float64 {
	switch s.Kind {
	case SizeAbsolute:
		return s.Len.ToPX()
	default:
		return root * s.Factor
	}
}
