package markup

import (
	"fmt"
	"math"
	"strings"
)

// TagKind identifies which attribute a style node overrides.
type TagKind int

const (
	TagNone TagKind = iota // root node, no tag
	TagBold
	TagItalic
	TagSize
	TagColor
	TagIcon
	TagAnim
)

var tagNames = map[string]TagKind{
	"b":     TagBold,
	"i":     TagItalic,
	"size":  TagSize,
	"color": TagColor,
	"icon":  TagIcon,
	"anim":  TagAnim,
}

// LookupTag maps a markup tag name to its kind. Names are case sensitive.
func LookupTag(name string) (TagKind, bool) {
	k, ok := tagNames[name]
	return k, ok
}

func (k TagKind) String() string {
	for name, kind := range tagNames {
		if kind == k {
			return name
		}
	}
	return "root"
}

// FontStyle is a bold/italic flag set.
type FontStyle int

const (
	FontNormal     FontStyle = 0
	FontBold       FontStyle = 1
	FontItalic     FontStyle = 2
	FontBoldItalic           = FontBold | FontItalic
)

func (s FontStyle) String() string {
	switch s {
	case FontBold:
		return "bold"
	case FontItalic:
		return "italic"
	case FontBoldItalic:
		return "bold-italic"
	default:
		return "normal"
	}
}

// ParseFontStyle accepts normal, bold, italic and bold-italic (also "bolditalic").
func ParseFontStyle(s string) (FontStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "regular":
		return FontNormal, nil
	case "bold":
		return FontBold, nil
	case "italic":
		return FontItalic, nil
	case "bold-italic", "bolditalic", "bold_italic":
		return FontBoldItalic, nil
	}
	return FontNormal, fmt.Errorf("unknown font style %q", s)
}

// Style is one link of an inheritance chain of inline formatting overrides.
// A node only carries the attribute of its own kind and delegates everything
// else to its parent. The root carries concrete values for every attribute.
type Style struct {
	parent *Style
	kind   TagKind

	fontStyle FontStyle
	fontSize  float64
	colors    Corners
	size      SizeSpec
	name      string
}

// NewRootStyle creates the default style every chain terminates in.
func NewRootStyle(fs FontStyle, size float64, colors Corners) *Style {
	return &Style{kind: TagNone, fontStyle: fs, fontSize: size, colors: colors}
}

// newTagStyle instantiates a node of the given kind from positional tag parameters.
func newTagStyle(kind TagKind, params []string, parent *Style) *Style {
	s := &Style{parent: parent, kind: kind}
	switch kind {
	case TagSize:
		if len(params) > 0 {
			s.size = ParseSizeSpec(params[0])
		} else {
			s.size = SizeSpec{Kind: SizeFactor, Factor: 1}
		}
	case TagColor:
		s.colors = ParseCorners(params)
	case TagIcon, TagAnim:
		if len(params) > 0 {
			s.name = params[0]
		}
	}
	return s
}

// Parent returns the enclosing style, nil for the root.
func (s *Style) Parent() *Style { return s.parent }

// Kind reports which tag created the node.
func (s *Style) Kind() TagKind { return s.kind }

// Root walks to the end of the chain.
func (s *Style) Root() *Style {
	n := s
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// FontStyle is the union of bold and italic flags along the chain.
func (s *Style) FontStyle() FontStyle {
	var fs FontStyle
	for n := s; n != nil; n = n.parent {
		switch n.kind {
		case TagBold:
			fs |= FontBold
		case TagItalic:
			fs |= FontItalic
		case TagNone:
			fs |= n.fontStyle
		}
	}
	return fs
}

// FontSize resolves the nearest size override against the root size.
func (s *Style) FontSize() float64 {
	root := s.Root().fontSize
	for n := s; n != nil; n = n.parent {
		if n.kind == TagSize {
			return math.Trunc(n.size.Resolve(root))
		}
	}
	return math.Trunc(root)
}

// Colors returns the nearest corner color override.
func (s *Style) Colors() Corners {
	for n := s; n != nil; n = n.parent {
		if n.kind == TagColor || n.parent == nil {
			return n.colors
		}
	}
	return Corners{}
}

// Name returns the nearest icon or animation name.
func (s *Style) Name() string {
	for n := s; n != nil; n = n.parent {
		if n.kind == TagIcon || n.kind == TagAnim {
			return n.name
		}
	}
	return ""
}

// HasAnim reports whether any anim node on the chain is named tag.
func (s *Style) HasAnim(tag string) bool {
	for n := s; n != nil; n = n.parent {
		if n.kind == TagAnim && n.name == tag {
			return true
		}
	}
	return false
}

// String renders the chain leaf first, e.g. "size>b>root".
func (s *Style) String() string {
	var parts []string
	for n := s; n != nil; n = n.parent {
		switch n.kind {
		case TagIcon, TagAnim:
			parts = append(parts, n.kind.String()+"="+n.name)
		default:
			parts = append(parts, n.kind.String())
		}
	}
	return strings.Join(parts, ">")
}
