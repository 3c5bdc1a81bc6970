package layout

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ByLCY/lively/glyph"
)

// HorizontalWrap 控制行宽超出容器时的处理方式。
type HorizontalWrap int

const (
	Wrap     HorizontalWrap = iota // 换行
	Overflow                       // 允许超出容器宽度
)

// VerticalWrap 控制块高度超出容器时的处理方式。
type VerticalWrap int

const (
	Truncate         VerticalWrap = iota // 截断并分页
	VerticalOverflow                     // 允许超出容器高度
)

// Anchor 是九宫格对齐方式。
type Anchor int

const (
	UpperLeft Anchor = iota
	UpperCenter
	UpperRight
	MiddleLeft
	MiddleCenter
	MiddleRight
	LowerLeft
	LowerCenter
	LowerRight
)

var anchorNames = []string{
	"upper-left", "upper-center", "upper-right",
	"middle-left", "middle-center", "middle-right",
	"lower-left", "lower-center", "lower-right",
}

func (a Anchor) String() string {
	if a < 0 || int(a) >= len(anchorNames) {
		return fmt.Sprintf("anchor(%d)", int(a))
	}
	return anchorNames[a]
}

// column 返回水平方向：0 左、1 中、2 右。
func (a Anchor) column() int { return int(a) % 3 }

// row 返回垂直方向：0 上、1 中、2 下。
func (a Anchor) row() int { return int(a) / 3 }

// DefaultPageBreakChars 是默认的分页字符。
var DefaultPageBreakChars = []rune{'.', '!', '?'}

// Options 配置一次布局所需的容器与字体度量。
type Options struct {
	// Bounds 为容器矩形（y 轴向上，单位像素）。
	Bounds glyph.Rect
	Anchor Anchor
	// AlignByGeometry 为 true 时以字形墨迹边界计算宽高与对齐，否则以前进宽度和行高计算。
	AlignByGeometry bool
	Horizontal      HorizontalWrap
	Vertical        VerticalWrap
	PageBreakChars  []rune
	// LineHeight 与 Ascent 已包含行距系数。
	LineHeight float64
	Ascent     float64
	// KeepOversizedGlyph 为 true 时，宽于容器的单个字形独占一行而不是终止布局。
	KeepOversizedGlyph bool
	// MinPageFill 是在分页字符处截断时，页面至少保留的行数比例（0~1）；不足时直接硬切。
	MinPageFill float64
	Logger      *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) breakChars() []rune {
	if o.PageBreakChars == nil {
		return DefaultPageBreakChars
	}
	return o.PageBreakChars
}

// ParseAnchor 接受 upper-left、middle-center 等写法（也接受下划线与驼峰）。
func ParseAnchor(s string) (Anchor, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	for i, name := range anchorNames {
		if norm == name || norm == strings.ReplaceAll(name, "-", "") {
			return Anchor(i), nil
		}
	}
	return UpperLeft, fmt.Errorf("未知的对齐方式: %q", s)
}

// ParseHorizontalWrap 接受 wrap 或 overflow。
func ParseHorizontalWrap(s string) (HorizontalWrap, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wrap":
		return Wrap, nil
	case "overflow":
		return Overflow, nil
	}
	return Wrap, fmt.Errorf("未知的水平换行模式: %q", s)
}

// ParseVerticalWrap 接受 truncate 或 overflow。
func ParseVerticalWrap(s string) (VerticalWrap, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "truncate":
		return Truncate, nil
	case "overflow":
		return VerticalOverflow, nil
	}
	return Truncate, fmt.Errorf("未知的垂直换行模式: %q", s)
}
