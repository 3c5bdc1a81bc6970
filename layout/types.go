package layout

import (
	"math"
	"strings"

	"github.com/ByLCY/lively/glyph"
)

// 该文件定义行、块（页）与布局结果。坐标系 y 轴向上，单位像素。

// Result 保存一次布局得到的所有页面。
type Result struct {
	Pages  []*Block
	Bounds glyph.Rect
}

// PageCount 返回页数，空文本为 0。
func (r *Result) PageCount() int {
	if r == nil {
		return 0
	}
	return len(r.Pages)
}

// Page 按从 1 开始的页码返回页面，越界返回 nil。
func (r *Result) Page(n int) *Block {
	if r == nil || n < 1 || n > len(r.Pages) {
		return nil
	}
	return r.Pages[n-1]
}

// Line 是一行单词。LocalX/LocalY 是相对所属块原点的基线位置。
type Line struct {
	Words  []*glyph.Word
	LocalX float64
	LocalY float64

	position glyph.Vec2
	advance  float64
	ink      glyph.Rect
	hasInk   bool
	ascent   float64
	// end 是该行消耗完后下一个待排单词的下标
	end int
}

func newLine(ascent float64) *Line { return &Line{ascent: ascent} }

func (l *Line) add(w *glyph.Word) {
	l.Words = append(l.Words, w)
	l.recalc()
}

func (l *Line) removeLast() {
	if len(l.Words) == 0 {
		return
	}
	l.Words = l.Words[:len(l.Words)-1]
	l.recalc()
}

func (l *Line) last() *glyph.Word {
	if len(l.Words) == 0 {
		return nil
	}
	return l.Words[len(l.Words)-1]
}

func (l *Line) trimTrailingSpace() {
	if w := l.last(); w != nil && w.IsWhitespace() {
		l.removeLast()
	}
}

func (l *Line) recalc() {
	l.advance, l.ink, l.hasInk = 0, glyph.Rect{}, false
	for _, w := range l.Words {
		w.LocalX = l.advance
		l.advance += w.Advance()
		if len(w.Glyphs) == 0 {
			continue
		}
		b := w.PixelBounds().Translate(w.LocalX, 0)
		if !l.hasInk {
			l.ink, l.hasInk = b, true
		} else {
			l.ink = l.ink.Union(b)
		}
	}
}

// Advance 是所有单词前进宽度之和。
func (l *Line) Advance() float64 { return l.advance }

// PixelBounds 是行内字形墨迹的包围盒（相对行原点）。
func (l *Line) PixelBounds() glyph.Rect { return l.ink }

// NormalBounds 由前进宽度与字体上升高度决定，与实际墨迹无关。
func (l *Line) NormalBounds() glyph.Rect {
	return glyph.Rect{XMax: l.advance, YMax: l.ascent}
}

// Position 是行基线原点的最终位置。
func (l *Line) Position() glyph.Vec2 { return l.position }

func (l *Line) width(byGeometry bool) float64 {
	if byGeometry {
		return l.ink.Width()
	}
	return l.advance
}

// String 返回行内文本（不含换行符）。
func (l *Line) String() string {
	var sb strings.Builder
	for _, w := range l.Words {
		if w.IsLineBreak() {
			continue
		}
		sb.WriteString(w.String())
	}
	return sb.String()
}

// Block 即一页：若干行以及由容器对齐决定的位置。
type Block struct {
	Lines []*Line

	position   glyph.Vec2
	lineHeight float64
	ascent     float64
}

func newBlock(lineHeight, ascent float64) *Block {
	return &Block{lineHeight: lineHeight, ascent: ascent}
}

func (b *Block) add(l *Line) {
	if n := len(b.Lines); n == 0 {
		l.LocalY = -b.ascent
	} else {
		l.LocalY = b.Lines[n-1].LocalY - b.lineHeight
	}
	b.Lines = append(b.Lines, l)
}

func (b *Block) removeLast() {
	if len(b.Lines) > 0 {
		b.Lines = b.Lines[:len(b.Lines)-1]
	}
}

// lastWord 返回块中最后一个单词。
func (b *Block) lastWord() *glyph.Word {
	for i := len(b.Lines) - 1; i >= 0; i-- {
		if w := b.Lines[i].last(); w != nil {
			return w
		}
	}
	return nil
}

// NormalHeight = ascent + (行数-1) * 行高。
func (b *Block) NormalHeight() float64 {
	if len(b.Lines) == 0 {
		return 0
	}
	return b.ascent + float64(len(b.Lines)-1)*b.lineHeight
}

// NormalBounds 以块原点（首行顶部）为基准，向下延伸。
func (b *Block) NormalBounds() glyph.Rect {
	r := glyph.Rect{YMin: -b.NormalHeight()}
	for i, l := range b.Lines {
		xMin, xMax := l.LocalX, l.LocalX+l.advance
		if i == 0 {
			r.XMin, r.XMax = xMin, xMax
			continue
		}
		r.XMin = math.Min(r.XMin, xMin)
		r.XMax = math.Max(r.XMax, xMax)
	}
	return r
}

// PixelBounds 是所有行墨迹的并集（相对块原点）。
func (b *Block) PixelBounds() glyph.Rect {
	var r glyph.Rect
	found := false
	for _, l := range b.Lines {
		if !l.hasInk {
			continue
		}
		lb := l.ink.Translate(l.LocalX, l.LocalY)
		if !found {
			r, found = lb, true
		} else {
			r = r.Union(lb)
		}
	}
	return r
}

func (b *Block) height(byGeometry bool) float64 {
	if byGeometry {
		return b.PixelBounds().Height()
	}
	return b.NormalHeight()
}

// Position 是块原点的最终位置。
func (b *Block) Position() glyph.Vec2 { return b.position }

// Words 按遍历顺序返回块内单词。
func (b *Block) Words() []*glyph.Word {
	var out []*glyph.Word
	for _, l := range b.Lines {
		out = append(out, l.Words...)
	}
	return out
}

// Glyphs 按 块→行→单词→字形 的顺序返回字形，位置已是最终像素坐标。
func (b *Block) Glyphs() []*glyph.Glyph {
	var out []*glyph.Glyph
	for _, l := range b.Lines {
		for _, w := range l.Words {
			out = append(out, w.Glyphs...)
		}
	}
	return out
}

// String 返回页面文本，行之间以换行分隔。
func (b *Block) String() string {
	lines := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		lines[i] = l.String()
	}
	return strings.Join(lines, "\n")
}
