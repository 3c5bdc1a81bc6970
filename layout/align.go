package layout

import (
	"math"

	"github.com/ByLCY/lively/glyph"
)

// Reposition 重新计算行的水平偏移与块的位置，再把位置传递到单词和字形。
// 只改变对齐时调用它即可，页数和内容不变。
func (r *Result) Reposition(opts Options) {
	if r == nil {
		return
	}
	r.Bounds = opts.Bounds
	for _, b := range r.Pages {
		for _, l := range b.Lines {
			// 同一批单词可能被其他布局复用过，先恢复本结果中的排布
			for _, w := range l.Words {
				w.Reflow()
			}
			l.recalc()
			l.LocalX = alignOffset(l, opts)
		}
		b.position = glyph.Vec2{X: opts.Bounds.XMin, Y: blockTop(b, opts)}
		for _, l := range b.Lines {
			l.position = glyph.Vec2{X: b.position.X + l.LocalX, Y: b.position.Y + l.LocalY}
			for _, w := range l.Words {
				w.SetPosition(glyph.Vec2{X: l.position.X + w.LocalX, Y: l.position.Y})
			}
		}
	}
}

// alignOffset 计算行在容器内的水平偏移，按像素取整。
func alignOffset(l *Line, opts Options) float64 {
	width := opts.Bounds.Width()
	ink := l.PixelBounds()
	var x float64
	switch opts.Anchor.column() {
	case 0:
		if opts.AlignByGeometry {
			x = -ink.XMin
		}
	case 1:
		if opts.AlignByGeometry {
			x = width/2 - ink.Width()/2 - ink.XMin
		} else {
			x = width/2 - l.advance/2
		}
	default:
		if opts.AlignByGeometry {
			x = width - ink.Width() - ink.XMin
		} else {
			x = width - l.advance
		}
	}
	return math.Trunc(x)
}

// blockTop 计算块原点（首行顶部）的 y 坐标。
func blockTop(b *Block, opts Options) float64 {
	c := opts.Bounds
	if opts.AlignByGeometry {
		ink := b.PixelBounds()
		switch opts.Anchor.row() {
		case 0:
			return c.YMax - ink.YMax
		case 1:
			return c.YMin + c.Height()/2 + ink.Height()/2 - ink.YMax
		default:
			return c.YMin + ink.Height() - ink.YMax
		}
	}
	h := b.NormalHeight()
	switch opts.Anchor.row() {
	case 0:
		return c.YMax
	case 1:
		return c.YMin + c.Height()/2 + h/2
	default:
		return c.YMin + h
	}
}
