package layout

import (
	"slices"

	"go.uber.org/zap"

	"github.com/ByLCY/lively/glyph"
)

// Layout 将单词排成行、再把行装入块（页）。单次遍历，除了断词后的局部回填外不回溯。
// words 本身不会被修改：断词产生的片段只替换待排列表中的副本。
func Layout(words []*glyph.Word, opts Options) *Result {
	res := flow(words, opts)
	res.Reposition(opts)
	opts.logger().Debug("layout done",
		zap.Int("words", len(words)),
		zap.Int("pages", res.PageCount()),
		zap.Float64("width", opts.Bounds.Width()),
		zap.Float64("height", opts.Bounds.Height()))
	return res
}

// flow 只分行分页，不设置任何字形位置。
func flow(words []*glyph.Word, opts Options) *Result {
	for _, w := range words {
		w.Reflow()
	}
	fc := &flowContext{
		opts:    opts,
		log:     opts.logger(),
		pending: slices.Clone(words),
	}
	return &Result{Pages: fc.run(), Bounds: opts.Bounds}
}

// flowContext 记录排版过程中的页面、当前块与当前行。
type flowContext struct {
	opts    Options
	log     *zap.Logger
	pending []*glyph.Word

	pages []*Block
	block *Block
	line  *Line
}

func (fc *flowContext) newLine() { fc.line = newLine(fc.opts.Ascent) }

func (fc *flowContext) newBlock() {
	fc.block = newBlock(fc.opts.LineHeight, fc.opts.Ascent)
}

// commitPartial 在布局无法继续时保留已排好的内容。
func (fc *flowContext) commitPartial() []*Block {
	if fc.block != nil && len(fc.block.Lines) > 0 {
		fc.pages = append(fc.pages, fc.block)
	}
	return fc.pages
}

func (fc *flowContext) run() []*Block {
	fc.newBlock()
	fc.newLine()
	geom := fc.opts.AlignByGeometry
	for i := 0; i < len(fc.pending); i++ {
		w := fc.pending[i]
		fc.line.add(w)

		fits := fc.opts.Horizontal == Overflow || w.IsLineBreak() ||
			fc.line.width(geom) <= fc.opts.Bounds.Width()
		if !fits && len(fc.line.Words) == 1 && w.IsWhitespace() {
			// 行首的空白不拆分，行结束时会被去掉
			fits = true
		}
		if !fits && len(fc.line.Words) == 1 {
			chunks, ok := fc.breakWord(w)
			if !ok {
				fc.log.Debug("container narrower than a glyph, layout abandoned",
					zap.String("word", w.String()),
					zap.Float64("width", fc.opts.Bounds.Width()))
				return fc.commitPartial()
			}
			fc.pending = slices.Replace(fc.pending, i, i+1, chunks...)
			w = chunks[0]
			fc.line.removeLast()
			fc.line.add(w)
			fits = true
		}

		breakLine := !fits
		// 溢出的空白并入当前行，避免下一行以空白开头
		if breakLine && w.IsWhitespace() && i > 0 && !fc.pending[i-1].IsWhitespace() {
			breakLine = false
		}
		if w.IsLineBreak() {
			breakLine = true
		}
		last := i == len(fc.pending)-1
		if !breakLine && !last {
			continue
		}

		if breakLine {
			if len(fc.line.Words) > 1 {
				fc.line.removeLast()
			}
			fc.line.end = i
			if w.IsLineBreak() {
				fc.line.end = i + 1
			}
		} else {
			fc.line.end = i + 1
		}
		fc.line.trimTrailingSpace()
		if !breakLine && len(fc.line.Words) == 0 {
			break
		}

		fc.block.add(fc.line)
		if fc.opts.Vertical == Truncate && fc.block.height(geom) > fc.opts.Bounds.Height() {
			fc.block.removeLast()
			if len(fc.block.Lines) == 0 {
				fc.log.Debug("container shorter than one line, layout stopped",
					zap.Float64("height", fc.opts.Bounds.Height()))
				return fc.pages
			}
			resume := fc.cutPage()
			fc.newBlock()
			fc.newLine()
			i = resume - 1
			continue
		}

		fc.newLine()
		if breakLine && !w.IsLineBreak() {
			// 触发换行的单词留给下一行
			i--
		}
	}
	return fc.commitPartial()
}

// cutPage 提交当前块，必要时在最后一个分页字符处截断，返回下一页起始单词下标。
func (fc *flowContext) cutPage() int {
	b := fc.block
	resume := b.Lines[len(b.Lines)-1].end
	if li, wi, ok := fc.findPageBreak(b); ok {
		kept := b.Lines[li].Words[wi]
		b.Lines = b.Lines[:li+1]
		line := b.Lines[li]
		line.Words = line.Words[:wi+1]
		line.recalc()
		resume = slices.Index(fc.pending, kept) + 1
	}
	fc.pages = append(fc.pages, b)

	// 新页面不以空白或强制换行开头
	for resume < len(fc.pending) && fc.pending[resume].IsWhitespace() {
		resume++
	}
	if resume < len(fc.pending) && fc.pending[resume].IsLineBreak() {
		resume++
	}
	return resume
}

// findPageBreak 从块末尾向前查找最后一个以分页字符结尾的单词。
func (fc *flowContext) findPageBreak(b *Block) (int, int, bool) {
	chars := fc.opts.breakChars()
	for li := len(b.Lines) - 1; li >= 0; li-- {
		words := b.Lines[li].Words
		for wi := len(words) - 1; wi >= 0; wi-- {
			g := words[wi].Last()
			if g == nil || !g.IsChar(chars) {
				continue
			}
			if fill := float64(li+1) / float64(len(b.Lines)); fill < fc.opts.MinPageFill {
				fc.log.Debug("page break too early, hard cut instead",
					zap.Float64("fill", fill),
					zap.Float64("min", fc.opts.MinPageFill))
				return 0, 0, false
			}
			return li, wi, true
		}
	}
	return 0, 0, false
}

// breakWord 逐字拆分过长的单词：每个片段都是能放进容器的最长前缀。
// 某个字形单独也放不下时，除非 KeepOversizedGlyph，否则返回 false。
func (fc *flowContext) breakWord(w *glyph.Word) ([]*glyph.Word, bool) {
	geom := fc.opts.AlignByGeometry
	limit := fc.opts.Bounds.Width()
	fitsIn := func(part *glyph.Word) bool {
		if geom {
			return part.PixelBounds().Width() <= limit
		}
		return part.Advance() <= limit
	}

	var out []*glyph.Word
	buf := glyph.NewWord()
	for _, g := range w.Glyphs {
		buf.Add(g)
		if fitsIn(buf) {
			continue
		}
		if len(buf.Glyphs) > 1 {
			buf.RemoveLast()
			out = append(out, buf)
			buf = glyph.NewWord(g)
			if fitsIn(buf) {
				continue
			}
		}
		if !fc.opts.KeepOversizedGlyph {
			return nil, false
		}
		out = append(out, buf)
		buf = glyph.NewWord()
	}
	if len(buf.Glyphs) > 0 {
		out = append(out, buf)
	}
	return out, len(out) > 0
}

// PreferredSize 返回内容的理想尺寸：宽度取不换行时首块的宽度，高度取按 opts.Horizontal
// 排版且不分页时首块的高度。它不会移动任何字形，但会改写单词内的局部排布，
// 正在显示的结果需要随后调用 Reposition 恢复。
func PreferredSize(words []*glyph.Word, opts Options) (width, height float64) {
	free := opts
	free.Horizontal, free.Vertical = Overflow, VerticalOverflow
	if res := flow(words, free); res.PageCount() > 0 {
		b := res.Pages[0]
		if opts.AlignByGeometry {
			width = b.PixelBounds().Width()
		} else {
			width = b.NormalBounds().Width()
		}
	}

	wrapped := opts
	wrapped.Vertical = VerticalOverflow
	if res := flow(words, wrapped); res.PageCount() > 0 {
		height = res.Pages[0].height(opts.AlignByGeometry)
	}
	return width, height
}
