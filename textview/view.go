// Package textview is the text component: it owns the markup text, the
// glyphs and the paged layout, and keeps animation drivers bound to the
// page on screen.
package textview

import (
	"fmt"
	"image"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ByLCY/lively/anim"
	"github.com/ByLCY/lively/glyph"
	"github.com/ByLCY/lively/icons"
	"github.com/ByLCY/lively/layout"
	"github.com/ByLCY/lively/markup"
)

// Options 描述文本组件的初始状态。
type Options struct {
	Text string
	// RichText 为 false 时不解析标签，整段文本使用根样式。
	RichText  bool
	FontSize  float64
	FontStyle markup.FontStyle
	Colors    markup.Corners
	// Layout 的 LineHeight 与 Ascent 为 0 时由字体度量按根样式计算。
	Layout layout.Options
}

// DefaultOptions 返回 36px 白色常规字体、富文本开启的默认配置。
func DefaultOptions() Options {
	return Options{
		RichText:  true,
		FontSize:  36,
		FontStyle: markup.FontNormal,
		Colors:    markup.Uniform(markup.White),
	}
}

// Deps 是文本组件依赖的外部服务。
type Deps struct {
	Metrics glyph.MetricsProvider
	Icons   icons.Atlas
	Drivers []anim.Driver
	Logger  *zap.Logger
}

// IconPlacement 是当前页上一个图标字形的位置与图像。
type IconPlacement struct {
	Name  string
	Glyph *glyph.Glyph
	Quad  [4]glyph.Vec3
	// Image 为 nil 表示图集中没有该图标。
	Image image.Image
}

// View 管理文本、字形与分页布局。所有方法都可以并发调用：
// 重新布局与 Tick 由同一把锁串行化，Tick 不会读到重建中的字形列表。
type View struct {
	mu   sync.Mutex
	opts Options
	deps Deps
	log  *zap.Logger

	glyphs []*glyph.Glyph
	words  []*glyph.Word
	result *layout.Result
	page   int
}

// New 创建文本组件并完成首次布局。缺少字体度量提供者时返回 glyph.ErrNoMetrics。
func New(opts Options, deps Deps) (*View, error) {
	if deps.Metrics == nil {
		return nil, fmt.Errorf("创建文本组件失败: %w", glyph.ErrNoMetrics)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultOptions().FontSize
	}
	v := &View{opts: opts, deps: deps, log: deps.Logger.Named("textview")}
	if err := v.rebuildText(); err != nil {
		return nil, err
	}
	return v, nil
}

// SetText 替换文本并完整重建。
func (v *View) SetText(text string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.opts.Text = text
	return v.rebuildText()
}

// Text 返回当前的原始文本。
func (v *View) Text() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.opts.Text
}

// SetRichText 切换是否解析标签。
func (v *View) SetRichText(rich bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.opts.RichText == rich {
		return nil
	}
	v.opts.RichText = rich
	return v.rebuildText()
}

// SetStyle 修改根样式（字号、字形样式与四角颜色）并完整重建。
func (v *View) SetStyle(fs markup.FontStyle, size float64, colors markup.Corners) error {
	if size <= 0 {
		return fmt.Errorf("字号必须为正数: %g", size)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.opts.FontStyle, v.opts.FontSize, v.opts.Colors = fs, size, colors
	return v.rebuildText()
}

// SetBounds 修改容器矩形并重新布局。
func (v *View) SetBounds(bounds glyph.Rect) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.opts.Layout.Bounds = bounds
	v.relayout()
}

// SetWrap 修改换行、分页设置并重新布局。breakChars 为 nil 时使用默认分页字符。
func (v *View) SetWrap(h layout.HorizontalWrap, vert layout.VerticalWrap, breakChars []rune) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.opts.Layout.Horizontal, v.opts.Layout.Vertical = h, vert
	v.opts.Layout.PageBreakChars = breakChars
	v.relayout()
}

// SetAlignment 只修改对齐方式，不重新分页。
func (v *View) SetAlignment(anchor layout.Anchor, byGeometry bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.opts.Layout.Anchor, v.opts.Layout.AlignByGeometry = anchor, byGeometry
	if v.result == nil {
		return
	}
	v.result.Reposition(v.layoutOptions())
	v.rebind()
}

func (v *View) rebuildText() error {
	root := markup.NewRootStyle(v.opts.FontStyle, v.opts.FontSize, v.opts.Colors)
	var chunks []markup.Chunk
	if v.opts.RichText {
		chunks = markup.Parse(v.opts.Text, root)
	} else {
		chunks = []markup.Chunk{{Style: root, Text: v.opts.Text}}
	}
	glyphs, err := glyph.Build(chunks, v.deps.Metrics)
	if err != nil {
		return fmt.Errorf("生成字形失败: %w", err)
	}
	v.glyphs = glyphs
	v.words = glyph.Assemble(glyphs)
	v.page = 1
	v.log.Debug("text rebuilt",
		zap.Int("chunks", len(chunks)),
		zap.Int("glyphs", len(glyphs)),
		zap.Int("words", len(v.words)))
	v.relayout()
	return nil
}

func (v *View) layoutOptions() layout.Options {
	opts := v.opts.Layout
	if opts.LineHeight == 0 || opts.Ascent == 0 {
		lh, asc := v.deps.Metrics.LineMetrics(v.opts.FontSize, v.opts.FontStyle)
		if opts.LineHeight == 0 {
			opts.LineHeight = lh
		}
		if opts.Ascent == 0 {
			opts.Ascent = asc
		}
	}
	if opts.Logger == nil {
		opts.Logger = v.log
	}
	return opts
}

func (v *View) relayout() {
	v.result = layout.Layout(v.words, v.layoutOptions())
	v.page = clamp(v.page, v.result.PageCount())
	v.rebind()
}

func (v *View) rebind() {
	anim.Bind(v.result.Page(v.page), v.deps.Drivers)
}

func clamp(page, count int) int {
	if count == 0 {
		return 0
	}
	return min(max(page, 1), count)
}

// PageCount 返回页数，空文本为 0。
func (v *View) PageCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.result.PageCount()
}

// Page 返回当前页码（从 1 开始，没有页面时为 0）。
func (v *View) Page() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

// SetPage 切换到第 n 页（限制在 [1, PageCount] 内）并返回实际页码。
func (v *View) SetPage(n int) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	if n = clamp(n, v.result.PageCount()); n != v.page {
		v.page = n
		v.rebind()
	}
	return v.page
}

// NextPage 前进一页，已是最后一页时返回 false。
func (v *View) NextPage() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.page >= v.result.PageCount() {
		return false
	}
	v.page++
	v.rebind()
	return true
}

// Glyphs 返回当前页的字形。
func (v *View) Glyphs() []*glyph.Glyph {
	v.mu.Lock()
	defer v.mu.Unlock()
	if p := v.result.Page(v.page); p != nil {
		return p.Glyphs()
	}
	return nil
}

// PageText 返回第 n 页的纯文本，越界返回空串。
func (v *View) PageText(n int) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if p := v.result.Page(n); p != nil {
		return p.String()
	}
	return ""
}

// Icons 返回当前页所有图标的位置以及图集中的图像。
func (v *View) Icons() []IconPlacement {
	v.mu.Lock()
	defer v.mu.Unlock()
	p := v.result.Page(v.page)
	if p == nil {
		return nil
	}
	var out []IconPlacement
	for _, g := range p.Glyphs() {
		if g.Kind() != glyph.Icon {
			continue
		}
		pl := IconPlacement{Name: g.IconName(), Glyph: g, Quad: g.Quad()}
		if v.deps.Icons != nil {
			pl.Image = v.deps.Icons.Icon(g.IconName())
		}
		out = append(out, pl)
	}
	return out
}

// PreferredSize 返回不换行时的宽度与按当前宽度换行时的高度。
func (v *View) PreferredSize() (width, height float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	opts := v.layoutOptions()
	width, height = layout.PreferredSize(v.words, opts)
	v.result.Reposition(opts)
	return width, height
}

// Result 返回当前布局结果。调用方不应在 Tick 的同时修改它。
func (v *View) Result() *layout.Result {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.result
}

// Tick 推进所有动画，返回是否需要重绘。
func (v *View) Tick(dt time.Duration) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return anim.Tick(v.deps.Drivers, dt)
}

// StartAnimations 从头启动所有可重启的动画（例如打字机）。
func (v *View) StartAnimations() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	redraw := false
	for _, d := range v.deps.Drivers {
		if r, ok := d.(anim.Restarter); ok {
			redraw = r.Start() || redraw
		}
	}
	return redraw
}

// SkipAnimations 立即结束所有可重启的动画。
func (v *View) SkipAnimations() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	redraw := false
	for _, d := range v.deps.Drivers {
		if r, ok := d.(anim.Restarter); ok && r.Running() {
			redraw = r.Stop() || redraw
		}
	}
	return redraw
}

// AnimationsDone 报告是否没有正在运行的可重启动画。
func (v *View) AnimationsDone() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, d := range v.deps.Drivers {
		if r, ok := d.(anim.Restarter); ok && r.Running() {
			return false
		}
	}
	return true
}

// Close 解除所有动画绑定并恢复字形。
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	anim.Unbind(v.deps.Drivers)
}
