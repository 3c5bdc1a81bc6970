package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"go.uber.org/zap"

	"github.com/ByLCY/lively/fonts"
	"github.com/ByLCY/lively/glyph"
	"github.com/ByLCY/lively/icons"
	"github.com/ByLCY/lively/layout"
	"github.com/ByLCY/lively/markup"
	"github.com/ByLCY/lively/renderer"
)

const (
	// PxToMm 按 96dpi 将像素换算为毫米。
	PxToMm = 25.4 / 96
	// PxToPt 将像素字号换算为点。
	PxToPt = 1 / markup.PtToPx
)

// Renderer draws layout results via github.com/tdewolff/canvas, one PDF page
// per layout page. Only visible glyphs are drawn.
type Renderer struct {
	opts Options

	fontMu sync.Mutex
	family *canvas.FontFamily
	faces  map[faceKey]*canvas.FontFace
}

var _ renderer.Renderer = (*Renderer)(nil)

type faceKey struct {
	style markup.FontStyle
	size  float64
	color color.NRGBA
}

// Options configures the canvas renderer.
type Options struct {
	// Fonts 按样式提供字体数据，缺省使用内置 Go 字体。
	Fonts map[markup.FontStyle][]byte
	// Icons 为 nil 时图标字形不绘制。
	Icons icons.Atlas
	// Background 为 nil 时页面透明。
	Background *markup.Color
	Title      string
	Logger     *zap.Logger
}

// NewRenderer creates a renderer.
func NewRenderer(opts Options) *Renderer {
	if opts.Fonts == nil {
		opts.Fonts = fonts.Builtin()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Renderer{opts: opts, faces: map[faceKey]*canvas.FontFace{}}
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}
	if err := r.ensureFamily(); err != nil {
		return nil, err
	}

	w, h := pageSize(result.Bounds)
	var buf bytes.Buffer
	writer := pdf.New(&buf, w, h, nil)
	writer.SetInfo(r.opts.Title, "", "", "", "lively")
	for i, page := range result.Pages {
		if i > 0 {
			writer.NewPage(w, h)
		}
		c := canvas.New(w, h)
		ctx := canvas.NewContext(c)
		// 布局坐标 y 轴向上，与 CartesianI 一致
		ctx.SetCoordSystem(canvas.CartesianI)
		if bg := r.opts.Background; bg != nil {
			ctx.SetFillColor(bg.NRGBA())
			ctx.SetStrokeColor(color.RGBA{})
			ctx.DrawPath(0, 0, canvas.Rectangle(w, h))
		}
		drawn := r.drawPage(ctx, page, result.Bounds)
		r.opts.Logger.Debug("page rendered", zap.Int("page", i+1), zap.Int("glyphs", drawn))
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func pageSize(bounds glyph.Rect) (float64, float64) {
	w, h := bounds.Width()*PxToMm, bounds.Height()*PxToMm
	return max(w, 1), max(h, 1)
}

func (r *Renderer) drawPage(ctx *canvas.Context, page *layout.Block, bounds glyph.Rect) int {
	drawn := 0
	for _, g := range page.Glyphs() {
		if !g.Visible() {
			continue
		}
		o := g.Origin()
		x, y := (o.X-bounds.XMin)*PxToMm, (o.Y-bounds.YMin)*PxToMm
		switch g.Kind() {
		case glyph.Char:
			col := averageColor(g.Paint())
			if col.A == 0 {
				continue
			}
			face := r.face(g.Style().FontStyle(), g.FontSize(), col)
			ctx.DrawText(x, y, canvas.NewTextLine(face, string(g.Rune()), canvas.Left))
			drawn++
		case glyph.Icon:
			if r.drawIcon(ctx, g, x, y) {
				drawn++
			}
		}
	}
	return drawn
}

func (r *Renderer) drawIcon(ctx *canvas.Context, g *glyph.Glyph, x, y float64) bool {
	if r.opts.Icons == nil {
		return false
	}
	img := r.opts.Icons.Icon(g.IconName())
	if img == nil {
		return false
	}
	b := g.Bounds()
	widthMm := b.Width() * PxToMm
	if widthMm <= 0 || img.Bounds().Dx() == 0 {
		return false
	}
	dpmm := float64(img.Bounds().Dx()) / widthMm
	ctx.DrawImage(x+b.XMin*PxToMm, y+b.YMin*PxToMm, img, canvas.DPMM(dpmm))
	return true
}

// averageColor 取四角颜色的平均值，PDF 文本不支持逐角渐变。
func averageColor(c markup.Corners) color.NRGBA {
	var sum markup.Color
	for _, v := range c {
		sum.R += v.R / 4
		sum.G += v.G / 4
		sum.B += v.B / 4
		sum.A += v.A / 4
	}
	return sum.NRGBA()
}

func (r *Renderer) ensureFamily() error {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.family != nil {
		return nil
	}
	family := canvas.NewFontFamily("lively")
	regular, ok := r.opts.Fonts[markup.FontNormal]
	if !ok {
		return fmt.Errorf("缺少常规字体")
	}
	for _, style := range []markup.FontStyle{markup.FontNormal, markup.FontBold, markup.FontItalic, markup.FontBoldItalic} {
		data, ok := r.opts.Fonts[style]
		if !ok {
			data = regular
		}
		if err := family.LoadFont(data, 0, canvasStyle(style)); err != nil {
			return fmt.Errorf("加载 %s 字体失败: %w", style, err)
		}
	}
	r.family = family
	return nil
}

func (r *Renderer) face(style markup.FontStyle, sizePx float64, col color.NRGBA) *canvas.FontFace {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	key := faceKey{style, sizePx, col}
	if f, ok := r.faces[key]; ok {
		return f
	}
	f := r.family.Face(sizePx*PxToPt, col, canvasStyle(style), canvas.FontNormal)
	r.faces[key] = f
	return f
}

func canvasStyle(style markup.FontStyle) canvas.FontStyle {
	switch style {
	case markup.FontBold:
		return canvas.FontBold
	case markup.FontItalic:
		return canvas.FontRegular | canvas.FontItalic
	case markup.FontBoldItalic:
		return canvas.FontBold | canvas.FontItalic
	default:
		return canvas.FontRegular
	}
}
