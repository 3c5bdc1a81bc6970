package canvasrenderer

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/ByLCY/lively/fontmetrics"
	"github.com/ByLCY/lively/glyph"
	"github.com/ByLCY/lively/icons"
	"github.com/ByLCY/lively/layout"
	"github.com/ByLCY/lively/markup"
)

func layoutText(t *testing.T, text string, w, h float64) *layout.Result {
	t.Helper()
	metrics, err := fontmetrics.NewGoFonts(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root := markup.NewRootStyle(markup.FontNormal, 24, markup.Uniform(markup.Black))
	glyphs, err := glyph.Build(markup.Parse(text, root), metrics)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lineHeight, ascent := metrics.LineMetrics(24, markup.FontNormal)
	return layout.Layout(glyph.Assemble(glyphs), layout.Options{
		Bounds:     glyph.Rect{XMax: w, YMax: h},
		LineHeight: lineHeight,
		Ascent:     ascent,
	})
}

func TestRenderProducesPDF(t *testing.T) {
	res := layoutText(t, "Hello <b>bold</b> <i>world</i> <icon=coin>!", 400, 200)
	if res.PageCount() != 1 {
		t.Fatalf("expected 1 page, got %d", res.PageCount())
	}
	atlas := icons.Map{"coin": image.NewNRGBA(image.Rect(0, 0, 8, 8))}
	bg := markup.White
	data, err := NewRenderer(Options{Icons: atlas, Background: &bg, Title: "demo"}).Render(res)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", data[:min(len(data), 16)])
	}
}

func TestRenderEveryPage(t *testing.T) {
	res := layoutText(t, "One. Two. Three. Four. Five. Six.", 120, 40)
	if res.PageCount() < 2 {
		t.Fatalf("expected several pages, got %d", res.PageCount())
	}
	data, err := NewRenderer(Options{}).Render(res)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestRenderRejectsEmptyResults(t *testing.T) {
	r := NewRenderer(Options{})
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("nil result should fail")
	}
	if _, err := r.Render(&layout.Result{}); err == nil {
		t.Fatalf("result without pages should fail")
	}
}

func TestRenderRequiresRegularFont(t *testing.T) {
	res := layoutText(t, "x", 100, 100)
	r := NewRenderer(Options{Fonts: map[markup.FontStyle][]byte{}})
	if _, err := r.Render(res); err == nil {
		t.Fatalf("missing regular font should fail")
	}
}

func TestAverageColor(t *testing.T) {
	c := markup.Corners{markup.White, markup.White, markup.Black, markup.Black}
	got := averageColor(c)
	want := color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	if got != want {
		t.Fatalf("averageColor = %v, want %v", got, want)
	}
}
