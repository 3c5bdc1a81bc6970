package layout

import (
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/ByLCY/lively/glyph"
)

// DebugPage 等结构是布局结果的只读快照，便于调试或可视化。
type DebugPage struct {
	Number   int         `json:"number"`
	Position glyph.Vec2  `json:"position"`
	Normal   glyph.Rect  `json:"normalBounds"`
	Pixel    glyph.Rect  `json:"pixelBounds"`
	Lines    []DebugLine `json:"lines"`
}

type DebugLine struct {
	Text     string      `json:"text"`
	Position glyph.Vec2  `json:"position"`
	Advance  float64     `json:"advance"`
	Pixel    glyph.Rect  `json:"pixelBounds"`
	Words    []DebugWord `json:"words"`
}

type DebugWord struct {
	Text     string       `json:"text"`
	Position glyph.Vec2   `json:"position"`
	Glyphs   []DebugGlyph `json:"glyphs"`
}

type DebugGlyph struct {
	Kind     string     `json:"kind"`
	Text     string     `json:"text,omitempty"`
	Icon     string     `json:"icon,omitempty"`
	Style    string     `json:"style"`
	Size     float64    `json:"size"`
	Position glyph.Vec2 `json:"position"`
	Bounds   glyph.Rect `json:"bounds"`
	Visible  bool       `json:"visible"`
}

// Debug 生成整个结果的快照。
func Debug(res *Result) []DebugPage {
	if res == nil {
		return nil
	}
	pages := make([]DebugPage, 0, len(res.Pages))
	for i, b := range res.Pages {
		p := DebugPage{
			Number:   i + 1,
			Position: b.Position(),
			Normal:   b.NormalBounds(),
			Pixel:    b.PixelBounds(),
		}
		for _, l := range b.Lines {
			dl := DebugLine{Text: l.String(), Position: l.Position(), Advance: l.Advance(), Pixel: l.PixelBounds()}
			for _, w := range l.Words {
				dw := DebugWord{Text: w.String(), Position: w.Position()}
				for _, g := range w.Glyphs {
					dw.Glyphs = append(dw.Glyphs, DebugGlyph{
						Kind:     g.Kind().String(),
						Text:     g.String(),
						Icon:     g.IconName(),
						Style:    g.Style().String(),
						Size:     g.FontSize(),
						Position: g.Position(),
						Bounds:   g.Bounds(),
						Visible:  g.Visible(),
					})
				}
				dl.Words = append(dl.Words, dw)
			}
			p.Lines = append(p.Lines, dl)
		}
		pages = append(pages, p)
	}
	return pages
}

// MarshalDebugJSON 以缩进 JSON 编码快照。
func MarshalDebugJSON(res *Result) ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(Debug(res), "", "  ")
}

// WriteDebugJSON 将布局结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := MarshalDebugJSON(res)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
