package fonts

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ByLCY/lively/markup"
)

// 内置 Go 字体（随 golang.org/x/image 发布）。
var builtin = map[string][]byte{
	"go-regular":     goregular.TTF,
	"go-bold":        gobold.TTF,
	"go-italic":      goitalic.TTF,
	"go-bold-italic": gobolditalic.TTF,
}

// ForStyle 返回与字形样式对应的内置字体。
func ForStyle(style markup.FontStyle) []byte {
	switch style {
	case markup.FontBold:
		return gobold.TTF
	case markup.FontItalic:
		return goitalic.TTF
	case markup.FontBoldItalic:
		return gobolditalic.TTF
	default:
		return goregular.TTF
	}
}

// Builtin 返回全部四种样式的内置字体。
func Builtin() map[markup.FontStyle][]byte {
	out := map[markup.FontStyle][]byte{}
	for _, s := range []markup.FontStyle{markup.FontNormal, markup.FontBold, markup.FontItalic, markup.FontBoldItalic} {
		out[s] = ForStyle(s)
	}
	return out
}

// Load 返回字体字节数据，path 可写为 "embed:go-bold" 或字体文件路径。
func Load(path string) ([]byte, error) {
	if name, ok := strings.CutPrefix(path, "embed:"); ok {
		data, found := builtin[name]
		if !found {
			return nil, fmt.Errorf("未知的内置字体 %s", name)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", path, err)
	}
	return data, nil
}
