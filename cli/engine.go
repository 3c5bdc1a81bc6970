package cli

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/lively/anim"
	"github.com/ByLCY/lively/binding"
	"github.com/ByLCY/lively/fontmetrics"
	"github.com/ByLCY/lively/fonts"
	"github.com/ByLCY/lively/icons"
	"github.com/ByLCY/lively/markup"
	"github.com/ByLCY/lively/textview"
)

// engine 是一次命令执行所需的组件集合。
type engine struct {
	fonts      map[markup.FontStyle][]byte
	metrics    *fontmetrics.Provider
	icons      icons.Atlas
	typewriter *anim.Typewriter
	drivers    []anim.Driver
	view       *textview.View
}

// throbColor 是 <anim=throb> 的目标颜色（SVG gold）。
var throbColor = markup.Color{R: 1, G: 215.0 / 255, A: 1}

// textInput 读取 --text 或位置参数指定的文件（"-" 表示标准输入）。
func textInput(cmd *cobra.Command, inline string, args []string) (string, error) {
	if inline != "" {
		return inline, nil
	}
	if len(args) == 0 {
		return "", fmt.Errorf("需要输入文件或 --text")
	}
	if args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("读取标准输入失败: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("无法打开文本文件 %s: %w", args[0], err)
	}
	return string(data), nil
}

// bindData 解析 --data / --data-file 并替换文本中的占位符。
func (a *app) bindData(text string) (string, error) {
	var data any
	switch {
	case a.data != "":
		if err := jsoniter.Unmarshal([]byte(a.data), &data); err != nil {
			return "", fmt.Errorf("解析 data JSON 失败: %w", err)
		}
	case a.dataFile != "":
		raw, err := os.ReadFile(a.dataFile)
		if err != nil {
			return "", fmt.Errorf("读取数据文件失败: %w", err)
		}
		// YAML 是 JSON 的超集，两种格式都可以直接解析
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return "", fmt.Errorf("解析数据文件失败: %w", err)
		}
	default:
		return text, nil
	}
	if a.plainData {
		return binding.InterpolatePlain(text, data), nil
	}
	return binding.Interpolate(text, data), nil
}

func (a *app) loadFonts() (map[markup.FontStyle][]byte, error) {
	sources := map[markup.FontStyle]string{
		markup.FontNormal:     a.cfg.Fonts.Regular,
		markup.FontBold:       a.cfg.Fonts.Bold,
		markup.FontItalic:     a.cfg.Fonts.Italic,
		markup.FontBoldItalic: a.cfg.Fonts.BoldItalic,
	}
	out := map[markup.FontStyle][]byte{}
	for style, src := range sources {
		if src == "" {
			continue
		}
		data, err := fonts.Load(src)
		if err != nil {
			return nil, err
		}
		out[style] = data
	}
	return out, nil
}

// newEngine 按配置加载字体、图标与动画驱动，并用 text 创建文本组件。
func (a *app) newEngine(text string) (*engine, error) {
	text, err := a.bindData(text)
	if err != nil {
		return nil, err
	}
	fontData, err := a.loadFonts()
	if err != nil {
		return nil, err
	}
	metrics, err := fontmetrics.New(fontData, a.log)
	if err != nil {
		return nil, err
	}
	e := &engine{fonts: fontData, metrics: metrics}
	if dir := a.cfg.Icons.Dir; dir != "" {
		e.icons = icons.NewDir(dir, a.log)
	}

	e.typewriter = anim.NewTypewriter()
	e.typewriter.GlyphsPerSecond = a.cfg.Speak.GlyphsPerSecond
	e.drivers = []anim.Driver{e.typewriter, anim.NewWave(), anim.NewShake(nil), anim.NewThrob(throbColor)}

	opts, err := a.cfg.TextOptions(metrics)
	if err != nil {
		return nil, err
	}
	opts.Text = text
	e.view, err = textview.New(opts, textview.Deps{
		Metrics: metrics,
		Icons:   e.icons,
		Drivers: e.drivers,
		Logger:  a.log,
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}
