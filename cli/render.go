package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ByLCY/lively/layout"
	"github.com/ByLCY/lively/markup"
	"github.com/ByLCY/lively/renderer"
	canvasrenderer "github.com/ByLCY/lively/renderer/canvas"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		text       string
		output     string
		debugPath  string
		background string
	)
	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render every page of the text to a PDF.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := textInput(cmd, text, args)
			if err != nil {
				return err
			}
			e, err := a.newEngine(input)
			if err != nil {
				return err
			}
			defer e.view.Close()

			result := e.view.Result()
			if debugPath != "" {
				if err := writeDebug(result, debugPath); err != nil {
					return err
				}
			}

			opts := canvasrenderer.Options{Fonts: e.fonts, Icons: e.icons, Logger: a.log}
			if background != "" {
				c, ok := markup.ParseColor(background)
				if !ok {
					return fmt.Errorf("无效的背景颜色 %q", background)
				}
				opts.Background = &c
			}
			var r renderer.Renderer = canvasrenderer.NewRenderer(opts)
			if err := writePDF(r, result, output); err != nil {
				return err
			}
			a.log.Info("pdf written", zap.String("path", output), zap.Int("pages", result.PageCount()))
			fmt.Fprintf(cmd.OutOrStdout(), "已生成 PDF：%s（%d 页）\n", output, result.PageCount())
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "直接给出要排版的文本")
	cmd.Flags().StringVarP(&output, "out", "o", "output/lively.pdf", "PDF 输出路径")
	cmd.Flags().StringVar(&debugPath, "debug", "", "布局调试 JSON 输出路径")
	cmd.Flags().StringVar(&background, "background", "", "页面背景颜色")
	return cmd
}

func writePDF(r renderer.Renderer, result *layout.Result, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	pdfBytes, err := r.Render(result)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
