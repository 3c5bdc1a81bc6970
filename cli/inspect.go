package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/lively/layout"
)

func newInspectCmd(a *app) *cobra.Command {
	var (
		text     string
		asJSON   bool
		sizeOnly bool
	)
	cmd := &cobra.Command{
		Use:   "inspect [file|-]",
		Short: "Print the pages the text is split into.",
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
			out := cmd.OutOrStdout()

			if sizeOnly {
				w, h := e.view.PreferredSize()
				fmt.Fprintf(out, "%g x %g\n", w, h)
				return nil
			}
			if asJSON {
				data, err := layout.MarshalDebugJSON(e.view.Result())
				if err != nil {
					return fmt.Errorf("序列化布局失败: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			count := e.view.PageCount()
			if count == 0 {
				fmt.Fprintln(out, "（没有可显示的页面）")
				return nil
			}
			for n := 1; n <= count; n++ {
				fmt.Fprintf(out, "--- 第 %d/%d 页 ---\n%s\n", n, count, e.view.PageText(n))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "直接给出要排版的文本")
	cmd.Flags().BoolVar(&asJSON, "json", false, "输出布局调试 JSON")
	cmd.Flags().BoolVar(&sizeOnly, "size", false, "只输出首选尺寸")
	return cmd
}
