package cli

import (
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ByLCY/lively/glyph"
	"github.com/ByLCY/lively/textview"
)

func newSpeakCmd(a *app) *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "speak [file|-]",
		Short: "Type the text out page by page in the terminal.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := textInput(cmd, text, args)
			if err != nil {
				return err
			}
			input, err = a.bindData(input)
			if err != nil {
				return err
			}
			e, err := a.newEngine("")
			if err != nil {
				return err
			}
			defer e.view.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			auto := a.cfg.Speak.AutoAdvance
			if auto <= 0 {
				// 终端里没有翻页输入，至少要自动翻页
				auto = textview.DefaultAutoAdvance
			}
			tty := &typedOutput{w: cmd.OutOrStdout(), view: e.view}
			s := textview.NewSpeaker(e.view, textview.SpeakerOptions{
				TickInterval: a.cfg.Speak.TickInterval,
				AutoAdvance:  auto,
				OnFrame:      tty.frame,
				OnPage:       tty.page,
				Logger:       a.log,
			})
			if err := s.Say(input); err != nil {
				return err
			}
			if err := s.Run(ctx); err != nil {
				return err
			}
			fmt.Fprintln(tty.w)
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "直接给出要说的文本")
	return cmd
}

// typedOutput 把当前页已显示的前缀增量写到终端。
type typedOutput struct {
	w       io.Writer
	view    *textview.View
	printed int
}

func (t *typedOutput) page(n int) {
	if n > 1 {
		fmt.Fprint(t.w, "\n\n")
	}
	t.printed = 0
	t.frame(n)
}

func (t *typedOutput) frame(n int) {
	shown := visiblePrefix(t.view, n)
	if len(shown) > t.printed {
		fmt.Fprint(t.w, shown[t.printed:])
		t.printed = len(shown)
	}
}

// visiblePrefix 返回第 n 页从开头到第一个隐藏字形之前的文本，行之间以换行分隔。
func visiblePrefix(v *textview.View, n int) string {
	page := v.Result().Page(n)
	if page == nil {
		return ""
	}
	var b strings.Builder
	for i, line := range page.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, w := range line.Words {
			for _, g := range w.Glyphs {
				if !g.Visible() {
					return b.String()
				}
				if g.Kind() != glyph.LineBreak {
					b.WriteString(string(g.Text()))
				}
			}
		}
	}
	return b.String()
}
