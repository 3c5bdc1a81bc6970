// Package cli wires the engine into the lively command line tool.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ByLCY/lively/config"
	"github.com/ByLCY/lively/logging"
)

// app 保存命令之间共享的全局参数与初始化结果。
type app struct {
	cfgFile   string
	logLevel  string
	data      string
	dataFile  string
	plainData bool

	cfg *config.Config
	log *zap.Logger
}

// newRootCmd 每次返回一棵新的命令树，便于测试隔离。
func newRootCmd() (*cobra.Command, *app) {
	a := &app{log: zap.NewNop()}
	root := &cobra.Command{
		Use:           "lively",
		Short:         "Lay out, paginate and animate rich text glyphs.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "配置文件路径（YAML）")
	flags.StringVar(&a.logLevel, "log-level", "", "覆盖 logger.level")
	flags.StringVar(&a.data, "data", "", "绑定到文本 ${...} 占位符的 JSON 数据")
	flags.StringVar(&a.dataFile, "data-file", "", "绑定数据文件（JSON 或 YAML）")
	flags.BoolVar(&a.plainData, "plain-data", false, "绑定值中的 '<' 会被去掉，数据不能引入标签")

	root.AddCommand(
		newRenderCmd(a),
		newInspectCmd(a),
		newSpeakCmd(a),
		newConfigCmd(a),
	)
	return root, a
}

func (a *app) init() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	if a.logLevel != "" {
		cfg.Logger.Level = a.logLevel
	}
	a.cfg = cfg
	a.log = logging.NewStderr(cfg.Logger)
	a.log.Debug("configuration loaded", zap.String("file", a.cfgFile))
	return nil
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	root, _ := newRootCmd()
	return root.ExecuteContext(ctx)
}

// Main is the process entry point.
func Main() {
	if err := Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
