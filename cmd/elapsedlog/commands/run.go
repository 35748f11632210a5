package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/livp123/elapsedlog/internal/app"
	"github.com/livp123/elapsedlog/internal/config"
	"github.com/livp123/elapsedlog/internal/runtime"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the scheduled timing loop (default command)",
		// Short: 运行定时计时循环（默认命令）
		Args: cobra.NoArgs,
		RunE: runDemo,
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func runDemo(cmd *cobra.Command, _ []string) error {
	cm := config.NewConfigManager(runtime.ConfigPath)
	if err := cm.LoadConfig(cmd.Flags()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err := app.Execute(ctx, cm.GetConfig(), app.Options{
		Start:   processStart,
		Console: zapcore.AddSync(cmd.OutOrStdout()),
	})
	return err
}
