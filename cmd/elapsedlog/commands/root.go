package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/livp123/elapsedlog/internal/config"
	"github.com/livp123/elapsedlog/internal/runtime"
)

// processStart anchors the elapsed column and the wake-up schedule.
// processStart 是经过时间列与唤醒计划的起点。
var processStart = time.Now()

// NewRootCmd builds the command tree. Running the root command without a
// subcommand performs a run, same as "elapsedlog run".
// NewRootCmd 构建命令树；不带子命令运行根命令等同于 "elapsedlog run"。
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "elapsedlog",
		Short: "Log with elapsed time since start while running a timed operation on a fixed schedule",
		// Short: 在固定计划上运行计时操作，并在日志中记录自启动以来的经过时间
		Long: `elapsedlog logs every line with the time elapsed since the process started.
It wakes at fixed offsets from the start, times an operation on each wake-up
and reports the average and maximum durations at the end.
elapsedlog 在每行日志中记录自进程启动以来的经过时间。
它在相对启动时刻的固定偏移处唤醒，对每次操作计时，并在结束时报告平均与最大耗时。`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDemo,
	}

	// Config file path
	// 配置文件路径
	rootCmd.PersistentFlags().StringVarP(&runtime.ConfigPath, "config", "c", "", fmt.Sprintf("Path to configuration file (default: %s, optional)", config.DefaultConfigPath))
	config.RegisterFlags(rootCmd.Flags())

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTailCmd())
	rootCmd.AddCommand(newReportCmd())

	rootCmd.CompletionOptions.DisableDescriptions = true
	return rootCmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
