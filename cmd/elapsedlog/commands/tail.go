package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/livp123/elapsedlog/internal/config"
	"github.com/livp123/elapsedlog/internal/logview"
)

func newTailCmd() *cobra.Command {
	var (
		follow  bool
		newOnly bool
		filter  string
	)

	cmd := &cobra.Command{
		Use:   "tail [file]",
		Short: "Print log lines, optionally following the file and filtering by expression",
		// Short: 打印日志行，可跟踪文件并按表达式过滤
		Long: `Print the lines of an elapsedlog log file.

The --filter expression is evaluated against each line with these variables:
  Level    string     (DEBUG, INFO, WARN, ERROR)
  Message  string
  Elapsed  float      seconds since start
  Time     time.Time  wall-clock timestamp

Examples:
  elapsedlog tail --filter 'Level == "INFO" && Elapsed > 10'
  elapsedlog tail -f --filter 'Message contains "execution time"'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultLogPath
			if len(args) == 1 {
				path = args[0]
			}

			f, err := logview.CompileFilter(filter)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			opts := logview.ReadOptions{Follow: follow, FromEnd: newOnly, Filter: f}
			return logview.Read(ctx, path, opts, func(e logview.Entry, err error) error {
				// Lines that do not parse cannot be filtered; show them only without a filter
				// 无法解析的行不能被过滤，仅在没有过滤条件时显示
				if err != nil && f.String() != "" {
					return nil
				}
				_, werr := fmt.Fprintln(out, e.Raw)
				return werr
			})
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep reading as the file grows")
	cmd.Flags().BoolVar(&newOnly, "new-only", false, "With --follow, start at the end of the file")
	cmd.Flags().StringVar(&filter, "filter", "", "Boolean expression selecting lines")
	return cmd
}
