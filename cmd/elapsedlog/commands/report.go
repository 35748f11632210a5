package commands

import (
	"github.com/spf13/cobra"

	"github.com/livp123/elapsedlog/internal/config"
	"github.com/livp123/elapsedlog/internal/logview"
)

func newReportCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Summarize a finished log file",
		// Short: 汇总已结束的日志文件
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
			entries, err := logview.ReadAll(path, f)
			if err != nil {
				return err
			}
			logview.BuildReport(entries).Render(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Only include lines matching this expression")
	return cmd
}
