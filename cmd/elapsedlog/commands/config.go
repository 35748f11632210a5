package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/livp123/elapsedlog/internal/config"
	"github.com/livp123/elapsedlog/internal/runtime"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		// Short: 管理配置文件
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		// Short: 写入默认配置
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := runtime.ConfigPath
			if len(args) == 1 {
				path = args[0]
			}
			cm := config.NewConfigManager(path)
			if _, err := os.Stat(cm.GetConfigPath()); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", cm.GetConfigPath())
			}
			if err := cm.UpdateConfig(config.DefaultConfig()); err != nil {
				return err
			}
			if err := cm.SaveConfig(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", cm.GetConfigPath())
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (file and environment applied)",
		// Short: 打印生效的配置（已应用配置文件与环境变量）
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm := config.NewConfigManager(runtime.ConfigPath)
			if err := cm.LoadConfig(nil); err != nil {
				return err
			}
			data, err := config.Marshal(cm.GetConfig())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
