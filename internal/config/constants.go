package config

import "time"

const (
	// DefaultConfigPath is the configuration file read when no --config flag is given.
	// DefaultConfigPath 是未指定 --config 时读取的配置文件路径。
	DefaultConfigPath = "elapsedlog.yaml"

	// DefaultLogPath is the log file written by the file sink.
	// DefaultLogPath 是文件输出写入的日志文件。
	DefaultLogPath = "logfile.log"

	// EnvPrefix prefixes every environment override, e.g. ELAPSEDLOG_ITERATIONS.
	// EnvPrefix 是环境变量覆盖的前缀。
	EnvPrefix = "ELAPSEDLOG"

	DefaultIterations    = 5
	DefaultInterval      = 5 * time.Second
	DefaultWorkDuration  = time.Second
	DefaultOperationName = "some_processing"
	DefaultConsoleLevel  = "debug"
	DefaultFileLevel     = "info"
	DefaultMetricsListen = ":9109"
)

// Flag names shared by the CLI and the override layer.
// CLI 与覆盖层共享的标志名称。
const (
	FlagIterations   = "iterations"
	FlagInterval     = "interval"
	FlagWorkDuration = "work"
	FlagLogFile      = "log-file"
	FlagConsoleLevel = "console-level"
	FlagFileLevel    = "file-level"
	FlagMetricsAddr  = "metrics-addr"
)
