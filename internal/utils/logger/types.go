package logger

// LoggingConfig defines the configuration for logging.
// LoggingConfig 定义日志配置。
type LoggingConfig struct {
	ConsoleLevel string `yaml:"console_level"`
	// ConsoleLevel: 控制台最低日志级别（debug, info, warn, error）
	FileLevel string `yaml:"file_level"`
	// FileLevel: 文件最低日志级别
	Path string `yaml:"path"`
	// Path: 日志文件路径
	Truncate bool `yaml:"truncate"`
	// Truncate: 启动时是否清空旧日志文件
	MaxSize int `yaml:"max_size"`
	// MaxSize: 轮转前的最大大小（MB），0 表示使用 lumberjack 默认值
	MaxBackups int `yaml:"max_backups"`
	// MaxBackups: 保留的旧文件最大数量
	MaxAge int `yaml:"max_age"`
	// MaxAge: 保留旧文件的最大天数
	Compress bool `yaml:"compress"`
	// Compress: 是否压缩旧文件
}
