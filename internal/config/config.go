package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/livp123/elapsedlog/internal/schedule"
	"github.com/livp123/elapsedlog/internal/utils/fileutil"
	"github.com/livp123/elapsedlog/internal/utils/logger"
	apperrors "github.com/livp123/elapsedlog/pkg/errors"
)

// Config is the complete configuration of a run.
// Config 是一次运行的完整配置。
type Config struct {
	Schedule ScheduleConfig       `yaml:"schedule"`
	Logging  logger.LoggingConfig `yaml:"logging"`
	Metrics  MetricsConfig        `yaml:"metrics"`
}

// ScheduleConfig controls the wake-up loop and the timed operation.
// ScheduleConfig 控制唤醒循环与计时操作。
type ScheduleConfig struct {
	Iterations int `yaml:"iterations"`
	// Iterations: 循环次数
	Interval time.Duration `yaml:"interval"`
	// Interval: 第 i 次唤醒目标为 start + i*Interval
	WorkDuration time.Duration `yaml:"work_duration"`
	// WorkDuration: 模拟处理耗时
	OperationName string `yaml:"operation_name"`
	// OperationName: 日志中显示的操作名称
}

// MetricsConfig controls the Prometheus endpoint.
// MetricsConfig 控制 Prometheus 指标端点。
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// DefaultConfig returns the configuration used when no file, env or flag overrides anything.
// DefaultConfig 返回没有任何覆盖时使用的默认配置。
func DefaultConfig() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			Iterations:    DefaultIterations,
			Interval:      DefaultInterval,
			WorkDuration:  DefaultWorkDuration,
			OperationName: DefaultOperationName,
		},
		Logging: logger.LoggingConfig{
			ConsoleLevel: DefaultConsoleLevel,
			FileLevel:    DefaultFileLevel,
			Path:         DefaultLogPath,
			Truncate:     true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  DefaultMetricsListen,
		},
	}
}

// Load reads the YAML file at path on top of the defaults.
// A missing file yields the defaults unless required is set.
// Load 在默认值之上读取 YAML 配置文件；文件不存在时返回默认值，除非 required 为 true。
func Load(path string, required bool) (*Config, error) {
	cfg := DefaultConfig()

	safePath := filepath.Clean(path) // Sanitize path to prevent directory traversal
	data, err := os.ReadFile(safePath) // #nosec G304 // path is sanitized with filepath.Clean
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if required {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrConfigNotFound, safePath)
			}
			return cfg, nil
		}
		return nil, apperrors.NewFileError(safePath, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.NewConfigError("yaml", err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, atomically.
// Save 以原子方式将配置写入 YAML 文件。
func Save(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidFilePath, path)
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return fileutil.AtomicWriteFile(filepath.Clean(path), data, 0644)
}

// Marshal renders cfg as YAML with two-space indentation.
// Marshal 将配置渲染为两空格缩进的 YAML。
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks value ranges and level names.
// Validate 检查取值范围与级别名称。
func (c *Config) Validate() error {
	if c.Schedule.Iterations < 0 {
		return apperrors.NewConfigError("schedule.iterations", c.Schedule.Iterations)
	}
	if c.Schedule.Interval < 0 {
		return apperrors.NewConfigError("schedule.interval", c.Schedule.Interval)
	}
	if c.Schedule.WorkDuration < 0 {
		return apperrors.NewConfigError("schedule.work_duration", c.Schedule.WorkDuration)
	}
	if err := schedule.CheckName(c.Schedule.OperationName); err != nil {
		return apperrors.NewConfigError("schedule.operation_name", fmt.Sprintf("%q (%v)", c.Schedule.OperationName, err))
	}
	if _, err := logger.ParseLevel(c.Logging.ConsoleLevel); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.Logging.FileLevel); err != nil {
		return err
	}
	if c.Metrics.Enabled && c.Metrics.Listen == "" {
		return apperrors.NewConfigError("metrics.listen", `""`)
	}
	return nil
}
