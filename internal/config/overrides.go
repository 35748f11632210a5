package config

import (
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	apperrors "github.com/livp123/elapsedlog/pkg/errors"
)

// RegisterFlags defines the override flags on fs, defaulting to DefaultConfig.
// RegisterFlags 在 fs 上定义覆盖标志，默认值取自 DefaultConfig。
func RegisterFlags(fs *pflag.FlagSet) {
	def := DefaultConfig()
	fs.Int(FlagIterations, def.Schedule.Iterations, "Number of loop iterations")
	fs.Duration(FlagInterval, def.Schedule.Interval, "Offset between scheduled wake-ups, measured from process start")
	fs.Duration(FlagWorkDuration, def.Schedule.WorkDuration, "Duration of the simulated work in each iteration")
	fs.String(FlagLogFile, def.Logging.Path, "Log file written by the file sink")
	fs.String(FlagConsoleLevel, def.Logging.ConsoleLevel, "Minimum level printed to stdout")
	fs.String(FlagFileLevel, def.Logging.FileLevel, "Minimum level written to the log file")
	fs.String(FlagMetricsAddr, "", "Serve Prometheus metrics on this address (e.g. :9109)")
}

// NewOverrides returns a viper instance reading ELAPSEDLOG_* variables and the changed flags of fs.
// NewOverrides 返回读取 ELAPSEDLOG_* 环境变量和已修改标志的 viper 实例。
func NewOverrides(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// ApplyOverrides copies every key set in v onto cfg. Flags win over env.
// A value that does not parse is an error, never a silent zero.
// ApplyOverrides 将 v 中已设置的键复制到 cfg，标志优先于环境变量；无法解析的值返回错误。
func ApplyOverrides(cfg *Config, v *viper.Viper) error {
	if v.IsSet(FlagIterations) {
		raw := v.Get(FlagIterations)
		n, err := cast.ToIntE(raw)
		if err != nil {
			return apperrors.NewConfigError(FlagIterations, raw)
		}
		cfg.Schedule.Iterations = n
	}
	if v.IsSet(FlagInterval) {
		d, err := overrideDuration(v, FlagInterval)
		if err != nil {
			return err
		}
		cfg.Schedule.Interval = d
	}
	if v.IsSet(FlagWorkDuration) {
		d, err := overrideDuration(v, FlagWorkDuration)
		if err != nil {
			return err
		}
		cfg.Schedule.WorkDuration = d
	}
	if v.IsSet(FlagLogFile) {
		cfg.Logging.Path = v.GetString(FlagLogFile)
	}
	if v.IsSet(FlagConsoleLevel) {
		cfg.Logging.ConsoleLevel = v.GetString(FlagConsoleLevel)
	}
	if v.IsSet(FlagFileLevel) {
		cfg.Logging.FileLevel = v.GetString(FlagFileLevel)
	}
	if addr := v.GetString(FlagMetricsAddr); v.IsSet(FlagMetricsAddr) && addr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Listen = addr
	}
	return nil
}

// overrideDuration reads key as a duration. Strings need a unit ("5s"), a bare "5" is rejected.
// overrideDuration 将 key 读取为时长；字符串必须带单位，如 "5s"。
func overrideDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.Get(key)
	if s, ok := raw.(string); ok {
		d, err := time.ParseDuration(strings.TrimSpace(s))
		if err != nil {
			return 0, apperrors.NewConfigError(key, raw)
		}
		return d, nil
	}
	d, err := cast.ToDurationE(raw)
	if err != nil {
		return 0, apperrors.NewConfigError(key, raw)
	}
	return d, nil
}
