package logger

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"k8s.io/utils/clock"

	"github.com/livp123/elapsedlog/internal/utils/fileutil"
	apperrors "github.com/livp123/elapsedlog/pkg/errors"
)

// Options carries the runtime inputs of a logger that are not part of the configuration.
// Options 包含不属于配置的日志运行时参数。
type Options struct {
	// Start is the reference point of the elapsed column.
	Start time.Time
	// Clock stamps every entry; defaults to the real clock.
	Clock clock.PassiveClock
	// Console receives the console sink output; defaults to stdout.
	Console zapcore.WriteSyncer
}

// ParseLevel converts a level name such as "debug" or "INFO" into a zap level.
// ParseLevel 将级别名称转换为 zap 级别。
func ParseLevel(name string) (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel, apperrors.NewLevelError(name)
	}
	return level, nil
}

// New builds a logger with two sinks sharing the elapsed-time encoder:
// the console at cfg.ConsoleLevel and the file at cfg.FileLevel.
// The returned close function flushes and releases the file.
// New 构建包含控制台与文件两个输出的日志记录器，两者共享经过时间编码器。
func New(cfg LoggingConfig, opts Options) (*zap.SugaredLogger, func() error, error) {
	consoleLevel, err := ParseLevel(cfg.ConsoleLevel)
	if err != nil {
		return nil, nil, err
	}
	fileLevel, err := ParseLevel(cfg.FileLevel)
	if err != nil {
		return nil, nil, err
	}

	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Start.IsZero() {
		opts.Start = opts.Clock.Now()
	}
	if opts.Console == nil {
		opts.Console = zapcore.Lock(zapcore.AddSync(os.Stdout))
	}

	encoder := NewElapsedEncoder(opts.Start)
	cores := []zapcore.Core{
		zapcore.NewCore(encoder, opts.Console, consoleLevel),
	}

	var rotator *lumberjack.Logger
	if cfg.Path != "" {
		path := filepath.Clean(cfg.Path)
		// Open (and truncate) up front so an unusable path fails the run immediately
		// 提前打开（并清空）文件，使不可用路径立即报错
		if err := fileutil.PrepareFile(path, cfg.Truncate); err != nil {
			return nil, nil, apperrors.NewFileError(path, err)
		}
		rotator = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), fileLevel))
	}

	log := zap.New(zapcore.NewTee(cores...), zap.WithClock(zapClock{clock: opts.Clock})).Sugar()

	closeFn := func() error {
		// Sync may return error on stdout, which is expected
		// Sync 在 stdout 上可能返回错误，这是预期的
		_ = log.Sync()
		if rotator != nil {
			return rotator.Close()
		}
		return nil
	}
	return log, closeFn, nil
}
