package logger

import (
	"time"

	"go.uber.org/zap/zapcore"
	"k8s.io/utils/clock"

	"github.com/livp123/elapsedlog/internal/utils/fmtutil"
)

// TimestampLayout matches the wall-clock column of every log line, e.g. "2024-05-01 09:30:00,123".
// TimestampLayout 是日志行中时间戳列的格式。
const TimestampLayout = "2006-01-02 15:04:05,000"

// FieldSeparator separates the columns of a log line.
const FieldSeparator = ","

// NewElapsedEncoder returns an encoder producing
// "timestamp,HH:MM:SS.mmm,LEVEL,message" where the second column is the
// time elapsed since start.
// NewElapsedEncoder 返回输出 "时间戳,经过时间,级别,消息" 格式的编码器。
func NewElapsedEncoder(start time.Time) zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       elapsedTimeEncoder(start),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: FieldSeparator,
	})
}

// elapsedTimeEncoder appends two columns: the wall-clock timestamp and the elapsed time.
func elapsedTimeEncoder(start time.Time) zapcore.TimeEncoder {
	return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format(TimestampLayout))
		enc.AppendString(fmtutil.FormatElapsed(t.Sub(start)))
	}
}

// zapClock lets zap stamp entries with the session clock.
type zapClock struct {
	clock clock.PassiveClock
}

func (c zapClock) Now() time.Time {
	return c.clock.Now()
}

func (c zapClock) NewTicker(d time.Duration) *time.Ticker {
	return time.NewTicker(d)
}
