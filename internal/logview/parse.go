// Package logview reads, filters and follows elapsed-time log files.
// Package logview 读取、过滤与跟踪经过时间日志文件。
package logview

import (
	"strings"
	"time"

	"github.com/livp123/elapsedlog/internal/utils/fmtutil"
	"github.com/livp123/elapsedlog/internal/utils/logger"
	apperrors "github.com/livp123/elapsedlog/pkg/errors"
)

// Entry is one parsed log line.
// Entry 是解析后的一行日志。
type Entry struct {
	Time    time.Time
	Elapsed time.Duration
	Level   string
	Message string
	Raw     string
}

// Parse splits "timestamp,HH:MM:SS.mmm,LEVEL,message".
// The timestamp itself contains one comma; the message may contain more.
// Parse 解析 "时间戳,经过时间,级别,消息"；时间戳本身包含一个逗号，消息中可能包含更多逗号。
func Parse(line string) (Entry, error) {
	line = strings.TrimRight(line, "\r\n")
	parts := strings.SplitN(line, logger.FieldSeparator, 5)
	if len(parts) < 5 {
		return Entry{}, apperrors.NewLogLineError(line, "too few fields")
	}

	ts, err := time.ParseInLocation(logger.TimestampLayout, parts[0]+logger.FieldSeparator+parts[1], time.Local)
	if err != nil {
		return Entry{}, apperrors.NewLogLineError(line, "bad timestamp")
	}
	elapsed, err := fmtutil.ParseElapsed(parts[2])
	if err != nil {
		return Entry{}, apperrors.NewLogLineError(line, "bad elapsed time")
	}
	if parts[3] == "" {
		return Entry{}, apperrors.NewLogLineError(line, "missing level")
	}

	return Entry{
		Time:    ts,
		Elapsed: elapsed,
		Level:   parts[3],
		Message: parts[4],
		Raw:     line,
	}, nil
}
