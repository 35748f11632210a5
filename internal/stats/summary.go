// Package stats summarizes recorded operation durations.
// Package stats 汇总记录的操作耗时。
package stats

import (
	"time"

	"go.uber.org/zap"

	"github.com/livp123/elapsedlog/internal/utils/fmtutil"
	apperrors "github.com/livp123/elapsedlog/pkg/errors"
)

// Summary is the aggregate of a non-empty set of durations.
// Summary 是非空耗时集合的汇总结果。
type Summary struct {
	Count   int
	Total   time.Duration
	Average time.Duration
	Max     time.Duration
	Min     time.Duration
}

// AverageSeconds is the arithmetic mean in seconds, computed without rounding.
func (s Summary) AverageSeconds() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Total.Seconds() / float64(s.Count)
}

// Summarize computes mean, max and min of durations.
// ok is false for an empty input.
// Summarize 计算耗时的平均值、最大值与最小值；输入为空时 ok 为 false。
func Summarize(durations []time.Duration) (summary Summary, ok bool) {
	if len(durations) == 0 {
		return Summary{}, false
	}

	summary.Count = len(durations)
	summary.Max = durations[0]
	summary.Min = durations[0]
	for _, d := range durations {
		summary.Total += d
		if d > summary.Max {
			summary.Max = d
		}
		if d < summary.Min {
			summary.Min = d
		}
	}
	summary.Average = summary.Total / time.Duration(summary.Count)
	return summary, true
}

// Report logs the average and maximum of durations under name at INFO.
// Nothing is logged for an empty input, which is reported as ErrNoSamples.
// Report 以 INFO 级别记录平均与最大耗时；输入为空时不记录并返回 ErrNoSamples。
func Report(log *zap.SugaredLogger, name string, durations []time.Duration) (Summary, error) {
	summary, ok := Summarize(durations)
	if !ok {
		return Summary{}, apperrors.ErrNoSamples
	}
	log.Infof("%s average execution time: %s s", name, fmtutil.FormatSeconds(summary.Average))
	log.Infof("%s maximum execution time: %s s", name, fmtutil.FormatSeconds(summary.Max))
	return summary, nil
}
