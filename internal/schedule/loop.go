package schedule

import (
	"context"
	"time"

	"k8s.io/utils/clock"

	"github.com/livp123/elapsedlog/internal/runtime"
	"github.com/livp123/elapsedlog/internal/utils/fmtutil"
	apperrors "github.com/livp123/elapsedlog/pkg/errors"
)

// Record is the ordered list of operation durations, one per iteration.
// Record 是按迭代顺序记录的操作耗时列表。
type Record []time.Duration

// Loop wakes at start + i*Interval for i in [0, Iterations) and runs Operation.
// A wake-up that is already due is skipped, never caught up.
// Loop 在 start + i*Interval 时刻唤醒并执行 Operation；已过期的唤醒直接跳过，不追赶。
type Loop struct {
	Iterations int
	Interval   time.Duration
	Operation  *TimedOperation
}

// SleepDuration returns how long iteration i has to wait at now.
// A non-positive result means the iteration is due or late.
// SleepDuration 返回第 i 次迭代在 now 时刻需要等待的时间，非正值表示已到期或已迟到。
func SleepDuration(start, now time.Time, i int, interval time.Duration) time.Duration {
	target := start.Add(time.Duration(i) * interval)
	return target.Sub(now)
}

// Run executes all iterations and returns the record.
// On cancellation or operation failure the partial record is returned with the error.
// Run 执行所有迭代并返回记录；取消或操作失败时返回部分记录与错误。
func (l *Loop) Run(ctx context.Context, s *runtime.Session) (Record, error) {
	record := make(Record, 0, l.Iterations)

	for i := 0; i < l.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return record, apperrors.NewCanceledError(i, err)
		}
		s.Log.Debugf("Loop counter: %d", i)

		sleep := SleepDuration(s.Start, s.Clock.Now(), i, l.Interval)
		s.Log.Debugf("Computed sleep duration: %s s", fmtutil.FormatSeconds(sleep))

		if sleep > 0 {
			s.Log.Infof("Iteration %d sleep duration: %s s", i, fmtutil.FormatSeconds(sleep))
			if err := Sleep(ctx, s.Clock, sleep); err != nil {
				return record, apperrors.NewCanceledError(i, err)
			}
			s.Metrics.Slept(sleep)
		} else {
			s.Log.Debug("Sleep duration is not positive, skipping")
			s.Metrics.Skipped()
		}

		d, err := l.Operation.Run(ctx, s)
		record = append(record, d)
		s.Metrics.IterationDone()
		if err != nil {
			return record, err
		}
	}

	return record, nil
}

// Sleep blocks for d on c. A context that can be canceled interrupts the wait.
// Sleep 在时钟 c 上阻塞 d；可取消的 context 会中断等待。
func Sleep(ctx context.Context, c clock.Clock, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	if ctx.Done() == nil {
		c.Sleep(d)
		return nil
	}

	t := c.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C():
		return nil
	}
}
