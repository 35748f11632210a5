package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"k8s.io/utils/clock"
	clocktesting "k8s.io/utils/clock/testing"
	"pgregory.net/rapid"

	"github.com/livp123/elapsedlog/internal/metrics"
	"github.com/livp123/elapsedlog/internal/runtime"
	apperrors "github.com/livp123/elapsedlog/pkg/errors"
)

var t0 = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func newTestSession(c clock.Clock) (*runtime.Session, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return runtime.NewSession(c, time.Time{}, zap.New(core).Sugar(), metrics.NewCollector()), logs
}

func operationSamples(t *testing.T, m *metrics.Collector) uint64 {
	t.Helper()
	families, err := m.Registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "elapsedlog_operation_duration_seconds" {
			return mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	return 0
}

// TestSleepDuration tests the wake-up arithmetic, including a late iteration
// TestSleepDuration 测试唤醒时间计算，包括迟到的迭代
func TestSleepDuration(t *testing.T) {
	assert.Equal(t, time.Duration(0), SleepDuration(t0, t0, 0, 5*time.Second))
	assert.Equal(t, 4*time.Second, SleepDuration(t0, t0.Add(time.Second), 1, 5*time.Second))
	// Iteration 2 targets T0+10s; at T0+12s it is two seconds late
	// 第 2 次迭代目标为 T0+10s，在 T0+12s 时已迟到两秒
	assert.Equal(t, -2*time.Second, SleepDuration(t0, t0.Add(12*time.Second), 2, 5*time.Second))
}

// TestLoopOnSchedule tests the default five-iteration run on a fake clock
// TestLoopOnSchedule 测试在模拟时钟上的默认五次循环
func TestLoopOnSchedule(t *testing.T) {
	fc := clocktesting.NewFakeClock(t0)
	s, logs := newTestSession(fc)

	loop := &Loop{
		Iterations: 5,
		Interval:   5 * time.Second,
		Operation:  &TimedOperation{Name: "some_processing", Work: Dummy(fc, time.Second)},
	}

	record, err := loop.Run(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, Record{time.Second, time.Second, time.Second, time.Second, time.Second}, record)
	// Last operation starts at T0+20s and takes one second
	// 最后一次操作在 T0+20s 开始，耗时一秒
	assert.Equal(t, t0.Add(21*time.Second), fc.Now())

	assert.Equal(t, 1, logs.FilterMessage("Sleep duration is not positive, skipping").Len())
	assert.Equal(t, 4, logs.FilterMessageSnippet("sleep duration: 4.000 s").FilterLevelExact(zapcore.InfoLevel).Len())
	assert.Equal(t, 5, logs.FilterMessage("some_processing execution time: 1.000 s").Len())
	assert.Equal(t, 5, logs.FilterMessage("some_processing started").FilterLevelExact(zapcore.DebugLevel).Len())

	assert.Equal(t, 5.0, testutil.ToFloat64(s.Metrics.Iterations))
	assert.Equal(t, 4.0, testutil.ToFloat64(s.Metrics.Sleeps.WithLabelValues(metrics.SleepResultSlept)))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics.Sleeps.WithLabelValues(metrics.SleepResultSkipped)))
	assert.InDelta(t, 16.0, testutil.ToFloat64(s.Metrics.SleepSeconds), 1e-9)
	assert.Equal(t, uint64(5), operationSamples(t, s.Metrics))
}

// TestLoopBehindSchedule tests that late iterations skip sleeping instead of catching up
// TestLoopBehindSchedule 测试迟到的迭代跳过睡眠而不是追赶
func TestLoopBehindSchedule(t *testing.T) {
	fc := clocktesting.NewFakeClock(t0)
	s, logs := newTestSession(fc)

	loop := &Loop{
		Iterations: 3,
		Interval:   5 * time.Second,
		Operation:  &TimedOperation{Name: "slow", Work: Dummy(fc, 7*time.Second)},
	}

	record, err := loop.Run(context.Background(), s)
	require.NoError(t, err)
	assert.Len(t, record, 3)
	assert.Equal(t, t0.Add(21*time.Second), fc.Now())
	assert.Equal(t, 3, logs.FilterMessage("Sleep duration is not positive, skipping").Len())
	assert.Equal(t, 0, logs.FilterMessageSnippet("sleep duration:").FilterLevelExact(zapcore.InfoLevel).Len())
}

// TestLoopZeroIterations tests that nothing runs for zero iterations
// TestLoopZeroIterations 测试零次迭代时不执行任何操作
func TestLoopZeroIterations(t *testing.T) {
	fc := clocktesting.NewFakeClock(t0)
	s, logs := newTestSession(fc)

	loop := &Loop{Iterations: 0, Interval: time.Second, Operation: &TimedOperation{Name: "x", Work: Dummy(fc, time.Second)}}
	record, err := loop.Run(context.Background(), s)
	require.NoError(t, err)
	assert.Empty(t, record)
	assert.Equal(t, 0, logs.Len())
}

// TestLoopOperationError tests that a failing operation stops the loop with its duration recorded
// TestLoopOperationError 测试操作失败时停止循环并记录耗时
func TestLoopOperationError(t *testing.T) {
	fc := clocktesting.NewFakeClock(t0)
	s, logs := newTestSession(fc)
	boom := errors.New("boom")

	calls := 0
	loop := &Loop{
		Iterations: 5,
		Interval:   time.Second,
		Operation: &TimedOperation{Name: "flaky", Work: func(ctx context.Context) error {
			calls++
			fc.Step(250 * time.Millisecond)
			if calls == 2 {
				return boom
			}
			return nil
		}},
	}

	record, err := loop.Run(context.Background(), s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrOperationFailed))
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, Record{250 * time.Millisecond, 250 * time.Millisecond}, record)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	assert.Equal(t, uint64(1), operationSamples(t, s.Metrics))
}

// TestLoopCanceled tests that cancellation interrupts a pending wake-up
// TestLoopCanceled 测试取消会中断等待中的唤醒
func TestLoopCanceled(t *testing.T) {
	s, _ := newTestSession(clock.RealClock{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(50*time.Millisecond, cancel)

	loop := &Loop{
		Iterations: 3,
		Interval:   10 * time.Second,
		Operation:  &TimedOperation{Name: "quick", Work: Dummy(clock.RealClock{}, time.Millisecond)},
	}

	begin := time.Now()
	record, err := loop.Run(ctx, s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrCanceled))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Len(t, record, 1)
	assert.Less(t, time.Since(begin), 5*time.Second)
}

// TestLoopAlreadyCanceled tests that a canceled context runs no iteration
// TestLoopAlreadyCanceled 测试已取消的 context 不执行任何迭代
func TestLoopAlreadyCanceled(t *testing.T) {
	fc := clocktesting.NewFakeClock(t0)
	s, _ := newTestSession(fc)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loop := &Loop{Iterations: 5, Interval: time.Second, Operation: &TimedOperation{Name: "x", Work: Dummy(fc, time.Second)}}
	record, err := loop.Run(ctx, s)
	assert.True(t, errors.Is(err, apperrors.ErrCanceled))
	assert.Empty(t, record)
}

// TestLoopScheduleProperty checks for random work durations that each operation
// starts at max(previous end, start + i*interval) and the record has one entry per iteration.
// TestLoopScheduleProperty 检查随机耗时下每次操作都在 max(上次结束, start + i*interval) 开始。
func TestLoopScheduleProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 12).Draw(rt, "iterations")
		interval := time.Duration(rapid.IntRange(0, 10000).Draw(rt, "intervalMs")) * time.Millisecond
		works := make([]time.Duration, n)
		for i := range works {
			works[i] = time.Duration(rapid.IntRange(0, 15000).Draw(rt, "workMs")) * time.Millisecond
		}

		fc := clocktesting.NewFakeClock(t0)
		core, _ := observer.New(zapcore.DebugLevel)
		s := runtime.NewSession(fc, time.Time{}, zap.New(core).Sugar(), nil)

		var starts []time.Time
		call := 0
		loop := &Loop{
			Iterations: n,
			Interval:   interval,
			Operation: &TimedOperation{Name: "op", Work: func(ctx context.Context) error {
				starts = append(starts, fc.Now())
				fc.Step(works[call])
				call++
				return nil
			}},
		}

		record, err := loop.Run(context.Background(), s)
		if err != nil {
			rt.Fatal(err)
		}
		if len(record) != n {
			rt.Fatalf("record has %d entries, want %d", len(record), n)
		}

		prevEnd := t0
		for i := 0; i < n; i++ {
			want := t0.Add(time.Duration(i) * interval)
			if prevEnd.After(want) {
				want = prevEnd
			}
			if !starts[i].Equal(want) {
				rt.Fatalf("iteration %d started at %v, want %v", i, starts[i].Sub(t0), want.Sub(t0))
			}
			if record[i] != works[i] {
				rt.Fatalf("iteration %d recorded %v, want %v", i, record[i], works[i])
			}
			prevEnd = starts[i].Add(works[i])
		}
	})
}

// TestParseOperationMessage tests round-tripping the operation INFO message
// TestParseOperationMessage 测试操作 INFO 消息的往返解析
func TestParseOperationMessage(t *testing.T) {
	msg := FormatOperationMessage("some_processing", 1002*time.Millisecond)
	assert.Equal(t, "some_processing execution time: 1.002 s", msg)

	name, d, ok := ParseOperationMessage(msg)
	require.True(t, ok)
	assert.Equal(t, "some_processing", name)
	assert.Equal(t, 1002*time.Millisecond, d)

	_, _, ok = ParseOperationMessage("Loop counter: 3")
	assert.False(t, ok)
}

// TestParseOperationMessageNames tests names with spaces and the summary lines sharing the suffix
// TestParseOperationMessageNames 测试带空格的名称以及后缀相同的汇总行
func TestParseOperationMessageNames(t *testing.T) {
	for _, name := range []string{"db query", "fetch: page 2", "a, b", "x execution time"} {
		require.NoError(t, CheckName(name))
		got, d, ok := ParseOperationMessage(FormatOperationMessage(name, 1500*time.Millisecond))
		require.True(t, ok, name)
		assert.Equal(t, name, got)
		assert.Equal(t, 1500*time.Millisecond, d)
	}

	_, _, ok := ParseOperationMessage("db query average execution time: 1.000 s")
	assert.False(t, ok)
	_, _, ok = ParseOperationMessage("db query maximum execution time: 1.000 s")
	assert.False(t, ok)
}

// TestCheckName tests the names whose timing lines could not be read back
// TestCheckName 测试无法读回计时日志的名称
func TestCheckName(t *testing.T) {
	for _, name := range []string{"", "  ", "two\nlines", "job average", "job maximum"} {
		assert.Error(t, CheckName(name), "%q", name)
	}
	assert.NoError(t, CheckName("some_processing"))
}
