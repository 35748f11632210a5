package stats

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	apperrors "github.com/livp123/elapsedlog/pkg/errors"
)

// TestSummarize tests mean and max on a fixed set
// TestSummarize 测试固定集合上的平均值与最大值
func TestSummarize(t *testing.T) {
	s, ok := Summarize([]time.Duration{
		1000 * time.Millisecond,
		1002 * time.Millisecond,
		1001 * time.Millisecond,
		1005 * time.Millisecond,
		1002 * time.Millisecond,
	})
	require.True(t, ok)
	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 1002*time.Millisecond, s.Average)
	assert.Equal(t, 1005*time.Millisecond, s.Max)
	assert.Equal(t, 1000*time.Millisecond, s.Min)
	assert.InDelta(t, 1.002, s.AverageSeconds(), 1e-9)
}

// TestSummarizeEmpty tests that an empty record has no summary
// TestSummarizeEmpty 测试空记录没有汇总结果
func TestSummarizeEmpty(t *testing.T) {
	_, ok := Summarize(nil)
	assert.False(t, ok)
	assert.Equal(t, 0.0, Summary{}.AverageSeconds())
}

// TestSummarizeProperty checks the mean and max against a direct computation
// TestSummarizeProperty 将平均值与最大值与直接计算结果对比
func TestSummarizeProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ms := rapid.SliceOfN(rapid.Int64Range(0, 60000), 1, 50).Draw(rt, "ms")
		durations := make([]time.Duration, len(ms))
		var sum float64
		var maxD time.Duration
		for i, v := range ms {
			durations[i] = time.Duration(v) * time.Millisecond
			sum += durations[i].Seconds()
			if durations[i] > maxD {
				maxD = durations[i]
			}
		}

		s, ok := Summarize(durations)
		if !ok {
			rt.Fatal("expected a summary")
		}
		if s.Max != maxD {
			rt.Errorf("Max = %v, want %v", s.Max, maxD)
		}
		mean := sum / float64(len(durations))
		if diff := s.AverageSeconds() - mean; diff > 1e-9 || diff < -1e-9 {
			rt.Errorf("AverageSeconds = %v, want %v", s.AverageSeconds(), mean)
		}
		if s.Min > s.Average || s.Average > s.Max {
			rt.Errorf("average %v outside [%v, %v]", s.Average, s.Min, s.Max)
		}
	})
}

// TestReport tests the two INFO lines and the empty case
// TestReport 测试两条 INFO 日志以及空输入的情况
func TestReport(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core).Sugar()

	s, err := Report(log, "some_processing", []time.Duration{time.Second, 2 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, s.Average)

	entries := logs.TakeAll()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "some_processing average execution time: 1.500 s", entries[0].Message)
	assert.Equal(t, "some_processing maximum execution time: 2.000 s", entries[1].Message)

	_, err = Report(log, "some_processing", nil)
	assert.True(t, errors.Is(err, apperrors.ErrNoSamples))
	assert.Equal(t, 0, logs.Len())
}
