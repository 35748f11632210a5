// Package schedule runs a timed operation on wake-ups anchored to the session start.
// Package schedule 在以会话起点为基准的时刻上运行计时操作。
package schedule

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"k8s.io/utils/clock"

	"github.com/livp123/elapsedlog/internal/runtime"
	"github.com/livp123/elapsedlog/internal/utils/fmtutil"
	apperrors "github.com/livp123/elapsedlog/pkg/errors"
)

// operationTimeFormat is the INFO line logged after each timed operation.
const operationTimeFormat = "%s execution time: %s s"

var operationTimePattern = regexp.MustCompile(`^(.+?) execution time: (-?\d+\.\d{3}) s$`)

// summaryQualifiers mark the average and maximum lines, which end like a timing line.
var summaryQualifiers = []string{" average", " maximum"}

// CheckName reports why name cannot be used as an operation name:
// its timing lines must stay on one line and must not read as summary lines.
// CheckName 检查操作名称是否可用：计时日志必须保持单行，且不能与汇总行混淆。
func CheckName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("must not be empty")
	}
	if strings.ContainsAny(name, "\r\n") {
		return errors.New("must not contain line breaks")
	}
	for _, q := range summaryQualifiers {
		if strings.HasSuffix(name, q) {
			return fmt.Errorf("must not end with %q", q)
		}
	}
	return nil
}

// Work is the unit of work measured by a TimedOperation.
// Work 是 TimedOperation 计时的工作单元。
type Work func(ctx context.Context) error

// Dummy returns work that only waits d on c.
// Dummy 返回仅在时钟 c 上等待 d 的模拟工作。
func Dummy(c clock.Clock, d time.Duration) Work {
	return func(ctx context.Context) error {
		return Sleep(ctx, c, d)
	}
}

// TimedOperation measures the wall time of Work on the session clock.
// TimedOperation 在会话时钟上测量 Work 的耗时。
type TimedOperation struct {
	Name string
	Work Work
}

// Run logs entry, runs the work, logs and returns its duration.
// The duration is returned even when the work fails.
// Run 记录开始、执行工作并记录和返回耗时；工作失败时仍返回耗时。
func (o *TimedOperation) Run(ctx context.Context, s *runtime.Session) (time.Duration, error) {
	s.Log.Debugf("%s started", o.Name)

	begin := s.Clock.Now()
	err := o.Work(ctx)
	elapsed := s.Clock.Since(begin)

	if err != nil {
		s.Log.Errorf("%s failed after %s s: %v", o.Name, fmtutil.FormatSeconds(elapsed), err)
		return elapsed, apperrors.NewOperationError(o.Name, err)
	}

	s.Log.Infof(operationTimeFormat, o.Name, fmtutil.FormatSeconds(elapsed))
	s.Metrics.ObserveOperation(elapsed)
	return elapsed, nil
}

// ParseOperationMessage extracts the operation name and duration from a
// message written by TimedOperation.Run.
// ParseOperationMessage 从 TimedOperation.Run 写出的消息中提取操作名称与耗时。
func ParseOperationMessage(msg string) (string, time.Duration, bool) {
	m := operationTimePattern.FindStringSubmatch(msg)
	if m == nil || CheckName(m[1]) != nil {
		return "", 0, false
	}
	secs, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return "", 0, false
	}
	return m[1], time.Duration(secs * float64(time.Second)).Round(time.Millisecond), true
}

// FormatOperationMessage renders the message ParseOperationMessage understands.
func FormatOperationMessage(name string, d time.Duration) string {
	return fmt.Sprintf(operationTimeFormat, name, fmtutil.FormatSeconds(d))
}
