package runtime

import (
	"time"

	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"github.com/livp123/elapsedlog/internal/metrics"
)

// ConfigPath stores the path to the configuration file provided via CLI flags.
// ConfigPath 存储通过 CLI 标志提供的配置文件路径。
var ConfigPath string

// Session carries the state shared by every step of a run: the start
// timestamp, the clock, the logger and the metrics collector.
// Session 保存一次运行中各步骤共享的状态：起始时间、时钟、日志记录器和指标采集器。
type Session struct {
	Start   time.Time
	Clock   clock.Clock
	Log     *zap.SugaredLogger
	Metrics *metrics.Collector
}

// NewSession anchors a session at start, or at c.Now() when start is zero.
// A nil log is replaced by a no-op logger.
// NewSession 以 start 为会话起点，start 为零值时读取时钟 c；log 为 nil 时使用空日志记录器。
func NewSession(c clock.Clock, start time.Time, log *zap.SugaredLogger, m *metrics.Collector) *Session {
	if c == nil {
		c = clock.RealClock{}
	}
	if start.IsZero() {
		start = c.Now()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Session{
		Start:   start,
		Clock:   c,
		Log:     log,
		Metrics: m,
	}
}

// Elapsed returns the time since the session started.
// Elapsed 返回会话开始以来经过的时间。
func (s *Session) Elapsed() time.Duration {
	return s.Clock.Since(s.Start)
}
