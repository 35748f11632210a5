package app

import (
	"context"
	"time"

	"go.uber.org/zap/zapcore"
	"k8s.io/utils/clock"

	"github.com/livp123/elapsedlog/internal/config"
	"github.com/livp123/elapsedlog/internal/metrics"
	"github.com/livp123/elapsedlog/internal/runtime"
	"github.com/livp123/elapsedlog/internal/schedule"
	"github.com/livp123/elapsedlog/internal/stats"
	"github.com/livp123/elapsedlog/internal/utils/logger"
)

const shutdownTimeout = 5 * time.Second

// Result is the outcome of one run.
// Result 是一次运行的结果。
type Result struct {
	Record  schedule.Record
	Summary stats.Summary
	// Summarized is false when no duration was recorded.
	Summarized bool
}

// Options carries the process-level inputs of Execute.
// Options 包含 Execute 的进程级输入。
type Options struct {
	// Start is the process start; defaults to Clock.Now().
	Start time.Time
	// Clock defaults to the real clock.
	Clock clock.Clock
	// Console defaults to stdout.
	Console zapcore.WriteSyncer
	// Work replaces the simulated work when set.
	Work schedule.Work
}

/**
 * Execute builds the logger, session and optional metrics server from cfg, then runs.
 * Execute 根据配置构建日志记录器、会话与可选的指标服务，然后执行运行。
 */
func Execute(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Start.IsZero() {
		opts.Start = opts.Clock.Now()
	}

	log, closeLog, err := logger.New(cfg.Logging, logger.Options{
		Start:   opts.Start,
		Clock:   opts.Clock,
		Console: opts.Console,
	})
	if err != nil {
		return nil, err
	}
	defer closeLog()

	collector := metrics.NewCollector()
	if cfg.Metrics.Enabled {
		srv, err := metrics.Start(cfg.Metrics.Listen, collector.Registry, log)
		if err != nil {
			return nil, err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warnf("Metrics server shutdown: %v", err)
			}
		}()
	}

	session := runtime.NewSession(opts.Clock, opts.Start, log, collector)
	return Run(ctx, session, cfg.Schedule, opts.Work)
}

/**
 * Run announces the start, drives the loop and reports the summary.
 * The summary covers whatever was recorded, also when the loop stopped early.
 * Run 记录启动信息、驱动循环并输出汇总；循环提前结束时汇总已记录的部分。
 */
func Run(ctx context.Context, s *runtime.Session, cfg config.ScheduleConfig, work schedule.Work) (*Result, error) {
	if work == nil {
		work = schedule.Dummy(s.Clock, cfg.WorkDuration)
	}

	s.Log.Info("Program started")

	loop := &schedule.Loop{
		Iterations: cfg.Iterations,
		Interval:   cfg.Interval,
		Operation:  &schedule.TimedOperation{Name: cfg.OperationName, Work: work},
	}
	record, loopErr := loop.Run(ctx, s)

	result := &Result{Record: record}
	if summary, err := stats.Report(s.Log, cfg.OperationName, record); err == nil {
		result.Summary = summary
		result.Summarized = true
	}
	return result, loopErr
}
