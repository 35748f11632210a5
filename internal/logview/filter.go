package logview

import (
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	apperrors "github.com/livp123/elapsedlog/pkg/errors"
)

// Env is the environment a filter expression is evaluated against.
// Example: `Level == "INFO" && Elapsed > 10 && Message contains "sleep"`.
type Env struct {
	Level   string
	Message string
	// Elapsed is in seconds.
	Elapsed float64
	Time    time.Time
}

// Filter is a compiled boolean expression over Env.
// Filter 是基于 Env 编译后的布尔表达式。
type Filter struct {
	source  string
	program *vm.Program
}

// CompileFilter compiles source. An empty source matches everything.
// CompileFilter 编译表达式；空表达式匹配所有日志。
func CompileFilter(source string) (*Filter, error) {
	if source == "" {
		return &Filter{}, nil
	}
	program, err := expr.Compile(source, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, apperrors.NewExpressionError(source, err)
	}
	return &Filter{source: source, program: program}, nil
}

// Match reports whether e satisfies the filter.
// Match 判断日志条目是否满足过滤条件。
func (f *Filter) Match(e Entry) (bool, error) {
	if f == nil || f.program == nil {
		return true, nil
	}
	out, err := expr.Run(f.program, Env{
		Level:   e.Level,
		Message: e.Message,
		Elapsed: e.Elapsed.Seconds(),
		Time:    e.Time,
	})
	if err != nil {
		return false, apperrors.NewExpressionError(f.source, err)
	}
	matched, _ := out.(bool)
	return matched, nil
}

// String returns the expression source.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.source
}
