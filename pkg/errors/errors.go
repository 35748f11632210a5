package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	ErrInvalidFilePath   = errors.New("invalid file path")
	ErrFileNotFound      = errors.New("file not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrConfigNotFound    = errors.New("config not found")
	ErrConfigInvalid     = errors.New("invalid configuration")
	ErrInvalidLevel      = errors.New("invalid log level")
	ErrInvalidDuration   = errors.New("invalid duration")
	ErrInvalidLogLine    = errors.New("invalid log line")
	ErrInvalidExpression = errors.New("invalid filter expression")
	ErrOperationFailed   = errors.New("operation failed")
	ErrNoSamples         = errors.New("no samples recorded")
	ErrCanceled          = errors.New("operation canceled")
)

// NewFileError classifies a file system failure: missing files, denied
// access, and everything else (a directory, a bad name) as an invalid path.
// NewFileError 对文件系统错误分类：文件不存在、权限不足，其余视为无效路径。
func NewFileError(path string, reason error) error {
	kind := ErrInvalidFilePath
	switch {
	case errors.Is(reason, fs.ErrNotExist):
		kind = ErrFileNotFound
	case errors.Is(reason, fs.ErrPermission):
		kind = ErrPermissionDenied
	}
	return fmt.Errorf("%w: %s: %w", kind, path, reason)
}

func NewConfigError(field string, value interface{}) error {
	return fmt.Errorf("%w: field=%s value=%v", ErrConfigInvalid, field, value)
}

func NewLevelError(level string) error {
	return fmt.Errorf("%w: %q", ErrInvalidLevel, level)
}

func NewDurationError(value string) error {
	return fmt.Errorf("%w: %q", ErrInvalidDuration, value)
}

func NewLogLineError(line string, reason string) error {
	return fmt.Errorf("%w: %s: %q", ErrInvalidLogLine, reason, line)
}

func NewExpressionError(expr string, err error) error {
	return fmt.Errorf("%w: %q: %v", ErrInvalidExpression, expr, err)
}

func NewOperationError(name string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrOperationFailed, name, err)
}

func NewCanceledError(iteration int, err error) error {
	return fmt.Errorf("%w at iteration %d: %w", ErrCanceled, iteration, err)
}
