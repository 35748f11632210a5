package logview

import (
	"context"
	"errors"
	"io"

	"github.com/nxadm/tail"
)

// ReadOptions controls Read.
// ReadOptions 控制 Read 的行为。
type ReadOptions struct {
	// Follow keeps reading as the file grows and reopens it after rotation.
	Follow bool
	// FromEnd starts at the current end of the file (only with Follow).
	FromEnd bool
	// Filter drops non-matching entries; nil keeps all.
	Filter *Filter
}

// Handler receives every matching entry. Lines that do not parse are passed
// with err set so callers can decide whether to skip them.
type Handler func(e Entry, err error) error

// Read streams the entries of path to fn until EOF (or, with Follow, until ctx is done).
// Read 将 path 中的日志条目逐条交给 fn，直到文件结束（Follow 模式下直到 ctx 结束）。
func Read(ctx context.Context, path string, opts ReadOptions, fn Handler) error {
	cfg := tail.Config{
		Follow:    opts.Follow,
		ReOpen:    opts.Follow, // Handle log rotation
		MustExist: !opts.Follow,
		Poll:      true, // Fallback if inotify fails
		Logger:    tail.DiscardingLogger,
	}
	if opts.Follow && opts.FromEnd {
		cfg.Location = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	}

	t, err := tail.TailFile(path, cfg)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return stop(t)
		case line, ok := <-t.Lines:
			if !ok {
				// Lines closes before the tailer is marked dead
				return t.Wait()
			}
			if line.Err != nil {
				if err := fn(Entry{Raw: line.Text}, line.Err); err != nil {
					return errors.Join(err, stop(t))
				}
				continue
			}
			if line.Text == "" {
				continue
			}

			entry, parseErr := Parse(line.Text)
			if parseErr == nil {
				matched, err := opts.Filter.Match(entry)
				if err != nil {
					return errors.Join(err, stop(t))
				}
				if !matched {
					continue
				}
			} else {
				entry.Raw = line.Text
			}
			if err := fn(entry, parseErr); err != nil {
				return errors.Join(err, stop(t))
			}
		}
	}
}

// ReadAll parses every line of a finished log file.
// Lines that do not parse are skipped.
// ReadAll 解析已结束日志文件的所有行，跳过无法解析的行。
func ReadAll(path string, filter *Filter) ([]Entry, error) {
	var entries []Entry
	err := Read(context.Background(), path, ReadOptions{Filter: filter}, func(e Entry, err error) error {
		if err == nil {
			entries = append(entries, e)
		}
		return nil
	})
	return entries, err
}

// stop kills the tailer, draining Lines so a pending send cannot block it,
// and returns the error the tailer died with.
func stop(t *tail.Tail) error {
	go func() {
		for range t.Lines {
		}
	}()
	return t.Stop()
}
