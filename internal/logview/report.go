package logview

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/livp123/elapsedlog/internal/schedule"
	"github.com/livp123/elapsedlog/internal/stats"
	"github.com/livp123/elapsedlog/internal/utils/fmtutil"
)

// Report aggregates a finished log file.
// Report 汇总一个已结束的日志文件。
type Report struct {
	Entries    int
	Levels     map[string]int
	Span       time.Duration
	Operations map[string][]time.Duration
}

// BuildReport counts levels and collects the operation timings found in entries.
// BuildReport 统计各级别数量并收集日志中的操作耗时。
func BuildReport(entries []Entry) *Report {
	r := &Report{
		Levels:     make(map[string]int),
		Operations: make(map[string][]time.Duration),
	}
	for _, e := range entries {
		r.Entries++
		r.Levels[e.Level]++
		if e.Elapsed > r.Span {
			r.Span = e.Elapsed
		}
		if name, d, ok := schedule.ParseOperationMessage(e.Message); ok {
			r.Operations[name] = append(r.Operations[name], d)
		}
	}
	return r
}

// Render writes the level table and one table per operation to w.
// Render 将级别统计表与每个操作的耗时表写入 w。
func (r *Report) Render(w io.Writer) {
	fmt.Fprintf(w, "Entries: %d, span: %s (%s)\n", r.Entries, fmtutil.FormatElapsed(r.Span), fmtutil.FormatDuration(r.Span))

	levels := tablewriter.NewWriter(w)
	levels.Header("Level", "Count")
	for _, level := range sortedKeys(r.Levels) {
		levels.Append([]string{level, fmt.Sprintf("%d", r.Levels[level])})
	}
	levels.Render()

	for _, name := range sortedKeys(r.Operations) {
		durations := r.Operations[name]
		fmt.Fprintf(w, "\nOperation: %s\n", name)

		table := tablewriter.NewWriter(w)
		table.Header("Run", "Seconds")
		for i, d := range durations {
			table.Append([]string{fmt.Sprintf("%d", i), fmtutil.FormatSeconds(d)})
		}
		if summary, ok := stats.Summarize(durations); ok {
			table.Append([]string{"average", fmtutil.FormatSeconds(summary.Average)})
			table.Append([]string{"max", fmtutil.FormatSeconds(summary.Max)})
		}
		table.Render()
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
