// Package fmtutil provides formatting utilities for human-readable output.
// Package fmtutil 提供用于人类可读输出的格式化工具。
package fmtutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/livp123/elapsedlog/pkg/errors"
)

// FormatElapsed renders d as HH:MM:SS.mmm, rounded to the nearest millisecond.
// Negative durations render as zero. Hours widen past two digits.
// FormatElapsed 将 d 格式化为 HH:MM:SS.mmm（四舍五入到毫秒），负值按零处理。
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Round(time.Millisecond).Milliseconds()

	hours := ms / 3600000
	ms %= 3600000
	minutes := ms / 60000
	ms %= 60000
	seconds := ms / 1000
	ms %= 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, ms)
}

// ParseElapsed is the inverse of FormatElapsed.
// ParseElapsed 是 FormatElapsed 的逆操作。
func ParseElapsed(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, apperrors.NewDurationError(s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, apperrors.NewDurationError(s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, apperrors.NewDurationError(s)
	}
	secParts := strings.Split(parts[2], ".")
	if len(secParts) != 2 || len(secParts[1]) != 3 {
		return 0, apperrors.NewDurationError(s)
	}
	seconds, err := strconv.Atoi(secParts[0])
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, apperrors.NewDurationError(s)
	}
	millis, err := strconv.Atoi(secParts[1])
	if err != nil || millis < 0 {
		return 0, apperrors.NewDurationError(s)
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

// FormatSeconds formats a duration as seconds with three decimals, e.g. "1.002".
// FormatSeconds 将持续时间格式化为保留三位小数的秒数。
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}

// FormatDuration formats a duration to human readable format.
// FormatDuration 将持续时间格式化为可读格式。
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.String()
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}

	return strings.Join(parts, " ")
}
