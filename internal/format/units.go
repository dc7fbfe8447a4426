// Package format renders durations, byte counts and rates for human
// consumption on stderr.
package format

import (
	"fmt"
	"time"
)

// FormatDuration renders d with a unit suited to its magnitude. Sub-second
// values keep one decimal of milliseconds so that trials near the
// calibration target remain distinguishable.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// FormatBytes renders a byte count with a decimal (SI) unit, matching the
// 1000-based kilobytes of the summary line.
func FormatBytes(b uint64) string {
	const unit = 1000
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit && exp < 4; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(b)/float64(div), "kMGTP"[exp])
}

// FormatRate renders a per-second rate given in millions (MFLOP/s, MB/s),
// switching to the giga prefix above 10^4.
func FormatRate(mega float64, unit string) string {
	if mega >= 10000 {
		return fmt.Sprintf("%.2f G%s/s", mega/1000, unit)
	}
	return fmt.Sprintf("%.2f M%s/s", mega, unit)
}
