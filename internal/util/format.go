package util

import (
	"fmt"

	"github.com/penwyp/go-project-clock/internal/core/constants"
)

// NoDataText is shown for projects that have never been tracked.
const NoDataText = "No data"

// FormatDuration renders whole seconds as "{h}h {m}m {s}s" without padding
// and without dropping zero components.
func FormatDuration(totalSeconds uint64) string {
	hours := totalSeconds / constants.SecondsPerHour
	minutes := (totalSeconds % constants.SecondsPerHour) / constants.SecondsPerMinute
	seconds := totalSeconds % constants.SecondsPerMinute
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}

// FormatMillis floors milliseconds to seconds and formats them.
func FormatMillis(ms uint64) string {
	return FormatDuration(ms / constants.MillisPerSecond)
}

// FormatDisplayText builds the status text for a project. ok=false means the
// project has no record.
func FormatDisplayText(icon string, totalSeconds uint64, ok bool) string {
	if !ok {
		return fmt.Sprintf("%s %s", icon, NoDataText)
	}
	return fmt.Sprintf("%s %s", icon, FormatDuration(totalSeconds))
}
