package report

import (
	"fmt"
	"time"
)

// formatAccuracy returns a percentage string for report output.
func formatAccuracy(percent float64) string {
	return fmt.Sprintf("%.1f%%", percent)
}

// formatTimestamp renders a time for display, empty for the zero value.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
