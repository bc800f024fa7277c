package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	timestampLayout = "2006-01-02 15:04"
	sizeStep        = 1024
)

var sizeUnits = []string{"b", "kb", "mb", "gb", "tb", "pb"}

// FormatFileSize renders a byte length for the status row, e.g. "512b",
// "1.5kb" or "10mb". Negative sizes render as "0b".
func FormatFileSize(bytes int64) string {
	if bytes < 0 {
		return "0b"
	}
	if bytes < sizeStep {
		return fmt.Sprintf("%db", bytes)
	}
	value := float64(bytes)
	unitIndex := 0
	for value >= sizeStep && unitIndex < len(sizeUnits)-1 {
		value /= sizeStep
		unitIndex++
	}
	if value >= 10 {
		return fmt.Sprintf("%.0f%s", value, sizeUnits[unitIndex])
	}
	return strings.TrimSuffix(fmt.Sprintf("%.1f", value), ".0") + sizeUnits[unitIndex]
}

// FormatTimestamp renders a modification time in the local zone. The zero
// time renders as an empty string.
func FormatTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Local().Format(timestampLayout)
}
