package store

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/go-project-clock/internal/core/model"
	"github.com/penwyp/go-project-clock/internal/data/aggregator"
	"github.com/penwyp/go-project-clock/internal/util"
)

const reportTimeLayout = "2006-01-02 15:04:05"

// SanitizeName turns the last path component of key into a safe file name.
func SanitizeName(key model.ProjectKey) string {
	base := filepath.Base(filepath.Clean(strings.ReplaceAll(string(key), "\\", "/")))
	if base == "" || base == "." || base == "/" || base == ".." {
		return string(model.DefaultProject)
	}

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// RenderReport formats the summary written to a project's report file.
func RenderReport(key model.ProjectKey, record *model.ProjectRecord, updated time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Project: %s\n", SanitizeName(key))
	fmt.Fprintf(&b, "Path: %s\n", key)
	fmt.Fprintf(&b, "Total time: %s\n", util.FormatMillis(record.TotalTimeMs))
	fmt.Fprintf(&b, "Updated: %s\n", updated.Format(reportTimeLayout))
	b.WriteString("\nDaily:\n")

	rows := aggregator.DailyRows(record)
	if len(rows) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "  %s: %s\n", row.Date, util.FormatMillis(row.Millis))
	}
	return b.String()
}
