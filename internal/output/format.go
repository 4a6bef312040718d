// Package output renders task tables for the command loop.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"taskman/internal/service"
)

// Column widths. Description is unbounded; its separator is 30 dashes.
const (
	IDWidth         = 3
	CategoryWidth   = 10
	StatusWidth     = 8
	DescriptionRule = 30

	columnGap = "   "
	rowFormat = "%3s" + columnGap + "%10s" + columnGap + "%8s" + columnGap + "%s\n"
)

// StatusLabel renders a task status as "Open" or "Closed".
func StatusLabel(open bool) string {
	if open {
		return "Open"
	}
	return "Closed"
}

// FormatHeader writes the column titles and the dashed rule below them.
func FormatHeader(w io.Writer) {
	fmt.Fprintf(w, rowFormat, "ID", "Category", "Status", "Description")
	fmt.Fprintf(w, rowFormat,
		strings.Repeat("-", IDWidth),
		strings.Repeat("-", CategoryWidth),
		strings.Repeat("-", StatusWidth),
		strings.Repeat("-", DescriptionRule))
}

// FormatTask writes one table row. num is the displayed ID, not the store ID.
// Values wider than their column are not truncated.
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, rowFormat,
		strconv.Itoa(num),
		normalizeCell(task.Category),
		StatusLabel(task.Status),
		normalizeCell(task.Description))
}

// DisplayTasks writes the full table, numbering rows from 1 in slice order.
func DisplayTasks(w io.Writer, tasks []service.Task) {
	FormatHeader(w)
	for i, task := range tasks {
		FormatTask(w, i+1, task)
	}
}

// normalizeCell keeps a value on a single row.
func normalizeCell(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
