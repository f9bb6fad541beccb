// Package output provides formatters for terminal output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todoview/internal/view"
)

const (
	// Separator is the rule printed above and below the statistics line.
	Separator = "------------"

	// EmptyMessage is printed instead of the list when there are no tasks.
	EmptyMessage = "no tasks found"

	checkOpen = "[ ]"
	checkDone = "[x]"
)

// FormatTaskList prints the list region.
// Format per task: "{ID:>4}  [ ] {TITLE}  ({CREATED})\n", then the
// description indented on its own line when present.
func FormatTaskList(w io.Writer, list view.TaskList) {
	if list.Err != "" {
		fmt.Fprintf(w, "error: %s\n", list.Err)
		return
	}
	if list.PlaceholderVisible() {
		fmt.Fprintln(w, EmptyMessage)
		return
	}
	for _, item := range list.Items {
		FormatItem(w, item)
	}
}

// FormatItem prints one task line.
func FormatItem(w io.Writer, item view.Item) {
	box := checkOpen
	if item.Completed {
		box = checkDone
	}
	line := fmt.Sprintf("%4s  %s %s", item.ID, box, normalizeText(item.Title))
	if item.Created != "" {
		line += "  (" + item.Created + ")"
	}
	fmt.Fprintln(w, line)
	if item.HasDescription() {
		fmt.Fprintf(w, "          %s\n", normalizeText(item.Description))
	}
}

// FormatStats prints the statistics region between separators.
func FormatStats(w io.Writer, s view.Stats) {
	fmt.Fprintln(w, Separator)
	fmt.Fprintf(w, "total: %s  completed: %s  incomplete: %s\n", s.Total, s.Completed, s.Incomplete)
	fmt.Fprintln(w, Separator)
}

// normalizeText normalizes task text for a single terminal line.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")

	if strings.TrimSpace(s) == "" {
		return "(untitled)"
	}
	return s
}
