// Package view maps task data to view descriptions and renders them.
//
// RenderTasks and RenderStats are pure: the same input always yields the same
// description. Output packages (HTML for the browser, text for the terminal)
// only read these descriptions.
package view

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"todoview/internal/service"
)

// Control labels and styles.
const (
	LabelMarkComplete = "Mark Complete"
	LabelCompleted    = "✓ Completed"
	LabelDelete       = "Delete"

	StylePrimary = "btn-primary"
	StyleSuccess = "btn-success"
	StyleDanger  = "btn-danger"
)

// Control is an interactive element bound to one task.
type Control struct {
	DOMID  string // e.g. "toggle-3"
	Label  string
	Style  string
	Action string // route the control posts to
}

// Item is the view of one task.
type Item struct {
	ID          service.ID
	Title       string
	Description string // empty means the description block is omitted
	Created     string
	Completed   bool
	Toggle      Control
	Delete      Control
}

// HasDescription reports whether the description block is shown.
func (i Item) HasDescription() bool { return i.Description != "" }

// TaskList is the view of the list region.
// When Empty is true the placeholder is shown and the list container hidden.
type TaskList struct {
	Empty bool
	Items []Item
	// Err replaces the list with an error state when set.
	Err string
}

// ListVisible reports whether the list container is shown.
func (l TaskList) ListVisible() bool { return !l.Empty || l.Err != "" }

// PlaceholderVisible reports whether the empty placeholder is shown.
func (l TaskList) PlaceholderVisible() bool { return l.Empty && l.Err == "" }

// Stats is the view of the three statistics slots.
type Stats struct {
	Total      string
	Completed  string
	Incomplete string
}

// RenderTasks builds the list view in the order given.
// layout is a Go time layout for creation dates.
func RenderTasks(tasks []service.Task, layout string) TaskList {
	if len(tasks) == 0 {
		return TaskList{Empty: true}
	}

	items := make([]Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, renderItem(t, layout))
	}
	return TaskList{Items: items}
}

// ErrorList builds the list view shown when the list could not be loaded.
func ErrorList(msg string) TaskList {
	return TaskList{Err: msg}
}

func renderItem(t service.Task, layout string) Item {
	id := t.ID.String()
	item := Item{
		ID:        t.ID,
		Title:     t.Title,
		Created:   FormatDate(t.CreatedAt, layout),
		Completed: t.Completed,
		Toggle: Control{
			DOMID:  "toggle-" + id,
			Label:  LabelMarkComplete,
			Style:  StylePrimary,
			Action: ActionPath(t.ID, "toggle"),
		},
		Delete: Control{
			DOMID:  "delete-" + id,
			Label:  LabelDelete,
			Style:  StyleDanger,
			Action: ActionPath(t.ID, "delete"),
		},
	}
	if strings.TrimSpace(t.Description) != "" {
		item.Description = t.Description
	}
	if t.Completed {
		item.Toggle.Label = LabelCompleted
		item.Toggle.Style = StyleSuccess
	}
	return item
}

// ActionPath returns the route a control for id posts to.
func ActionPath(id service.ID, action string) string {
	return "/todos/" + url.PathEscape(id.String()) + "/" + action
}

// FormatDate formats a creation timestamp as a short date in local time.
// The zero time renders as an empty string.
func FormatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	if layout == "" {
		layout = "1/2/2006"
	}
	return t.Local().Format(layout)
}

// RenderStats writes the counts verbatim.
func RenderStats(s service.Statistics) Stats {
	return Stats{
		Total:      strconv.Itoa(s.Total),
		Completed:  strconv.Itoa(s.Completed),
		Incomplete: strconv.Itoa(s.Incomplete),
	}
}
