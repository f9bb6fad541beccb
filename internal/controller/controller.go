// Package controller runs the refresh cycle behind every user action.
//
// Each action moves idle → in-flight → idle. Actions triggered independently
// are not serialized; the display is overwritten wholesale by whichever
// refresh completes last.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"todoview/internal/service"
	"todoview/internal/view"
)

// User-visible messages.
const (
	MsgTitleRequired = "Please enter a task title"
	MsgCreateFailed  = "Failed to create task"
	MsgToggleFailed  = "Failed to update task"
	MsgDeleteFailed  = "Failed to delete task"
	MsgLoadFailed    = "Failed to load tasks. Make sure the backend server is running."
	MsgConfirmDelete = "Are you sure you want to delete this task?"
)

// ErrTitleRequired is returned when the create form has a blank title.
var ErrTitleRequired = errors.New("title required")

// Display receives rendered regions.
type Display interface {
	ShowTasks(view.TaskList)
	ShowStats(view.Stats)
}

// Form is the create form's input fields.
type Form interface {
	Input() (title, description string)
	Reset()
}

// Notifier delivers user-visible notices. Notify must not block.
type Notifier interface {
	Notify(view.Notice)
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// Answer is a Confirmer with a fixed reply.
type Answer bool

// Confirm returns the fixed reply.
func (a Answer) Confirm(context.Context, string) bool { return bool(a) }

// Options configures a Controller.
type Options struct {
	DateFormat string
	Logger     *slog.Logger
}

// Controller wires user actions to the service and the display.
type Controller struct {
	svc     service.Service
	display Display
	notify  Notifier
	layout  string
	log     *slog.Logger
}

// New creates a controller. A nil logger uses slog.Default().
func New(svc service.Service, display Display, notify Notifier, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		svc:     svc,
		display: display,
		notify:  notify,
		layout:  opts.DateFormat,
		log:     logger,
	}
}

// WithNotifier returns a controller sharing c's service and display that
// sends its notices to n instead.
func (c *Controller) WithNotifier(n Notifier) *Controller {
	cc := *c
	cc.notify = n
	return &cc
}

// Submit handles a create-form submission.
// A blank title is rejected without a network call and leaves the form as is.
// On success the form is cleared, then list and statistics are refreshed.
// On failure the form keeps its input.
func (c *Controller) Submit(ctx context.Context, form Form) error {
	rawTitle, rawDesc := form.Input()
	title := strings.TrimSpace(rawTitle)
	description := strings.TrimSpace(rawDesc)

	if title == "" {
		c.alert(MsgTitleRequired)
		return ErrTitleRequired
	}

	c.log.Debug("creating task", "title", title)
	if _, err := c.svc.CreateTask(ctx, service.NewTask{Title: title, Description: description}); err != nil {
		c.log.Error("create task failed", "error", err)
		c.alert(failureMessage(MsgCreateFailed, err))
		return err
	}

	form.Reset()
	return c.Refresh(ctx)
}

// Toggle flips a task's completion flag, then refreshes.
// On failure nothing is refreshed.
func (c *Controller) Toggle(ctx context.Context, id service.ID) error {
	c.log.Debug("toggling task", "id", id)
	if _, err := c.svc.ToggleTask(ctx, id); err != nil {
		c.log.Error("toggle task failed", "id", id, "error", err)
		c.alert(failureMessage(MsgToggleFailed, err))
		return err
	}
	return c.Refresh(ctx)
}

// Delete asks for confirmation, deletes the task, then refreshes.
// A declined confirmation makes no network call and returns nil.
func (c *Controller) Delete(ctx context.Context, id service.ID, confirm Confirmer) error {
	if !confirm.Confirm(ctx, MsgConfirmDelete) {
		c.log.Debug("delete declined", "id", id)
		return nil
	}

	c.log.Debug("deleting task", "id", id)
	if err := c.svc.DeleteTask(ctx, id); err != nil {
		c.log.Error("delete task failed", "id", id, "error", err)
		c.alert(failureMessage(MsgDeleteFailed, err))
		return err
	}
	return c.Refresh(ctx)
}

// Refresh reloads the list, then the statistics.
// A list failure replaces the list with an error state and is returned. A statistics failure is
// only logged and never hides the list.
func (c *Controller) Refresh(ctx context.Context) error {
	listErr := c.RefreshList(ctx)
	c.RefreshStats(ctx)
	return listErr
}

// RefreshList reloads and redraws the list region.
func (c *Controller) RefreshList(ctx context.Context) error {
	tasks, err := c.svc.ListTasks(ctx)
	if err != nil {
		c.log.Error("loading tasks failed", "error", err)
		c.display.ShowTasks(view.ErrorList(MsgLoadFailed))
		return err
	}
	c.display.ShowTasks(view.RenderTasks(tasks, c.layout))
	return nil
}

// RefreshStats reloads and redraws the statistics region.
// Failures are logged and the previous values stay on screen.
func (c *Controller) RefreshStats(ctx context.Context) {
	stats, err := c.svc.Statistics(ctx)
	if err != nil {
		c.log.Warn("loading statistics failed", "error", err)
		return
	}
	c.display.ShowStats(view.RenderStats(stats))
}

func (c *Controller) alert(msg string) {
	if c.notify == nil {
		return
	}
	c.notify.Notify(view.Notice{Level: view.LevelError, Message: msg})
}

// failureMessage prefers the server's detail. Create shows the detail alone;
// toggle and delete keep their generic prefix so the action stays clear.
func failureMessage(generic string, err error) string {
	detail := service.Detail(err)
	if detail == "" {
		return generic
	}
	if generic == MsgCreateFailed {
		return detail
	}
	return generic + ": " + detail
}
