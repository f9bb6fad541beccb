package commands

import (
	"errors"
	"fmt"
	"io"

	"todoview/internal/config"
	"todoview/internal/controller"
	"todoview/internal/exitcode"
	"todoview/internal/output"
	"todoview/internal/service"
	"todoview/internal/view"
)

// termDisplay prints each refreshed region to the terminal.
// A list in its error state goes to errOut, even when quiet.
type termDisplay struct {
	out    io.Writer
	errOut io.Writer
	quiet  bool
}

func (d *termDisplay) ShowTasks(l view.TaskList) {
	if l.Err != "" {
		output.FormatTaskList(d.errOut, l)
		return
	}
	if d.quiet {
		return
	}
	output.FormatTaskList(d.out, l)
}

func (d *termDisplay) ShowStats(s view.Stats) {
	if d.quiet {
		return
	}
	output.FormatStats(d.out, s)
}

// session is one command's run of the refresh cycle.
type session struct {
	ctrl    *controller.Controller
	notices controller.ChanNotifier
	errOut  io.Writer
}

func newSession(cfg *config.Config, svc service.Service, out, errOut io.Writer) *session {
	notices := controller.NewChanNotifier(8)
	display := &termDisplay{out: out, errOut: errOut, quiet: cfg.Quiet}
	return &session{
		ctrl:    controller.New(svc, display, notices, controller.Options{DateFormat: cfg.DateFormat}),
		notices: notices,
		errOut:  errOut,
	}
}

// finish prints queued notices and maps the action's error to an exit code.
func (s *session) finish(err error) int {
	for _, n := range s.notices.Drain() {
		fmt.Fprintf(s.errOut, "error: %s\n", n.Message)
	}
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, controller.ErrTitleRequired):
		return exitcode.UserError
	default:
		return exitcode.BackendError
	}
}

// backendError prints err and returns the backend exit code.
func backendError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
