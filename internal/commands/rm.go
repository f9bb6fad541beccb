package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"todoview/internal/config"
	"todoview/internal/controller"
	"todoview/internal/exitcode"
	"todoview/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	yes bool
	in  io.Reader
}

// SetInput sets the reader answers are read from (for testing).
func (c *RmCmd) SetInput(r io.Reader) {
	c.in = r
}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "todoview rm [--yes] <id>" }
func (c *RmCmd) NeedsBackend() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	var confirm controller.Confirmer = controller.Answer(true)
	if !c.yes {
		in := c.in
		if in == nil {
			in = os.Stdin
		}
		confirm = &prompt{in: in, out: errOut}
	}

	asked := &answered{Confirmer: confirm}
	s := newSession(cfg, svc, out, errOut)
	code := s.finish(s.ctrl.Delete(ctx, id, asked))
	if code == exitcode.Success && !asked.yes && !cfg.Quiet {
		fmt.Fprintln(out, "cancelled")
	}
	return code
}

// answered remembers the reply so a declined delete can be reported.
type answered struct {
	controller.Confirmer
	yes bool
}

func (a *answered) Confirm(ctx context.Context, question string) bool {
	a.yes = a.Confirmer.Confirm(ctx, question)
	return a.yes
}

// prompt asks on the terminal. Only "y" or "yes" confirms.
type prompt struct {
	in  io.Reader
	out io.Writer
}

func (p *prompt) Confirm(ctx context.Context, question string) bool {
	fmt.Fprintf(p.out, "%s [y/N] ", question)

	answer := make(chan string, 1)
	go func() {
		line, _ := bufio.NewReader(p.in).ReadString('\n')
		answer <- line
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return false
	case line := <-answer:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	}
}
