package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"todoview/internal/config"
	"todoview/internal/controller"
	"todoview/internal/exitcode"
	"todoview/internal/service"
	"todoview/internal/view"
	"todoview/internal/web"
)

// DefaultAddr is the address the web page is served on.
const DefaultAddr = "127.0.0.1:8080"

func init() {
	Register(&ServeCmd{})
}

// ServeCmd implements the serve command.
type ServeCmd struct {
	addr string
}

func (c *ServeCmd) Name() string       { return "serve" }
func (c *ServeCmd) Aliases() []string  { return nil }
func (c *ServeCmd) Synopsis() string   { return "Serve the task page to a browser" }
func (c *ServeCmd) Usage() string      { return "todoview serve [--addr <host:port>]" }
func (c *ServeCmd) NeedsBackend() bool { return true }

// LogLevel lets the listening line and the access log through by default.
func (c *ServeCmd) LogLevel() slog.Level { return slog.LevelInfo }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", DefaultAddr, "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	logger := slog.Default()
	page := view.NewPage()
	ctrl := controller.New(svc, page, nil, controller.Options{DateFormat: cfg.DateFormat, Logger: logger})

	if !cfg.Quiet {
		fmt.Fprintf(out, "serving on http://%s (backend %s)\n", c.addr, cfg.APIURL)
	}
	if err := web.NewServer(page, ctrl, logger).Run(ctx, c.addr); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
