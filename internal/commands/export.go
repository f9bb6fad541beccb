package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"todoview/internal/config"
	"todoview/internal/exitcode"
	"todoview/internal/export"
	"todoview/internal/service"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
	out    string
}

// SetFormat sets the export format (for testing).
func (c *ExportCmd) SetFormat(f string) {
	c.format = f
}

// SetOutput sets the output file (for testing).
func (c *ExportCmd) SetOutput(path string) {
	c.out = path
}

func (c *ExportCmd) Name() string       { return "export" }
func (c *ExportCmd) Aliases() []string  { return nil }
func (c *ExportCmd) Synopsis() string   { return "Export tasks and statistics" }
func (c *ExportCmd) Usage() string      { return "todoview export [--format json|csv|pdf] [--out <file>]" }
func (c *ExportCmd) NeedsBackend() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "json", "")
	fs.StringVar(&c.out, "out", "", "")
	fs.StringVar(&c.out, "o", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	format := strings.ToLower(c.format)
	if format == "" {
		format = "json"
	}
	if !slices.Contains(export.Formats, format) {
		fmt.Fprintf(errOut, "error: unknown format: %s\n", c.format)
		return exitcode.UserError
	}
	if format == "pdf" && c.out == "" {
		fmt.Fprintln(errOut, "error: pdf export requires --out")
		return exitcode.UserError
	}

	data, err := export.NewExporter(svc).Export(ctx, format)
	if err != nil {
		return backendError(errOut, err)
	}

	if c.out == "" {
		_, _ = out.Write(data)
		return exitcode.Success
	}
	if err := os.WriteFile(c.out, data, 0644); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "wrote %s\n", c.out)
	}
	return exitcode.Success
}
