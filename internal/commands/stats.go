package commands

import (
	"context"
	"flag"
	"io"

	"todoview/internal/config"
	"todoview/internal/exitcode"
	"todoview/internal/output"
	"todoview/internal/service"
	"todoview/internal/view"
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd implements the stats command.
// Unlike the refresh cycle, a statistics failure here is the command's own
// failure and is reported.
type StatsCmd struct{}

func (c *StatsCmd) Name() string       { return "stats" }
func (c *StatsCmd) Aliases() []string  { return nil }
func (c *StatsCmd) Synopsis() string   { return "Print task statistics" }
func (c *StatsCmd) Usage() string      { return "todoview stats" }
func (c *StatsCmd) NeedsBackend() bool { return true }

func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	stats, err := svc.Statistics(ctx)
	if err != nil {
		return backendError(errOut, err)
	}
	output.FormatStats(out, view.RenderStats(stats))
	return exitcode.Success
}
