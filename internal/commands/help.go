package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoview/internal/config"
	"todoview/internal/exitcode"
	"todoview/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "todoview help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todoview                                    List all tasks with statistics
  todoview list [common flags]
  todoview stats [common flags]
  todoview add [common flags] [--description <text>] <title...>
  todoview toggle [common flags] <id>
  todoview rm [common flags] [--yes] <id>
  todoview export [common flags] [--format json|csv|pdf] [--out <file>]
  todoview serve [common flags] [--addr <host:port>]
  todoview help
  todoview version

Common flags:
  --config <dir>   Override config directory
  --api <url>      Override the todo API base URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
