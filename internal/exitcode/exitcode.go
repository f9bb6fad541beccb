// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion, including a declined confirmation.
	Success = 0

	// UserError indicates a user error (bad args, blank title, unknown command).
	UserError = 1

	// ConfigError indicates an invalid config directory, env file or API URL.
	ConfigError = 2

	// BackendError indicates the todo API failed or was unreachable.
	BackendError = 3
)
