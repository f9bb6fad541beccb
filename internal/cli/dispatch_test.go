package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"todoview/internal/cli"
	"todoview/internal/commands"
	"todoview/internal/config"
	"todoview/internal/exitcode"
	"todoview/internal/service"
	"todoview/internal/testutil"
)

func TestMain(m *testing.M) {
	time.Local = time.UTC
	os.Exit(m.Run())
}

// testFactory creates a service factory that returns the given FakeService
// and records the config it was built from.
func testFactory(svc *testutil.FakeService, seen **config.Config) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		if seen != nil {
			*seen = cfg
		}
		return svc, nil
	}
}

// run dispatches args with an isolated config directory.
func run(t *testing.T, factory cli.ServiceFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvTimeout, "")

	var outBuf, errBuf bytes.Buffer
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	args = append([]string{args[0], "--config", t.TempDir()}, args[1:]...)
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService(), nil), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService(), nil))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_NoArgsListsTasks(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvAPIURL, "")
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", "", false)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc, nil))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), nil, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d: %s", exitcode.Success, code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "[ ] Buy milk") {
		t.Errorf("expected list output, got %q", stdout.String())
	}
	want := []string{testutil.CallListTasks, testutil.CallStatistics}
	if !reflect.DeepEqual(svc.Calls(), want) {
		t.Errorf("expected calls %v, got %v", want, svc.Calls())
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	stdout, stderr, code := run(t, testFactory(svc, nil), "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.HasPrefix(stdout, "Usage:") {
		t.Errorf("expected usage, got %q", stdout)
	}
	if len(svc.Calls()) != 0 {
		t.Errorf("help should not touch the backend, got %v", svc.Calls())
	}
}

func TestDispatcher_HelpSkipsFactory(t *testing.T) {
	called := false
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		called = true
		return nil, errors.New("unreachable")
	}

	_, _, code := run(t, factory, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if called {
		t.Error("version should not build a service")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	stdout, _, code := run(t, testFactory(testutil.NewFakeService(), nil), "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "todoview "+commands.Version+"\n" {
		t.Errorf("unexpected version output %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService(), nil), "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsValue(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService(), nil), "add", "--description")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -description\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_APIOverride(t *testing.T) {
	var seen *config.Config
	_, _, code := run(t, testFactory(testutil.NewFakeService(), &seen), "list", "--api", "https://todo.example.com/api", "--quiet")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if seen == nil || seen.APIURL != "https://todo.example.com/api" {
		t.Errorf("expected overridden API URL, got %+v", seen)
	}
	if !seen.Quiet {
		t.Error("expected quiet to be set")
	}
}

func TestDispatcher_InvalidAPIURL(t *testing.T) {
	svc := testutil.NewFakeService()
	_, stderr, code := run(t, testFactory(svc, nil), "list", "--api", "localhost:8000")

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if stderr != "error: invalid API URL: localhost:8000\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if len(svc.Calls()) != 0 {
		t.Errorf("expected no backend calls, got %v", svc.Calls())
	}
}

func TestDispatcher_EnvFile(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "")
	dir := t.TempDir()
	env := "TODOVIEW_API_URL=http://tasks.internal:9000/api\nTODOVIEW_DATE_FORMAT=2006-01-02\n"
	if err := os.WriteFile(filepath.Join(dir, config.EnvFile), []byte(env), 0600); err != nil {
		t.Fatal(err)
	}

	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", "", false)
	var seen *config.Config
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc, &seen))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--config", dir}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d: %s", exitcode.Success, code, stderr.String())
	}
	if seen.APIURL != "http://tasks.internal:9000/api" {
		t.Errorf("expected API URL from env file, got %q", seen.APIURL)
	}
	if !strings.Contains(stdout.String(), "(2024-01-01)") {
		t.Errorf("expected date layout from env file, got %q", stdout.String())
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("dial failed")
	}

	_, stderr, code := run(t, factory, "list")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: dial failed\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_Alias(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", "", false)

	_, _, code := run(t, testFactory(svc, nil), "done", "1", "--quiet")

	// Flags after positional args are not parsed, so "--quiet" is an extra argument
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}

	_, _, code = run(t, testFactory(svc, nil), "done", "--quiet", "1")
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !svc.Tasks()[0].Completed {
		t.Error("expected task to be completed")
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService(), nil), "version", "--debug")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr, "msg=dispatching") || !strings.Contains(stderr, "command=version") {
		t.Errorf("expected debug log, got %q", stderr)
	}
}

func TestDispatcher_DebugReportsEnvFile(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.EnvFile), []byte("TODOVIEW_TIMEOUT=3s\n"), 0600); err != nil {
		t.Fatal(err)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"version", "--config", dir, "--debug"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr.String(), "env_file_found=true") {
		t.Errorf("expected env file in debug log, got %q", stderr.String())
	}
}

func TestDispatcher_ServeLogsAtInfo(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService(), nil), "serve", "--addr", "127.0.0.1:-1")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "level=INFO msg=listening") {
		t.Errorf("expected listening line, got %q", stderr)
	}
}

func TestDispatcher_QuietServeHidesInfo(t *testing.T) {
	stdout, stderr, code := run(t, testFactory(testutil.NewFakeService(), nil), "serve", "--quiet", "--addr", "127.0.0.1:-1")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if strings.Contains(stderr, "level=INFO") {
		t.Errorf("quiet should hide info logs, got %q", stderr)
	}
	if stdout != "" {
		t.Errorf("quiet should hide the serving line, got %q", stdout)
	}
	if !strings.Contains(stderr, "error: ") {
		t.Errorf("expected listen error, got %q", stderr)
	}
}

func TestDispatcher_WarnByDefault(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.StatisticsErr = errors.New("stats down")

	_, stderr, code := run(t, testFactory(svc, nil), "list")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr, "level=WARN") || !strings.Contains(stderr, "stats down") {
		t.Errorf("expected statistics warning, got %q", stderr)
	}
}
