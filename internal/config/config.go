// Package config handles the configuration directory, env file and settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "todoview"

	// EnvFile is the optional env file read from the config directory.
	EnvFile = "todoview.env"

	// DefaultAPIURL is the backend base URL used when nothing else is set.
	DefaultAPIURL = "http://localhost:8000/api"

	// DefaultDateFormat renders creation dates as a short month/day/year date.
	DefaultDateFormat = "1/2/2006"
)

// Environment variable names.
const (
	EnvAPIURL     = "TODOVIEW_API_URL"
	EnvToken      = "TODOVIEW_TOKEN"
	EnvTimeout    = "TODOVIEW_TIMEOUT"
	EnvDateFormat = "TODOVIEW_DATE_FORMAT"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the backend base URL, without the /todos/ suffix.
	APIURL string

	// Token is an optional bearer token sent with every API call.
	Token string

	// Timeout bounds each API call. Zero leaves it to the transport.
	Timeout time.Duration

	// DateFormat is the Go time layout for creation dates.
	DateFormat string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory
// and built-in defaults. It does not read the environment.
// If configDir is empty, uses XDG_CONFIG_HOME/todoview or $HOME/.config/todoview.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:        dir,
		APIURL:     DefaultAPIURL,
		DateFormat: DefaultDateFormat,
	}, nil
}

// Load creates a Config and applies the env file in the config directory,
// then the process environment. Process environment wins over the file;
// an empty variable counts as unset.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	fileEnv, err := godotenv.Read(cfg.EnvPath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("invalid %s: %w", EnvFile, err)
	}

	lookup := func(key string) string {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(fileEnv[key])
	}

	if v := lookup(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	cfg.Token = lookup(EnvToken)
	if v := lookup(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid %s: %s", EnvTimeout, v)
		}
		cfg.Timeout = d
	}
	if v := lookup(EnvDateFormat); v != "" {
		cfg.DateFormat = v
	}

	return cfg, cfg.Validate()
}

// Validate checks that the API URL is an absolute http(s) URL.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid API URL: %s", c.APIURL)
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// EnvPath returns the path to the optional env file.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// HasEnvFile checks if the env file exists.
func (c *Config) HasEnvFile() bool {
	_, err := os.Stat(c.EnvPath())
	return err == nil
}
