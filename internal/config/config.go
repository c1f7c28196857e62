// Package config loads the customer form configuration.
//
// Configuration is read from a single YAML file named by:
//   - the CUSTOMERFORM_CONFIG environment variable, or
//   - the --config flag passed to the command
//
// When neither is set the built-in defaults are used. Command-line flags
// override file values.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c-w-schwind/Aufgabe-Christian/pkg/model"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "CUSTOMERFORM_CONFIG"

// Config is the complete customer form configuration.
type Config struct {
	// Endpoint is the URL records are POSTed to.
	// Default: http://localhost:8080/customers
	Endpoint string `yaml:"endpoint"`

	// Timeout bounds a single submission, as a Go duration string.
	// Default: 10s
	Timeout string `yaml:"timeout"`

	// LogLevel is one of debug, info, warn, error.
	// Default: info
	LogLevel string `yaml:"log_level"`

	// Options is the checkbox catalog in display order.
	Options []OptionConfig `yaml:"options"`

	// TemplatesDir holds template overrides, e.g. summary.tpl. Templates
	// missing there fall back to the built-in ones.
	TemplatesDir string `yaml:"templates_dir"`

	// Theme selects the terminal palette.
	Theme ThemeConfig `yaml:"theme"`

	// Stub configures the local stand-in endpoint.
	Stub StubConfig `yaml:"stub"`
}

// OptionConfig is one checkbox of the catalog.
type OptionConfig struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// ThemeConfig names a go-theme manifest and variant.
type ThemeConfig struct {
	Name    string `yaml:"name"`
	Variant string `yaml:"variant"`
}

// StubConfig configures the stub server.
type StubConfig struct {
	// Addr is the listen address.
	// Default: :8080
	Addr string `yaml:"addr"`

	// FailWith forces every POST to answer with this status when non-zero.
	FailWith int `yaml:"fail_with"`
}

// Default returns the built-in configuration.
func Default() *Config {
	catalog := model.DefaultCatalog()
	options := make([]OptionConfig, len(catalog))
	for i, option := range catalog {
		options[i] = OptionConfig{ID: option.ID, Label: option.Label}
	}
	return &Config{
		Endpoint: "http://localhost:8080/customers",
		Timeout:  "10s",
		LogLevel: "info",
		Options:  options,
		Theme: ThemeConfig{
			Variant: "dark",
		},
		Stub: StubConfig{
			Addr: ":8080",
		},
	}
}

// Load reads the file named by CUSTOMERFORM_CONFIG, or returns the defaults
// when the variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from path on top of the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) expandVariables() {
	c.Endpoint = expandVars(c.Endpoint)
	c.Stub.Addr = expandVars(c.Stub.Addr)
	c.TemplatesDir = expandVars(c.TemplatesDir)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns from the environment.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return parts[2]
		}
		return ""
	})
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if u, err := url.Parse(c.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("endpoint must be an absolute URL: %q", c.Endpoint))
	}

	if d, err := time.ParseDuration(c.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("timeout: %w", err))
	} else if d <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive: %s", c.Timeout))
	}

	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(c.Options) == 0 {
		errs = append(errs, errors.New("options must not be empty"))
	}
	seen := make(map[string]struct{}, len(c.Options))
	for i, option := range c.Options {
		id := strings.TrimSpace(option.ID)
		if id == "" {
			errs = append(errs, fmt.Errorf("options[%d].id is required", i))
			continue
		}
		if _, dup := seen[id]; dup {
			errs = append(errs, fmt.Errorf("options[%d].id %q is duplicated", i, id))
		}
		seen[id] = struct{}{}
	}

	if c.TemplatesDir != "" {
		if fi, err := os.Stat(c.TemplatesDir); err != nil {
			errs = append(errs, fmt.Errorf("templates_dir: %w", err))
		} else if !fi.IsDir() {
			errs = append(errs, fmt.Errorf("templates_dir must be a directory: %s", c.TemplatesDir))
		}
	}

	if c.Stub.FailWith != 0 && (c.Stub.FailWith < 400 || c.Stub.FailWith > 599) {
		errs = append(errs, fmt.Errorf("stub.fail_with must be a 4xx or 5xx status: %d", c.Stub.FailWith))
	}

	return errors.Join(errs...)
}

// TimeoutDuration parses Timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	return time.ParseDuration(c.Timeout)
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// Catalog converts Options into the unchecked checkbox catalog. An empty
// label falls back to the id.
func (c *Config) Catalog() []model.CheckboxOption {
	out := make([]model.CheckboxOption, 0, len(c.Options))
	for _, option := range c.Options {
		label := option.Label
		if strings.TrimSpace(label) == "" {
			label = option.ID
		}
		out = append(out, model.CheckboxOption{ID: strings.TrimSpace(option.ID), Label: label})
	}
	return out
}
