// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonathan/jobdash/internal/fetch"
	"github.com/jonathan/jobdash/internal/prefs"
	"github.com/jonathan/jobdash/internal/schemas"
)

// Environment variables that override config file values.
const (
	EnvSheetID      = "JOBDASH_SHEET_ID"
	EnvAPIKey       = "JOBDASH_API_KEY"
	EnvPrefsPath    = "JOBDASH_PREFS_PATH"
	EnvFetchTimeout = "JOBDASH_FETCH_TIMEOUT"
	EnvPort         = "PORT"
)

// DefaultPort is used by serve when neither the file, env nor flag sets one.
const DefaultPort = 8080

// Tabs holds optional overrides of the spreadsheet tab names.
type Tabs struct {
	Applications string `json:"applications,omitempty"`
	Resumes      string `json:"resumes,omitempty"`
	Templates    string `json:"templates,omitempty"`
}

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment or defaults.
type Config struct {
	SheetID      string `json:"sheet_id,omitempty"`      // Spreadsheet ID
	APIKey       string `json:"api_key,omitempty"`       // Google API key
	Tabs         Tabs   `json:"tabs,omitzero"`           // Tab name overrides
	PrefsPath    string `json:"prefs_path,omitempty"`    // Preferences file
	FetchTimeout string `json:"fetch_timeout,omitempty"` // Go duration, e.g. "30s"
	Port         int    `json:"port,omitempty"`          // HTTP port for serve
}

// LoadConfig loads configuration from a JSON file and checks it against the
// config schema. Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := schemas.Validate(schemas.Config, data); err != nil {
		return nil, fmt.Errorf("config error: %s: %w", path, err)
	}

	return &cfg, nil
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	tabs := fetch.DefaultTabs()
	cfg := Config{
		Tabs: Tabs{
			Applications: tabs.Applications,
			Resumes:      tabs.Resumes,
			Templates:    tabs.Templates,
		},
		FetchTimeout: fetch.DefaultTimeout.String(),
		Port:         DefaultPort,
	}
	if p, err := prefs.DefaultPath(); err == nil {
		cfg.PrefsPath = p
	}
	return cfg
}

// Resolve builds the effective configuration: the file at path (if any),
// overridden by environment variables, with defaults filling the rest.
func Resolve(path string) (Config, error) {
	var cfg Config
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = *loaded
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	cfg = cfg.MergeWithDefaults(Defaults())
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSheetID); ok && v != "" {
		c.SheetID = v
	}
	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		c.APIKey = v
	}
	if v, ok := lookup(EnvPrefsPath); ok && v != "" {
		c.PrefsPath = v
	}
	if v, ok := lookup(EnvFetchTimeout); ok && v != "" {
		c.FetchTimeout = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: %s must be an integer, got %q", EnvPort, v)
		}
		c.Port = port
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for sheet ID or API key since only commands
// that fetch need them; see RequireSheet.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.FetchTimeout != "" {
		d, err := time.ParseDuration(c.FetchTimeout)
		if err != nil {
			return fmt.Errorf("config error: 'fetch_timeout': %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'fetch_timeout' must be positive")
		}
	}
	names := []string{c.Tabs.Applications, c.Tabs.Resumes, c.Tabs.Templates}
	for i := range names {
		for j := i + 1; j < len(names); j++ {
			if names[i] != "" && names[i] == names[j] {
				return fmt.Errorf("config error: tab %q is configured twice", names[i])
			}
		}
	}
	return nil
}

// RequireSheet reports a missing spreadsheet ID or API key.
func (c *Config) RequireSheet() error {
	if c.SheetID == "" {
		return fmt.Errorf("config error: spreadsheet ID is required (set 'sheet_id' or %s)", EnvSheetID)
	}
	if c.APIKey == "" {
		return fmt.Errorf("config error: API key is required (set 'api_key' or %s)", EnvAPIKey)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.SheetID == "" {
		result.SheetID = defaults.SheetID
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.PrefsPath == "" {
		result.PrefsPath = defaults.PrefsPath
	}
	if result.FetchTimeout == "" {
		result.FetchTimeout = defaults.FetchTimeout
	}
	if result.Tabs.Applications == "" {
		result.Tabs.Applications = defaults.Tabs.Applications
	}
	if result.Tabs.Resumes == "" {
		result.Tabs.Resumes = defaults.Tabs.Resumes
	}
	if result.Tabs.Templates == "" {
		result.Tabs.Templates = defaults.Tabs.Templates
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	return result
}

// Timeout parses FetchTimeout, falling back to fetch.DefaultTimeout.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil || d <= 0 {
		return fetch.DefaultTimeout
	}
	return d
}

// FetchOptions converts the configuration into Sheets client options.
func (c *Config) FetchOptions() fetch.Options {
	return fetch.Options{
		SpreadsheetID: c.SheetID,
		APIKey:        c.APIKey,
		Tabs: fetch.Tabs{
			Applications: c.Tabs.Applications,
			Resumes:      c.Tabs.Resumes,
			Templates:    c.Tabs.Templates,
		},
		Timeout: c.Timeout(),
	}
}
