package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobdash/internal/fetch"
	"github.com/jonathan/jobdash/internal/schemas"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvSheetID, EnvAPIKey, EnvPrefsPath, EnvFetchTimeout, EnvPort} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"sheet_id": "1AbC",
		"api_key": "key-123",
		"tabs": {"applications": "Apps 2024"},
		"fetch_timeout": "45s",
		"port": 9090
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "1AbC", cfg.SheetID)
	assert.Equal(t, "key-123", cfg.APIKey)
	assert.Equal(t, "Apps 2024", cfg.Tabs.Applications)
	assert.Empty(t, cfg.Tabs.Resumes)
	assert.Equal(t, 45*time.Second, cfg.Timeout())
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantMsg string
	}{
		{"empty path", func(*testing.T) string { return "" }, "config path is empty"},
		{"file not found", func(*testing.T) string { return "/nonexistent/path/config.json" }, "failed to read config file"},
		{"invalid JSON", func(t *testing.T) string { return writeConfig(t, `{ invalid json }`) }, "failed to parse config JSON"},
		{"schema violation", func(t *testing.T) string { return writeConfig(t, `{"sheet": "typo"}`) }, "config error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.path(t))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadConfig_SchemaErrorIsTyped(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `{"port": 70000}`))
	var ve *schemas.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "port", ve.Errors[0].Field)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantMsg string
	}{
		{"valid", Config{SheetID: "x", Port: 8080, FetchTimeout: "10s"}, ""},
		{"zero value", Config{}, ""},
		{"negative port", Config{Port: -1}, "'port'"},
		{"port too large", Config{Port: 65536}, "'port'"},
		{"unparseable timeout", Config{FetchTimeout: "soon"}, "'fetch_timeout'"},
		{"negative timeout", Config{FetchTimeout: "-5s"}, "must be positive"},
		{"duplicate tabs", Config{Tabs: Tabs{Applications: "Data", Templates: "Data"}}, "configured twice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestRequireSheet(t *testing.T) {
	cfg := &Config{}
	assert.ErrorContains(t, cfg.RequireSheet(), EnvSheetID)

	cfg.SheetID = "1AbC"
	assert.ErrorContains(t, cfg.RequireSheet(), EnvAPIKey)

	cfg.APIKey = "key"
	assert.NoError(t, cfg.RequireSheet())
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Defaults()
	partial := Config{
		SheetID: "custom-sheet",
		Tabs:    Tabs{Resumes: "CVs"},
		Port:    3000,
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "custom-sheet", merged.SheetID)
	assert.Equal(t, "CVs", merged.Tabs.Resumes)
	assert.Equal(t, 3000, merged.Port)

	// Default values should fill in empty fields
	assert.Equal(t, "Applications", merged.Tabs.Applications)
	assert.Equal(t, "Follow-Up Templates", merged.Tabs.Templates)
	assert.Equal(t, "30s", merged.FetchTimeout)
	assert.Equal(t, defaults.PrefsPath, merged.PrefsPath)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{SheetID: "sheet", Port: 1}
	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, cfg, merged)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvSheetID:      "env-sheet",
		EnvFetchTimeout: "1m",
		EnvPort:         "7000",
		EnvAPIKey:       "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Config{SheetID: "file-sheet", APIKey: "file-key", PrefsPath: "/tmp/p.json"}
	require.NoError(t, cfg.ApplyEnv(lookup))

	assert.Equal(t, "env-sheet", cfg.SheetID)
	assert.Equal(t, "file-key", cfg.APIKey, "empty env values do not override")
	assert.Equal(t, "/tmp/p.json", cfg.PrefsPath)
	assert.Equal(t, time.Minute, cfg.Timeout())
	assert.Equal(t, 7000, cfg.Port)

	env[EnvPort] = "http"
	assert.ErrorContains(t, cfg.ApplyEnv(lookup), EnvPort)
}

func TestResolve(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "env-key")
	path := writeConfig(t, `{"sheet_id": "file-sheet", "api_key": "file-key", "prefs_path": "/tmp/jobdash-prefs.json"}`)

	cfg, err := Resolve(path)
	require.NoError(t, err)

	assert.Equal(t, "file-sheet", cfg.SheetID)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "/tmp/jobdash-prefs.json", cfg.PrefsPath)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.NoError(t, cfg.RequireSheet())
}

func TestResolve_NoFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPort, "0")

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Empty(t, cfg.SheetID)
	assert.Equal(t, DefaultPort, cfg.Port, "zero falls back to the default")

	t.Setenv(EnvFetchTimeout, "never")
	_, err = Resolve("")
	assert.ErrorContains(t, err, "fetch_timeout")
}

func TestTimeout_Fallback(t *testing.T) {
	assert.Equal(t, fetch.DefaultTimeout, (&Config{}).Timeout())
	assert.Equal(t, fetch.DefaultTimeout, (&Config{FetchTimeout: "bad"}).Timeout())
}

func TestFetchOptions(t *testing.T) {
	cfg := Config{SheetID: "s", APIKey: "k", FetchTimeout: "5s"}
	cfg = cfg.MergeWithDefaults(Defaults())

	opts := cfg.FetchOptions()
	assert.Equal(t, "s", opts.SpreadsheetID)
	assert.Equal(t, "k", opts.APIKey)
	assert.Equal(t, fetch.DefaultTabs(), opts.Tabs)
	assert.Equal(t, 5*time.Second, opts.Timeout)
}
