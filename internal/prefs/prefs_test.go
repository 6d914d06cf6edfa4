package prefs

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_DefaultsToLight(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, ThemeLight, s.Theme())
}

func TestOpen_InMemory(t *testing.T) {
	s := Open("")
	require.NoError(t, s.SetTheme(ThemeDark))
	assert.Equal(t, ThemeDark, s.Theme())
}

func TestSetTheme_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobdash", "preferences.json")

	s := Open(path)
	require.NoError(t, s.SetTheme(ThemeDark))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark"}`, string(data))

	assert.Equal(t, ThemeDark, Open(path).Theme())
}

func TestSetTheme_RejectsUnknown(t *testing.T) {
	s := Open("")
	err := s.SetTheme("sepia")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid theme")
	assert.Equal(t, ThemeLight, s.Theme())
}

func TestOpen_IgnoresCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", `{ nope`},
		{"unknown theme", `{"theme":"neon"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "preferences.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			assert.Equal(t, ThemeLight, Open(path).Theme())
		})
	}
}

func TestTheme_Toggle(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
}

func TestStore_ToggleTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	s := Open(path)

	got, err := s.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, got)
	assert.Equal(t, ThemeDark, Open(path).Theme())

	got, err = s.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, got)
}

func TestStore_ConcurrentTogglesAllApply(t *testing.T) {
	s := Open("")

	var wg sync.WaitGroup
	for range 101 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.ToggleTheme()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// An odd number of flips from light must end dark.
	assert.Equal(t, ThemeDark, s.Theme())
}

func TestParseTheme(t *testing.T) {
	for _, in := range []string{"light", "dark"} {
		got, err := ParseTheme(in)
		require.NoError(t, err)
		assert.Equal(t, Theme(in), got)
	}
	_, err := ParseTheme("Dark")
	assert.Error(t, err)
}
