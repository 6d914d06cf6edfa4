// Package prefs persists the few user preferences the dashboard keeps between runs.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Theme is the dashboard color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark".
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeLight, ThemeDark:
		return t, nil
	}
	return "", fmt.Errorf("invalid theme %q: must be light or dark", s)
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Preferences is the on-disk document.
type Preferences struct {
	Theme Theme `json:"theme"`
}

// DefaultPath is $XDG_CONFIG_HOME/jobdash/preferences.json (or the OS equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "jobdash", "preferences.json"), nil
}

// Store reads and writes Preferences at a fixed path. An empty path keeps
// preferences in memory only.
type Store struct {
	mu    sync.Mutex
	path  string
	prefs Preferences
}

// Open loads the preferences at path. A missing or unreadable file yields the
// defaults; the first Save creates it.
func Open(path string) *Store {
	s := &Store{path: path, prefs: Preferences{Theme: ThemeLight}}
	if path == "" {
		return s
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		return s
	}
	if t, err := ParseTheme(string(p.Theme)); err == nil {
		s.prefs.Theme = t
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Theme returns the saved theme, light by default.
func (s *Store) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.Theme
}

// SetTheme saves t. The in-memory value is updated even when writing fails.
func (s *Store) SetTheme(t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.Theme = t
	return s.save()
}

// ToggleTheme flips between light and dark and saves the result. The read
// and the write happen under one lock.
func (s *Store) ToggleTheme() (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.Theme = s.prefs.Theme.Toggle()
	return s.prefs.Theme, s.save()
}

func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}
	data, err := json.MarshalIndent(s.prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Join(fmt.Errorf("failed to replace preferences: %w", err), os.Remove(tmp))
	}
	return nil
}
