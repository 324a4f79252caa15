// Package prefs stores the few display settings hellomk remembers between
// runs: the browser theme and whether output is plain. The file is TOML at
// ~/.config/hellomk/prefs.toml unless a path is given.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	toml "github.com/pelletier/go-toml/v2"
)

// Prefs is the on-disk settings record.
type Prefs struct {
	Theme string `toml:"theme"`
	Plain bool   `toml:"plain"`
}

const (
	defaultPrefsPath = "~/.config/hellomk/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath is the location used when no path is given.
func DefaultPath() string {
	return defaultPrefsPath
}

// Default returns the settings used before anything is saved.
func Default() Prefs {
	return Prefs{Theme: defaultTheme}
}

// Load never fails: an unreadable or malformed file yields Default, and a
// blank theme is replaced by the default theme.
func Load(path string) Prefs {
	file, err := resolvePath(path)
	if err != nil {
		return Default()
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return Default()
	}

	p := Default()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Default()
	}
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}
	return p
}

// Save replaces the prefs file atomically, creating its directory if needed.
func Save(path string, p Prefs) error {
	file, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve prefs path: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	if err := renameio.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return expandPath(path)
}

// expandPath turns a leading ~ into the home directory and makes the result absolute.
func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if rest, ok := strings.CutPrefix(trimmed, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, rest)
	}
	return filepath.Abs(trimmed)
}
