package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/five82/hellomk/internal/logging"
)

const (
	defaultFileName     = "hellomk.ini"
	defaultUserFileName = ".hellomk.ini"
	defaultSystemDir    = "/etc"
)

// Resolver searches an ordered list of candidate locations for the config file.
type Resolver struct {
	FileName     string        // looked up relative to the working directory and under SystemDir
	UserFileName string        // looked up under the home directory
	SystemDir    string        // system-wide configuration directory
	Home         func() string // returns "" when no home directory is known
}

// DefaultResolver returns the resolver used by FindFile.
func DefaultResolver() Resolver {
	return Resolver{
		FileName:     defaultFileName,
		UserFileName: defaultUserFileName,
		SystemDir:    defaultSystemDir,
		Home:         func() string { return os.Getenv("HOME") },
	}
}

// FindFile returns the first readable candidate of the default resolver.
func FindFile() (string, bool) {
	return DefaultResolver().Find()
}

// Candidates lists the paths Find will try, in priority order.
func (r Resolver) Candidates() []string {
	candidates := make([]string, 0, 3)
	candidates = append(candidates, "."+string(filepath.Separator)+r.FileName)
	if r.Home != nil {
		if home := strings.TrimSpace(r.Home()); home != "" {
			candidates = append(candidates, filepath.Join(home, r.UserFileName))
		}
	}
	candidates = append(candidates, filepath.Join(r.SystemDir, r.FileName))
	return candidates
}

// Find opens each candidate in turn and returns the first that opens for reading.
// Candidates that fail to open are skipped without being reported.
func (r Resolver) Find() (string, bool) {
	logger := logging.WithComponent("config")
	for _, candidate := range r.Candidates() {
		logger.Debug().Str("path", candidate).Msg("trying config file path")
		file, err := os.Open(candidate)
		if err != nil {
			continue
		}
		_ = file.Close()
		logger.Debug().Str("path", candidate).Msg("config file found")
		return candidate, true
	}
	logger.Debug().Msg("config file not found in any path")
	return "", false
}
