package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/five82/hellomk/internal/logging"
)

// Field bounds, in bytes. Longer content is clipped, never rejected.
const (
	MaxSectionLen = 49
	MaxKeyLen     = 49
	MaxValueLen   = 99
)

// Entry is one key/value pair recognised inside a named section.
type Entry struct {
	Section   string
	Key       string
	Value     string
	Line      int  // 1-based line number in the source file
	Truncated bool // section, key or value was clipped to its bound
}

// Lookup returns the value of the first key in section, in file order.
// ok is false when the file cannot be opened or the pair does not occur;
// callers that need to tell those apart must check the file themselves.
func Lookup(path, section, key string) (string, bool) {
	entry, ok := Find(path, section, key)
	if !ok {
		return "", false
	}
	return entry.Value, true
}

// Find is Lookup returning the whole matching entry.
func Find(path, section, key string) (Entry, bool) {
	logger := logging.WithComponent("config")

	file, err := os.Open(path)
	if err != nil {
		logger.Debug().Err(err).Str("path", path).Msg("failed to open config file")
		return Entry{}, false
	}
	defer file.Close()

	wantSection, _ := truncate(section, MaxSectionLen)
	wantKey, _ := truncate(key, MaxKeyLen)

	var (
		found Entry
		ok    bool
	)
	s := scanner{
		logger: logger,
		onEntry: func(e Entry) bool {
			if e.Section == wantSection && e.Key == wantKey {
				found, ok = e, true
				return false
			}
			return true
		},
	}
	if err := s.scan(file); err != nil {
		logger.Debug().Err(err).Str("path", path).Msg("config read stopped early")
	}
	if !ok {
		logger.Debug().Str("section", section).Str("key", key).Msg("key not found in section")
	}
	return found, ok
}

// Load reads every entry of the file at path.
func Load(path string) (Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	doc := Document{Path: path}
	seen := make(map[string]bool)
	s := scanner{
		logger: logging.WithComponent("config"),
		onSection: func(name string) {
			if name != "" && !seen[name] {
				seen[name] = true
				doc.sections = append(doc.sections, name)
			}
		},
		onEntry: func(e Entry) bool {
			doc.entries = append(doc.entries, e)
			return true
		},
	}
	if err := s.scan(file); err != nil {
		return Document{}, fmt.Errorf("read config: %w", err)
	}
	return doc, nil
}

// scanner walks INI lines and reports headers and pairs to its callbacks.
// Returning false from onEntry stops the scan.
type scanner struct {
	logger    zerolog.Logger
	onSection func(name string)
	onEntry   func(Entry) bool
}

func (s scanner) scan(r io.Reader) error {
	reader := bufio.NewReader(r)
	var cur cursor
	for {
		raw, err := reader.ReadString('\n')
		if raw != "" {
			cur.line++
			if !s.handle(&cur, strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")) {
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// cursor is the per-scan position: current line number and section.
type cursor struct {
	line    int
	section string
	clipped bool // section was truncated
}

func (s scanner) handle(cur *cursor, line string) bool {
	if line == "" || line[0] == '#' {
		return true
	}

	if line[0] == '[' {
		if end := strings.IndexByte(line, ']'); end >= 0 {
			name, clipped := truncate(line[1:end], MaxSectionLen)
			if clipped {
				s.logger.Warn().Int("line", cur.line).Str("section", name).Msg("section name truncated")
			}
			cur.section, cur.clipped = name, clipped
			s.logger.Debug().Str("section", name).Msg("found section")
			if s.onSection != nil {
				s.onSection(name)
			}
			return true
		}
	}

	eq := strings.IndexByte(line, '=')
	if eq < 0 || cur.section == "" {
		return true
	}
	key, keyClipped := truncate(trimBlank(line[:eq]), MaxKeyLen)
	value, valueClipped := truncate(trimBlank(line[eq+1:]), MaxValueLen)
	entry := Entry{
		Section:   cur.section,
		Key:       key,
		Value:     value,
		Line:      cur.line,
		Truncated: cur.clipped || keyClipped || valueClipped,
	}
	if keyClipped || valueClipped {
		s.logger.Warn().Int("line", cur.line).Str("section", entry.Section).Str("key", key).Msg("config field truncated")
	}
	s.logger.Debug().Str("section", entry.Section).Str("key", key).Str("value", value).Msg("found key-value pair")
	if s.onEntry == nil {
		return true
	}
	return s.onEntry(entry)
}

func trimBlank(s string) string {
	return strings.Trim(s, " \t")
}

// truncate clips s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) (string, bool) {
	if len(s) <= n {
		return s, false
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut], true
}
