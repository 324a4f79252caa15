package config

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
)

// Document is the parsed content of a whole config file.
type Document struct {
	Path     string
	sections []string
	entries  []Entry
}

// Sections returns the non-empty section names in order of first appearance.
func (d Document) Sections() []string {
	if len(d.sections) == 0 {
		return nil
	}
	out := make([]string, len(d.sections))
	copy(out, d.sections)
	return out
}

// All returns every recognised entry in file order.
func (d Document) All() []Entry {
	if len(d.entries) == 0 {
		return nil
	}
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Entries returns the entries of one section in file order. A section that
// appears under several headers contributes entries from each of them.
func (d Document) Entries(section string) []Entry {
	var out []Entry
	for _, e := range d.entries {
		if e.Section == section {
			out = append(out, e)
		}
	}
	return out
}

// Get mirrors Lookup against the already parsed document.
func (d Document) Get(section, key string) (string, bool) {
	wantSection, _ := truncate(section, MaxSectionLen)
	wantKey, _ := truncate(key, MaxKeyLen)
	for _, e := range d.entries {
		if e.Section == wantSection && e.Key == wantKey {
			return e.Value, true
		}
	}
	return "", false
}

// Len reports the number of entries.
func (d Document) Len() int {
	return len(d.entries)
}

// Clone returns a copy that shares no slices with d.
func (d Document) Clone() Document {
	return Document{Path: d.Path, sections: d.Sections(), entries: d.All()}
}

// TOML renders the document as TOML tables, one per section.
// Only the first value of a repeated key is kept, matching Get. Pairs with
// an empty key are left out.
func (d Document) TOML() ([]byte, error) {
	tables := make(map[string]map[string]string, len(d.sections))
	for _, name := range d.sections {
		tables[name] = map[string]string{}
	}
	for _, e := range d.entries {
		if e.Key == "" {
			continue
		}
		table := tables[e.Section]
		if table == nil {
			table = map[string]string{}
			tables[e.Section] = table
		}
		if _, dup := table[e.Key]; !dup {
			table[e.Key] = e.Value
		}
	}
	out, err := toml.Marshal(tables)
	if err != nil {
		return nil, fmt.Errorf("marshal toml: %w", err)
	}
	return out, nil
}
