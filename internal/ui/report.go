package ui

import (
	"fmt"
	"strings"

	"github.com/five82/hellomk/internal/config"
)

// Report renders the line-oriented demo output. In plain mode every line is
// unstyled text, byte for byte what a script would expect.
type Report struct {
	Plain  bool
	styles Styles
}

// NewReport returns a report renderer for the given theme.
func NewReport(theme Theme, plain bool) Report {
	return Report{Plain: plain, styles: theme.Styles()}
}

// Field renders "label: value".
func (r Report) Field(label, value string) string {
	if r.Plain {
		return fmt.Sprintf("%s: %s", label, value)
	}
	return r.styles.Label.Render(label+":") + " " + r.styles.Value.Render(value)
}

// Missing renders the message for a key that is absent from a section.
func (r Report) Missing(section, key string) string {
	msg := fmt.Sprintf("Key '%s' not found in section '%s'", key, section)
	if r.Plain {
		return msg
	}
	return r.styles.WarningText.Render(msg)
}

// Failure renders a fatal message such as a missing config file.
func (r Report) Failure(msg string) string {
	if r.Plain {
		return msg
	}
	return r.styles.DangerText.Render(msg)
}

// Document renders every entry grouped under its section header.
func (r Report) Document(doc config.Document) string {
	var b strings.Builder
	for i, section := range doc.Sections() {
		if i > 0 {
			b.WriteString("\n")
		}
		header := "[" + section + "]"
		if !r.Plain {
			header = r.styles.Section.Render(header)
		}
		b.WriteString(header)
		b.WriteString("\n")
		for _, e := range doc.Entries(section) {
			b.WriteString(r.entry(e))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (r Report) entry(e config.Entry) string {
	if r.Plain {
		line := e.Key + " = " + e.Value
		if e.Truncated {
			line += " # truncated"
		}
		return line
	}
	line := r.styles.Label.Render(e.Key) + " = " + r.styles.Value.Render(e.Value)
	if e.Truncated {
		line += " " + r.styles.WarningText.Render("# truncated")
	}
	return line
}
