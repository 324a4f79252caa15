// Package ui renders hellomk output: the line-oriented report printed by the
// default command and a Bubble Tea browser for inspecting a whole config file.
//
// # Package Structure
//
//   - theme.go: Lipgloss themes (Nightfox, Kanagawa, Slate) and derived styles
//   - report.go: Report renderer used by the CLI, with a plain mode
//   - app.go: Bubble Tea model for the browser
//   - keys.go: Browser key bindings, also fed to the bubbles help view
//
// # Browser
//
// The browser shows the sections of the document on the left and a table of
// the selected section's entries on the right. Tab moves focus between the
// two panes; j/k and g/G navigate whichever pane has focus. T cycles the theme
// and saves the choice to the prefs file. The model polls state.Store on a
// tick, so reloads done by the file watcher appear without user action, and
// the selected section is kept by name across reloads. v swaps the entry
// table for the raw file lines around the selected entry (package excerpt).
//
// # Plain Output
//
// With Plain set, Report emits the unstyled lines of the classic board
// demo output ("Server Port: 8080", "Key 'user' not found in section 'database'").
// Scripts and tests rely on this mode.
package ui
