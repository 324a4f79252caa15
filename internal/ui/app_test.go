package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/hellomk/internal/config"
	"github.com/five82/hellomk/internal/prefs"
	"github.com/five82/hellomk/internal/state"
)

func newTestStore(t *testing.T, content string) (*state.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hellomk.ini")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	doc, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	store := &state.Store{}
	store.Update(&doc, nil)
	return store, path
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return out
}

func readyModel(t *testing.T, opts Options) Model {
	t.Helper()
	m := New(opts)
	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return step(t, m, snapshotMsg(opts.Store.Snapshot()))
}

func TestModel_NotReadyUntilSized(t *testing.T) {
	m := New(Options{})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View = %q, want Loading...", got)
	}
}

func TestModel_SnapshotPopulatesSections(t *testing.T) {
	store, path := newTestStore(t, "[server]\nport=8080\n[database]\nhost=localhost\n")
	m := readyModel(t, Options{Store: store, Path: path})

	if got := m.SelectedSection(); got != "server" {
		t.Fatalf("SelectedSection = %q, want %q", got, "server")
	}
	view := m.View()
	for _, want := range []string{"[server]", "[database]", "port", "8080"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View missing %q:\n%s", want, view)
		}
	}
}

func TestModel_SectionNavigation(t *testing.T) {
	store, path := newTestStore(t, "[a]\nk=1\n[b]\nk=2\n[c]\nk=3\n")
	m := readyModel(t, Options{Store: store, Path: path})

	m = step(t, m, runes("j"))
	if got := m.SelectedSection(); got != "b" {
		t.Fatalf("after j SelectedSection = %q, want %q", got, "b")
	}
	m = step(t, m, runes("G"))
	if got := m.SelectedSection(); got != "c" {
		t.Fatalf("after G SelectedSection = %q, want %q", got, "c")
	}
	m = step(t, m, runes("j"))
	if got := m.SelectedSection(); got != "c" {
		t.Fatalf("j past end SelectedSection = %q, want %q", got, "c")
	}
	m = step(t, m, runes("g"))
	if got := m.SelectedSection(); got != "a" {
		t.Fatalf("after g SelectedSection = %q, want %q", got, "a")
	}
}

func TestModel_TabMovesFocusToEntries(t *testing.T) {
	store, path := newTestStore(t, "[a]\nk=1\n[b]\nk=2\n")
	m := readyModel(t, Options{Store: store, Path: path})

	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Focus() != PaneEntries {
		t.Fatalf("Focus = %v, want PaneEntries", m.Focus())
	}
	// j now moves inside the table, not between sections.
	m = step(t, m, runes("j"))
	if got := m.SelectedSection(); got != "a" {
		t.Fatalf("SelectedSection = %q, want %q while entries focused", got, "a")
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Focus() != PaneSections {
		t.Fatalf("Focus = %v, want PaneSections", m.Focus())
	}
}

func TestModel_SelectionSurvivesReload(t *testing.T) {
	store, path := newTestStore(t, "[a]\nk=1\n[b]\nk=2\n")
	m := readyModel(t, Options{Store: store, Path: path})
	m = step(t, m, runes("j"))

	if err := os.WriteFile(path, []byte("[new]\nx=1\n[a]\nk=1\n[b]\nk=22\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	doc, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	store.Update(&doc, nil)
	m = step(t, m, snapshotMsg(store.Snapshot()))

	if got := m.SelectedSection(); got != "b" {
		t.Fatalf("SelectedSection = %q after reload, want %q", got, "b")
	}
	if !strings.Contains(m.View(), "22") {
		t.Fatalf("View should show reloaded value:\n%s", m.View())
	}
}

func TestModel_CycleThemeSavesPrefs(t *testing.T) {
	store, path := newTestStore(t, "[a]\nk=1\n")
	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")
	m := readyModel(t, Options{Store: store, Path: path, ThemeName: "Nightfox", PrefsPath: prefsPath})

	m = step(t, m, runes("T"))
	if got := m.ThemeName(); got != "Kanagawa" {
		t.Fatalf("ThemeName = %q, want %q", got, "Kanagawa")
	}
	if got := prefs.Load(prefsPath).Theme; got != "Kanagawa" {
		t.Fatalf("saved theme = %q, want %q", got, "Kanagawa")
	}
}

func TestModel_QuitKey(t *testing.T) {
	store, path := newTestStore(t, "[a]\nk=1\n")
	m := readyModel(t, Options{Store: store, Path: path})

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("q returned nil cmd, want tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q cmd produced %T, want tea.QuitMsg", cmd())
	}
}

func TestModel_HeaderShowsReloadError(t *testing.T) {
	store, _ := newTestStore(t, "[a]\nk=1\n")
	m := readyModel(t, Options{Store: store, Path: "hellomk.ini"})

	store.Update(nil, os.ErrPermission)
	m = step(t, m, snapshotMsg(store.Snapshot()))
	if !strings.Contains(m.View(), "reload failed") {
		t.Fatalf("View should report reload failure:\n%s", m.View())
	}
	// Previous document is still shown.
	if got := m.SelectedSection(); got != "a" {
		t.Fatalf("SelectedSection = %q, want %q", got, "a")
	}
}

func TestModel_SourceViewFollowsCursor(t *testing.T) {
	store, path := newTestStore(t, "# demo\n[server]\nport=8080\n; note\nhost=example\n")
	m := readyModel(t, Options{Store: store, Path: path})

	m = step(t, m, runes("v"))
	if !m.ShowingSource() {
		t.Fatalf("ShowingSource = false after v")
	}
	entry, ok := m.SelectedEntry()
	if !ok || entry.Key != "port" {
		t.Fatalf("SelectedEntry = %#v, %v, want port", entry, ok)
	}
	view := m.View()
	for _, want := range []string{"# demo", "port=8080", "; note"} {
		if !strings.Contains(view, want) {
			t.Fatalf("source view missing %q:\n%s", want, view)
		}
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = step(t, m, runes("j"))
	entry, ok = m.SelectedEntry()
	if !ok || entry.Key != "host" || entry.Line != 5 {
		t.Fatalf("SelectedEntry = %#v, %v, want host on line 5", entry, ok)
	}
	if !strings.Contains(m.View(), "host=example") {
		t.Fatalf("source view should follow the cursor:\n%s", m.View())
	}

	m = step(t, m, runes("v"))
	if m.ShowingSource() {
		t.Fatalf("ShowingSource = true after second v")
	}
}

func TestModel_PlainUsesColourlessStyles(t *testing.T) {
	store, path := newTestStore(t, "[a]\nk=1\n")
	m := readyModel(t, Options{Store: store, Path: path, ThemeName: "Slate", Plain: true})

	styles := m.styles()
	if _, ok := styles.Text.GetForeground().(lipgloss.NoColor); !ok {
		t.Fatalf("Text foreground = %#v, want NoColor", styles.Text.GetForeground())
	}
	if !styles.Selected.GetReverse() {
		t.Fatalf("Selected should use reverse video in plain mode")
	}
	if _, ok := m.tableStyles().Selected.GetBackground().(lipgloss.NoColor); !ok {
		t.Fatalf("table selection background = %#v, want NoColor", m.tableStyles().Selected.GetBackground())
	}

	// Cycling the theme still works and keeps the plain preference.
	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")
	m = readyModel(t, Options{Store: store, Path: path, ThemeName: "Slate", Plain: true, PrefsPath: prefsPath})
	m = step(t, m, runes("T"))
	if got := prefs.Load(prefsPath); !got.Plain || got.Theme != "Nightfox" {
		t.Fatalf("saved prefs = %#v, want Plain with Nightfox", got)
	}
	if _, ok := m.styles().Text.GetForeground().(lipgloss.NoColor); !ok {
		t.Fatalf("Text foreground after T = %#v, want NoColor", m.styles().Text.GetForeground())
	}
}

func TestModel_ThemedStylesAreColoured(t *testing.T) {
	m := New(Options{ThemeName: "Slate"})
	if _, ok := m.styles().Text.GetForeground().(lipgloss.NoColor); ok {
		t.Fatalf("themed Text foreground should carry a colour")
	}
}
