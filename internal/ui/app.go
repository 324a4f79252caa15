package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/hellomk/internal/config"
	"github.com/five82/hellomk/internal/excerpt"
	"github.com/five82/hellomk/internal/prefs"
	"github.com/five82/hellomk/internal/state"
)

// Pane identifies which half of the browser receives navigation keys.
type Pane int

const (
	PaneSections Pane = iota
	PaneEntries
)

const (
	sectionPaneWidth = 24
	chromeHeight     = 4 // header, footer and pane borders
	sourceRadius     = 3
	snapshotTick     = time.Second
)

// Options configures the browser.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Path      string
	ThemeName string
	PrefsPath string
	Plain     bool // render without colours
}

// Model is the root browser state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	path      string
	prefsPath string
	plain     bool

	// UI state
	theme      Theme
	keys       keyMap
	help       help.Model
	focus      Pane
	width      int
	height     int
	ready      bool
	showHelp   bool
	showSource bool

	// Data state
	snapshot        state.Snapshot
	sections        []string
	selectedSection int
	entries         table.Model
	rows            []config.Entry
	source          []excerpt.Line
	sourceErr       error
}

// New creates a new browser model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	entries := table.New(
		table.WithColumns(entryColumns(80)),
		table.WithFocused(false),
	)
	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		path:      opts.Path,
		prefsPath: opts.PrefsPath,
		plain:     opts.Plain,
		theme:     GetTheme(opts.ThemeName),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		focus:     PaneSections,
		entries:   entries,
	}
	m.entries.SetStyles(m.tableStyles())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(snapshotTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.resizeEntries()
		return m, nil

	case tickMsg:
		if m.ctx.Err() != nil {
			return m, tea.Quit
		}
		cmds := []tea.Cmd{tickCmd(snapshotTick)}
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.styles().Footer.Render(m.renderHelp()))
	return b.String()
}

// SelectedSection returns the section whose entries are shown, or "".
func (m Model) SelectedSection() string {
	if m.selectedSection < 0 || m.selectedSection >= len(m.sections) {
		return ""
	}
	return m.sections[m.selectedSection]
}

// Focus reports which pane receives navigation keys.
func (m Model) Focus() Pane {
	return m.focus
}

// SelectedEntry returns the entry under the table cursor.
func (m Model) SelectedEntry() (config.Entry, bool) {
	cursor := m.entries.Cursor()
	if cursor < 0 || cursor >= len(m.rows) {
		return config.Entry{}, false
	}
	return m.rows[cursor], true
}

// ShowingSource reports whether the entries pane shows raw file lines.
func (m Model) ShowingSource() bool {
	return m.showSource
}

// ThemeName reports the active theme.
func (m Model) ThemeName() string {
	return m.theme.Name
}

func (m Model) styles() Styles {
	if m.plain {
		return PlainStyles()
	}
	return m.theme.Styles()
}

func (m Model) tableStyles() table.Styles {
	if m.plain {
		return PlainTableStyles()
	}
	return m.theme.TableStyles()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.entries.SetStyles(m.tableStyles())
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Plain: m.plain})
		}
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.toggleFocus()
		return m, nil

	case key.Matches(msg, m.keys.Source):
		m.showSource = !m.showSource
		m.loadSource()
		return m, nil
	}

	if m.focus == PaneEntries {
		var cmd tea.Cmd
		m.entries, cmd = m.entries.Update(msg)
		m.loadSource()
		return m, cmd
	}
	return m.handleSectionKey(msg)
}

func (m Model) handleSectionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.sections)
	if count == 0 {
		return m, nil
	}

	prev := m.selectedSection
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedSection < count-1 {
			m.selectedSection++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedSection > 0 {
			m.selectedSection--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedSection = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedSection = count - 1
	}
	if m.selectedSection != prev {
		m.updateEntries()
		m.entries.GotoTop()
		m.loadSource()
	}
	return m, nil
}

func (m *Model) toggleFocus() {
	if m.focus == PaneSections {
		m.focus = PaneEntries
		m.entries.Focus()
		return
	}
	m.focus = PaneSections
	m.entries.Blur()
}

// applySnapshot keeps the selection on the same section name across reloads.
func (m *Model) applySnapshot(snap state.Snapshot) {
	current := m.SelectedSection()
	m.snapshot = snap
	m.sections = snap.Document.Sections()
	m.selectedSection = 0
	for i, name := range m.sections {
		if name == current {
			m.selectedSection = i
			break
		}
	}
	m.updateEntries()
	m.loadSource()
}

func (m *Model) updateEntries() {
	section := m.SelectedSection()
	var rows []table.Row
	m.rows = nil
	if section != "" {
		m.rows = m.snapshot.Document.Entries(section)
		for _, e := range m.rows {
			value := e.Value
			if e.Truncated {
				value += "…"
			}
			rows = append(rows, table.Row{e.Key, value, strconv.Itoa(e.Line)})
		}
	}
	m.entries.SetRows(rows)
}

// loadSource reads the raw lines around the selected entry. It only touches
// the file while the source view is open.
func (m *Model) loadSource() {
	m.source, m.sourceErr = nil, nil
	if !m.showSource {
		return
	}
	entry, ok := m.SelectedEntry()
	if !ok {
		return
	}
	m.source, m.sourceErr = excerpt.Read(m.path, entry.Line, sourceRadius)
}

func (m *Model) resizeEntries() {
	tableWidth := m.width - sectionPaneWidth - 6
	if tableWidth < 20 {
		tableWidth = 20
	}
	height := m.height - chromeHeight - 2
	if height < 3 {
		height = 3
	}
	m.entries.SetColumns(entryColumns(tableWidth))
	m.entries.SetWidth(tableWidth)
	m.entries.SetHeight(height)
}

func entryColumns(width int) []table.Column {
	const lineWidth = 6
	keyWidth := width / 3
	valueWidth := width - keyWidth - lineWidth - 4
	if valueWidth < 5 {
		valueWidth = 5
	}
	return []table.Column{
		{Title: "Key", Width: keyWidth},
		{Title: "Value", Width: valueWidth},
		{Title: "Line", Width: lineWidth},
	}
}

func (m Model) renderHeader() string {
	styles := m.styles()
	logo := styles.Logo.Render("hellomk")
	path := styles.MutedText.Render(m.path)

	var status string
	switch {
	case m.snapshot.IsUnavailable():
		status = styles.DangerText.Render(fmt.Sprintf("unavailable: %v", m.snapshot.LastError))
	case m.snapshot.LastError != nil:
		status = styles.WarningText.Render(fmt.Sprintf("reload failed: %v", m.snapshot.LastError))
	case m.snapshot.HasDocument:
		status = styles.SuccessText.Render(fmt.Sprintf("%d entries", m.snapshot.Document.Len())) +
			styles.FaintText.Render(" · loaded "+m.snapshot.LoadedAt.Format(time.TimeOnly))
	default:
		status = styles.FaintText.Render("no document")
	}
	return styles.Header.Width(m.width).Render(logo + "  " + path + "  " + status)
}

func (m Model) renderBody() string {
	styles := m.styles()

	var list strings.Builder
	if len(m.sections) == 0 {
		list.WriteString(styles.FaintText.Render("(no sections)"))
	}
	for i, name := range m.sections {
		if i > 0 {
			list.WriteString("\n")
		}
		line := "[" + name + "]"
		if i == m.selectedSection {
			list.WriteString(styles.Selected.Render(line))
		} else {
			list.WriteString(styles.Text.Render(line))
		}
	}

	sectionPane, entryPane := styles.Pane, styles.Pane
	if m.focus == PaneSections {
		sectionPane = styles.FocusedPane
	} else {
		entryPane = styles.FocusedPane
	}
	height := m.height - chromeHeight
	if height < 3 {
		height = 3
	}
	left := sectionPane.Width(sectionPaneWidth).Height(height).Render(list.String())
	right := entryPane.Height(height).Render(m.entries.View())
	if m.showSource {
		right = entryPane.Height(height).Render(m.renderSource())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderSource() string {
	styles := m.styles()
	if m.sourceErr != nil {
		return styles.DangerText.Render(m.sourceErr.Error())
	}
	if len(m.source) == 0 {
		return styles.FaintText.Render("(no source)")
	}
	entry, _ := m.SelectedEntry()
	var b strings.Builder
	for i, l := range m.source {
		if i > 0 {
			b.WriteString("\n")
		}
		line := fmt.Sprintf("%4d  %s", l.Number, l.Text)
		if l.Number == entry.Line {
			b.WriteString(styles.Selected.Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
	}
	return b.String()
}

func (m Model) renderHelp() string {
	if m.showHelp {
		return m.help.FullHelpView(m.keys.FullHelp())
	}
	return m.help.ShortHelpView(m.keys.ShortHelp())
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if _, err := p.Run(); err != nil {
		if m.ctx.Err() != nil {
			// Cancelled from outside, e.g. SIGINT via signal.NotifyContext.
			return nil
		}
		return err
	}
	return nil
}
