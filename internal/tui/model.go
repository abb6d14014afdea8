// Package tui is the interactive front end: a directory field, a search
// field and a checkable list of the files the session currently displays.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/IvanShishkin/printhound/internal/core"
	"github.com/IvanShishkin/printhound/internal/report"
	"github.com/IvanShishkin/printhound/pkg/models"
)

// Session is the part of core.Session the UI drives
type Session interface {
	SetPresenter(p core.Presenter)
	Scan(ctx context.Context, root string) (*models.ScanResults, error)
	Search(keywords string) ([]models.FileEntry, error)
	ToggleAll() int
	ToggleOne(path string) (bool, error)
	IsSelected(path string) bool
	PrintSelected(ctx context.Context) (*models.BatchOutcome, error)
}

type focus int

const (
	focusPath focus = iota
	focusSearch
	focusList
	focusCount
)

// chrome is the number of lines around the file list
const chrome = 11

type scanDoneMsg struct{ err error }

type printDoneMsg struct {
	outcome *models.BatchOutcome
	err     error
}

// Model is the bubbletea model of the interactive UI
type Model struct {
	ctx       context.Context
	session   Session
	presenter channelPresenter
	matchMode string

	keys        keyMap
	help        help.Model
	pathInput   textinput.Model
	searchInput textinput.Model
	spinner     spinner.Model

	focus    focus
	entries  []models.FileEntry
	cursor   int
	offset   int
	status   string
	selected int

	// busy is set while a scan or print runs; other operations wait for it
	busy   bool
	cancel context.CancelFunc

	width    int
	height   int
	quitting bool
}

// New creates the model and attaches it to session as its presenter
func New(ctx context.Context, session Session, root, matchMode string) Model {
	p := newChannelPresenter()
	session.SetPresenter(p)

	path := textinput.New()
	path.Prompt = ""
	path.Placeholder = "directory to scan"
	path.SetValue(root)
	path.Focus()

	search := textinput.New()
	search.Prompt = ""
	search.Placeholder = "keywords separated by spaces"

	return Model{
		ctx:         ctx,
		session:     session,
		presenter:   p,
		matchMode:   matchMode,
		keys:        defaultKeyMap(),
		help:        help.New(),
		pathInput:   path,
		searchInput: search,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(cursorStyle)),
		status:      "Enter a directory and press enter to scan.",
	}
}

// Run starts the program and blocks until the user quits
func Run(ctx context.Context, session Session, root, matchMode string) error {
	p := tea.NewProgram(New(ctx, session, root, matchMode), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.presenter.listen())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.clampCursor()
		return m, nil

	case listMsg:
		m.entries = msg
		m.cursor, m.offset = 0, 0
		return m, m.presenter.listen()

	case statusMsg:
		m.status = string(msg)
		return m, m.presenter.listen()

	case selectionMsg:
		m.selected = int(msg)
		return m, m.presenter.listen()

	case scanDoneMsg:
		m.finish()
		if msg.err == nil {
			return m, m.setFocus(focusList)
		}
		return m, nil

	case printDoneMsg:
		m.finish()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		if m.busy && m.cancel != nil {
			m.cancel()
		}
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		next := (m.focus + 1) % focusCount
		if msg.String() == "shift+tab" {
			next = (m.focus + focusCount - 1) % focusCount
		}
		return m, m.setFocus(next)

	case key.Matches(msg, m.keys.ToggleAll):
		return m.toggleAll()

	case key.Matches(msg, m.keys.Print):
		return m.print()

	case key.Matches(msg, m.keys.Submit):
		switch m.focus {
		case focusPath:
			return m.scan()
		case focusSearch:
			return m.search()
		default:
			return m.toggleCurrent()
		}
	}

	if m.focus != focusList {
		return m.updateInputs(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.listHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.listHeight())
	case key.Matches(msg, m.keys.Toggle):
		return m.toggleCurrent()
	case key.Matches(msg, m.keys.Search):
		return m, m.setFocus(focusSearch)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusPath:
		m.pathInput, cmd = m.pathInput.Update(msg)
	case focusSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.pathInput.Blur()
	m.searchInput.Blur()
	switch f {
	case focusPath:
		return m.pathInput.Focus()
	case focusSearch:
		return m.searchInput.Focus()
	}
	return nil
}

func (m *Model) start() context.Context {
	ctx, cancel := context.WithCancel(m.ctx)
	m.busy = true
	m.cancel = cancel
	return ctx
}

func (m *Model) finish() {
	if m.cancel != nil {
		m.cancel()
	}
	m.busy = false
	m.cancel = nil
}

func (m Model) scan() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	ctx := m.start()
	session, root := m.session, m.pathInput.Value()
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		_, err := session.Scan(ctx, root)
		return scanDoneMsg{err: err}
	})
}

func (m Model) print() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	ctx := m.start()
	session := m.session
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		outcome, err := session.PrintSelected(ctx)
		return printDoneMsg{outcome: outcome, err: err}
	})
}

// search, toggleCurrent and toggleAll are quick; they run inline and their
// events arrive through the presenter
func (m Model) search() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	_, _ = m.session.Search(m.searchInput.Value())
	return m, nil
}

func (m Model) toggleCurrent() (tea.Model, tea.Cmd) {
	if m.busy || len(m.entries) == 0 {
		return m, nil
	}
	if _, err := m.session.ToggleOne(m.entries[m.cursor].Path); err != nil {
		m.status = err.Error()
	}
	return m, nil
}

func (m Model) toggleAll() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.session.ToggleAll()
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

func (m Model) listHeight() int {
	if m.height == 0 {
		return 15
	}
	return max(m.height-chrome, 3)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	width := m.width - 4
	if width <= 0 {
		width = 80
	}
	rule := ruleStyle.Render(strings.Repeat("─", width))

	b.WriteString(titleStyle.Render("PRINTHOUND") + " " + dimStyle.Render("match: "+m.matchMode) + "\n\n")
	b.WriteString(m.label("Directory", focusPath) + m.pathInput.View() + "\n")
	b.WriteString(m.label("Search", focusSearch) + m.searchInput.View() + "\n")
	b.WriteString(rule + "\n")

	h := m.listHeight()
	if len(m.entries) == 0 {
		b.WriteString(dimStyle.Render("  No files") + "\n")
		h--
	}
	end := min(m.offset+h, len(m.entries))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.row(i, width) + "\n")
	}
	for i := end - m.offset; i < h; i++ {
		b.WriteString("\n")
	}

	b.WriteString(rule + "\n")

	status := statusStyle.Render(m.status)
	if m.busy {
		status = m.spinner.View() + " " + status
	}
	counts := dimStyle.Render(fmt.Sprintf("Selected: %d / %d", m.selected, len(m.entries)))
	gap := max(width-lipgloss.Width(status)-lipgloss.Width(counts), 1)
	b.WriteString(status + strings.Repeat(" ", gap) + counts + "\n\n")

	keys := m.keys
	if m.selected > 0 && m.selected == len(m.entries) {
		keys.ToggleAll.SetHelp("ctrl+a", "deselect all")
	}
	b.WriteString(m.help.View(keys))

	return appStyle.Render(b.String())
}

func (m Model) label(text string, f focus) string {
	if m.focus == f {
		return focusedLabelStyle.Render(text)
	}
	return labelStyle.Render(text)
}

func (m Model) row(i, width int) string {
	e := m.entries[i]

	check := "[ ]"
	if m.session.IsSelected(e.Path) {
		check = checkedStyle.Render("[x]")
	}

	prefix := "  "
	if m.focus == focusList && i == m.cursor {
		prefix = cursorStyle.Render("> ")
	}

	size := dimStyle.Render(report.FormatSize(e.Size))
	room := width - 6 - lipgloss.Width(size) - 1
	return prefix + check + " " + truncateLeft(e.Path, room) + " " + size
}

// truncateLeft keeps the end of path, which carries the file name
func truncateLeft(path string, n int) string {
	r := []rune(path)
	if n <= 1 || len(r) <= n {
		return path
	}
	return "…" + string(r[len(r)-n+1:])
}
