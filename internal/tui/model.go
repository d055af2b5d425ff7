// Package tui is the terminal front end of the glossary.
package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/glossaryweb/glossary/internal/ai"
	"github.com/glossaryweb/glossary/internal/glossary"
)

type view int

const (
	viewMenu view = iota
	viewAdd
	viewSearch
	viewEdit
	viewList
	viewImport
)

const (
	fieldTerm = iota
	fieldDefinition
)

var menuItems = []string{
	"Add a term",
	"Search for a term",
	"View glossary",
	"Import document",
	"Exit",
}

// Model holds the whole terminal UI state.
type Model struct {
	api       API
	suggester ai.Suggester
	log       logrus.FieldLogger

	view   view
	cursor int
	busy   bool

	entries []glossary.Entry
	table   table.Model
	found   *glossary.Entry

	term       textinput.Model
	definition textinput.Model
	query      textinput.Model
	path       textinput.Model
	focus      int
	editID     int64

	status string
	err    error

	spinner spinner.Model
}

// New creates the UI model. suggester may be nil, which disables ctrl+s.
func New(api API, suggester ai.Suggester, log logrus.FieldLogger) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 6},
			{Title: "Term", Width: 24},
			{Title: "Definition", Width: 48},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return Model{
		api:        api,
		suggester:  suggester,
		log:        log,
		view:       viewMenu,
		table:      t,
		term:       newInput("Term", 100),
		definition: newInput("Definition", 500),
		query:      newInput("Term to search for", 100),
		path:       newInput("Path to a PDF, DOCX or text file", 1024),
		spinner:    s,
	}
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 50
	return in
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesMsg:
		m.busy = false
		if msg.err != nil {
			m.fail(msg.err)
			return m, nil
		}
		m.setEntries(msg.entries)
		return m, nil

	case doneMsg:
		m.busy = false
		if msg.err != nil {
			m.fail(msg.err)
			return m, nil
		}
		m.err = nil
		m.status = msg.status
		switch msg.from {
		case viewAdd:
			m.resetForm()
		case viewEdit:
			m.resetForm()
			m.view = viewList
		case viewImport:
			m.path.Reset()
			if msg.result != nil {
				for _, e := range msg.result.Errors {
					m.log.WithField("path", msg.result.Path).Warn(e)
				}
			}
		}
		return m.refresh()

	case searchMsg:
		m.busy = false
		if msg.err != nil {
			m.found = nil
			m.fail(msg.err)
			return m, nil
		}
		m.err = nil
		entry := msg.entry
		m.found = &entry
		return m, nil

	case suggestionMsg:
		m.busy = false
		if msg.err != nil {
			m.fail(msg.err)
			return m, nil
		}
		m.err = nil
		m.definition.SetValue(msg.definition)
		m.status = "Suggested a definition, edit it or press Enter to save"
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

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.view != viewMenu {
			m.returnToMenu()
		}
		return m, nil
	}

	switch m.view {
	case viewMenu:
		return m.updateMenu(msg)
	case viewAdd, viewEdit:
		return m.updateForm(msg)
	case viewSearch:
		return m.updateSearch(msg)
	case viewList:
		return m.updateList(msg)
	case viewImport:
		return m.updateImport(msg)
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case "enter":
		return m.handleMenuSelection()
	}
	return m, nil
}

func (m Model) handleMenuSelection() (tea.Model, tea.Cmd) {
	m.err = nil
	m.status = ""

	switch m.cursor {
	case 0: // Add a term
		m.view = viewAdd
		m.resetForm()
		return m, textinput.Blink

	case 1: // Search for a term
		m.view = viewSearch
		m.found = nil
		m.query.Reset()
		m.query.Focus()
		return m, textinput.Blink

	case 2: // View glossary
		m.view = viewList
		return m.refresh()

	case 3: // Import document
		m.view = viewImport
		m.path.Reset()
		m.path.Focus()
		return m, textinput.Blink

	case 4: // Exit
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down", "shift+tab", "up":
		if m.focus == fieldTerm {
			m.focusField(fieldDefinition)
		} else {
			m.focusField(fieldTerm)
		}
		return m, nil

	case "enter":
		if m.busy {
			return m, nil
		}
		m.begin()
		if m.view == viewEdit {
			return m, tea.Batch(m.updateEntry(m.editID, m.term.Value(), m.definition.Value()), m.spinner.Tick)
		}
		return m, tea.Batch(m.addEntry(m.term.Value(), m.definition.Value()), m.spinner.Tick)

	case "ctrl+s":
		if m.busy {
			return m, nil
		}
		if m.suggester == nil {
			m.fail(errNoSuggester)
			return m, nil
		}
		if err := glossary.Validate(m.term.Value(), "definition"); err != nil {
			m.fail(err)
			return m, nil
		}
		m.begin()
		return m, tea.Batch(m.suggestDefinition(m.term.Value()), m.spinner.Tick)
	}

	var cmd tea.Cmd
	if m.focus == fieldTerm {
		m.term, cmd = m.term.Update(msg)
	} else {
		m.definition, cmd = m.definition.Update(msg)
	}
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		if m.busy {
			return m, nil
		}
		m.begin()
		m.found = nil
		return m, tea.Batch(m.searchEntry(m.query.Value()), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	return m, cmd
}

func (m Model) updateImport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		if m.busy {
			return m, nil
		}
		m.begin()
		return m, tea.Batch(m.importDocument(m.path.Value()), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.returnToMenu()
		return m, nil

	case "r":
		m.status = ""
		return m.refresh()

	case "e":
		entry, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.view = viewEdit
		m.err = nil
		m.status = ""
		m.editID = entry.ID
		m.term.SetValue(entry.Term)
		m.definition.SetValue(entry.Definition)
		m.focusField(fieldTerm)
		return m, textinput.Blink

	case "d":
		entry, ok := m.selected()
		if !ok || m.busy {
			return m, nil
		}
		m.begin()
		return m, tea.Batch(m.deleteEntry(entry), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// refresh refetches the list; every mutation ends here.
func (m Model) refresh() (tea.Model, tea.Cmd) {
	m.busy = true
	return m, tea.Batch(m.fetchEntries(), m.spinner.Tick)
}

func (m *Model) begin() {
	m.busy = true
	m.err = nil
	m.status = ""
}

func (m *Model) fail(err error) {
	m.err = err
	m.status = ""
	m.log.WithError(err).Debug("glossary action failed")
}

func (m *Model) setEntries(entries []glossary.Entry) {
	m.entries = entries

	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{strconv.FormatInt(e.ID, 10), e.Term, e.Definition})
	}
	m.table.SetRows(rows)

	switch c := m.table.Cursor(); {
	case len(rows) == 0:
	case c < 0:
		m.table.SetCursor(0)
	case c >= len(rows):
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m Model) selected() (glossary.Entry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return glossary.Entry{}, false
	}
	return m.entries[i], true
}

func (m *Model) focusField(field int) {
	m.focus = field
	if field == fieldTerm {
		m.term.Focus()
		m.definition.Blur()
	} else {
		m.term.Blur()
		m.definition.Focus()
	}
}

func (m *Model) resetForm() {
	m.editID = 0
	m.term.Reset()
	m.definition.Reset()
	m.focusField(fieldTerm)
}

// returnToMenu clears every input and message.
func (m *Model) returnToMenu() {
	m.view = viewMenu
	m.resetForm()
	m.term.Blur()
	m.query.Reset()
	m.query.Blur()
	m.path.Reset()
	m.path.Blur()
	m.found = nil
	m.err = nil
	m.status = ""
}
