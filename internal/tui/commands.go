package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glossaryweb/glossary/internal/client"
	"github.com/glossaryweb/glossary/internal/glossary"
)

var errNoSuggester = errors.New("definition suggestions are not configured (set ANTHROPIC_API_KEY)")

// API is the part of the glossary client the terminal UI drives.
type API interface {
	List(ctx context.Context) ([]glossary.Entry, error)
	Add(ctx context.Context, term, definition string) (glossary.Entry, error)
	Update(ctx context.Context, id int64, term, definition string) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) (glossary.Entry, error)
	Import(ctx context.Context, path string) (*client.ImportResult, error)
}

// entriesMsg carries a freshly fetched list
type entriesMsg struct {
	entries []glossary.Entry
	err     error
}

// doneMsg reports a finished mutation started from view from
type doneMsg struct {
	from   view
	status string
	err    error
	result *client.ImportResult
}

type searchMsg struct {
	entry glossary.Entry
	err   error
}

type suggestionMsg struct {
	definition string
	err        error
}

func (m Model) fetchEntries() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		entries, err := api.List(context.Background())
		return entriesMsg{entries: entries, err: err}
	}
}

func (m Model) addEntry(term, definition string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		if _, err := api.Add(context.Background(), term, definition); err != nil {
			return doneMsg{from: viewAdd, err: err}
		}
		return doneMsg{from: viewAdd, status: "Term successfully added!"}
	}
}

func (m Model) updateEntry(id int64, term, definition string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		if err := api.Update(context.Background(), id, term, definition); err != nil {
			return doneMsg{from: viewEdit, err: err}
		}
		return doneMsg{from: viewEdit, status: "Term successfully updated!"}
	}
}

func (m Model) deleteEntry(entry glossary.Entry) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		if err := api.Delete(context.Background(), entry.ID); err != nil {
			return doneMsg{from: viewList, err: err}
		}
		return doneMsg{from: viewList, status: fmt.Sprintf("Term %q deleted successfully.", entry.Term)}
	}
}

func (m Model) searchEntry(query string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		entry, err := api.Search(context.Background(), query)
		return searchMsg{entry: entry, err: err}
	}
}

func (m Model) importDocument(path string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		result, err := api.Import(context.Background(), path)
		if err != nil {
			return doneMsg{from: viewImport, err: err}
		}
		return doneMsg{from: viewImport, status: result.Summary(), result: result}
	}
}

func (m Model) suggestDefinition(term string) tea.Cmd {
	suggester := m.suggester
	return func() tea.Msg {
		definition, err := suggester.SuggestDefinition(context.Background(), term)
		return suggestionMsg{definition: definition, err: err}
	}
}
