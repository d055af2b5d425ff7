package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/glossaryweb/glossary/internal/glossary"
)

const title = "Glossary"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Padding(1, 2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)

	normalStyle = lipgloss.NewStyle()

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

func (m Model) View() string {
	var body string
	switch m.view {
	case viewAdd:
		body = m.renderForm("Add a term", "Enter to add")
	case viewEdit:
		body = m.renderForm(fmt.Sprintf("Edit term #%d", m.editID), "Enter to update")
	case viewSearch:
		body = m.renderSearch()
	case viewList:
		body = m.renderList()
	case viewImport:
		body = m.renderImport()
	default:
		body = m.renderMenu()
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render(title))
	s.WriteString("\n\n")
	s.WriteString(body)
	s.WriteString("\n\n")
	s.WriteString(m.renderStatus())

	return menuStyle.Render(s.String())
}

func (m Model) renderMenu() string {
	var s strings.Builder

	for i, item := range menuItems {
		if m.cursor == i {
			s.WriteString(selectedStyle.Render("> " + item))
		} else {
			s.WriteString(normalStyle.Render("  " + item))
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("Use ↑/↓ arrows or j/k to navigate, Enter to select, q to quit"))

	return s.String()
}

func (m Model) renderForm(heading, submit string) string {
	var s strings.Builder

	s.WriteString(selectedStyle.Render(heading))
	s.WriteString("\n\n")
	s.WriteString(labelStyle.Render("Term"))
	s.WriteString("\n")
	s.WriteString(m.term.View())
	s.WriteString("\n\n")
	s.WriteString(labelStyle.Render("Definition"))
	s.WriteString("\n")
	s.WriteString(m.definition.View())
	s.WriteString("\n\n")

	help := submit + ", Tab to switch fields, Esc to return to menu"
	if m.suggester != nil {
		help = submit + ", Tab to switch fields, Ctrl+S to suggest a definition, Esc to return to menu"
	}
	s.WriteString(helpStyle.Render(help))

	return s.String()
}

func (m Model) renderSearch() string {
	var s strings.Builder

	s.WriteString(selectedStyle.Render("Search for a term"))
	s.WriteString("\n\n")
	s.WriteString(m.query.View())
	s.WriteString("\n\n")

	if m.found != nil {
		s.WriteString(successStyle.Render("Term: " + m.found.Term))
		s.WriteString("\n")
		s.WriteString("Definition: " + m.found.Definition)
		s.WriteString("\n\n")
	}

	s.WriteString(helpStyle.Render("Enter to search, Esc to return to menu"))

	return s.String()
}

func (m Model) renderList() string {
	var s strings.Builder

	s.WriteString(selectedStyle.Render(glossary.CountLabel(len(m.entries))))
	s.WriteString("\n\n")

	if len(m.entries) == 0 {
		s.WriteString("No glossary items found.\n")
	} else {
		s.WriteString(m.table.View())
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("e to edit, d to delete, r to refresh, Esc to return to menu"))

	return s.String()
}

func (m Model) renderImport() string {
	var s strings.Builder

	s.WriteString(selectedStyle.Render("Import document"))
	s.WriteString("\n\n")
	s.WriteString("Lines like \"Term: Definition\" are added to the glossary.\n\n")
	s.WriteString(m.path.View())
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Enter to import, Esc to return to menu"))

	return s.String()
}

func (m Model) renderStatus() string {
	switch {
	case m.busy:
		return m.spinner.View() + " Working..."
	case m.err != nil:
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	case m.status != "":
		return successStyle.Render(m.status)
	}
	return ""
}
