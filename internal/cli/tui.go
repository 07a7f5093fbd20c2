package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// TemplateListModel is the bubbletea model for interactive template selection.
type TemplateListModel struct {
	Templates []manifestTemplate
	Cursor    int
	Selected  *manifestTemplate
}

// NewTemplateListModel creates a new template list model.
func NewTemplateListModel(templates []manifestTemplate) TemplateListModel {
	return TemplateListModel{Templates: templates}
}

func (m TemplateListModel) Init() tea.Cmd {
	return nil
}

func (m TemplateListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Templates)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Templates[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m TemplateListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Pattern"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, t := range m.Templates {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-12s %s", cursor, t.Name, listDimStyle.Render(t.Description))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.Cursor < len(m.Templates) {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(strings.Repeat("-", 40)))
		b.WriteString("\n")
		for _, line := range strings.Split(strings.TrimRight(m.Templates[m.Cursor].Body, "\n"), "\n") {
			b.WriteString(listDimStyle.Render("  " + line))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// pickTemplate runs the interactive template picker and returns the
// selection, or false when the user quit without choosing.
func pickTemplate() (manifestTemplate, bool, error) {
	model := NewTemplateListModel(templates)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return manifestTemplate{}, false, err
	}
	m, ok := final.(TemplateListModel)
	if !ok || m.Selected == nil {
		return manifestTemplate{}, false, nil
	}
	return *m.Selected, true, nil
}
