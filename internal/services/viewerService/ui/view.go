package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	renderservice "github.com/redjax/nbview/internal/services/renderService"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("\n")

	list := panelStyle.Width(listWidth).Height(m.viewport.Height + 1).
		Render(m.buildFileTable(m.viewport.Height + 1).View())
	content := panelStyle.Width(m.viewport.Width).
		Render(m.contentTitle() + "\n" + m.viewport.View())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, content))
	b.WriteString("\n")

	if dialog := m.dialog(); dialog != "" {
		b.WriteString(dialogStyle.Render(dialog))
		b.WriteString("\n")
	}

	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) header() string {
	title := titleStyle.Render("nbview")
	info := subtitleStyle.Render(fmt.Sprintf("%d files · %s theme", len(m.files), m.ws.Theme()))
	if m.ws.Dirty() && m.ws.PersistenceError() == nil {
		info += mutedStyle.Render(" unsaved")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, " ", info)
}

func (m Model) contentTitle() string {
	if m.batch != nil {
		item, ok := m.batch.Current()
		if ok {
			pos, total := m.batch.Position()
			return subtitleStyle.Render(fmt.Sprintf("Preview %d/%d: %s", pos, total, item.Name))
		}
	}
	if m.active == "" {
		return mutedStyle.Render("nothing open")
	}
	title := renderservice.Describe(m.output)
	if m.cell >= 0 && len(m.output.Cells) > 0 {
		title += fmt.Sprintf(" · cell %d", m.cell+1)
	}
	return subtitleStyle.Render(title)
}

func (m Model) dialog() string {
	switch m.mode {
	case modeInput:
		return m.input.View()
	case modeConfirmDelete:
		return fmt.Sprintf("Delete %s? [y/n]", m.active)
	case modePreview:
		return "Import this file? [y] yes  [n] no  [esc] cancel remaining"
	case modeConflict:
		item, _ := m.batch.Current()
		return fmt.Sprintf("%s already exists. [o] overwrite  [r] rename existing  [s] skip  [esc] cancel remaining", item.Name)
	}
	return ""
}

func (m Model) statusLine() string {
	line := m.status
	if m.statusErr {
		line = errorStyle.Render(line)
	} else {
		line = statusStyle.Render(line)
	}
	if m.pending > 0 {
		line = m.spinner.View() + " " + line
	}
	return m.size.Line(line, lipgloss.NewStyle())
}
