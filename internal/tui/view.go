package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	contentWidth := max(10, m.width)
	contentHeight := max(4, m.height-headerHeight-footerHeight)

	header := titleStyle.Render(" " + m.title + " ")
	header = lipgloss.NewStyle().Width(contentWidth).Render(header)

	var body string
	if m.showAttrs {
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		boxW := min(contentWidth, max(32, colW))
		m.tbl.SetWidth(boxW - 4)
		m.tbl.SetHeight(min(contentHeight-2, 20))
		attrsBox := boxStyle.Width(boxW).Render(m.tbl.View())
		body = lipgloss.Place(contentWidth, contentHeight, lipgloss.Center, lipgloss.Center, attrsBox)
	} else {
		body = lipgloss.NewStyle().Width(contentWidth).Height(contentHeight).Render(m.vp.View())
	}

	status := dimStyle.Render(" " + m.status + " ")
	footer := lipgloss.JoinVertical(lipgloss.Left, status, helpStyle.Render(m.help.View(m.keys)))
	footer = lipgloss.NewStyle().Width(contentWidth).Render(footer)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}
