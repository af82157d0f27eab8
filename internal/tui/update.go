package tui

import (
	"fmt"

	key "github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	headerHeight = 1
	footerHeight = 2
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = max(1, msg.Height-headerHeight-footerHeight)
		return m, nil
	case tea.KeyMsg:
		// esc leaves the attributes view before it quits
		if m.showAttrs && msg.String() == "esc" {
			m.showAttrs = false
			m.status = m.pageTitle()
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.show(m.index + 1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.show(m.index - 1)
			return m, nil
		case key.Matches(msg, m.keys.First):
			m.show(0)
			return m, nil
		case key.Matches(msg, m.keys.Last):
			m.show(len(m.pages) - 1)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Attrs):
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrs()
			} else {
				m.status = m.pageTitle()
			}
			return m, nil
		}
	}
	// remaining keys scroll whichever view is on screen
	var cmd tea.Cmd
	if m.showAttrs {
		m.tbl, cmd = m.tbl.Update(msg)
	} else {
		m.vp, cmd = m.vp.Update(msg)
	}
	return m, cmd
}

func (m Model) pageTitle() string {
	if len(m.pages) == 0 {
		return "no features"
	}
	return fmt.Sprintf("%s  [%d/%d]", m.pages[m.index].Title, m.index+1, len(m.pages))
}
