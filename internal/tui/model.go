// Package tui pages through rendered features in the terminal.
package tui

import (
	help "github.com/charmbracelet/bubbles/help"
	table "github.com/charmbracelet/bubbles/table"
	viewport "github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"geoascii/internal/style"
)

// Page is one rendered feature.
type Page struct {
	Title      string
	Body       string
	Properties []style.Property
}

type Model struct {
	width  int
	height int

	title  string
	pages  []Page
	index  int
	status string

	vp   viewport.Model
	keys keyMap
	help help.Model

	// attributes table
	showAttrs bool
	tbl       table.Model
}

// New returns a pager over pages, starting at the first one.
func New(title string, pages []Page) Model {
	m := Model{
		title: title,
		pages: pages,
		vp:    viewport.New(0, 0),
		keys:  defaultKeys(),
		help:  help.New(),
	}
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.show(0)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Index returns the position of the page on screen.
func (m Model) Index() int { return m.index }

// show switches to page i and resets the scroll position.
func (m *Model) show(i int) {
	if len(m.pages) == 0 {
		m.status = "no features"
		m.vp.SetContent("")
		return
	}
	m.index = min(max(i, 0), len(m.pages)-1)
	p := m.pages[m.index]
	m.vp.SetContent(p.Body)
	m.vp.GotoTop()
	m.status = m.pageTitle()
	if m.showAttrs {
		m.refreshAttrs()
	}
}
