package tui

import (
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
)

const maxColW = 40

// refreshAttrs rebuilds the table from the properties of the current page.
func (m *Model) refreshAttrs() {
	if len(m.pages) == 0 {
		m.showAttrs = false
		m.status = "no features"
		return
	}
	if len(m.pages[m.index].Properties) == 0 {
		// an empty table has nothing to render; fall back to the map
		m.showAttrs = false
		m.status = "no attributes for this feature"
		return
	}
	props := m.pages[m.index].Properties
	keyW, valW := len("key"), len("value")
	rows := make([]table.Row, 0, len(props))
	for i, p := range props {
		keyW = max(keyW, len(p.Key))
		valW = max(valW, len(p.Value))
		rows = append(rows, table.Row{strconv.Itoa(i + 1), p.Key, p.Value})
	}
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "key", Width: min(keyW+2, maxColW)},
		{Title: "value", Width: min(valW+2, maxColW)},
	}
	// clear rows first so SetColumns never sees rows of another width
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
	m.tbl.GotoTop()
	m.status = m.pageTitle() + "  attributes"
}
