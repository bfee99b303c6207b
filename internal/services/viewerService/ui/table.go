package ui

import (
	"fmt"

	t "github.com/evertras/bubble-table/table"
	renderservice "github.com/redjax/nbview/internal/services/renderService"
)

const (
	columnKeyIndex = "index"
	columnKeyName  = "name"
	columnKeyType  = "type"
)

func (m Model) buildFileTable(height int) t.Model {
	nameWidth := listWidth - 4 - 10 - 4
	columns := []t.Column{
		t.NewColumn(columnKeyIndex, "#", 4),
		t.NewColumn(columnKeyName, "Name", nameWidth),
		t.NewColumn(columnKeyType, "Type", 10),
	}

	rows := make([]t.Row, 0, len(m.files))
	for i, name := range m.files {
		rows = append(rows, t.NewRow(t.RowData{
			columnKeyIndex: fmt.Sprintf("%d", i+1),
			columnKeyName:  truncate(name, nameWidth),
			columnKeyType:  renderservice.ModeFor(name).String(),
		}))
	}

	pageSize := height - 6
	if pageSize < 1 {
		pageSize = 1
	}

	return t.New(columns).
		WithRows(rows).
		WithPageSize(pageSize).
		WithHighlightedRow(m.cursor).
		Focused(m.mode == modeBrowse)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width || width < 2 {
		return s
	}
	return string(r[:width-1]) + "…"
}
