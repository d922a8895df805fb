// internal/console/table.go
package console

import (
	"github.com/jedib0t/go-pretty/v6/table"
)

// Table renders rows under header as an aligned box-drawn table.
// Nothing is written when rows is empty; empty is printed instead.
func (p *Prompter) Table(header table.Row, rows []table.Row, empty string) {
	if len(rows) == 0 {
		if empty != "" {
			p.Println(empty)
		}
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.Render()
}
