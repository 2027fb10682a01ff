package report

import (
	"github.com/jedib0t/go-pretty/v6/table"
)

func (r *Renderer) finishTable(doc Document) error {
	if len(doc.RowSums) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(r.w)
		t.SetStyle(table.StyleLight)
		t.SetTitle("Row sums")
		t.AppendHeader(table.Row{"Row", "Sum"})
		for _, rs := range doc.RowSums {
			t.AppendRow(table.Row{rs.Row, r.number(rs.Sum)})
		}
		t.Render()
	}

	if len(doc.Averages) == 0 {
		return r.printf("%s\n", noAveragesMessage)
	}
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Column averages")
	t.AppendHeader(table.Row{"Column", "Average", "Values"})
	for _, c := range doc.Averages {
		t.AppendRow(table.Row{c.Column, r.average(c), c.Count})
	}
	t.Render()
	return nil
}
