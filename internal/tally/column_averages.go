package tally

import (
	"context"

	"github.com/flarebyte/seshat-tally/internal/numeric"
	"github.com/flarebyte/seshat-tally/internal/table"
	"github.com/montanaflynn/stats"
)

// ColumnAverage is the mean of one column's numeric cells. Count is the number
// of cells that contributed; a column with Count == 0 is non-numeric and its
// Mean is meaningless.
type ColumnAverage struct {
	Column string  `json:"column" yaml:"column"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Count  int     `json:"count" yaml:"count"`
}

// Numeric reports whether the column held at least one numeric cell.
func (c ColumnAverage) Numeric() bool { return c.Count > 0 }

// Averages lists every header column exactly once, in header order.
type Averages []ColumnAverage

// Lookup finds a column by name.
func (a Averages) Lookup(column string) (ColumnAverage, bool) {
	for _, c := range a {
		if c.Column == column {
			return c, true
		}
	}
	return ColumnAverage{}, false
}

// ColumnAverages returns the mean of every column's numeric cells. Columns
// without any numeric cell are present with Count == 0. On error the result is
// nil.
func ColumnAverages(ctx context.Context, path string, opts Options) (Averages, error) {
	values := map[string][]float64{}
	header, err := scan(ctx, path, opts, func(header []string, row table.Row) {
		for _, name := range header {
			if f, ok := numeric.Parse(row.Values[name]); ok {
				values[name] = append(values[name], f)
			}
		}
	})
	if err != nil {
		return nil, err
	}

	out := make(Averages, 0, len(header))
	for _, name := range header {
		col := ColumnAverage{Column: name, Count: len(values[name])}
		if col.Count > 0 {
			mean, err := stats.Mean(values[name])
			if err == nil {
				col.Mean = mean
			}
		}
		out = append(out, col)
	}
	return out, nil
}
