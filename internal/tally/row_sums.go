package tally

import (
	"context"

	"github.com/flarebyte/seshat-tally/internal/numeric"
	"github.com/flarebyte/seshat-tally/internal/table"
	"github.com/montanaflynn/stats"
)

// RowSum is the sum of one data row's numeric cells.
type RowSum struct {
	Row int     `json:"row" yaml:"row"`
	Sum float64 `json:"sum" yaml:"sum"`
}

// RowSums returns one sum per kept data row, in file order. onRow, when not
// nil, sees each sum as soon as its row has been read. On error the result is
// nil; rows already passed to onRow stay reported.
func RowSums(ctx context.Context, path string, opts Options, onRow func(RowSum)) ([]RowSum, error) {
	sums := []RowSum{}
	_, err := scan(ctx, path, opts, func(header []string, row table.Row) {
		rs := RowSum{Row: row.Index, Sum: sumRow(header, row)}
		sums = append(sums, rs)
		if onRow != nil {
			onRow(rs)
		}
	})
	if err != nil {
		return nil, err
	}
	return sums, nil
}

// sumRow adds the row's numeric cells in header order. A row without any
// numeric cell sums to zero.
func sumRow(header []string, row table.Row) float64 {
	values := make([]float64, 0, len(header))
	for _, name := range header {
		if f, ok := numeric.Parse(row.Values[name]); ok {
			values = append(values, f)
		}
	}
	if len(values) == 0 {
		return 0
	}
	total, err := stats.Sum(values)
	if err != nil {
		return 0
	}
	return total
}

// Sums drops the row numbers.
func Sums(rows []RowSum) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Sum
	}
	return out
}
