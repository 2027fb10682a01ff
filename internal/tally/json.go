package tally

import (
	"encoding/json"
	"math"
)

// Finite returns v, or nil when v is ±Inf or NaN. Sums of large finite cells
// can overflow float64, and JSON has no literal for the result.
func Finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// MarshalJSON writes a non-finite sum as null.
func (r RowSum) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Row int      `json:"row"`
		Sum *float64 `json:"sum"`
	}{Row: r.Row, Sum: Finite(r.Sum)})
}

// MarshalJSON writes a non-finite mean as null; Count still tells a
// non-numeric column (0) from an overflowed one.
func (c ColumnAverage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Column string   `json:"column"`
		Mean   *float64 `json:"mean"`
		Count  int      `json:"count"`
	}{Column: c.Column, Mean: Finite(c.Mean), Count: c.Count})
}
