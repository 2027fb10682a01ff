package report

import (
	"encoding/json"

	"github.com/flarebyte/seshat-tally/internal/tally"
)

type jsonAverage struct {
	Column  string   `json:"column"`
	Average *float64 `json:"average"`
	Count   int      `json:"count"`
}

type jsonError struct {
	Stage   string `json:"stage"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// jsonDocument fixes the field order of the JSON output.
type jsonDocument struct {
	Source   string         `json:"source"`
	RowSums  []tally.RowSum `json:"rowSums"`
	Averages []jsonAverage  `json:"averages"`
	Errors   []jsonError    `json:"errors,omitempty"`
}

func toJSONDocument(doc Document) jsonDocument {
	out := jsonDocument{
		Source:   doc.Source,
		RowSums:  doc.RowSums,
		Averages: make([]jsonAverage, 0, len(doc.Averages)),
	}
	if out.RowSums == nil {
		out.RowSums = []tally.RowSum{}
	}
	for _, c := range doc.Averages {
		a := jsonAverage{Column: c.Column, Count: c.Count}
		if c.Numeric() {
			a.Average = tally.Finite(c.Mean)
		}
		out.Averages = append(out.Averages, a)
	}
	for _, f := range doc.Errors {
		out.Errors = append(out.Errors, jsonError{Stage: f.Stage, Kind: f.Kind, Message: f.Text()})
	}
	return out
}

func (r *Renderer) finishJSON(doc Document) error {
	enc := json.NewEncoder(r.w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSONDocument(doc))
}
