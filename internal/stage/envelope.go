package stage

import "github.com/flarebyte/seshat-tally/internal/tally"

// Stage names.
const (
	RowSums        = "row-sums"
	ColumnAverages = "column-averages"
	WriteReport    = "write-report"
)

// Error is a calculator failure recorded by a stage.
type Error struct {
	Stage   string `json:"stage"`
	Kind    string `json:"kind"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// Meta holds run metadata with deterministic JSON field order.
type Meta struct {
	Stage      string `json:"stage,omitempty"`
	ConfigPath string `json:"configPath,omitempty"`
	Ragged     string `json:"ragged,omitempty"`
	Filter     string `json:"filter,omitempty"`
}

// Envelope is the JSON-serializable contract between stages. A nil result
// slice means its stage has not run; an empty one means it ran and found
// nothing.
type Envelope struct {
	Source   string         `json:"source"`
	RowSums  []tally.RowSum `json:"rowSums"`
	Averages tally.Averages `json:"averages"`
	Meta     *Meta          `json:"meta,omitempty"`
	Errors   []Error        `json:"errors,omitempty"`
}

// markStage sets meta.stage on a copy of the meta so the input envelope is
// left untouched.
func (e *Envelope) markStage(name string) {
	var m Meta
	if e.Meta != nil {
		m = *e.Meta
	}
	m.Stage = name
	e.Meta = &m
}
