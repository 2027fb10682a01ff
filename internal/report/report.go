// Package report renders a tally run. The text format streams: the status
// line, each row sum and each failure are written the moment they happen and
// the column averages close the report. The table, JSON and YAML formats
// render once the run is complete.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/flarebyte/seshat-tally/internal/tally"
)

// Format selects the renderer.
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// DefaultPrecision is the number of decimals printed for sums and averages.
const DefaultPrecision = 2

// ParseFormat validates a format name; empty selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatText, nil
	case FormatText, FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid output format: %q (expected text, table, json or yaml)", s)
	}
}

// Failure kinds.
const (
	KindNotFound = "not-found"
	KindRead     = "read"
)

// Failure is a calculator error as reported to the user.
type Failure struct {
	Stage   string
	Kind    string
	Path    string
	Message string
}

// Text is the one-line message printed for f.
func (f Failure) Text() string {
	if f.Kind == KindNotFound {
		return "Error: file not found: " + f.Path
	}
	return "Error processing file: " + f.Message
}

// Document is the complete result of a run.
type Document struct {
	Source   string
	RowSums  []tally.RowSum
	Averages tally.Averages
	Errors   []Failure
}

const (
	sectionRule       = "------------------------------"
	nonNumericLabel   = "non-numeric column"
	noAveragesMessage = "Could not compute column averages, please check the file format."
)

// Renderer writes one run to w.
type Renderer struct {
	w         io.Writer
	format    Format
	precision int
}

// New returns a renderer. A negative precision selects DefaultPrecision.
func New(w io.Writer, format Format, precision int) *Renderer {
	if precision < 0 {
		precision = DefaultPrecision
	}
	if format == "" {
		format = FormatText
	}
	return &Renderer{w: w, format: format, precision: precision}
}

// Format reports the renderer's format.
func (r *Renderer) Format() Format { return r.format }

// Start announces the file being processed.
func (r *Renderer) Start(source string) error {
	switch r.format {
	case FormatText:
		return r.printf("Processing file: %s\n\nRow sums:\n%s\n", source, sectionRule)
	case FormatTable:
		return r.printf("Processing file: %s\n", source)
	}
	return nil
}

// RowSum reports one row as soon as it is known. Only the text format
// streams rows.
func (r *Renderer) RowSum(rs tally.RowSum) error {
	if r.format != FormatText {
		return nil
	}
	return r.printf("Row %d sum: %s\n", rs.Row, r.number(rs.Sum))
}

// Failure reports a calculator error. Structured formats carry it in the
// document instead.
func (r *Renderer) Failure(f Failure) error {
	switch r.format {
	case FormatText, FormatTable:
		return r.printf("%s\n", f.Text())
	}
	return nil
}

// Finish writes whatever the format has not streamed yet.
func (r *Renderer) Finish(doc Document) error {
	switch r.format {
	case FormatTable:
		return r.finishTable(doc)
	case FormatJSON:
		return r.finishJSON(doc)
	case FormatYAML:
		return r.finishYAML(doc)
	default:
		return r.finishText(doc)
	}
}

func (r *Renderer) finishText(doc Document) error {
	if len(doc.Averages) == 0 {
		return r.printf("%s\n", noAveragesMessage)
	}
	if err := r.printf("\nColumn averages:\n%s\n", sectionRule); err != nil {
		return err
	}
	for _, c := range doc.Averages {
		if err := r.printf("%s: %s\n", c.Column, r.average(c)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) number(v float64) string {
	return strconv.FormatFloat(v, 'f', r.precision, 64)
}

func (r *Renderer) average(c tally.ColumnAverage) string {
	if !c.Numeric() {
		return nonNumericLabel
	}
	return r.number(c.Mean)
}

func (r *Renderer) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(r.w, format, args...)
	return err
}
