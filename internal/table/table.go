// Package table reads header-first tabular files row by row. CSV is read with
// encoding/csv, XLSX workbooks with excelize. Both present the same Reader.
package table

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// RaggedPolicy decides what a record whose width differs from the header means.
type RaggedPolicy string

const (
	// RaggedAbsent treats missing trailing cells as absent and ignores surplus cells.
	RaggedAbsent RaggedPolicy = "absent"
	// RaggedStrict rejects any record whose width differs from the header.
	RaggedStrict RaggedPolicy = "strict"
)

// ErrRaggedRow is returned under RaggedStrict.
var ErrRaggedRow = errors.New("ragged row")

// ParseRaggedPolicy validates a policy name; empty selects RaggedAbsent.
func ParseRaggedPolicy(s string) (RaggedPolicy, error) {
	switch RaggedPolicy(s) {
	case "", RaggedAbsent:
		return RaggedAbsent, nil
	case RaggedStrict:
		return RaggedStrict, nil
	default:
		return "", fmt.Errorf("invalid ragged policy: %q (expected absent or strict)", s)
	}
}

// Options controls how a file is read.
type Options struct {
	// Delimiter separates CSV fields. Zero means ','.
	Delimiter rune

	// Comment starts a CSV comment line. Zero disables comments.
	Comment rune

	Ragged RaggedPolicy

	// Sheet selects the XLSX worksheet. Empty means the first sheet.
	Sheet string
}

// Row is one data record keyed by column name. Absent cells have no key.
type Row struct {
	Index  int // 1-indexed data row number, header excluded
	Values map[string]string
}

// Reader yields the header once and then data rows until io.EOF.
type Reader interface {
	// Header returns the distinct column names in header order.
	Header() []string
	Next() (Row, error)
	Close() error
}

// Open picks a reader from the file extension. Errors from opening the file
// are returned unwrapped enough for errors.Is(err, fs.ErrNotExist).
func Open(path string, opts Options) (Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return openXLSX(path, opts)
	default:
		return openCSV(path, opts)
	}
}

// columns maps raw record positions onto distinct header names. A name that
// occurs more than once takes its cell from the last occurrence.
type columns struct {
	names []string
	last  []int // last[i] is the raw position feeding names[i]
	width int
}

func newColumns(raw []string) columns {
	c := columns{width: len(raw)}
	pos := map[string]int{}
	for i, name := range raw {
		if j, ok := pos[name]; ok {
			c.last[j] = i
			continue
		}
		pos[name] = len(c.names)
		c.names = append(c.names, name)
		c.last = append(c.last, i)
	}
	return c
}

func (c columns) row(index, line int, record []string, policy RaggedPolicy) (Row, error) {
	if policy == RaggedStrict && len(record) != c.width {
		return Row{}, fmt.Errorf("%w: line %d has %d fields, header has %d", ErrRaggedRow, line, len(record), c.width)
	}
	values := make(map[string]string, len(c.names))
	for i, name := range c.names {
		if p := c.last[i]; p < len(record) {
			values[name] = record[p]
		}
	}
	return Row{Index: index, Values: values}, nil
}
