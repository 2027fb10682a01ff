package table

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const utf8BOM = "\ufeff"

type csvReader struct {
	f      *os.File
	r      *csv.Reader
	cols   columns
	policy RaggedPolicy
	n      int
}

func openCSV(path string, opts Options) (*csvReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(bufio.NewReader(f))
	r.Comma = ','
	if opts.Delimiter != 0 {
		r.Comma = opts.Delimiter
	}
	r.Comment = opts.Comment
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = true

	cr := &csvReader{f: f, r: r, policy: opts.Ragged}
	header, err := r.Read()
	switch {
	case errors.Is(err, io.EOF):
		// Empty file: no columns, no rows.
		return cr, nil
	case err != nil:
		_ = f.Close()
		return nil, fmt.Errorf("read header: %w", err)
	}
	raw := append([]string(nil), header...)
	raw[0] = strings.TrimPrefix(raw[0], utf8BOM)
	cr.cols = newColumns(raw)
	return cr, nil
}

func (c *csvReader) Header() []string { return c.cols.names }

func (c *csvReader) Next() (Row, error) {
	record, err := c.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Row{}, io.EOF
		}
		return Row{}, err
	}
	c.n++
	line, _ := c.r.FieldPos(0)
	return c.cols.row(c.n, line, record, c.policy)
}

func (c *csvReader) Close() error { return c.f.Close() }
