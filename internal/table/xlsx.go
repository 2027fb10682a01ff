package table

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

type xlsxReader struct {
	f      *excelize.File
	rows   *excelize.Rows
	cols   columns
	policy RaggedPolicy
	line   int
	n      int
}

func openXLSX(path string, opts Options) (*xlsxReader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.Rows(sheet)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open sheet %q: %w", sheet, err)
	}
	xr := &xlsxReader{f: f, rows: rows, policy: opts.Ragged}
	header, err := xr.nextRecord()
	switch {
	case errors.Is(err, io.EOF):
		return xr, nil
	case err != nil:
		_ = xr.Close()
		return nil, fmt.Errorf("read header: %w", err)
	}
	xr.cols = newColumns(header)
	return xr, nil
}

// nextRecord skips rows with no non-empty cell, like blank CSV lines. Cells
// come back unformatted: a number shown as "1,234.50" or "25%" reads as
// "1234.5" or "0.25".
func (x *xlsxReader) nextRecord() ([]string, error) {
	for x.rows.Next() {
		x.line++
		cells, err := x.rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, err
		}
		if !blank(cells) {
			return cells, nil
		}
	}
	if err := x.rows.Error(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func blank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

// fitWidth squares a sheet row with the header. excelize omits trailing empty
// cells and may return styled empty cells past the last header column; neither
// is a field the row actually has or lacks.
func fitWidth(cells []string, width int) []string {
	for len(cells) > width && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	for len(cells) < width {
		cells = append(cells, "")
	}
	return cells
}

func (x *xlsxReader) Header() []string { return x.cols.names }

func (x *xlsxReader) Next() (Row, error) {
	if x.cols.width == 0 {
		return Row{}, io.EOF
	}
	record, err := x.nextRecord()
	if err != nil {
		return Row{}, err
	}
	x.n++
	return x.cols.row(x.n, x.line, fitWidth(record, x.cols.width), x.policy)
}

func (x *xlsxReader) Close() error {
	rerr := x.rows.Close()
	if err := x.f.Close(); err != nil {
		return err
	}
	return rerr
}
