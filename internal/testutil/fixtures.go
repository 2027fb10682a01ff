// Package testutil writes input fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/xuri/excelize/v2"
)

// WriteFile writes content to name inside a fresh temp dir and returns the path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", name, err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

// ColumnFormat applies a built-in number format (excelize NumFmt id) to the
// data rows of a column, e.g. {Column: "B", NumFmt: 9} for "0%".
type ColumnFormat struct {
	Column string
	NumFmt int
}

// WriteXLSX saves rows starting at A1 of sheet. An empty sheet name uses the
// workbook's default first sheet.
func WriteXLSX(t testing.TB, name, sheet string, rows [][]any, formats ...ColumnFormat) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if sheet == "" {
		sheet = f.GetSheetName(0)
	} else if _, err := f.NewSheet(sheet); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	for _, cf := range formats {
		if len(rows) < 2 {
			break
		}
		style, err := f.NewStyle(&excelize.Style{NumFmt: cf.NumFmt})
		if err != nil {
			t.Fatalf("new style: %v", err)
		}
		from, to := cf.Column+"2", cf.Column+strconv.Itoa(len(rows))
		if err := f.SetCellStyle(sheet, from, to, style); err != nil {
			t.Fatalf("set style: %v", err)
		}
	}
	p := filepath.Join(t.TempDir(), name)
	if err := f.SaveAs(p); err != nil {
		t.Fatalf("save %s: %v", name, err)
	}
	return p
}
