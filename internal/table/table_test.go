package table

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func readAll(t *testing.T, r Reader) []Row {
	t.Helper()
	var rows []Row
	for {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			return rows
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
}

func TestOpenCSV_HeaderAndRows(t *testing.T) {
	p := writeFile(t, "in.csv", "a,b,c\n1,2,x\n\n4,5,6\n")
	r, err := Open(p, Options{})
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	assert.Equal(t, []string{"a", "b", "c"}, r.Header())
	rows := readAll(t, r)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{Index: 1, Values: map[string]string{"a": "1", "b": "2", "c": "x"}}, rows[0])
	assert.Equal(t, 2, rows[1].Index)
	assert.Equal(t, "6", rows[1].Values["c"])
}

func TestOpenCSV_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.csv"), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestOpenCSV_EmptyFile(t *testing.T) {
	r, err := Open(writeFile(t, "empty.csv", ""), Options{})
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	assert.Empty(t, r.Header())
	assert.Empty(t, readAll(t, r))
}

func TestOpenCSV_StripsBOM(t *testing.T) {
	r, err := Open(writeFile(t, "bom.csv", "\ufeffname,qty\nx,1\n"), Options{})
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	assert.Equal(t, []string{"name", "qty"}, r.Header())
}

func TestOpenCSV_RaggedAbsent(t *testing.T) {
	r, err := Open(writeFile(t, "ragged.csv", "a,b,c\n1\n1,2,3,4\n"), Options{Ragged: RaggedAbsent})
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	rows := readAll(t, r)
	require.Len(t, rows, 2)
	assert.Equal(t, map[string]string{"a": "1"}, rows[0].Values)
	assert.Equal(t, map[string]string{"a": "1", "b": "2", "c": "3"}, rows[1].Values)
}

func TestOpenCSV_RaggedStrict(t *testing.T) {
	r, err := Open(writeFile(t, "ragged.csv", "a,b,c\n1,2,3\n1,2\n"), Options{Ragged: RaggedStrict})
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	_, err = r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRaggedRow))
	assert.Contains(t, err.Error(), "line 3 has 2 fields, header has 3")
}

func TestOpenCSV_DuplicateHeaderUsesLastCell(t *testing.T) {
	r, err := Open(writeFile(t, "dup.csv", "a,b,a\n1,2,3\n"), Options{})
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	assert.Equal(t, []string{"a", "b"}, r.Header())
	rows := readAll(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, map[string]string{"a": "3", "b": "2"}, rows[0].Values)
}

func TestOpenCSV_DelimiterAndComment(t *testing.T) {
	r, err := Open(writeFile(t, "semi.csv", "# exported\na;b\n1;2\n# trailer\n"), Options{Delimiter: ';', Comment: '#'})
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	assert.Equal(t, []string{"a", "b"}, r.Header())
	rows := readAll(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, "2", rows[0].Values["b"])
}

func TestOpenCSV_LazyQuotes(t *testing.T) {
	r, err := Open(writeFile(t, "q.csv", "a,b\n5 \"in\",\"1,5\"\n"), Options{})
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	rows := readAll(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, `5 "in"`, rows[0].Values["a"])
	assert.Equal(t, "1,5", rows[0].Values["b"])
}

func TestParseRaggedPolicy(t *testing.T) {
	p, err := ParseRaggedPolicy("")
	require.NoError(t, err)
	assert.Equal(t, RaggedAbsent, p)

	p, err = ParseRaggedPolicy("strict")
	require.NoError(t, err)
	assert.Equal(t, RaggedStrict, p)

	_, err = ParseRaggedPolicy("pad")
	assert.EqualError(t, err, `invalid ragged policy: "pad" (expected absent or strict)`)
}

func TestOpenXLSX_FirstSheet(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"x", "y", "label"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{10, 20, "p"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{30, 40}))
	p := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(p))

	r, err := Open(p, Options{})
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	assert.Equal(t, []string{"x", "y", "label"}, r.Header())
	rows := readAll(t, r)
	require.Len(t, rows, 2)
	assert.Equal(t, map[string]string{"x": "10", "y": "20", "label": "p"}, rows[0].Values)
	assert.Equal(t, map[string]string{"x": "30", "y": "40", "label": ""}, rows[1].Values)
	assert.Equal(t, 2, rows[1].Index)
}

func TestOpenXLSX_NamedSheet(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	_, err := f.NewSheet("Data")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Data", "A1", &[]any{"v"}))
	require.NoError(t, f.SetSheetRow("Data", "A2", &[]any{1.5}))
	p := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(p))

	r, err := Open(p, Options{Sheet: "Data"})
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	rows := readAll(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, "1.5", rows[0].Values["v"])

	_, err = Open(p, Options{Sheet: "Missing"})
	assert.Error(t, err)
}

// styledBook writes amounts with a thousands format, a percent column and a
// trailing note column that is empty on the second row.
func styledBook(t *testing.T, extra ...[]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"amount", "pct", "note"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{1234.5, 0.25, "first"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{10, 0.5}))
	for i, row := range extra {
		cell, err := excelize.CoordinatesToCellName(1, 4+i)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	require.NoError(t, err)
	percent, err := f.NewStyle(&excelize.Style{NumFmt: 9})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "A2", "A3", thousands))
	require.NoError(t, f.SetCellStyle(sheet, "B2", "B3", percent))
	// A styled but empty cell past the last header column.
	require.NoError(t, f.SetCellStyle(sheet, "D3", "D3", percent))

	p := filepath.Join(t.TempDir(), "styled.xlsx")
	require.NoError(t, f.SaveAs(p))
	return p
}

func TestOpenXLSX_NumberFormatsReadRaw(t *testing.T) {
	r, err := Open(styledBook(t), Options{})
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	rows := readAll(t, r)
	require.Len(t, rows, 2)
	assert.Equal(t, map[string]string{"amount": "1234.5", "pct": "0.25", "note": "first"}, rows[0].Values)
	assert.Equal(t, map[string]string{"amount": "10", "pct": "0.5", "note": ""}, rows[1].Values)
}

func TestOpenXLSX_StrictAcceptsTrailingEmptyCells(t *testing.T) {
	r, err := Open(styledBook(t), Options{Ragged: RaggedStrict})
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	rows := readAll(t, r)
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[1].Values["note"])
}

func TestOpenXLSX_StrictRejectsSurplusCells(t *testing.T) {
	r, err := Open(styledBook(t, []any{1, 2, "x", "extra"}), Options{Ragged: RaggedStrict})
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	_, err = r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	require.ErrorIs(t, err, ErrRaggedRow)
	assert.Contains(t, err.Error(), "line 4 has 4 fields, header has 3")
}
