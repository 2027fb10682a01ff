package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/flarebyte/seshat-tally/internal/report"
	"github.com/flarebyte/seshat-tally/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write cfg: %v", err)
	}
	return p
}

func TestLoad_UnknownConfigVersion(t *testing.T) {
	cfg := writeConfig(t, "unknown_version.cue", "{\n  configVersion: \"2\"\n}\n")
	_, err := Load(cfg)
	if err == nil {
		t.Fatalf("expected error")
	}
	want := "unsupported configVersion: \"2\" (supported: 1)"
	if err.Error() != want {
		t.Fatalf("unexpected error\nwant: %s\n got: %s", want, err.Error())
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig")
	}
}

func TestLoad_RejectsNonCUE(t *testing.T) {
	_, err := Load(writeConfig(t, "seshat.yaml", "configVersion: 1\n"))
	assert.EqualError(t, err, "unsupported config format: expected .cue")
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.cue"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestLoad_MissingVersion(t *testing.T) {
	_, err := Load(writeConfig(t, "c.cue", "input: sheet: \"x\"\n"))
	assert.EqualError(t, err, "missing required field: configVersion")
}

func TestLoad_SyntaxError(t *testing.T) {
	_, err := Load(writeConfig(t, "c.cue", "configVersion: \"1\"\ninput: {\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config:")
}

func TestLoad_AllSections(t *testing.T) {
	cfg := writeConfig(t, "full.cue", `
configVersion: "1"
input: {
	defaultPath: "data/in.csv"
	delimiter:   ";"
	comment:     "#"
	raggedRows:  "strict"
	sheet:       "Data"
}
filter: inline: "num(row.qty) ~= nil"
lua: {
	timeoutMs: 50
	libs: {"string": false}
}
output: {
	format:    "json"
	precision: 3
}
log: level: "debug"
`)
	f, err := Load(cfg)
	require.NoError(t, err)
	assert.Equal(t, "1", f.ConfigVersion)
	assert.Equal(t, Input{
		DefaultPath: "data/in.csv", Delimiter: ";", Comment: "#", RaggedRows: "strict", Sheet: "Data",
		HasDefaultPath: true, HasDelimiter: true, HasComment: true, HasRaggedRows: true, HasSheet: true,
	}, f.Input)
	assert.Equal(t, Filter{Inline: "num(row.qty) ~= nil", HasInline: true}, f.Filter)
	assert.True(t, f.Lua.HasSection)
	assert.Equal(t, 50, f.Lua.TimeoutMs)
	assert.True(t, f.Lua.Libs.HasString)
	assert.False(t, f.Lua.Libs.String)
	assert.False(t, f.Lua.Libs.HasMath)
	assert.Equal(t, Output{Format: "json", Precision: 3, HasFormat: true, HasPrecision: true}, f.Output)
	assert.Equal(t, Log{Level: "debug", HasLevel: true}, f.Log)
}

func TestLoad_WrongKind(t *testing.T) {
	_, err := Load(writeConfig(t, "c.cue", "configVersion: \"1\"\noutput: precision: \"two\"\n"))
	assert.EqualError(t, err, "invalid type for field: output.precision (expected int)")
}

func TestResolve_Defaults(t *testing.T) {
	s, err := Resolve(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
	assert.Equal(t, DefaultInputPath, s.DefaultPath)
	assert.Equal(t, ',', s.Table.Delimiter)
	assert.Equal(t, table.RaggedAbsent, s.Table.Ragged)
	assert.Equal(t, report.FormatText, s.Format)
	assert.Equal(t, 2, s.Precision)
	assert.Equal(t, 200, s.Sandbox.TimeoutMs)
}

func TestResolve_FileThenFlags(t *testing.T) {
	cfg := writeConfig(t, "c.cue", `
configVersion: "1"
input: {
	defaultPath: "from-file.csv"
	delimiter:   ";"
	raggedRows:  "strict"
}
lua: libs: math: false
output: format: "yaml"
`)
	s, err := Resolve(Overrides{ConfigPath: cfg, Format: "table", Delimiter: `\t`})
	require.NoError(t, err)
	assert.Equal(t, "from-file.csv", s.DefaultPath)
	assert.Equal(t, '\t', s.Table.Delimiter)
	assert.Equal(t, table.RaggedStrict, s.Table.Ragged)
	assert.Equal(t, report.FormatTable, s.Format)
	assert.False(t, s.Sandbox.Libs.Math)
	assert.True(t, s.Sandbox.Libs.Base)
}

func TestResolve_InvalidValues(t *testing.T) {
	cases := []struct {
		name string
		o    Overrides
		want string
	}{
		{"delimiter", Overrides{Delimiter: ";;"}, `invalid value for --delimiter: ";;" (expected a single character)`},
		{"quote delimiter", Overrides{Delimiter: `"`}, `invalid value for --delimiter: "\"" (not allowed as a separator)`},
		{"ragged", Overrides{Ragged: "pad"}, `invalid ragged policy: "pad" (expected absent or strict)`},
		{"format", Overrides{Format: "xml"}, `invalid output format: "xml" (expected text, table, json or yaml)`},
		{"log level", Overrides{LogLevel: "loud"}, `invalid log level: "loud" (expected debug, info, warn or error)`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(tc.o)
			assert.EqualError(t, err, tc.want)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestResolve_CommentEqualsDelimiter(t *testing.T) {
	cfg := writeConfig(t, "c.cue", "configVersion: \"1\"\ninput: comment: \";\"\n")
	_, err := Resolve(Overrides{ConfigPath: cfg, Delimiter: ";"})
	assert.EqualError(t, err, `comment character ';' equals the delimiter`)
}

func TestResolve_PrecisionRange(t *testing.T) {
	cfg := writeConfig(t, "c.cue", "configVersion: \"1\"\noutput: precision: 20\n")
	_, err := Resolve(Overrides{ConfigPath: cfg})
	assert.EqualError(t, err, "invalid value for output.precision: 20 (expected 0..12)")
}
