package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/flarebyte/seshat-tally/internal/logging"
	"github.com/flarebyte/seshat-tally/internal/report"
	"github.com/flarebyte/seshat-tally/internal/rowfilter"
	"github.com/flarebyte/seshat-tally/internal/table"
)

// DefaultInputPath is used when neither an argument, the config file nor a
// flag names the input.
const DefaultInputPath = "/workspace/sample_data.csv"

// Settings is the fully resolved configuration of one run.
type Settings struct {
	DefaultPath string
	Table       table.Options
	Filter      string
	Sandbox     rowfilter.Sandbox
	Format      report.Format
	Precision   int
	LogLevel    string
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		DefaultPath: DefaultInputPath,
		Table:       table.Options{Delimiter: ',', Ragged: table.RaggedAbsent},
		Sandbox:     rowfilter.DefaultSandbox(),
		Format:      report.FormatText,
		Precision:   report.DefaultPrecision,
		LogLevel:    logging.DefaultLevel,
	}
}

// Overrides carries command-line values. Empty strings leave the setting
// untouched.
type Overrides struct {
	ConfigPath  string
	DefaultPath string
	Delimiter   string
	Ragged      string
	Sheet       string
	Filter      string
	Format      string
	LogLevel    string
}

// Resolve applies the config file named by o.ConfigPath (if any) and then the
// overrides on top of Defaults.
func Resolve(o Overrides) (Settings, error) {
	s := Defaults()
	if o.ConfigPath != "" {
		f, err := Load(o.ConfigPath)
		if err != nil {
			return Settings{}, err
		}
		if err := s.applyFile(f); err != nil {
			return Settings{}, err
		}
	}
	if err := s.applyOverrides(o); err != nil {
		return Settings{}, err
	}
	if s.Table.Comment != 0 && s.Table.Comment == s.Table.Delimiter {
		return Settings{}, invalidf("comment character %q equals the delimiter", s.Table.Comment)
	}
	return s, nil
}

func (s *Settings) applyFile(f File) error {
	in := f.Input
	if in.HasDefaultPath {
		s.DefaultPath = in.DefaultPath
	}
	if in.HasDelimiter {
		r, err := parseDelimiter("input.delimiter", in.Delimiter)
		if err != nil {
			return err
		}
		s.Table.Delimiter = r
	}
	if in.HasComment {
		r, err := parseDelimiter("input.comment", in.Comment)
		if err != nil {
			return err
		}
		s.Table.Comment = r
	}
	if in.HasRaggedRows {
		p, err := table.ParseRaggedPolicy(in.RaggedRows)
		if err != nil {
			return invalid(err)
		}
		s.Table.Ragged = p
	}
	if in.HasSheet {
		s.Table.Sheet = in.Sheet
	}
	if f.Filter.HasInline {
		s.Filter = f.Filter.Inline
	}
	s.applyLua(f.Lua)
	if f.Output.HasFormat {
		format, err := report.ParseFormat(f.Output.Format)
		if err != nil {
			return invalid(err)
		}
		s.Format = format
	}
	if f.Output.HasPrecision {
		if f.Output.Precision < 0 || f.Output.Precision > 12 {
			return invalidf("invalid value for output.precision: %d (expected 0..12)", f.Output.Precision)
		}
		s.Precision = f.Output.Precision
	}
	if f.Log.HasLevel {
		if _, err := logging.ParseLevel(f.Log.Level); err != nil {
			return invalid(err)
		}
		s.LogLevel = f.Log.Level
	}
	return nil
}

func (s *Settings) applyLua(l LuaSandbox) {
	if !l.HasSection {
		return
	}
	if l.HasTimeoutMs {
		s.Sandbox.TimeoutMs = l.TimeoutMs
	}
	if l.Libs.HasBase {
		s.Sandbox.Libs.Base = l.Libs.Base
	}
	if l.Libs.HasTable {
		s.Sandbox.Libs.Table = l.Libs.Table
	}
	if l.Libs.HasString {
		s.Sandbox.Libs.String = l.Libs.String
	}
	if l.Libs.HasMath {
		s.Sandbox.Libs.Math = l.Libs.Math
	}
}

func (s *Settings) applyOverrides(o Overrides) error {
	if o.DefaultPath != "" {
		s.DefaultPath = o.DefaultPath
	}
	if o.Delimiter != "" {
		r, err := parseDelimiter("--delimiter", o.Delimiter)
		if err != nil {
			return err
		}
		s.Table.Delimiter = r
	}
	if o.Ragged != "" {
		p, err := table.ParseRaggedPolicy(o.Ragged)
		if err != nil {
			return invalid(err)
		}
		s.Table.Ragged = p
	}
	if o.Sheet != "" {
		s.Table.Sheet = o.Sheet
	}
	if o.Filter != "" {
		s.Filter = o.Filter
	}
	if o.Format != "" {
		format, err := report.ParseFormat(o.Format)
		if err != nil {
			return invalid(err)
		}
		s.Format = format
	}
	if o.LogLevel != "" {
		if _, err := logging.ParseLevel(o.LogLevel); err != nil {
			return invalid(err)
		}
		s.LogLevel = o.LogLevel
	}
	return nil
}

// parseDelimiter accepts exactly one character that encoding/csv allows as a
// separator.
func parseDelimiter(field, s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError {
		return 0, invalidf("invalid value for %s: %q (expected a single character)", field, s)
	}
	switch r {
	case '"', '\r', '\n':
		return 0, invalidf("invalid value for %s: %q (not allowed as a separator)", field, s)
	}
	return r, nil
}

// String renders the settings for debug logs.
func (s Settings) String() string {
	return fmt.Sprintf("defaultPath=%s delimiter=%q ragged=%s sheet=%q filter=%t format=%s precision=%d",
		s.DefaultPath, s.Table.Delimiter, s.Table.Ragged, s.Table.Sheet, s.Filter != "", s.Format, s.Precision)
}
