// Package config loads the optional CUE config file and merges it with the
// built-in defaults and command-line overrides into Settings.
package config

import (
	"errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
)

// ErrInvalidConfig wraps every error caused by the config file or by an
// invalid setting value.
var ErrInvalidConfig = errors.New("invalid configuration")

// CurrentConfigVersion is the only configVersion this build reads.
const CurrentConfigVersion = "1"

var supportedConfigVersions = []string{CurrentConfigVersion}

func isSupportedConfigVersion(v string) bool {
	for _, s := range supportedConfigVersions {
		if v == s {
			return true
		}
	}
	return false
}

type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }

func (e configError) Unwrap() []error { return []error{ErrInvalidConfig, e.err} }

func invalid(err error) error { return configError{err: err} }

func invalidf(format string, a ...any) error { return invalid(fmt.Errorf(format, a...)) }

// File holds the values present in a config file, each with a presence flag.
type File struct {
	ConfigVersion string
	Input         Input
	Filter        Filter
	Lua           LuaSandbox
	Output        Output
	Log           Log
}

// Input holds optional input settings.
type Input struct {
	DefaultPath    string
	Delimiter      string
	Comment        string
	RaggedRows     string
	Sheet          string
	HasDefaultPath bool
	HasDelimiter   bool
	HasComment     bool
	HasRaggedRows  bool
	HasSheet       bool
}

// Filter holds the optional Lua row predicate.
type Filter struct {
	Inline    string
	HasInline bool
}

// Output holds optional output settings.
type Output struct {
	Format       string
	Precision    int
	HasFormat    bool
	HasPrecision bool
}

// Log holds optional logging settings.
type Log struct {
	Level    string
	HasLevel bool
}

// Load compiles the CUE file at path and extracts the known sections.
// Required field: configVersion (string, supported version).
func Load(path string) (File, error) {
	v, err := compileCUE(path)
	if err != nil {
		return File{}, err
	}
	if err := requireStringField(v, "configVersion"); err != nil {
		return File{}, err
	}
	var f File
	if err := v.LookupPath(cue.ParsePath("configVersion")).Decode(&f.ConfigVersion); err != nil {
		return File{}, invalidf("invalid value for configVersion: %v", err)
	}
	if !isSupportedConfigVersion(f.ConfigVersion) {
		return File{}, invalidf("unsupported configVersion: %q (supported: %s)", f.ConfigVersion, strings.Join(supportedConfigVersions, ", "))
	}
	if f.Input, err = parseInputSection(v); err != nil {
		return File{}, err
	}
	if f.Filter.HasInline, err = optionalString(v, "filter.inline", &f.Filter.Inline); err != nil {
		return File{}, err
	}
	if f.Lua, err = parseLuaSandboxSection(v); err != nil {
		return File{}, err
	}
	if f.Output.HasFormat, err = optionalString(v, "output.format", &f.Output.Format); err != nil {
		return File{}, err
	}
	if f.Output.HasPrecision, err = optionalInt(v, "output.precision", &f.Output.Precision); err != nil {
		return File{}, err
	}
	if f.Log.HasLevel, err = optionalString(v, "log.level", &f.Log.Level); err != nil {
		return File{}, err
	}
	return f, nil
}

func parseInputSection(v cue.Value) (Input, error) {
	var in Input
	var err error
	if in.HasDefaultPath, err = optionalString(v, "input.defaultPath", &in.DefaultPath); err != nil {
		return Input{}, err
	}
	if in.HasDelimiter, err = optionalString(v, "input.delimiter", &in.Delimiter); err != nil {
		return Input{}, err
	}
	if in.HasComment, err = optionalString(v, "input.comment", &in.Comment); err != nil {
		return Input{}, err
	}
	if in.HasRaggedRows, err = optionalString(v, "input.raggedRows", &in.RaggedRows); err != nil {
		return Input{}, err
	}
	if in.HasSheet, err = optionalString(v, "input.sheet", &in.Sheet); err != nil {
		return Input{}, err
	}
	return in, nil
}
