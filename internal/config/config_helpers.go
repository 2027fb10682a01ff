package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// compileCUE loads and compiles a CUE file at the given path.
func compileCUE(path string) (cue.Value, error) {
	if filepath.Ext(path) != ".cue" {
		return cue.Value{}, invalid(errors.New("unsupported config format: expected .cue"))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, invalid(fmt.Errorf("failed to read config: %w", err))
	}
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return cue.Value{}, invalid(fmt.Errorf("invalid config: %v", err))
	}
	return v, nil
}

func requireStringField(v cue.Value, name string) error {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return invalid(fmt.Errorf("missing required field: %s", name))
	}
	if f.Kind() != cue.StringKind {
		return invalid(fmt.Errorf("invalid type for field: %s (expected string)", name))
	}
	return nil
}

// optionalString decodes path under v when it exists. A present field of the
// wrong kind is an error rather than silently ignored.
func optionalString(v cue.Value, path string, dst *string) (bool, error) {
	f := v.LookupPath(cue.ParsePath(path))
	if !f.Exists() {
		return false, nil
	}
	if f.Kind() != cue.StringKind {
		return false, invalid(fmt.Errorf("invalid type for field: %s (expected string)", path))
	}
	if err := f.Decode(dst); err != nil {
		return false, invalid(fmt.Errorf("invalid value for %s: %v", path, err))
	}
	return true, nil
}

func optionalInt(v cue.Value, path string, dst *int) (bool, error) {
	f := v.LookupPath(cue.ParsePath(path))
	if !f.Exists() {
		return false, nil
	}
	if f.Kind() != cue.IntKind {
		return false, invalid(fmt.Errorf("invalid type for field: %s (expected int)", path))
	}
	if err := f.Decode(dst); err != nil {
		return false, invalid(fmt.Errorf("invalid value for %s: %v", path, err))
	}
	return true, nil
}

func optionalBool(v cue.Value, path string, dst *bool) (bool, error) {
	f := v.LookupPath(cue.ParsePath(path))
	if !f.Exists() {
		return false, nil
	}
	if f.Kind() != cue.BoolKind {
		return false, invalid(fmt.Errorf("invalid type for field: %s (expected bool)", path))
	}
	if err := f.Decode(dst); err != nil {
		return false, invalid(fmt.Errorf("invalid value for %s: %v", path, err))
	}
	return true, nil
}
