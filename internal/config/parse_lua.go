package config

import "cuelang.org/go/cue"

// LuaSandbox holds optional Lua sandbox settings for the row filter.
type LuaSandbox struct {
	TimeoutMs    int
	Libs         LuaLibs
	HasSection   bool
	HasTimeoutMs bool
}

// LuaLibs holds the optional library allowlist.
type LuaLibs struct {
	Base      bool
	Table     bool
	String    bool
	Math      bool
	HasBase   bool
	HasTable  bool
	HasString bool
	HasMath   bool
}

// parseLuaSandboxSection extracts optional lua sandbox settings.
func parseLuaSandboxSection(v cue.Value) (LuaSandbox, error) {
	var s LuaSandbox
	if !v.LookupPath(cue.ParsePath("lua")).Exists() {
		return s, nil
	}
	s.HasSection = true

	var err error
	if s.HasTimeoutMs, err = optionalInt(v, "lua.timeoutMs", &s.TimeoutMs); err != nil {
		return LuaSandbox{}, err
	}
	if s.Libs.HasBase, err = optionalBool(v, "lua.libs.base", &s.Libs.Base); err != nil {
		return LuaSandbox{}, err
	}
	if s.Libs.HasTable, err = optionalBool(v, "lua.libs.table", &s.Libs.Table); err != nil {
		return LuaSandbox{}, err
	}
	if s.Libs.HasString, err = optionalBool(v, "lua.libs.string", &s.Libs.String); err != nil {
		return LuaSandbox{}, err
	}
	if s.Libs.HasMath, err = optionalBool(v, "lua.libs.math", &s.Libs.Math); err != nil {
		return LuaSandbox{}, err
	}
	return s, nil
}
