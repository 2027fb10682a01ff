package rowfilter

import (
	"context"
	"errors"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

const defaultTimeoutMs = 200

// Libs is the allowlist of Lua standard libraries opened for a filter.
type Libs struct {
	Base   bool
	Table  bool
	String bool
	Math   bool
}

// Sandbox bounds what a filter may do.
type Sandbox struct {
	// TimeoutMs caps a single predicate call. Zero or less disables the cap.
	TimeoutMs int
	Libs      Libs
}

// DefaultSandbox opens base, table, string and math with a 200ms call cap.
func DefaultSandbox() Sandbox {
	return Sandbox{
		TimeoutMs: defaultTimeoutMs,
		Libs:      Libs{Base: true, Table: true, String: true, Math: true},
	}
}

// ErrTimeout is returned when a predicate call exceeds Sandbox.TimeoutMs.
var ErrTimeout = errors.New("sandbox timeout")

// base functions that reach outside the sandbox or write to stdout.
var unsafeBase = []string{"dofile", "loadfile", "print"}

func newSandboxState(sb Sandbox) *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs:    true,
		RegistrySize:    256,
		RegistryMaxSize: 4096,
	})
	openLib := func(name string, f lua.LGFunction) {
		L.Push(L.NewFunction(f))
		L.Push(lua.LString(name))
		L.Call(1, 0)
	}
	if sb.Libs.Base {
		openLib(lua.BaseLibName, lua.OpenBase)
		for _, name := range unsafeBase {
			L.SetGlobal(name, lua.LNil)
		}
	}
	if sb.Libs.String {
		openLib(lua.StringLibName, lua.OpenString)
	}
	if sb.Libs.Table {
		openLib(lua.TabLibName, lua.OpenTable)
	}
	if sb.Libs.Math {
		openLib(lua.MathLibName, lua.OpenMath)
	}
	return L
}

func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadline") || strings.Contains(msg, "context canceled")
}
