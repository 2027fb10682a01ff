// Package rowfilter evaluates an optional Lua predicate against each data
// row. Rows the predicate rejects take no part in any aggregate.
//
// The predicate sees two globals: row, a table of column name to raw cell
// text (absent cells are nil), and index, the 1-indexed data row number. The
// helper num(s) returns s as a number, or nil when the cell is not numeric,
// using the same rule as the aggregates. An expression without an explicit
// return is wrapped as `return (<expr>)`.
package rowfilter

import (
	"context"
	"fmt"
	"time"

	"github.com/flarebyte/seshat-tally/internal/numeric"
	"github.com/flarebyte/seshat-tally/internal/table"
	lua "github.com/yuin/gopher-lua"
)

// Filter is a compiled predicate bound to one Lua state. It is not safe for
// concurrent use.
type Filter struct {
	L       *lua.LState
	fn      *lua.LFunction
	timeout time.Duration
}

// Compile parses code once. The caller must Close the returned filter.
func Compile(code string, sb Sandbox) (*Filter, error) {
	L := newSandboxState(sb)
	L.SetGlobal("num", L.NewFunction(luaNum))
	fn, err := L.LoadString(wrapPredicate(code))
	if err != nil {
		L.Close()
		return nil, fmt.Errorf("row-filter: %v", err)
	}
	f := &Filter{L: L, fn: fn}
	if sb.TimeoutMs > 0 {
		f.timeout = time.Duration(sb.TimeoutMs) * time.Millisecond
	}
	return f, nil
}

// Keep reports whether row passes the predicate, using Lua truthiness.
func (f *Filter) Keep(ctx context.Context, row table.Row) (bool, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	f.L.SetContext(ctx)
	defer f.L.RemoveContext()

	f.L.SetGlobal("row", rowTable(f.L, row.Values))
	f.L.SetGlobal("index", lua.LNumber(row.Index))
	f.L.Push(f.fn)
	if err := f.L.PCall(0, 1, nil); err != nil {
		if isTimeoutError(err) {
			return false, fmt.Errorf("row-filter: row %d: %w", row.Index, ErrTimeout)
		}
		return false, fmt.Errorf("row-filter: row %d: %v", row.Index, err)
	}
	ret := f.L.Get(-1)
	f.L.Pop(1)
	return lua.LVAsBool(ret), nil
}

// Close releases the Lua state.
func (f *Filter) Close() {
	if f != nil && f.L != nil {
		f.L.Close()
	}
}

func wrapPredicate(code string) string {
	if containsReturn(code) {
		return code
	}
	return "return (" + code + ")"
}

// containsReturn reports whether the code uses the keyword "return", as a
// whole word: row.returns or areturn do not count.
func containsReturn(s string) bool {
	const kw = "return"
	for i := 0; i+len(kw) <= len(s); i++ {
		if s[i:i+len(kw)] != kw {
			continue
		}
		if i > 0 && isIdentByte(s[i-1]) {
			continue
		}
		if end := i + len(kw); end < len(s) && isIdentByte(s[end]) {
			continue
		}
		return true
	}
	return false
}

func isIdentByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func rowTable(L *lua.LState, values map[string]string) *lua.LTable {
	tbl := L.CreateTable(0, len(values))
	for k, v := range values {
		tbl.RawSetString(k, lua.LString(v))
	}
	return tbl
}

func luaNum(L *lua.LState) int {
	v := L.Get(1)
	s, ok := v.(lua.LString)
	if !ok {
		if n, isNum := v.(lua.LNumber); isNum {
			L.Push(n)
			return 1
		}
		L.Push(lua.LNil)
		return 1
	}
	if f, ok := numeric.Parse(string(s)); ok {
		L.Push(lua.LNumber(f))
		return 1
	}
	L.Push(lua.LNil)
	return 1
}
