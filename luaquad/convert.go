package luaquad

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"
)

// toGo converts a Lua value for option parsing. Numbers stay float64 since
// Lua has a single number type and the option parser accepts integral floats.
func toGo(v lua.LValue) any {
	return toGoVisited(v, make(map[*lua.LTable]bool))
}

func toGoVisited(v lua.LValue, visited map[*lua.LTable]bool) any {
	switch t := v.(type) {
	case lua.LBool:
		return bool(t)
	case lua.LNumber:
		return float64(t)
	case lua.LString:
		return string(t)
	case *lua.LUserData:
		return t.Value
	case *lua.LTable:
		if visited[t] {
			return nil
		}
		visited[t] = true
		if n := t.Len(); n > 0 {
			arr := make([]any, n)
			for i := range n {
				arr[i] = toGoVisited(t.RawGetInt(i+1), visited)
			}
			return arr
		}
		m := make(map[string]any)
		t.ForEach(func(k, val lua.LValue) {
			m[k.String()] = toGoVisited(val, visited)
		})
		return m
	}
	return nil
}

// toLua converts diagnostics and other Go results to Lua values.
func toLua(L *lua.LState, v any) lua.LValue {
	switch t := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(t)
	case int:
		return lua.LNumber(t)
	case int64:
		return lua.LNumber(t)
	case float64:
		return lua.LNumber(t)
	case string:
		return lua.LString(t)
	case complex128:
		return NewComplex(L, t)
	case []float64:
		tbl := L.CreateTable(len(t), 0)
		for i, f := range t {
			tbl.RawSetInt(i+1, lua.LNumber(f))
		}
		return tbl
	case []any:
		tbl := L.CreateTable(len(t), 0)
		for i, e := range t {
			tbl.RawSetInt(i+1, toLua(L, e))
		}
		return tbl
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		tbl := L.CreateTable(0, len(t))
		for _, k := range keys {
			tbl.RawSetString(k, toLua(L, t[k]))
		}
		return tbl
	case lua.LValue:
		return t
	}
	return lua.LString(fmt.Sprint(v))
}
