package luaquad

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/wippyai/kumquat/errors"
)

// Integrand evaluates a Lua callable. It implements kumquat.Evaluator.
type Integrand struct {
	L      *lua.LState
	fn     lua.LValue
	args   []lua.LValue
	kwargs *lua.LTable
}

// NewIntegrand binds fn to extra positional values and named values. kwargs
// may be nil. Neither container is modified or retained by the Lua side:
// every call receives the positional values on the stack and a fresh copy
// of kwargs.
func NewIntegrand(L *lua.LState, fn lua.LValue, args []lua.LValue, kwargs *lua.LTable) *Integrand {
	if kwargs != nil && isEmpty(kwargs) {
		kwargs = nil
	}
	return &Integrand{L: L, fn: fn, args: args, kwargs: kwargs}
}

// Evaluate calls fn(x, args..., kwargs) and converts the first result.
// A Lua error comes back as the *lua.ApiError produced by PCall.
func (in *Integrand) Evaluate(x float64) (complex128, error) {
	L := in.L
	top := L.GetTop()
	defer L.SetTop(top)

	L.Push(in.fn)
	L.Push(lua.LNumber(x))
	for _, a := range in.args {
		L.Push(a)
	}
	nargs := 1 + len(in.args)
	if in.kwargs != nil {
		L.Push(copyTable(L, in.kwargs))
		nargs++
	}

	if err := L.PCall(nargs, 1, nil); err != nil {
		return 0, err
	}
	return in.toComplex(x, L.Get(-1))
}

func (in *Integrand) toComplex(x float64, v lua.LValue) (complex128, error) {
	if c, ok := asComplex(v); ok {
		return c, nil
	}

	conv := in.L.GetMetaField(v, "__complex")
	if conv == lua.LNil {
		return 0, errors.NotComplex(x, "lua "+v.Type().String())
	}
	if err := in.L.CallByParam(lua.P{Fn: conv, NRet: 1, Protect: true}, v); err != nil {
		return 0, err
	}
	r := in.L.Get(-1)
	if c, ok := asComplex(r); ok {
		return c, nil
	}
	return 0, errors.NotComplex(x, "lua "+r.Type().String()+" from __complex")
}

func isEmpty(t *lua.LTable) bool {
	k, _ := t.Next(lua.LNil)
	return k == lua.LNil
}

func copyTable(L *lua.LState, src *lua.LTable) *lua.LTable {
	dst := L.NewTable()
	src.ForEach(func(k, v lua.LValue) {
		dst.RawSet(k, v)
	})
	return dst
}
