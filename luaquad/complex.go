package luaquad

import (
	"math/cmplx"
	"strconv"

	lua "github.com/yuin/gopher-lua"
)

// ComplexTypeName is the metatable name of complex userdata.
const ComplexTypeName = "kumquat.complex"

func complexReal(L *lua.LState) int {
	L.Push(lua.LNumber(real(checkComplex(L, 1))))
	return 1
}

func complexImag(L *lua.LState) int {
	L.Push(lua.LNumber(imag(checkComplex(L, 1))))
	return 1
}

func complexAbs(L *lua.LState) int {
	L.Push(lua.LNumber(cmplx.Abs(checkComplex(L, 1))))
	return 1
}

func complexArg(L *lua.LState) int {
	L.Push(lua.LNumber(cmplx.Phase(checkComplex(L, 1))))
	return 1
}

func complexNew(L *lua.LState) int {
	pushComplex(L, complex(float64(L.OptNumber(1, 0)), float64(L.OptNumber(2, 0))))
	return 1
}

func unary(op func(complex128) complex128) lua.LGFunction {
	return func(L *lua.LState) int {
		pushComplex(L, op(checkComplex(L, 1)))
		return 1
	}
}

func binary(op func(a, b complex128) complex128) lua.LGFunction {
	return func(L *lua.LState) int {
		pushComplex(L, op(checkComplex(L, 1), checkComplex(L, 2)))
		return 1
	}
}

// powComplex multiplies out small non-negative integer powers, which keeps
// real results real where cmplx.Pow leaves rounding noise.
func powComplex(a, b complex128) complex128 {
	if imag(b) == 0 && real(b) >= 0 && real(b) <= 64 && real(b) == float64(int(real(b))) {
		r := complex(1, 0)
		for n := int(real(b)); n > 0; n-- {
			r *= a
		}
		return r
	}
	return cmplx.Pow(a, b)
}

func registerComplexType(L *lua.LState) *lua.LTable {
	if mt, ok := L.GetTypeMetatable(ComplexTypeName).(*lua.LTable); ok {
		return mt
	}
	mt := L.NewTypeMetatable(ComplexTypeName)
	L.SetFuncs(mt, map[string]lua.LGFunction{
		"__add": binary(func(a, b complex128) complex128 { return a + b }),
		"__sub": binary(func(a, b complex128) complex128 { return a - b }),
		"__mul": binary(func(a, b complex128) complex128 { return a * b }),
		"__div": binary(func(a, b complex128) complex128 { return a / b }),
		"__pow": binary(powComplex),
		"__unm": unary(func(a complex128) complex128 { return -a }),
		"__eq": func(L *lua.LState) int {
			L.Push(lua.LBool(checkComplex(L, 1) == checkComplex(L, 2)))
			return 1
		},
		"__tostring": func(L *lua.LState) int {
			L.Push(lua.LString(FormatComplex(checkComplex(L, 1))))
			return 1
		},
	})
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"real": complexReal,
		"imag": complexImag,
		"abs":  complexAbs,
		"arg":  complexArg,
		"conj": unary(cmplx.Conj),
	}))
	return mt
}

// NewComplex wraps c in a complex userdata.
func NewComplex(L *lua.LState, c complex128) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = c
	L.SetMetatable(ud, registerComplexType(L))
	return ud
}

func pushComplex(L *lua.LState, c complex128) {
	L.Push(NewComplex(L, c))
}

// asComplex converts numbers and complex userdata.
func asComplex(v lua.LValue) (complex128, bool) {
	switch t := v.(type) {
	case lua.LNumber:
		return complex(float64(t), 0), true
	case *lua.LUserData:
		c, ok := t.Value.(complex128)
		return c, ok
	}
	return 0, false
}

func checkComplex(L *lua.LState, n int) complex128 {
	c, ok := asComplex(L.Get(n))
	if !ok {
		L.ArgError(n, "number or complex expected, got "+L.Get(n).Type().String())
	}
	return c
}

// FormatComplex renders c as (re+imi).
func FormatComplex(c complex128) string {
	re := strconv.FormatFloat(real(c), 'g', -1, 64)
	im := strconv.FormatFloat(imag(c), 'g', -1, 64)
	if imag(c) >= 0 {
		im = "+" + im
	}
	return "(" + re + im + "i)"
}
