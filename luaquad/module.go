package luaquad

import (
	stderrors "errors"
	"fmt"
	"math/cmplx"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/wippyai/kumquat/errors"
	"github.com/wippyai/kumquat/integrate"
)

// ModuleName is the name the module registers under.
const ModuleName = "kumquat"

// Reserved keys of the keyword call form.
const (
	keyArgs   = "args"
	keyKwargs = "kwargs"
)

var exports = map[string]lua.LGFunction{
	"gauss_kronrod": routine(integrate.MethodGaussKronrod),
	"tanh_sinh":     routine(integrate.MethodTanhSinh),
	"sinh_sinh":     routine(integrate.MethodSinhSinh),
	"exp_sinh":      routine(integrate.MethodExpSinh),
	"trapezoidal":   routine(integrate.MethodTrapezoidal),

	"complex": complexNew,
	"real":    complexReal,
	"imag":    complexImag,
	"abs":     complexAbs,
	"arg":     complexArg,
	"conj":    unary(cmplx.Conj),
	"exp":     unary(cmplx.Exp),
	"log":     unary(cmplx.Log),
	"sqrt":    unary(cmplx.Sqrt),
	"sin":     unary(cmplx.Sin),
	"cos":     unary(cmplx.Cos),
}

// Loader is the gopher-lua module loader.
func Loader(L *lua.LState) int {
	registerComplexType(L)
	mod := L.SetFuncs(L.NewTable(), exports)
	mod.RawSetString("I", NewComplex(L, complex(0, 1)))
	L.Push(mod)
	return 1
}

// Preload makes the module available through require.
func Preload(L *lua.LState) {
	L.PreloadModule(ModuleName, Loader)
}

// Open loads the module and stores it in the global ModuleName.
func Open(L *lua.LState) {
	L.Push(L.NewFunction(Loader))
	L.Call(0, 1)
	L.SetGlobal(ModuleName, L.Get(-1))
	L.Pop(1)
}

// call is a parsed routine invocation.
type call struct {
	fn      lua.LValue
	bounds  []any
	args    []lua.LValue
	kwargs  *lua.LTable
	options []integrate.Option
}

func routine(method integrate.Method) lua.LGFunction {
	arity, _ := integrate.Arity(method)
	return func(L *lua.LState) int {
		var c *call
		var err error
		if isKeywordForm(L) {
			c, err = parseKeyword(L, method, arity)
		} else {
			c, err = parsePositional(L, method, arity)
		}
		if err != nil {
			raise(L, err)
			return 0
		}

		Logger().Debug("lua integration",
			zap.String("method", string(method)),
			zap.Int("args", len(c.args)),
			zap.Int("options", len(c.options)))

		ev := NewIntegrand(L, c.fn, c.args, c.kwargs)
		res, err := integrate.Run(method, ev, c.bounds, c.options...)
		if err != nil {
			raise(L, err)
			return 0
		}

		pushComplex(L, res.Value)
		L.Push(lua.LNumber(res.ErrorEstimate))
		if res.Diagnostics == nil {
			return 2
		}
		L.Push(toLua(L, res.Diagnostics.Map()))
		return 3
	}
}

// raise rethrows integrand errors with their original value and library
// errors as strings carrying their class.
func raise(L *lua.LState, err error) {
	var apiErr *lua.ApiError
	if stderrors.As(err, &apiErr) {
		L.Error(apiErr.Object, 0)
		return
	}
	if class, ok := errors.ClassOf(err); ok {
		L.Error(lua.LString(fmt.Sprintf("%s: %s", class, err.Error())), 0)
		return
	}
	L.Error(lua.LString(err.Error()), 0)
}

// isKeywordForm reports a single table argument whose first array slot holds
// the integrand. A callable table with other data in slot 1 is an integrand
// passed positionally.
func isKeywordForm(L *lua.LState) bool {
	if L.GetTop() != 1 {
		return false
	}
	t, ok := L.Get(1).(*lua.LTable)
	return ok && isCallable(L, t.RawGetInt(1))
}

func parsePositional(L *lua.LState, method integrate.Method, arity int) (*call, error) {
	n := L.GetTop()
	if n < 1+arity {
		return nil, errors.Arity(errors.PhaseHost, string(method), arity, max(n-1, 0))
	}
	if n > 1+arity+3 {
		return nil, errors.New(errors.PhaseHost, errors.KindArity).
			Method(string(method)).
			Value(n).
			Detail("takes at most %d arguments, got %d", 1+arity+3, n).
			Build()
	}

	c := &call{fn: L.Get(1)}
	if err := checkCallable(L, method, c.fn); err != nil {
		return nil, err
	}
	bounds, err := parseBounds(method, func(i int) lua.LValue { return L.Get(2 + i) }, arity)
	if err != nil {
		return nil, err
	}
	c.bounds = bounds

	rest := 2 + arity
	if c.args, err = parseArgs(method, L.Get(rest)); err != nil {
		return nil, err
	}
	if c.kwargs, err = parseKwargs(method, L.Get(rest+1)); err != nil {
		return nil, err
	}
	switch opts := L.Get(rest + 2).(type) {
	case *lua.LNilType:
	case *lua.LTable:
		if c.options, err = parseOptions(method, opts, nil); err != nil {
			return nil, err
		}
	default:
		return nil, errors.TypeMismatch(errors.PhaseHost, []string{string(method), "options"}, "lua "+opts.Type().String(), "table")
	}
	return c, nil
}

func parseKeyword(L *lua.LState, method integrate.Method, arity int) (*call, error) {
	t := L.Get(1).(*lua.LTable)
	if n := t.Len(); n != 1+arity {
		return nil, errors.Arity(errors.PhaseHost, string(method), arity, max(n-1, 0))
	}

	c := &call{fn: t.RawGetInt(1)}
	if err := checkCallable(L, method, c.fn); err != nil {
		return nil, err
	}
	bounds, err := parseBounds(method, func(i int) lua.LValue { return t.RawGetInt(2 + i) }, arity)
	if err != nil {
		return nil, err
	}
	c.bounds = bounds

	if c.args, err = parseArgs(method, t.RawGetString(keyArgs)); err != nil {
		return nil, err
	}
	if c.kwargs, err = parseKwargs(method, t.RawGetString(keyKwargs)); err != nil {
		return nil, err
	}
	c.options, err = parseOptions(method, t, func(k lua.LValue) bool {
		if n, ok := k.(lua.LNumber); ok {
			return int(n) >= 1 && int(n) <= 1+arity && float64(int(n)) == float64(n)
		}
		s, ok := k.(lua.LString)
		return ok && (s == keyArgs || s == keyKwargs)
	})
	return c, err
}

func isCallable(L *lua.LState, v lua.LValue) bool {
	return v.Type() == lua.LTFunction || L.GetMetaField(v, "__call") != lua.LNil
}

func checkCallable(L *lua.LState, method integrate.Method, fn lua.LValue) error {
	if isCallable(L, fn) {
		return nil
	}
	return errors.TypeMismatch(errors.PhaseHost, []string{string(method), "f"}, "lua "+fn.Type().String(), "function")
}

func parseBounds(method integrate.Method, get func(int) lua.LValue, arity int) ([]any, error) {
	bounds := make([]any, arity)
	for i := range arity {
		v := get(i)
		n, ok := v.(lua.LNumber)
		if !ok {
			if v == lua.LNil {
				return nil, errors.Arity(errors.PhaseHost, string(method), arity, i)
			}
			return nil, errors.TypeMismatch(errors.PhaseHost,
				[]string{string(method), fmt.Sprintf("bounds[%d]", i)}, "lua "+v.Type().String(), "number")
		}
		bounds[i] = float64(n)
	}
	return bounds, nil
}

func parseArgs(method integrate.Method, v lua.LValue) ([]lua.LValue, error) {
	switch t := v.(type) {
	case *lua.LNilType:
		return nil, nil
	case *lua.LTable:
		n := t.Len()
		args := make([]lua.LValue, n)
		for i := range n {
			args[i] = t.RawGetInt(i + 1)
		}
		return args, nil
	}
	return nil, errors.TypeMismatch(errors.PhaseHost, []string{string(method), keyArgs}, "lua "+v.Type().String(), "table")
}

func parseKwargs(method integrate.Method, v lua.LValue) (*lua.LTable, error) {
	switch t := v.(type) {
	case *lua.LNilType:
		return nil, nil
	case *lua.LTable:
		var bad lua.LValue
		t.ForEach(func(k, _ lua.LValue) {
			if _, ok := k.(lua.LString); !ok && bad == nil {
				bad = k
			}
		})
		if bad != nil {
			return nil, errors.TypeMismatch(errors.PhaseHost,
				[]string{string(method), keyKwargs}, "lua "+bad.Type().String()+" key", "string key")
		}
		return t, nil
	}
	return nil, errors.TypeMismatch(errors.PhaseHost, []string{string(method), keyKwargs}, "lua "+v.Type().String(), "table")
}

// parseOptions turns the string keys of t into options, skipping keys for
// which skip returns true. Any other key is an error.
func parseOptions(method integrate.Method, t *lua.LTable, skip func(lua.LValue) bool) ([]integrate.Option, error) {
	var opts []integrate.Option
	var err error
	t.ForEach(func(k, v lua.LValue) {
		if err != nil || (skip != nil && skip(k)) {
			return
		}
		name, ok := k.(lua.LString)
		if !ok {
			err = errors.FieldUnknown(errors.PhaseHost, string(method), k.String())
			return
		}
		opts = append(opts, integrate.Set(string(name), toGo(v)))
	})
	sort.Slice(opts, func(i, j int) bool { return opts[i].Name < opts[j].Name })
	return opts, err
}
