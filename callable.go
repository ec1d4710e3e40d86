package kumquat

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"sort"

	"github.com/wippyai/kumquat/errors"
)

var (
	errorType  = reflect.TypeOf((*error)(nil)).Elem()
	kwargsType = reflect.TypeOf(Kwargs(nil))
	mapType    = reflect.TypeOf(map[string]any(nil))
)

// GoFunc is a Callable backed by an arbitrary Go function.
//
// The function's first parameter receives the integration variable and must
// be a float kind. Remaining parameters receive the extra positional
// arguments in order; a trailing Kwargs or map[string]any parameter receives
// the named arguments. The function returns one value, optionally followed by
// an error:
//
//	func(x float64) complex128
//	func(x, k float64, opts kumquat.Kwargs) (complex128, error)
//	func(x float64, coeffs ...float64) float64
//
// Numeric arguments convert only when the value is preserved, so 2.7 is not
// accepted for an int parameter. The kwargs parameter receives a fresh map
// on every call.
//
// A GoFunc reuses its argument buffer and must not be called concurrently.
type GoFunc struct {
	fn        reflect.Value
	name      string
	in        []reflect.Type
	variadic  bool
	hasKwargs bool
	hasError  bool
	buf       []reflect.Value
}

// Func wraps fn as a Callable. The shape of fn is validated here; argument
// count and types are checked on every call, since extra arguments are only
// known when the Callable is bound.
func Func(fn any) (*GoFunc, error) {
	if fn == nil {
		return nil, errors.InvalidInput(errors.PhaseHost, "integrand cannot be nil")
	}

	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func {
		return nil, errors.New(errors.PhaseHost, errors.KindTypeMismatch).
			GoType(reflect.TypeOf(fn).String()).
			Detail("integrand must be a function").
			Build()
	}
	if rv.IsNil() {
		return nil, errors.InvalidInput(errors.PhaseHost, "integrand cannot be nil")
	}

	rt := rv.Type()
	if rt.NumIn() == 0 || (rt.IsVariadic() && rt.NumIn() == 1) {
		return nil, errors.New(errors.PhaseHost, errors.KindArity).
			GoType(rt.String()).
			Detail("integrand must accept the integration variable as its first parameter").
			Build()
	}
	switch rt.In(0).Kind() {
	case reflect.Float64, reflect.Float32:
	default:
		return nil, errors.New(errors.PhaseHost, errors.KindTypeMismatch).
			GoType(rt.String()).
			Detail("first parameter must be a float, got %s", rt.In(0)).
			Build()
	}

	gf := &GoFunc{
		fn:       rv,
		name:     rt.String(),
		variadic: rt.IsVariadic(),
	}

	switch rt.NumOut() {
	case 1:
		if rt.Out(0) == errorType {
			return nil, errors.New(errors.PhaseHost, errors.KindTypeMismatch).
				GoType(rt.String()).
				Detail("integrand must return a value before its error").
				Build()
		}
	case 2:
		if rt.Out(1) != errorType {
			return nil, errors.New(errors.PhaseHost, errors.KindTypeMismatch).
				GoType(rt.String()).
				Detail("second result must be error, got %s", rt.Out(1)).
				Build()
		}
		gf.hasError = true
	default:
		return nil, errors.New(errors.PhaseHost, errors.KindArity).
			GoType(rt.String()).
			Detail("integrand must return (value) or (value, error)").
			Build()
	}

	for i := 1; i < rt.NumIn(); i++ {
		gf.in = append(gf.in, rt.In(i))
	}
	if n := len(gf.in); n > 0 && !gf.variadic {
		if last := gf.in[n-1]; last == kwargsType || last == mapType {
			gf.hasKwargs = true
			gf.in = gf.in[:n-1]
		}
	}

	gf.buf = make([]reflect.Value, 0, rt.NumIn())
	return gf, nil
}

// Call invokes the wrapped function as fn(x, args..., kwargs).
// An error returned by the function is passed back unchanged.
func (g *GoFunc) Call(x float64, args []any, kwargs map[string]any) (any, error) {
	if len(kwargs) > 0 && !g.hasKwargs {
		return nil, errors.New(errors.PhaseEvaluate, errors.KindFieldUnknown).
			GoType(g.name).
			Path(firstKey(kwargs)).
			Detail("integrand got an unexpected keyword argument %q", firstKey(kwargs)).
			Build()
	}

	fixed := len(g.in)
	if g.variadic {
		fixed--
	}
	if len(args) < fixed || (!g.variadic && len(args) != fixed) {
		return nil, errors.New(errors.PhaseEvaluate, errors.KindArity).
			GoType(g.name).
			Value(len(args)).
			Detail("integrand takes %s extra positional argument(s) but %d were given", g.arityString(), len(args)).
			Build()
	}

	g.buf = g.buf[:0]
	g.buf = append(g.buf, reflect.ValueOf(x).Convert(g.fn.Type().In(0)))
	for i, arg := range args {
		want := g.paramType(i)
		v, err := convertArg(arg, want, i)
		if err != nil {
			return nil, err
		}
		g.buf = append(g.buf, v)
	}
	if g.hasKwargs {
		// Each call gets its own map so writes stay local to that call.
		kt := g.fn.Type().In(g.fn.Type().NumIn() - 1)
		kw := make(map[string]any, len(kwargs))
		maps.Copy(kw, kwargs)
		g.buf = append(g.buf, reflect.ValueOf(kw).Convert(kt))
	}

	out := g.fn.Call(g.buf)
	if g.hasError && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

func (g *GoFunc) paramType(i int) reflect.Type {
	if g.variadic && i >= len(g.in)-1 {
		return g.in[len(g.in)-1].Elem()
	}
	return g.in[i]
}

func (g *GoFunc) arityString() string {
	if g.variadic {
		return fmt.Sprintf("at least %d", len(g.in)-1)
	}
	return fmt.Sprintf("%d", len(g.in))
}

func convertArg(arg any, want reflect.Type, idx int) (reflect.Value, error) {
	if arg == nil {
		switch want.Kind() {
		case reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(want), nil
		}
		return reflect.Value{}, errors.TypeMismatch(errors.PhaseEvaluate,
			[]string{"args", fmt.Sprint(idx)}, "nil", want.String())
	}

	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(want) {
		return v, nil
	}
	if isNumeric(v.Kind()) && isNumeric(want.Kind()) && v.Type().ConvertibleTo(want) {
		if cv, ok := convertNumeric(v, want); ok {
			return cv, nil
		}
	}
	return reflect.Value{}, errors.TypeMismatch(errors.PhaseEvaluate,
		[]string{"args", fmt.Sprint(idx)}, v.Type().String(), want.String())
}

// convertNumeric converts v to want only when the value survives exactly:
// integer targets need an integral in-range value and real targets need a
// zero imaginary part. Float precision narrowing is allowed.
func convertNumeric(v reflect.Value, want reflect.Type) (reflect.Value, bool) {
	if isComplex(v.Kind()) {
		if isComplex(want.Kind()) {
			return v.Convert(want), true
		}
		c := v.Complex()
		if imag(c) != 0 {
			return reflect.Value{}, false
		}
		v = reflect.ValueOf(real(c))
	}

	switch want.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var n int64
		switch v.Kind() {
		case reflect.Float32, reflect.Float64:
			f := v.Float()
			if f != math.Trunc(f) || f < -(1<<63) || f >= 1<<63 {
				return reflect.Value{}, false
			}
			n = int64(f)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			u := v.Uint()
			if u > math.MaxInt64 {
				return reflect.Value{}, false
			}
			n = int64(u)
		default:
			n = v.Int()
		}
		if reflect.Zero(want).OverflowInt(n) {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(n).Convert(want), true

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var u uint64
		switch v.Kind() {
		case reflect.Float32, reflect.Float64:
			f := v.Float()
			if f != math.Trunc(f) || f < 0 || f >= 1<<64 {
				return reflect.Value{}, false
			}
			u = uint64(f)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n := v.Int()
			if n < 0 {
				return reflect.Value{}, false
			}
			u = uint64(n)
		default:
			u = v.Uint()
		}
		if reflect.Zero(want).OverflowUint(u) {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(u).Convert(want), true
	}
	return v.Convert(want), true
}

func isComplex(k reflect.Kind) bool {
	return k == reflect.Complex64 || k == reflect.Complex128
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

func firstKey(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0]
}

// MustFunc is like Func but panics if fn has an unsupported shape.
func MustFunc(fn any) *GoFunc {
	gf, err := Func(fn)
	if err != nil {
		panic(err)
	}
	return gf
}
