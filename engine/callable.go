package engine

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/kumquat"
	"github.com/wippyai/kumquat/errors"
)

// Callable adapts an exported function f(x, extra...) to kumquat.Callable.
//
// Parameters must be f64 or f32. Results are (re, im) for a complex value
// or a single float for a real one.
//
// A Callable reuses one value stack and is not safe for concurrent use.
type Callable struct {
	ctx     context.Context
	fn      api.Function
	name    string
	params  []api.ValueType
	results []api.ValueType
	stack   []uint64
}

func newCallable(ctx context.Context, name string, fn api.Function) (*Callable, error) {
	def := fn.Definition()
	params, results := def.ParamTypes(), def.ResultTypes()

	if len(params) == 0 {
		return nil, errors.New(errors.PhaseLoad, errors.KindArity).
			Method(name).
			Detail("export takes no parameters, the first must be x").
			Build()
	}
	for i, t := range params {
		if !isFloat(t) {
			return nil, errors.TypeMismatch(errors.PhaseLoad,
				[]string{name, "params", strconv.Itoa(i)}, "wasm "+api.ValueTypeName(t), "f64")
		}
	}
	if len(results) == 0 || len(results) > 2 || !isFloat(results[0]) || (len(results) == 2 && !isFloat(results[1])) {
		return nil, errors.New(errors.PhaseLoad, errors.KindNotComplex).
			Method(name).
			GoType("wasm (" + typeNames(results) + ")").
			Detail("results must be (f64) or (f64, f64)").
			Build()
	}

	return &Callable{
		ctx:     ctx,
		fn:      fn,
		name:    name,
		params:  params,
		results: results,
		stack:   make([]uint64, max(len(params), len(results))),
	}, nil
}

// Name returns the export name.
func (c *Callable) Name() string { return c.name }

// Arity returns the number of extra arguments after x.
func (c *Callable) Arity() int { return len(c.params) - 1 }

// Call implements kumquat.Callable. Traps and other call failures are
// returned as reported by wazero.
func (c *Callable) Call(x float64, args []any, kwargs map[string]any) (any, error) {
	if len(kwargs) > 0 {
		keys := make([]string, 0, len(kwargs))
		for k := range kwargs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, errors.FieldUnknown(errors.PhaseEvaluate, c.name, keys[0])
	}
	if len(args) != c.Arity() {
		return nil, errors.Arity(errors.PhaseEvaluate, c.name, c.Arity(), len(args))
	}

	c.stack[0] = encode(c.params[0], x)
	for i, a := range args {
		v, err := kumquat.ToComplex(x, a)
		if err != nil || imag(v) != 0 {
			return nil, errors.TypeMismatch(errors.PhaseEvaluate,
				[]string{"args", strconv.Itoa(i)}, fmt.Sprintf("%T", a), "float64")
		}
		c.stack[i+1] = encode(c.params[i+1], real(v))
	}

	if err := c.fn.CallWithStack(c.ctx, c.stack); err != nil {
		return nil, err
	}

	re := decode(c.results[0], c.stack[0])
	if len(c.results) == 1 {
		return re, nil
	}
	return complex(re, decode(c.results[1], c.stack[1])), nil
}

func isFloat(t api.ValueType) bool {
	return t == api.ValueTypeF64 || t == api.ValueTypeF32
}

func encode(t api.ValueType, v float64) uint64 {
	if t == api.ValueTypeF32 {
		return api.EncodeF32(float32(v))
	}
	return api.EncodeF64(v)
}

func decode(t api.ValueType, v uint64) float64 {
	if t == api.ValueTypeF32 {
		return float64(api.DecodeF32(v))
	}
	return api.DecodeF64(v)
}

func typeNames(ts []api.ValueType) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = api.ValueTypeName(t)
	}
	return strings.Join(names, ", ")
}
