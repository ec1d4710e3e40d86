package kumquat

import (
	stderrors "errors"
	"math"
	"math/cmplx"
	"reflect"
	"testing"

	"github.com/wippyai/kumquat/errors"
)

func TestFuncValidation(t *testing.T) {
	tests := []struct {
		name string
		fn   any
		kind errors.Kind
	}{
		{"nil", nil, errors.KindInvalidInput},
		{"not a function", 42, errors.KindTypeMismatch},
		{"no params", func() float64 { return 0 }, errors.KindArity},
		{"only variadic", func(xs ...float64) float64 { return 0 }, errors.KindArity},
		{"string first param", func(s string) float64 { return 0 }, errors.KindTypeMismatch},
		{"no results", func(x float64) {}, errors.KindArity},
		{"error only", func(x float64) error { return nil }, errors.KindTypeMismatch},
		{"second result not error", func(x float64) (float64, int) { return 0, 0 }, errors.KindTypeMismatch},
		{"three results", func(x float64) (float64, float64, error) { return 0, 0, nil }, errors.KindArity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Func(tt.fn)
			if err == nil {
				t.Fatal("expected error")
			}
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("expected *errors.Error, got %T", err)
			}
			if e.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", e.Kind, tt.kind)
			}
			if !errors.IsContract(err) {
				t.Errorf("expected contract error, got %v", err)
			}
		})
	}
}

func TestFuncForwardsArguments(t *testing.T) {
	var gotX, gotK float64
	var gotOpts Kwargs
	f := MustFunc(func(x, k float64, opts Kwargs) complex128 {
		gotX, gotK, gotOpts = x, k, opts
		return complex(x*k, 1)
	})

	v, err := f.Call(0.5, []any{3.0}, map[string]any{"scale": 2})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if v != complex(1.5, 1) {
		t.Errorf("result = %v", v)
	}
	if gotX != 0.5 || gotK != 3 {
		t.Errorf("got x=%v k=%v", gotX, gotK)
	}
	if gotOpts["scale"] != 2 {
		t.Errorf("kwargs not forwarded: %v", gotOpts)
	}
}

func TestFuncNumericConversion(t *testing.T) {
	f := MustFunc(func(x float32, n int, c complex128) float64 {
		return float64(x) * float64(n) * real(c)
	})
	v, err := f.Call(2, []any{3, 0.5}, nil)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if v != 3.0 {
		t.Errorf("result = %v, want 3", v)
	}
}

func TestFuncVariadic(t *testing.T) {
	poly := MustFunc(func(x float64, coeffs ...float64) float64 {
		sum, p := 0.0, 1.0
		for _, c := range coeffs {
			sum += c * p
			p *= x
		}
		return sum
	})

	v, err := poly.Call(2, []any{1.0, 2.0, 3.0}, nil)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if v != 17.0 {
		t.Errorf("result = %v, want 17", v)
	}

	v, err = poly.Call(2, nil, nil)
	if err != nil {
		t.Fatalf("Call without args: %v", err)
	}
	if v != 0.0 {
		t.Errorf("result = %v, want 0", v)
	}
}

func TestFuncArityMismatch(t *testing.T) {
	f := MustFunc(func(x, k float64) float64 { return x * k })

	for _, args := range [][]any{nil, {1.0, 2.0}} {
		_, err := f.Call(1, args, nil)
		var e *errors.Error
		if !stderrors.As(err, &e) || e.Kind != errors.KindArity {
			t.Fatalf("args %v: expected arity error, got %v", args, err)
		}
		if e.Phase != errors.PhaseEvaluate {
			t.Errorf("phase = %s, want evaluate", e.Phase)
		}
	}
}

func TestFuncArgumentTypeMismatch(t *testing.T) {
	tests := []struct {
		name string
		fn   any
		arg  any
	}{
		{"string into float", func(x, k float64) float64 { return x * k }, "two"},
		{"fractional float into int", func(x float64, n int) float64 { return x }, 2.7},
		{"nan into int", func(x float64, n int) float64 { return x }, math.NaN()},
		{"inf into int64", func(x float64, n int64) float64 { return x }, math.Inf(1)},
		{"negative into uint", func(x float64, n uint) float64 { return x }, -1.0},
		{"negative int into uint", func(x float64, n uint32) float64 { return x }, -3},
		{"int overflows int8", func(x float64, n int8) float64 { return x }, 300},
		{"complex into float", func(x, k float64) float64 { return x }, complex(1, 1)},
		{"complex into int", func(x float64, n int) float64 { return x }, complex(2, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MustFunc(tt.fn).Call(1, []any{tt.arg}, nil)
			var e *errors.Error
			if !stderrors.As(err, &e) || e.Kind != errors.KindTypeMismatch {
				t.Fatalf("expected type mismatch, got %v", err)
			}
			if len(e.Path) != 2 || e.Path[0] != "args" || e.Path[1] != "0" {
				t.Errorf("path = %v, want [args 0]", e.Path)
			}
		})
	}
}

func TestFuncExactNumericConversion(t *testing.T) {
	tests := []struct {
		name string
		fn   any
		arg  any
		want float64
	}{
		{"integral float into int", func(x float64, n int) float64 { return float64(n) }, 3.0, 3},
		{"real complex into float", func(x, k float64) float64 { return k }, complex(2.5, 0), 2.5},
		{"real complex into int", func(x float64, n int) float64 { return float64(n) }, complex(4, 0), 4},
		{"float into uint8", func(x float64, n uint8) float64 { return float64(n) }, 255.0, 255},
		{"uint into int", func(x float64, n int) float64 { return float64(n) }, uint(7), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := MustFunc(tt.fn).Call(1, []any{tt.arg}, nil)
			if err != nil {
				t.Fatalf("Call: %v", err)
			}
			if v != tt.want {
				t.Errorf("result = %v, want %v", v, tt.want)
			}
		})
	}
}

func TestFuncKwargsCopiedPerCall(t *testing.T) {
	f := MustFunc(func(x float64, kw Kwargs) (float64, error) {
		if _, ok := kw["seen"]; ok {
			return 0, stderrors.New("kwargs leaked from a previous call")
		}
		kw["seen"] = x
		kw["scale"] = -1.0
		return kw["seen"].(float64), nil
	})

	tests := []struct {
		name   string
		kwargs Kwargs
		want   Kwargs
	}{
		{"caller map", Kwargs{"scale": 2.0}, Kwargs{"scale": 2.0}},
		{"nil map", nil, nil},
		{"empty map", Kwargs{}, Kwargs{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := range 3 {
				x := float64(i)
				v, err := f.Call(x, nil, tt.kwargs)
				if err != nil {
					t.Fatalf("call %d: %v", i, err)
				}
				if v != x {
					t.Errorf("call %d: result = %v, want %v", i, v, x)
				}
			}
			if !reflect.DeepEqual(tt.kwargs, tt.want) {
				t.Errorf("kwargs modified: %v, want %v", tt.kwargs, tt.want)
			}
		})
	}
}

func TestFuncUnexpectedKwargs(t *testing.T) {
	f := MustFunc(func(x float64) float64 { return x })
	_, err := f.Call(1, nil, map[string]any{"zeta": 1, "alpha": 2})
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindFieldUnknown {
		t.Fatalf("expected field_unknown, got %v", err)
	}
	if len(e.Path) != 1 || e.Path[0] != "alpha" {
		t.Errorf("path = %v, want [alpha]", e.Path)
	}

	// Empty kwargs are the same as none.
	if _, err := f.Call(1, nil, map[string]any{}); err != nil {
		t.Errorf("empty kwargs: %v", err)
	}
}

func TestFuncErrorIdentity(t *testing.T) {
	sentinel := stderrors.New("integrand exploded")
	f := MustFunc(func(x float64) (complex128, error) {
		if x > 0.5 {
			return 0, sentinel
		}
		return cmplx.Exp(complex(0, x)), nil
	})

	if _, err := f.Call(0.25, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := f.Call(0.75, nil, nil)
	if err != sentinel {
		t.Fatalf("error = %v, want sentinel unchanged", err)
	}
}

func TestMustFuncPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustFunc("not a function")
}
