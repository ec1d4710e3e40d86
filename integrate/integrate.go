package integrate

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/kumquat"
	"github.com/wippyai/kumquat/errors"
)

// GaussKronrod integrates ev over the finite interval [a, b].
func GaussKronrod(ev kumquat.Evaluator, a, b float64, opts ...Option) (*Result, error) {
	return integrate(strategies[MethodGaussKronrod], ev, []float64{a, b}, opts)
}

// TanhSinh integrates ev over [a, b]. a may be -inf and b may be +inf.
func TanhSinh(ev kumquat.Evaluator, a, b float64, opts ...Option) (*Result, error) {
	return integrate(strategies[MethodTanhSinh], ev, []float64{a, b}, opts)
}

// SinhSinh integrates ev over the whole real line.
func SinhSinh(ev kumquat.Evaluator, opts ...Option) (*Result, error) {
	return integrate(strategies[MethodSinhSinh], ev, nil, opts)
}

// ExpSinh integrates ev over the ray starting at a, toward +inf by default
// or toward -inf with IntervalInfinity(-1).
func ExpSinh(ev kumquat.Evaluator, a float64, opts ...Option) (*Result, error) {
	return integrate(strategies[MethodExpSinh], ev, []float64{a}, opts)
}

// Trapezoidal integrates ev over the finite interval [a, b].
func Trapezoidal(ev kumquat.Evaluator, a, b float64, opts ...Option) (*Result, error) {
	return integrate(strategies[MethodTrapezoidal], ev, []float64{a, b}, opts)
}

// Run integrates ev with the named method. bounds must hold exactly as many
// numbers as the method takes.
func Run(method Method, ev kumquat.Evaluator, bounds []any, opts ...Option) (*Result, error) {
	s, ok := strategies[method]
	if !ok {
		return nil, errors.NotFound(errors.PhaseValidate, "method", string(method))
	}
	if len(bounds) != s.arity() {
		return nil, errors.Arity(errors.PhaseValidate, string(method), s.arity(), len(bounds))
	}

	fb := make([]float64, len(bounds))
	for i, b := range bounds {
		f, ok := toFloat(b)
		if !ok {
			return nil, errors.New(errors.PhaseValidate, errors.KindTypeMismatch).
				Method(string(method)).
				Path("bounds", fmt.Sprint(i)).
				GoType(typeName(b)).
				Value(b).
				Detail("bound must be convertible to float64").
				Build()
		}
		fb[i] = f
	}
	return integrate(s, ev, fb, opts)
}

func integrate(s strategy, ev kumquat.Evaluator, bounds []float64, opts []Option) (*Result, error) {
	if ev == nil {
		return nil, errors.InvalidInput(errors.PhaseValidate, "integrand cannot be nil")
	}

	cfg := s.newConfig()
	if err := Apply(cfg, opts...); err != nil {
		return nil, err
	}

	f, err := s.transform(ev, bounds, cfg)
	if err != nil {
		return nil, err
	}

	c := cfg.common()
	Logger().Debug("integrating",
		zap.String("method", string(s.method())),
		zap.Float64s("bounds", bounds),
		zap.Float64("tolerance", c.Tolerance),
		zap.Int("max_levels", c.MaxLevels))

	est, err := s.run(f, cfg)
	if err != nil {
		return nil, err
	}

	res := &Result{Value: est.Value, ErrorEstimate: est.Error}
	if c.FullOutput {
		res.Diagnostics = s.collect(est, cfg)
	}
	return res, nil
}
