package integrate

import (
	"fmt"
	"math"

	"github.com/wippyai/kumquat"
	"github.com/wippyai/kumquat/errors"
	"github.com/wippyai/kumquat/quadrature"
	"github.com/wippyai/kumquat/transform"
)

// Method names a quadrature method.
type Method string

const (
	MethodGaussKronrod Method = "gauss_kronrod"
	MethodTanhSinh     Method = "tanh_sinh"
	MethodSinhSinh     Method = "sinh_sinh"
	MethodExpSinh      Method = "exp_sinh"
	MethodTrapezoidal  Method = "trapezoidal"
)

// strategy is one quadrature method: how many bounds it takes, how it maps
// them onto its kernel's domain, the kernel itself and what it reports.
type strategy interface {
	method() Method
	arity() int
	newConfig() Config
	transform(ev kumquat.Evaluator, bounds []float64, cfg Config) (transform.Integrand, error)
	run(f transform.Integrand, cfg Config) (quadrature.Estimate, error)
	collect(est quadrature.Estimate, cfg Config) *Diagnostics
}

var strategies = map[Method]strategy{
	MethodGaussKronrod: gaussKronrod{},
	MethodTanhSinh:     tanhSinh{},
	MethodSinhSinh:     sinhSinh{},
	MethodExpSinh:      expSinh{},
	MethodTrapezoidal:  trapezoidal{},
}

// Methods returns the method names in a fixed order.
func Methods() []Method {
	return []Method{MethodGaussKronrod, MethodTanhSinh, MethodSinhSinh, MethodExpSinh, MethodTrapezoidal}
}

// Arity returns the number of bounds the method takes.
func Arity(m Method) (int, error) {
	s, ok := strategies[m]
	if !ok {
		return 0, errors.NotFound(errors.PhaseValidate, "method", string(m))
	}
	return s.arity(), nil
}

// NewConfig returns the default configuration record of the method.
func NewConfig(m Method) (Config, error) {
	s, ok := strategies[m]
	if !ok {
		return nil, errors.NotFound(errors.PhaseValidate, "method", string(m))
	}
	return s.newConfig(), nil
}

func finiteBounds(m Method, bounds []float64) error {
	for i, b := range bounds {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return errors.OutOfRange(string(m), fmt.Sprintf("bounds[%d]", i), b, "must be finite")
		}
	}
	return nil
}

type gaussKronrod struct{}

func (gaussKronrod) method() Method { return MethodGaussKronrod }
func (gaussKronrod) arity() int { return 2 }
func (gaussKronrod) newConfig() Config { return NewGaussKronrodConfig() }

func (s gaussKronrod) transform(ev kumquat.Evaluator, bounds []float64, _ Config) (transform.Integrand, error) {
	if err := finiteBounds(s.method(), bounds); err != nil {
		return nil, err
	}
	return transform.NewFinite(ev, bounds[0], bounds[1]), nil
}

func (gaussKronrod) run(f transform.Integrand, cfg Config) (quadrature.Estimate, error) {
	c := cfg.(*GaussKronrodConfig)
	gk, err := quadrature.NewGaussKronrod(c.Points)
	if err != nil {
		return quadrature.Estimate{}, err
	}
	return gk.Integrate(f, c.MaxLevels, c.Tolerance)
}

func (gaussKronrod) collect(est quadrature.Estimate, cfg Config) *Diagnostics {
	gk, _ := quadrature.NewGaussKronrod(cfg.(*GaussKronrodConfig).Points)
	return &Diagnostics{
		keys:     []string{KeyL1Norm, KeyAbscissa, KeyWeights},
		L1Norm:   est.L1,
		Abscissa: gk.Abscissa(),
		Weights:  gk.Weights(),
	}
}

func deDiagnostics(est quadrature.Estimate) *Diagnostics {
	return &Diagnostics{
		keys:   []string{KeyL1Norm, KeyLevels},
		L1Norm: est.L1,
		Levels: est.Levels,
	}
}

type tanhSinh struct{}

func (tanhSinh) method() Method { return MethodTanhSinh }
func (tanhSinh) arity() int { return 2 }
func (tanhSinh) newConfig() Config { return NewTanhSinhConfig() }

// transform accepts infinite bounds and compactifies them onto [-1, 1].
func (s tanhSinh) transform(ev kumquat.Evaluator, bounds []float64, _ Config) (transform.Integrand, error) {
	a, b := bounds[0], bounds[1]
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 1) || math.IsInf(b, -1) {
		return nil, errors.OutOfRange(string(s.method()), "bounds", fmt.Sprintf("[%g, %g]", a, b),
			"lower bound may only be -inf and upper bound only +inf")
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return transform.NewCompact(ev, a, b), nil
	}
	return transform.NewFinite(ev, a, b), nil
}

func (tanhSinh) run(f transform.Integrand, cfg Config) (quadrature.Estimate, error) {
	c := cfg.(*DEConfig)
	return quadrature.TanhSinh().Integrate(f, c.MaxLevels, c.Tolerance)
}

func (tanhSinh) collect(est quadrature.Estimate, _ Config) *Diagnostics {
	return deDiagnostics(est)
}

type sinhSinh struct{}

func (sinhSinh) method() Method { return MethodSinhSinh }
func (sinhSinh) arity() int { return 0 }
func (sinhSinh) newConfig() Config { return NewSinhSinhConfig() }

func (sinhSinh) transform(ev kumquat.Evaluator, _ []float64, _ Config) (transform.Integrand, error) {
	return transform.NewRealLine(ev), nil
}

func (sinhSinh) run(f transform.Integrand, cfg Config) (quadrature.Estimate, error) {
	c := cfg.(*DEConfig)
	return quadrature.SinhSinh().Integrate(f, c.MaxLevels, c.Tolerance)
}

func (sinhSinh) collect(est quadrature.Estimate, _ Config) *Diagnostics {
	return deDiagnostics(est)
}

type expSinh struct{}

func (expSinh) method() Method { return MethodExpSinh }
func (expSinh) arity() int { return 1 }
func (expSinh) newConfig() Config { return NewExpSinhConfig() }

func (s expSinh) transform(ev kumquat.Evaluator, bounds []float64, cfg Config) (transform.Integrand, error) {
	if err := finiteBounds(s.method(), bounds); err != nil {
		return nil, err
	}
	return transform.NewRay(ev, bounds[0], cfg.(*ExpSinhConfig).IntervalInfinity), nil
}

func (expSinh) run(f transform.Integrand, cfg Config) (quadrature.Estimate, error) {
	c := cfg.(*ExpSinhConfig)
	return quadrature.ExpSinh().Integrate(f, c.MaxLevels, c.Tolerance)
}

func (expSinh) collect(est quadrature.Estimate, _ Config) *Diagnostics {
	return deDiagnostics(est)
}

type trapezoidal struct{}

func (trapezoidal) method() Method { return MethodTrapezoidal }
func (trapezoidal) arity() int { return 2 }
func (trapezoidal) newConfig() Config { return NewTrapezoidalConfig() }

func (s trapezoidal) transform(ev kumquat.Evaluator, bounds []float64, _ Config) (transform.Integrand, error) {
	if err := finiteBounds(s.method(), bounds); err != nil {
		return nil, err
	}
	return transform.NewFinite(ev, bounds[0], bounds[1]), nil
}

func (trapezoidal) run(f transform.Integrand, cfg Config) (quadrature.Estimate, error) {
	c := cfg.(*TrapezoidalConfig)
	return quadrature.Trapezoidal{}.Integrate(f, c.MaxLevels, c.Tolerance)
}

func (trapezoidal) collect(est quadrature.Estimate, _ Config) *Diagnostics {
	return &Diagnostics{
		keys:   []string{KeyL1Norm},
		L1Norm: est.L1,
	}
}
