package quadrature

import (
	"fmt"
	"math"
	"math/cmplx"

	"go.uber.org/zap"

	"github.com/wippyai/kumquat/errors"
	"github.com/wippyai/kumquat/transform"
)

// BaseStep is the step size of refinement level 0 of the double exponential
// rules.
const BaseStep = 1.0 / 16

const halfPi = math.Pi / 2

// Tail marks the sides of the canonical domain that extend to infinity.
type Tail uint8

const (
	TailNone  Tail = 0
	TailLeft  Tail = 1 << 0
	TailRight Tail = 1 << 1
	TailBoth       = TailLeft | TailRight
)

// node maps the parameter t to an abscissa x, its distance xc to the nearest
// finite endpoint of the canonical domain, and the weight dx/dt.
type node func(t float64) (x, xc, w float64)

// DoubleExponential is a trapezoid rule in a parameter t whose substitution
// makes the integrand decay double exponentially. Each refinement level
// halves the step and evaluates only the new odd nodes.
type DoubleExponential struct {
	name       string
	tMin, tMax float64
	node       node
	tails      Tail
}

// Name returns the method name.
func (d *DoubleExponential) Name() string { return d.name }

// Tails reports which sides of the canonical domain are unbounded.
func (d *DoubleExponential) Tails() Tail { return d.tails }

// Range returns the truncated parameter interval.
func (d *DoubleExponential) Range() (float64, float64) { return d.tMin, d.tMax }

type term struct {
	x float64
	v complex128
}

// Integrate sums the rule at BaseStep and then halves the step until the
// difference between successive sums is at most tol times the L1 estimate
// or maxLevels halvings were done.
func (d *DoubleExponential) Integrate(f transform.Integrand, maxLevels int, tol float64) (Estimate, error) {
	h := BaseStep
	kMin := int(math.Ceil(d.tMin / h))
	kMax := int(math.Floor(d.tMax / h))

	terms := make([]term, kMax-kMin+1)
	for k := kMin; k <= kMax; k++ {
		v, x, err := d.evaluate(f, float64(k)*h)
		if err != nil {
			return Estimate{}, err
		}
		terms[k-kMin] = term{x: x, v: v}
	}

	lo, hi := 0, len(terms)-1
	if d.tails&TailRight != 0 {
		for hi >= lo && !transform.IsFinite(terms[hi].v) {
			hi--
		}
	}
	if d.tails&TailLeft != 0 {
		for lo <= hi && !transform.IsFinite(terms[lo].v) {
			lo++
		}
	}
	if lo > hi {
		return Estimate{}, errors.Divergent(d.name, "integrand is not finite at any node")
	}

	var sum, even complex128
	var abs float64
	for i := lo; i <= hi; i++ {
		tm := terms[i]
		if !transform.IsFinite(tm.v) {
			return Estimate{}, errors.NonFinite(d.name, tm.x)
		}
		sum += tm.v
		abs += cmplx.Abs(tm.v)
		if (kMin+i)%2 == 0 {
			even += tm.v
		}
	}

	value := complex(h, 0) * sum
	l1 := h * abs
	coarse := complex(2*h, 0) * even
	errEst := cmplx.Abs(value - coarse)

	if err := d.checkTails(terms, lo, hi, h, tol, l1); err != nil {
		return Estimate{}, err
	}

	// Later levels only fill in the parameter range that survived level 0.
	tLo := float64(kMin+lo) * h
	tHi := float64(kMin+hi) * h

	level := 0
	for level < maxLevels && errEst > tol*l1 {
		level++
		h /= 2

		var add complex128
		var addAbs float64
		k := int(math.Ceil(tLo / h))
		if k%2 == 0 {
			k++
		}
		for ; float64(k)*h <= tHi; k += 2 {
			v, x, err := d.evaluate(f, float64(k)*h)
			if err != nil {
				return Estimate{}, err
			}
			if !transform.IsFinite(v) {
				return Estimate{}, errors.NonFinite(d.name, x)
			}
			add += v
			addAbs += cmplx.Abs(v)
		}

		next := value/2 + complex(h, 0)*add
		l1 = l1/2 + h*addAbs
		errEst = cmplx.Abs(next - value)
		value = next
	}

	if !transform.IsFinite(value) || math.IsNaN(errEst) {
		if d.tails != TailNone {
			return Estimate{}, errors.Divergent(d.name, "integral estimate is not finite")
		}
		return Estimate{}, errors.NonFinite(d.name, math.NaN())
	}

	Logger().Debug("double exponential finished",
		zap.String("method", d.name),
		zap.Int("levels", level),
		zap.Float64("error", errEst),
		zap.Float64("l1", l1))

	return Estimate{Value: value, Error: errEst, L1: l1, Levels: level}, nil
}

// evaluate returns w*f at parameter t together with the abscissa. Nodes
// whose weight underflows to zero are skipped.
func (d *DoubleExponential) evaluate(f transform.Integrand, t float64) (complex128, float64, error) {
	x, xc, w := d.node(t)
	if w == 0 {
		return 0, x, nil
	}
	v, err := f.At(x, xc)
	if err != nil {
		return 0, x, err
	}
	return v * complex(w, 0), x, nil
}

// checkTails declares the integral divergent when the contribution of the
// outermost node on an unbounded side is not negligible.
func (d *DoubleExponential) checkTails(terms []term, lo, hi int, h, tol, l1 float64) error {
	limit := tol * l1
	if d.tails&TailRight != 0 {
		if tail := h * cmplx.Abs(terms[hi].v); tail > limit {
			return errors.Divergent(d.name, fmt.Sprintf(
				"integrand does not decay toward +inf: tail term %g at x=%g exceeds %g", tail, terms[hi].x, limit))
		}
	}
	if d.tails&TailLeft != 0 {
		if tail := h * cmplx.Abs(terms[lo].v); tail > limit {
			return errors.Divergent(d.name, fmt.Sprintf(
				"integrand does not decay toward -inf: tail term %g at x=%g exceeds %g", tail, terms[lo].x, limit))
		}
	}
	return nil
}

// TanhSinh returns the rule for [-1, 1] with x = tanh(pi/2 sinh t).
func TanhSinh() *DoubleExponential {
	return &DoubleExponential{
		name: "tanh_sinh",
		tMin: -6.1,
		tMax: 6.1,
		node: tanhSinhNode,
	}
}

// SinhSinh returns the rule for (-inf, inf) with x = sinh(pi/2 sinh t).
func SinhSinh() *DoubleExponential {
	return &DoubleExponential{
		name:  "sinh_sinh",
		tMin:  -6.5,
		tMax:  6.5,
		node:  sinhSinhNode,
		tails: TailBoth,
	}
}

// ExpSinh returns the rule for [0, inf) with x = exp(pi/2 sinh t).
func ExpSinh() *DoubleExponential {
	return &DoubleExponential{
		name:  "exp_sinh",
		tMin:  -6.5,
		tMax:  6.5,
		node:  expSinhNode,
		tails: TailRight,
	}
}

// tanhSinhNode computes 1-|x| from exp(-2u) directly, which keeps nodes
// next to the endpoints distinct long after tanh has rounded to 1.
func tanhSinhNode(t float64) (float64, float64, float64) {
	u := halfPi * math.Sinh(math.Abs(t))
	e := math.Exp(-2 * u)
	xc := 2 * e / (1 + e)
	x := math.Tanh(u)
	if t < 0 {
		x = -x
	}
	w := halfPi * math.Cosh(t) * 4 * e / ((1 + e) * (1 + e))
	return x, xc, w
}

func sinhSinhNode(t float64) (float64, float64, float64) {
	u := halfPi * math.Sinh(t)
	return math.Sinh(u), math.Inf(1), halfPi * math.Cosh(t) * math.Cosh(u)
}

func expSinhNode(t float64) (float64, float64, float64) {
	x := math.Exp(halfPi * math.Sinh(t))
	return x, x, x * halfPi * math.Cosh(t)
}
