package transform

import (
	"math"

	"github.com/wippyai/kumquat"
)

// Integrand is the view a quadrature kernel has of the function it
// integrates. x is a point of the canonical domain and xc its distance to the
// nearest finite endpoint of that domain (+Inf when there is none).
type Integrand interface {
	At(x, xc float64) (complex128, error)
}

// Finite maps the canonical interval [-1, 1] onto [A, B].
type Finite struct {
	F    kumquat.Evaluator
	A, B float64
}

// NewFinite returns the transform for [a, b].
func NewFinite(f kumquat.Evaluator, a, b float64) *Finite {
	return &Finite{F: f, A: a, B: b}
}

// Half returns the Jacobian (B-A)/2.
func (t *Finite) Half() float64 {
	return (t.B - t.A) / 2
}

// Point returns the image of the canonical point x, computed from whichever
// endpoint is nearer.
func (t *Finite) Point(x, xc float64) float64 {
	half := t.Half()
	if x >= 0 {
		return t.B - half*xc
	}
	return t.A + half*xc
}

// At evaluates F at the image of x and applies the Jacobian. A point that
// rounds onto an endpoint even though it lies strictly inside the canonical
// domain contributes zero and F is not called there.
func (t *Finite) At(x, xc float64) (complex128, error) {
	half := t.Half()
	if half == 0 {
		return 0, nil
	}
	p := t.Point(x, xc)
	if xc > 0 && (p == t.A || p == t.B) {
		return 0, nil
	}
	v, err := t.F.Evaluate(p)
	if err != nil {
		return 0, err
	}
	return v * complex(half, 0), nil
}

// Ray maps the canonical ray [0, +inf) onto the ray starting at A and
// extending in the direction of Sign: toward +inf for +1, toward -inf for -1.
//
// For Sign = -1 the substitution u = A - t reverses orientation, which cancels
// against the reversed limits, so the Jacobian is 1 in both directions. An
// integrand odd about A therefore yields exactly negated results.
type Ray struct {
	F    kumquat.Evaluator
	A    float64
	Sign float64
}

// NewRay returns the transform for the ray from a in direction sign.
func NewRay(f kumquat.Evaluator, a, sign float64) *Ray {
	return &Ray{F: f, A: a, Sign: sign}
}

// Point returns the image of the canonical point x.
func (t *Ray) Point(x float64) float64 {
	return t.A + t.Sign*x
}

// At evaluates F at the image of x. xc is unused since the canonical
// endpoint is 0 and x is already the distance to it.
func (t *Ray) At(x, _ float64) (complex128, error) {
	p := t.Point(x)
	if x > 0 && p == t.A {
		return 0, nil
	}
	return t.F.Evaluate(p)
}

// RealLine is the identity transform on (-inf, +inf).
type RealLine struct {
	F kumquat.Evaluator
}

// NewRealLine returns the identity transform.
func NewRealLine(f kumquat.Evaluator) *RealLine {
	return &RealLine{F: f}
}

// At evaluates F at x.
func (t *RealLine) At(x, _ float64) (complex128, error) {
	return t.F.Evaluate(x)
}

// IsFinite reports whether v is neither infinite nor NaN in either part.
func IsFinite(v complex128) bool {
	re, im := real(v), imag(v)
	return !math.IsInf(re, 0) && !math.IsNaN(re) && !math.IsInf(im, 0) && !math.IsNaN(im)
}

// Compact maps the canonical interval [-1, 1] onto an interval with one or
// two infinite ends, for kernels that only work on finite domains:
//
//	[A, +inf)    x = A - 1 + 2/(1+t)     dx = 2/(1+t)^2
//	(-inf, B]    x = B + 1 - 2/(1-t)     dx = 2/(1-t)^2
//	(-inf, +inf) x = t/(1-t^2)           dx = (1+t^2)/(1-t^2)^2
//
// Points that land at infinity, or whose Jacobian overflows, contribute zero.
type Compact struct {
	F    kumquat.Evaluator
	A, B float64
}

// NewCompact returns the transform for [a, b] where at least one bound is
// infinite.
func NewCompact(f kumquat.Evaluator, a, b float64) *Compact {
	return &Compact{F: f, A: a, B: b}
}

// At evaluates F at the image of t and applies the Jacobian.
func (c *Compact) At(t, tc float64) (complex128, error) {
	var x, jac float64
	switch {
	case math.IsInf(c.B, 1) && !math.IsInf(c.A, 0):
		// 1+t loses precision next to t = -1, where tc is exact.
		s := 1 + t
		if t < 0 {
			s = tc
		}
		z := 1 / s
		x = c.A - 1 + 2*z
		jac = 2 * z * z
	case math.IsInf(c.A, -1) && !math.IsInf(c.B, 0):
		s := 1 - t
		if t > 0 {
			s = tc
		}
		z := 1 / s
		x = c.B + 1 - 2*z
		jac = 2 * z * z
	default:
		d := tc * (2 - tc)
		x = t / d
		jac = (1 + t*t) / (d * d)
	}
	if math.IsInf(x, 0) || math.IsInf(jac, 0) || math.IsNaN(x) {
		return 0, nil
	}
	v, err := c.F.Evaluate(x)
	if err != nil {
		return 0, err
	}
	return v * complex(jac, 0), nil
}
