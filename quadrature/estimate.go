package quadrature

import "math"

// Epsilon is the float64 machine epsilon.
const Epsilon = 2.220446049250313e-16

// DefaultTolerance is the square root of machine epsilon.
var DefaultTolerance = math.Sqrt(Epsilon)

// Estimate is the outcome of one kernel run.
type Estimate struct {
	Value  complex128
	Error  float64 // absolute error estimate
	L1     float64 // estimate of the integral of |f|
	Levels int     // refinement depth reached
}
