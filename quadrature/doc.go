// Package quadrature implements the one-dimensional quadrature kernels.
//
// All kernels integrate a transform.Integrand over a canonical domain and
// return an Estimate. They stop at the first evaluation that fails and
// return that error as is.
//
//	GaussKronrod       [-1, 1]       fixed-order rule pair, optional bisection
//	TanhSinh           [-1, 1]       double exponential, endpoint singularities
//	SinhSinh           (-inf, inf)   double exponential, decay at both tails
//	ExpSinh            [0, inf)      double exponential, decay at +inf
//	Trapezoidal        [-1, 1]       composite trapezoid with step halving
//
// Gauss-Kronrod node tables are generated on first use for each supported
// order and then shared. Nothing else is kept between calls.
package quadrature
