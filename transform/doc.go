// Package transform maps integration domains onto the canonical domains the
// quadrature kernels work on.
//
// Each transform wraps an Evaluator and exposes the kernel-facing Integrand
// view. The Jacobian of the substitution is applied here, so kernels only
// ever see canonical domains:
//
//	Finite    [a, b]      <- [-1, 1]    x -> midpoint + half*x, Jacobian half
//	Ray       [a, +inf)   <- [0, +inf)  t -> a + t,             Jacobian 1
//	          (-inf, a]   <- [0, +inf)  t -> a - t,             Jacobian 1
//	RealLine  (-inf, inf) <- (-inf, inf) identity
//	Compact   infinite ends <- [-1, 1]  rational map, for finite-domain kernels
//
// Kernels pass, together with each abscissa x, the distance xc from x to the
// nearest finite endpoint of the canonical domain. Near an endpoint xc is far
// more accurate than 1-|x|, which lets Finite place points next to a and b
// without cancellation.
package transform
