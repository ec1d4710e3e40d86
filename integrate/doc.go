// Package integrate is the entry point for numerical integration.
//
// There is one function per method, each taking an Evaluator, the bounds the
// method needs and a list of options:
//
//	integrate.GaussKronrod(f, a, b, opts...)   finite [a, b]
//	integrate.TanhSinh(f, a, b, opts...)       [a, b], either end may be infinite
//	integrate.SinhSinh(f, opts...)             (-inf, +inf)
//	integrate.ExpSinh(f, a, opts...)           [a, +inf) or (-inf, a]
//	integrate.Trapezoidal(f, a, b, opts...)    finite [a, b]
//
// Run does the same with the method chosen by name and the bounds given as
// untyped values, which is what host bindings use.
//
// # Options
//
// Every method has its own configuration record. Options that a method does
// not define are rejected:
//
//	Tolerance(v)          all methods       relative tolerance, > 0
//	MaxLevels(n)          all methods       refinement cap, >= 0
//	FullOutput(true)      all methods       attach Diagnostics to the Result
//	Points(n)             gauss_kronrod     one of 15, 21, 31, 41, 51, 61
//	IntervalInfinity(s)   exp_sinh          +1 for [a, +inf), -1 for (-inf, a]
//
// Set(name, value) builds an option from its keyword name, so that option
// maps from scripting hosts can be passed through unchanged.
//
// # Errors
//
// Malformed calls (wrong bound count, bounds or option values of the wrong
// type, unknown option names) fail with contract errors before any
// evaluation. Option values outside their allowed range fail with
// value-domain errors. Errors returned by the integrand are passed back
// exactly as returned.
package integrate
