// Package errors provides structured error types for the kumquat library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). Every Kind belongs to a Class, which is the coarse taxonomy a host
// binding maps onto its own error types:
//
//	ClassContract     malformed call shape: wrong bound count, bounds that are not
//	                  numbers, unknown option names, integrand arity mismatch
//	ClassValueDomain  well-formed call with bad values: points outside the allowed
//	                  set, integrand output that is not a complex number, a
//	                  divergent integral
//
// Failures raised by the integrand itself never pass through this package: they
// reach the caller with their original identity.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseValidate, errors.KindOutOfRange).
//		Method("gauss_kronrod").
//		Path("points").
//		Value(17).
//		Detail("must be one of 15, 21, 31, 41, 51, 61").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Arity(errors.PhaseValidate, "exp_sinh", 1, 2)
//	err := errors.NotComplex(x, "string")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
