// Package luaquad exposes the integration methods to Lua through gopher-lua.
//
// Loading the module registers five routines with a common calling
// convention, plus a small complex number type:
//
//	local kq = require("kumquat")
//
//	-- positional form: f, bounds..., [args], [kwargs], [options]
//	local v, err = kq.gauss_kronrod(f, 0, 1)
//	local v, err = kq.exp_sinh(f, 0, {2.0}, nil, {interval_infinity = -1})
//
//	-- keyword form: a single table
//	local v, err, info = kq.tanh_sinh{f, 0, 1, args = {2.0}, full_output = true}
//
//	kq.sinh_sinh(f, ...)      no bounds
//	kq.exp_sinh(f, a, ...)    one bound
//	kq.trapezoidal(f, a, b, ...)
//
// The integrand is called as f(x, args..., kwargs), where kwargs is a fresh
// copy of the kwargs table and is omitted when there are no named arguments.
// It may return a number, a kumquat complex, or any value whose metatable has
// a __complex method returning one of those.
//
// Results are a complex value, the error estimate and, with full_output, a
// diagnostics table. A Lua error raised by the integrand is re-raised with
// the original error value. Failures detected by the library are raised as
// strings prefixed with their class, "contract: " or "value: ".
//
// A gopher-lua state is single threaded. Integrands built by this package
// must only be evaluated on the goroutine that owns the state.
package luaquad
