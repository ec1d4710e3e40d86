// Package kumquat provides complex-valued numerical quadrature for functions of
// one real variable.
//
// The library integrates over finite intervals, semi-infinite rays and the whole
// real line. Integrands are arbitrary callables supplied by a host (a Go
// function, a Lua function, or a WebAssembly export) together with fixed extra
// positional and named arguments that are forwarded on every evaluation.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	kumquat/             Root package with the Evaluator capability and Go callable adapter
//	├── integrate/       Dispatcher: one entry point per quadrature method, options, diagnostics
//	├── quadrature/      Kernels: Gauss-Kronrod, tanh-sinh, sinh-sinh, exp-sinh, trapezoidal
//	├── transform/       Interval maps with their Jacobians
//	├── luaquad/         Lua host binding (gopher-lua)
//	├── engine/          WebAssembly integrands (wazero)
//	├── errors/          Structured error taxonomy
//	└── cmd/kumquat/     Command line front end
//
// # Quick Start
//
// Integrate a Go function:
//
//	f, err := kumquat.Func(func(x, k float64) complex128 {
//	    return cmplx.Exp(complex(0, k*x))
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := integrate.GaussKronrod(kumquat.Bind(f, kumquat.Args{1.0}, nil), 0, 2*math.Pi,
//	    integrate.Points(61))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Value, res.ErrorEstimate)
//
// # Integrand Failures
//
// An error returned by the integrand is handed back to the caller unchanged:
// the kernels stop at the first failing evaluation and the dispatcher neither
// wraps nor logs it. Only failures detected by the library itself are
// reported as *errors.Error values.
//
// # Thread Safety
//
// A quadrature call is synchronous and runs on the calling goroutine. Nothing
// is shared between calls, so independent calls may run concurrently as long
// as their integrands allow it. Lua and WebAssembly integrands are bound to a
// single interpreter or module instance and must not be used concurrently.
package kumquat
