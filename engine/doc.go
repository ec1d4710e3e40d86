// Package engine runs integrands compiled to WebAssembly.
//
// This package wraps wazero. An exported function with core signature
//
//	(f64 x, f64 extra...) -> (f64 re, f64 im)
//	(f64 x, f64 extra...) -> f64
//
// becomes a kumquat.Callable, so it can be bound to fixed extra arguments
// and handed to any integration method. f32 is accepted wherever f64 is.
//
// # Architecture
//
//	WazeroEngine   - Creates and manages the wazero runtime
//	WazeroModule   - A compiled module, can create instances
//	WazeroInstance - An instantiated module with its exports
//	Callable       - One export adapted to kumquat.Callable
//
// Load bundles the whole chain for the common case of one export:
//
//	m, err := engine.Load(ctx, wasmBytes, "f")
//	if err != nil {
//		return err
//	}
//	defer m.Close(ctx)
//
//	res, err := integrate.GaussKronrod(kumquat.Bind(m.Callable(), kumquat.Args{2.0}, nil), 0, 1)
//
// # Errors
//
// Unsupported signatures are rejected when the export is bound. A mismatch
// between the extra argument count and the export's parameters is an arity
// error on the first evaluation. Traps come back unchanged from wazero and
// abort the integration.
//
// Modules may import wasi_snapshot_preview1, which is instantiated on demand.
// Any other import is a load error.
package engine
