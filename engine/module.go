package engine

import (
	"context"

	"go.uber.org/zap"
)

// Module is a single integrand export with its own engine. It is the
// shortest path from wasm bytes to something integrate can call.
type Module struct {
	engine   *WazeroEngine
	module   *WazeroModule
	instance *WazeroInstance
	callable *Callable
}

// Load compiles wasmBytes, instantiates it and binds export. The context is
// used for every later call of the integrand.
func Load(ctx context.Context, wasmBytes []byte, export string) (*Module, error) {
	return LoadWithConfig(ctx, nil, wasmBytes, export)
}

// LoadWithConfig is Load with a custom engine configuration.
func LoadWithConfig(ctx context.Context, cfg *Config, wasmBytes []byte, export string) (*Module, error) {
	eng, err := NewWazeroEngineWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	m := &Module{engine: eng}
	if m.module, err = eng.LoadModule(ctx, wasmBytes); err != nil {
		m.Close(ctx)
		return nil, err
	}
	if m.instance, err = m.module.Instantiate(ctx); err != nil {
		m.Close(ctx)
		return nil, err
	}
	if m.callable, err = m.instance.Callable(ctx, export); err != nil {
		m.Close(ctx)
		return nil, err
	}

	Logger().Debug("integrand loaded",
		zap.String("export", export),
		zap.Int("extra_args", m.callable.Arity()))
	return m, nil
}

// Callable returns the bound export.
func (m *Module) Callable() *Callable {
	return m.callable
}

// Exports lists the functions the module exports.
func (m *Module) Exports() []string {
	return m.module.ExportNames()
}

// Close releases the instance and the runtime.
func (m *Module) Close(ctx context.Context) error {
	var firstErr error
	if m.instance != nil {
		if err := m.instance.Close(ctx); err != nil {
			firstErr = err
		}
		m.instance = nil
	}
	if m.engine != nil {
		if err := m.engine.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
		m.engine = nil
	}
	m.callable = nil
	return firstErr
}
