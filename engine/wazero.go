package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/wippyai/kumquat/errors"
)

// WazeroEngine compiles and instantiates integrand modules on a wazero runtime
type WazeroEngine struct {
	runtime      wazero.Runtime
	wasiInitMu   sync.Mutex
	wasiInitDone atomic.Bool
}

// Config holds configuration for engine creation
type Config struct {
	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means default (65536 pages = 4GB).
	// 256 = 16MB, 1024 = 64MB, 4096 = 256MB
	MemoryLimitPages uint32

	// CloseOnContextDone makes calls observe cancellation of the context the
	// integrand was bound with.
	CloseOnContextDone bool
}

// NewWazeroEngine creates a new wazero-based engine
func NewWazeroEngine(ctx context.Context) (*WazeroEngine, error) {
	return NewWazeroEngineWithConfig(ctx, nil)
}

// NewWazeroEngineWithConfig creates a new engine with custom configuration
func NewWazeroEngineWithConfig(ctx context.Context, cfg *Config) (*WazeroEngine, error) {
	runtimeCfg := wazero.NewRuntimeConfig()

	if cfg != nil {
		if cfg.MemoryLimitPages > 0 {
			runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
		}
		if cfg.CloseOnContextDone {
			runtimeCfg = runtimeCfg.WithCloseOnContextDone(true)
		}
	}

	runtime := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)
	return &WazeroEngine{runtime: runtime}, nil
}

// LoadModule compiles a core WebAssembly module
func (e *WazeroEngine) LoadModule(ctx context.Context, wasmBytes []byte) (*WazeroModule, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}

	needsWASI := false
	for _, def := range compiled.ImportedFunctions() {
		mod, name, _ := def.Import()
		if mod == wasi_snapshot_preview1.ModuleName {
			needsWASI = true
			continue
		}
		compiled.Close(ctx)
		return nil, errors.Load(fmt.Sprintf("unsupported import %s.%s", mod, name), nil)
	}

	Logger().Debug("module compiled",
		zap.Int("size", len(wasmBytes)),
		zap.Int("exports", len(compiled.ExportedFunctions())),
		zap.Bool("wasi", needsWASI))

	return &WazeroModule{
		engine:    e,
		compiled:  compiled,
		needsWASI: needsWASI,
	}, nil
}

func (e *WazeroEngine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// InitWASI instantiates the WASI singleton for this engine's runtime.
// Safe for concurrent calls from multiple modules sharing the same engine.
func (e *WazeroEngine) InitWASI(ctx context.Context) error {
	if e.wasiInitDone.Load() {
		return nil
	}

	e.wasiInitMu.Lock()
	defer e.wasiInitMu.Unlock()

	if e.wasiInitDone.Load() {
		return nil
	}

	if e.runtime.Module(wasi_snapshot_preview1.ModuleName) != nil {
		e.wasiInitDone.Store(true)
		return nil
	}

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, e.runtime); err != nil {
		if e.runtime.Module(wasi_snapshot_preview1.ModuleName) == nil {
			return fmt.Errorf("instantiate WASI: %w", err)
		}
	}

	e.wasiInitDone.Store(true)
	return nil
}

// WazeroModule is a compiled WASM module
type WazeroModule struct {
	engine    *WazeroEngine
	compiled  wazero.CompiledModule
	needsWASI bool
}

// ExportNames returns the exported function names in sorted order.
func (m *WazeroModule) ExportNames() []string {
	defs := m.compiled.ExportedFunctions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Signature returns the core parameter and result types of an export.
func (m *WazeroModule) Signature(export string) (params, results []api.ValueType, err error) {
	def, ok := m.compiled.ExportedFunctions()[export]
	if !ok {
		return nil, nil, errors.NotFound(errors.PhaseLoad, "export", export)
	}
	return def.ParamTypes(), def.ResultTypes(), nil
}

// Instantiate creates a fresh instance of the module. Each instance has its
// own memory and globals.
func (m *WazeroModule) Instantiate(ctx context.Context) (*WazeroInstance, error) {
	if m.needsWASI {
		if err := m.engine.InitWASI(ctx); err != nil {
			return nil, errors.Load("initialize WASI", err)
		}
	}

	// Anonymous instances so one module can be instantiated repeatedly.
	// _start is skipped: a command module would run main and exit.
	cfg := wazero.NewModuleConfig().
		WithName("").
		WithStartFunctions("_initialize")

	mod, err := m.engine.runtime.InstantiateModule(ctx, m.compiled, cfg)
	if err != nil {
		return nil, errors.Load("instantiate module", err)
	}
	return &WazeroInstance{module: mod, callables: make(map[string]*Callable)}, nil
}

// Close releases the compiled code.
func (m *WazeroModule) Close(ctx context.Context) error {
	return m.compiled.Close(ctx)
}

// WazeroInstance is an instantiated integrand module
type WazeroInstance struct {
	module    api.Module
	callables map[string]*Callable
}

// Callable returns the export as a kumquat.Callable bound to ctx. The
// signature is checked here so a bad export fails before any integration.
// Repeated calls for the same export return the same Callable.
func (i *WazeroInstance) Callable(ctx context.Context, export string) (*Callable, error) {
	if c, ok := i.callables[export]; ok {
		return c, nil
	}
	if i.module == nil {
		return nil, errors.InvalidInput(errors.PhaseLoad, "instance is closed")
	}

	fn := i.module.ExportedFunction(export)
	if fn == nil {
		return nil, errors.NotFound(errors.PhaseLoad, "export", export)
	}
	c, err := newCallable(ctx, export, fn)
	if err != nil {
		return nil, err
	}
	i.callables[export] = c
	return c, nil
}

func (i *WazeroInstance) Close(ctx context.Context) error {
	if i.module == nil {
		return nil
	}
	err := i.module.Close(ctx)
	i.module = nil
	i.callables = nil
	return err
}
