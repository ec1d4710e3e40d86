package luaquad

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// ErrStateClosed is returned when operating on a closed state.
var ErrStateClosed = errors.New("lua state is closed")

// State is a Lua state with the standard safe libraries and the kumquat
// module loaded as a global and through require.
//
// gopher-lua's LState is not goroutine-safe. The mutex serializes calls made
// through State, but integrands built from the state must not be evaluated
// concurrently with them.
type State struct {
	L      *lua.LState
	out    io.Writer
	mu     sync.Mutex
	closed bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithOutput redirects print to w.
func WithOutput(w io.Writer) StateOption {
	return func(s *State) {
		s.out = w
	}
}

// NewState creates a state ready to run integration scripts.
func NewState(opts ...StateOption) *State {
	s := &State{out: os.Stdout}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openLibraries(L)
	Preload(L)
	Open(L)
	L.SetGlobal("print", L.NewFunction(s.print))

	s.L = L
	return s
}

// openLibraries opens the base, package, table, string and math libraries.
// io, os and debug stay closed.
func openLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.LoadLibName, lua.OpenPackage},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

func (s *State) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(s.out, strings.Join(parts, "\t"))
	return 0
}

// DoFile executes a Lua file.
func (s *State) DoFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	return s.doWithRecovery(func() error {
		return s.L.DoFile(path)
	})
}

// DoString executes a Lua chunk.
func (s *State) DoString(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	return s.doWithRecovery(func() error {
		return s.L.DoString(code)
	})
}

func (s *State) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Function compiles expr into the Lua function
//
//	function(x, ...) return <expr> end
//
// with the kumquat module's functions and I in scope.
func (s *State) Function(expr string) (*lua.LFunction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}

	src := "local kq = " + ModuleName + "\n" +
		"local I, exp, log, sqrt, sin, cos, abs, conj, complex = kq.I, kq.exp, kq.log, kq.sqrt, kq.sin, kq.cos, kq.abs, kq.conj, kq.complex\n" +
		"return function(x, ...) return " + expr + " end"
	chunk, err := s.L.LoadString(src)
	if err != nil {
		return nil, fmt.Errorf("compile expression: %w", err)
	}
	if err := s.L.CallByParam(lua.P{Fn: chunk, NRet: 1, Protect: true}); err != nil {
		return nil, err
	}
	fn, ok := s.L.Get(-1).(*lua.LFunction)
	s.L.Pop(1)
	if !ok {
		return nil, fmt.Errorf("expression did not compile to a function")
	}
	return fn, nil
}

// Integrand binds a Lua function with extra arguments converted from Go.
func (s *State) Integrand(fn lua.LValue, args []any, kwargs map[string]any) *Integrand {
	s.mu.Lock()
	defer s.mu.Unlock()

	largs := make([]lua.LValue, len(args))
	for i, a := range args {
		largs[i] = toLua(s.L, a)
	}
	var kw *lua.LTable
	if len(kwargs) > 0 {
		kw = toLua(s.L, kwargs).(*lua.LTable)
	}
	return NewIntegrand(s.L, fn, largs, kw)
}

// Close releases the Lua state.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.L.Close()
	s.closed = true
}
