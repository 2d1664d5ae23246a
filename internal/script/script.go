// Package script runs user-supplied Lua that computes the display text of
// a compacted span in "custom" display mode.
//
// A script defines a global function
//
//	function display(kind, text, scheme, domain) ... end
//
// returning the string to show. kind is "alias", "url" or "alt"; scheme and
// domain are empty for anything that is not a URL.
//
// Scripts run in a sandboxed gopher-lua state with only the base, table,
// string and math libraries. Each call is bounded by a timeout.
package script

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// FuncName is the global the script must define.
const FuncName = "display"

// DefaultTimeout bounds a single display call.
const DefaultTimeout = 50 * time.Millisecond

// Errors returned by the formatter.
var (
	// ErrNoFunction indicates the script does not define display.
	ErrNoFunction = errors.New("script does not define a display function")

	// ErrClosed indicates the formatter has been closed.
	ErrClosed = errors.New("script formatter closed")
)

// Formatter evaluates a compiled display script. It is safe for concurrent
// use; calls are serialized.
type Formatter struct {
	mu      sync.Mutex
	L       *lua.LState
	fn      *lua.LFunction
	timeout time.Duration
	closed  bool
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithTimeout sets the per-call timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(f *Formatter) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// Compile loads src into a fresh sandboxed state and checks that it
// defines display.
func Compile(src string, opts ...Option) (*Formatter, error) {
	f := &Formatter{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(f)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	removeUnsafeGlobals(L)

	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()
	L.SetContext(ctx)

	if err := doWithRecovery(func() error { return L.DoString(src) }); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading display script: %w", err)
	}
	L.RemoveContext()

	fn, ok := L.GetGlobal(FuncName).(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, ErrNoFunction
	}

	f.L = L
	f.fn = fn
	return f, nil
}

// openSafeLibraries opens only side-effect free standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// removeUnsafeGlobals drops base functions that load code from files or strings.
func removeUnsafeGlobals(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Call runs display and returns its raw result.
func (f *Formatter) Call(kind, text, scheme, domain string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return "", ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()
	f.L.SetContext(ctx)
	defer f.L.RemoveContext()

	top := f.L.GetTop()
	defer f.L.SetTop(top)

	err := doWithRecovery(func() error {
		return f.L.CallByParam(lua.P{Fn: f.fn, NRet: 1, Protect: true},
			lua.LString(kind), lua.LString(text), lua.LString(scheme), lua.LString(domain))
	})
	if err != nil {
		return "", fmt.Errorf("calling %s: %w", FuncName, err)
	}

	ret := f.L.Get(-1)
	s, ok := ret.(lua.LString)
	if !ok {
		return "", fmt.Errorf("%s returned %s, want string", FuncName, ret.Type())
	}
	return string(s), nil
}

// Format runs display and reports whether it produced a string. Errors,
// timeouts and non-string results all yield false.
func (f *Formatter) Format(kind, text, scheme, domain string) (string, bool) {
	s, err := f.Call(kind, text, scheme, domain)
	if err != nil {
		return "", false
	}
	return s, true
}

// Close releases the Lua state. Further calls return ErrClosed.
func (f *Formatter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.L.Close()
	f.closed = true
	return nil
}

func doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}
