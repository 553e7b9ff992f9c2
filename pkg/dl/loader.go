// Package dl opens shared libraries and resolves their exports without cgo.
//
// Each platform ABI provides a Backend: dlopen/dlsym through purego on
// Unix-like systems, LoadLibrary/GetProcAddress on Windows. Libraries are
// opened with lazy binding, so unresolved references inside the library
// only fail when first called.
package dl

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/denizumutdereli/libresolve/pkg/core"
)

// Backend is the dynamic-loading capability of one platform ABI.
type Backend interface {
	// Load opens the library at path and returns its handle.
	Load(path string) (uintptr, error)
	// Symbol returns the address of the named export.
	Symbol(handle uintptr, name string) (uintptr, error)
	// Close releases a handle returned by Load.
	Close(handle uintptr) error
	// LastError returns the diagnostic of the most recent failure and
	// clears it.
	LastError() string
}

// ErrClosed is returned when a Library is used after Close.
var ErrClosed = errors.New("library already closed")

// LoadError reports a library that could not be opened.
type LoadError struct {
	Path       string
	Diagnostic string
	Err        error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %s", e.Path, e.Diag())
}

// Diag returns the loader diagnostic, falling back to the underlying error
// when the backend has none.
func (e *LoadError) Diag() string {
	return diag(e.Diagnostic, e.Err)
}

func (e *LoadError) Unwrap() []error { return []error{core.ErrLoad, e.Err} }

// SymbolNotFoundError reports an export missing from a loaded library.
type SymbolNotFoundError struct {
	Name       string
	Path       string
	Diagnostic string
	Err        error
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("symbol %s in %s: %s", e.Name, e.Path, e.Diag())
}

// Diag returns the loader diagnostic, falling back to the underlying error
// when the backend has none.
func (e *SymbolNotFoundError) Diag() string {
	return diag(e.Diagnostic, e.Err)
}

func (e *SymbolNotFoundError) Unwrap() []error { return []error{core.ErrSymbolNotFound, e.Err} }

func diag(d string, err error) string {
	if d != "" {
		return d
	}
	if err != nil {
		return err.Error()
	}
	return "unknown error"
}

// Library is an open shared library. Addresses resolved from it are only
// valid until Close.
type Library struct {
	path    string
	backend Backend

	mu     sync.Mutex
	handle uintptr
}

// Open loads the library at path with the host backend.
func Open(path string) (*Library, error) {
	return OpenWith(hostBackend, path)
}

// OpenWith loads the library at path with b.
func OpenWith(b Backend, path string) (*Library, error) {
	if path == "" {
		return nil, &LoadError{Path: path, Err: errors.New("empty library path")}
	}
	h, err := b.Load(path)
	if err == nil && h == 0 {
		err = errors.New("loader returned a nil handle")
	}
	if err != nil {
		return nil, &LoadError{Path: path, Diagnostic: b.LastError(), Err: err}
	}
	return &Library{path: path, backend: b, handle: h}, nil
}

// Path returns the path the library was opened from.
func (l *Library) Path() string { return l.path }

// Symbol returns the address of the named export.
func (l *Library) Symbol(name string) (uintptr, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.handle == 0 {
		return 0, &SymbolNotFoundError{Name: name, Path: l.path, Err: ErrClosed}
	}
	addr, err := l.backend.Symbol(l.handle, name)
	if err == nil && addr == 0 {
		err = errors.New("symbol resolved to a nil address")
	}
	if err != nil {
		return 0, &SymbolNotFoundError{Name: name, Path: l.path, Diagnostic: l.backend.LastError(), Err: err}
	}
	return addr, nil
}

// Bind resolves name and registers it into fptr, which must be a pointer
// to a func variable whose signature matches the C export.
func (l *Library) Bind(fptr any, name string) error {
	v := reflect.ValueOf(fptr)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Func {
		return fmt.Errorf("bind %s: want pointer to func, got %T", name, fptr)
	}
	addr, err := l.Symbol(name)
	if err != nil {
		return err
	}
	return registerFunc(fptr, addr)
}

// Close releases the library. Closing twice is a no-op.
func (l *Library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.handle == 0 {
		return nil
	}
	h := l.handle
	l.handle = 0
	if err := l.backend.Close(h); err != nil {
		return fmt.Errorf("close %s: %w", l.path, err)
	}
	return nil
}
