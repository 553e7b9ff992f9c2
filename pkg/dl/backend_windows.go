//go:build windows

package dl

import "golang.org/x/sys/windows"

var hostBackend Backend = winapi{}

// winapi implements Backend on LoadLibrary/GetProcAddress. Windows keeps
// no dlerror-style message, so LastError is always empty and callers fall
// back to the returned error.
type winapi struct{}

func (winapi) Load(path string) (uintptr, error) {
	h, err := windows.LoadLibrary(path)
	return uintptr(h), err
}

func (winapi) Symbol(handle uintptr, name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), name)
}

func (winapi) Close(handle uintptr) error {
	return windows.FreeLibrary(windows.Handle(handle))
}

func (winapi) LastError() string { return "" }
