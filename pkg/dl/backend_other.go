//go:build !darwin && !freebsd && !linux && !netbsd && !windows

package dl

import (
	"fmt"
	"runtime"
)

var hostBackend Backend = unsupported{}

var errUnsupported = fmt.Errorf("dynamic loading is not supported on %s/%s", runtime.GOOS, runtime.GOARCH)

type unsupported struct{}

func (unsupported) Load(string) (uintptr, error)           { return 0, errUnsupported }
func (unsupported) Symbol(uintptr, string) (uintptr, error) { return 0, errUnsupported }
func (unsupported) Close(uintptr) error                    { return errUnsupported }
func (unsupported) LastError() string                      { return errUnsupported.Error() }

func registerFunc(any, uintptr) error { return errUnsupported }
