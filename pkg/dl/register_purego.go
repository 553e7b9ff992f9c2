//go:build darwin || freebsd || linux || netbsd || windows

package dl

import "github.com/ebitengine/purego"

func registerFunc(fptr any, addr uintptr) error {
	purego.RegisterFunc(fptr, addr)
	return nil
}
