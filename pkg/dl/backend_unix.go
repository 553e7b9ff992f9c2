//go:build darwin || freebsd || linux || netbsd

package dl

import (
	"sync"

	"github.com/ebitengine/purego"
)

var hostBackend Backend = &dlfcn{}

// dlfcn wraps dlopen(3) and friends through purego.
type dlfcn struct {
	mu   sync.Mutex
	last string
}

func (d *dlfcn) Load(path string) (uintptr, error) {
	h, err := purego.Dlopen(path, purego.RTLD_LAZY)
	d.record(err)
	return h, err
}

func (d *dlfcn) Symbol(handle uintptr, name string) (uintptr, error) {
	addr, err := purego.Dlsym(handle, name)
	d.record(err)
	return addr, err
}

func (d *dlfcn) Close(handle uintptr) error {
	err := purego.Dlclose(handle)
	d.record(err)
	return err
}

// LastError mirrors dlerror(3): the message is returned once.
func (d *dlfcn) LastError() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	msg := d.last
	d.last = ""
	return msg
}

func (d *dlfcn) record(err error) {
	if err == nil {
		return
	}
	d.mu.Lock()
	d.last = err.Error()
	d.mu.Unlock()
}
