// Package greeting runs the full resolve → load → bind → call sequence
// against the dependency library staged next to an executable.
//
// The greeting is assembled in one buffer: the statically linked half
// writes "Hello", and the shared library export writes "World" over the
// remainder.
package greeting

import (
	"bytes"
	"fmt"
	"log"
	"runtime"

	"github.com/denizumutdereli/libresolve/pkg/core"
	"github.com/denizumutdereli/libresolve/pkg/dl"
	"github.com/denizumutdereli/libresolve/pkg/libpath"
)

// placeholder is what the buffer reads if nothing overwrites it.
const placeholder = "This failed"

const staticWord = "Hello"

// copyWord overwrites s with word, stopping at the end of s or at the
// first NUL. n < 0 means the whole of s. Returns the bytes written.
func copyWord(s []byte, n int, word string) int {
	limit := len(s)
	if i := bytes.IndexByte(s, 0); i >= 0 {
		limit = i
	}
	if n >= 0 && n < limit {
		limit = n
	}
	limit = min(limit, len(word))
	return copy(s[:limit], word)
}

// SharedFunc is the Go view of the C export
//
//	int shared_foo(char *s, int n)
//
// The slice is passed as a pointer to its first byte and must be
// NUL-terminated.
type SharedFunc func(s []byte, n int32) int32

// Runner performs greeting runs for one configuration.
type Runner struct {
	cfg      *core.Config
	resolver *libpath.Resolver
	open     func(path string) (*dl.Library, error)
	logger   *log.Logger
}

// New returns a Runner that resolves libraries for the host platform.
// A nil logger disables diagnostics.
func New(cfg *core.Config, logger *log.Logger) *Runner {
	return &Runner{
		cfg:      cfg,
		resolver: libpath.New(cfg),
		open:     dl.Open,
		logger:   logger,
	}
}

func (r *Runner) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}

// Run resolves the library for the executable at exe, calls its export and
// returns the greeting. Errors are *libpath.TruncationError,
// *dl.LoadError or *dl.SymbolNotFoundError.
func (r *Runner) Run(exe string) (string, error) {
	buf := append([]byte(placeholder), 0)
	n := copyWord(buf, -1, staticWord)
	buf[n] = ' '

	path, err := r.resolver.ComputePath(exe)
	if err != nil {
		return "", err
	}
	r.logf("resolved %s → %s", exe, path)

	lib, err := r.open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := lib.Close(); err != nil {
			r.logf("release %s: %v", path, err)
		}
	}()
	r.logf("loaded %s", lib.Path())

	var shared SharedFunc
	if err := lib.Bind(&shared, r.cfg.Library.Symbol); err != nil {
		return "", err
	}
	r.logf("bound %s", r.cfg.Library.Symbol)

	written := shared(buf[n+1:], -1)
	runtime.KeepAlive(buf)
	if written < 0 {
		return "", fmt.Errorf("%s returned %d", r.cfg.Library.Symbol, written)
	}

	return string(buf[:bytes.IndexByte(buf, 0)]), nil
}
