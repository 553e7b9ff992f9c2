//go:build darwin || linux

package dl

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/denizumutdereli/libresolve/pkg/core"
)

func systemLibC() string {
	if runtime.GOOS == "darwin" {
		return "/usr/lib/libSystem.B.dylib"
	}
	return "libc.so.6"
}

func TestOpen_SystemLibrary(t *testing.T) {
	lib, err := Open(systemLibC())
	if err != nil {
		t.Skipf("system C library not loadable: %v", err)
	}
	defer lib.Close()

	var getpid func() int32
	if err := lib.Bind(&getpid, "getpid"); err != nil {
		t.Fatalf("Bind(getpid) failed: %v", err)
	}
	if pid := getpid(); int(pid) != os.Getpid() {
		t.Errorf("getpid via library = %d, want %d", pid, os.Getpid())
	}
}

func TestSymbol_MisspelledInSystemLibrary(t *testing.T) {
	lib, err := Open(systemLibC())
	if err != nil {
		t.Skipf("system C library not loadable: %v", err)
	}
	defer lib.Close()

	_, err = lib.Symbol("getpidd_not_exported")
	var se *SymbolNotFoundError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SymbolNotFoundError, got %v", err)
	}
	if se.Diag() == "" {
		t.Error("expected a dlerror diagnostic")
	}
}

func TestOpen_NotALibrary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "libfake-1.0.so")
	if err := os.WriteFile(path, []byte("not an ELF or Mach-O image"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Open(path)
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	if !errors.Is(err, core.ErrLoad) {
		t.Errorf("expected ErrLoad, got %v", err)
	}
	if le.Diag() == "" {
		t.Error("expected a dlerror diagnostic")
	}
}
