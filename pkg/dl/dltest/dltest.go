// Package dltest builds native fixture libraries for tests that exercise
// real dynamic loading.
package dltest

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/denizumutdereli/libresolve/pkg/core"
	"github.com/denizumutdereli/libresolve/pkg/platform"
)

// SharedFooSource is a C library exporting
//
//	int shared_foo(char *s, int n)
//
// which overwrites s with "World".
//
//go:embed testdata/shared_foo.c
var SharedFooSource []byte

// Compiler returns the C compiler named by $CC, or cc, or gcc.
func Compiler() (string, error) {
	candidates := []string{"cc", "gcc", "clang"}
	if cc := os.Getenv("CC"); cc != "" {
		candidates = append([]string{cc}, candidates...)
	}
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", errors.New("no C compiler found")
}

// BuildSharedLib compiles source into the shared library libFile.
func BuildSharedLib(libFile string, source []byte) error {
	cc, err := Compiler()
	if err != nil {
		return err
	}

	src := filepath.Join(filepath.Dir(libFile), "fixture.c")
	if err := os.MkdirAll(filepath.Dir(libFile), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(src, source, 0o644); err != nil {
		return err
	}
	defer os.Remove(src)

	args := []string{"-shared", "-o", libFile}
	if runtime.GOOS != "windows" {
		args = append(args, "-fPIC")
	}
	if runtime.GOOS == "darwin" {
		switch runtime.GOARCH {
		case "arm64":
			args = append(args, "-arch", "arm64")
		case "amd64":
			args = append(args, "-arch", "x86_64")
		}
	}
	cmd := exec.Command(cc, append(args, src)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("compile %s: %w\n%s", libFile, err, out)
	}
	return nil
}

// Layout is a staged executable/dependency tree.
type Layout struct {
	Root       string
	Executable string
	Library    string
}

// StageDir creates the conventional layout for the host under root:
//
//	<root>/target/bin/<arch>/<os>/bar
//	<root>/<dependencies>/<lib>/<arch>/<os>/<library file>
//
// and compiles the shared_foo fixture into the library slot.
func StageDir(root string, cfg *core.Config) (Layout, error) {
	p := platform.Detect()
	exeDir := filepath.Join(root, "target", "bin", p.Arch, p.OS)
	if err := os.MkdirAll(exeDir, 0o755); err != nil {
		return Layout{}, err
	}
	exe := filepath.Join(exeDir, "bar")
	if err := os.WriteFile(exe, nil, 0o755); err != nil {
		return Layout{}, err
	}

	lib := filepath.Join(root, cfg.Layout.DependenciesDir, cfg.Layout.LibDir, p.Arch, p.OS,
		p.LibraryFilename(cfg.Library.Name, cfg.Library.Version))
	if err := BuildSharedLib(lib, SharedFooSource); err != nil {
		return Layout{}, err
	}

	return Layout{Root: root, Executable: exe, Library: lib}, nil
}

// Stage is StageDir for tests. It skips t when no C compiler is available.
func Stage(t testing.TB, root string, cfg *core.Config) Layout {
	t.Helper()

	if _, err := Compiler(); err != nil {
		t.Skipf("skipping: %v", err)
	}
	l, err := StageDir(root, cfg)
	if err != nil {
		t.Fatalf("failed to stage layout: %v", err)
	}
	return l
}
