package main

import (
	"flag"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/denizumutdereli/libresolve/pkg/core"
	"github.com/denizumutdereli/libresolve/pkg/dl/dltest"
	"github.com/denizumutdereli/libresolve/pkg/platform"
)

var (
	update = flag.Bool("update", false, "update tests")
	keep   = flag.Bool("keep", false, "keep $WORK directory after tests")
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"libresolve": Main,
	}))
}

func TestScripts(t *testing.T) {
	t.Parallel()

	p := testscript.Params{
		Dir:           filepath.Join("testdata"),
		UpdateScripts: *update,
		TestWork:      *keep,
		Setup: func(env *testscript.Env) error {
			host := platform.Detect()
			env.Setenv("HOST_ARCH", host.Arch)
			env.Setenv("HOST_OS", host.OS)
			return nil
		},
		Condition: func(cond string) (bool, error) {
			switch cond {
			case "cc":
				_, err := dltest.Compiler()
				return err == nil, nil
			}
			return false, nil
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"stage":    stage,
			"longpath": longpath,
		},
	}
	testscript.Run(t, p)
}

// stage builds the fixture layout under dir and exports EXE and LIB.
func stage(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("unsupported: ! stage")
	}
	if len(args) != 1 {
		ts.Fatalf("usage: stage dir")
	}
	l, err := dltest.StageDir(ts.MkAbs(args[0]), core.DefaultConfig())
	ts.Check(err)
	ts.Setenv("EXE", l.Executable)
	ts.Setenv("LIB", l.Library)
}

// longpath sets the named variable to a rooted path of n bytes.
func longpath(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("unsupported: ! longpath")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: longpath var n")
	}
	n, err := strconv.Atoi(args[1])
	ts.Check(err)
	if n < 1 {
		ts.Fatalf("longpath: n must be positive")
	}
	ts.Setenv(args[0], "/"+strings.Repeat("x", n-1))
}
