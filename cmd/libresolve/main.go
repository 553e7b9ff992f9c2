// Command libresolve finds the dependency shared library staged next to an
// executable, loads it and calls its export.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/denizumutdereli/libresolve/pkg/core"
	"github.com/denizumutdereli/libresolve/pkg/dl"
	"github.com/denizumutdereli/libresolve/pkg/libpath"
)

func main() {
	os.Exit(Main())
}

// Main runs the command with os.Args and returns the exit status.
func Main() int {
	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	if err := a.rootCmd().Execute(); err != nil {
		a.report(err)
		return 1
	}
	return 0
}

// app carries state shared by the root command and its subcommands.
type app struct {
	stdout, stderr io.Writer

	overrides core.CLIOverrides
	cfg       *core.Config
	exe       string
	logger    *log.Logger
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "libresolve",
		Short: "Load the dependency library staged next to an executable",
		Long: "Computes <root>/dependencies/lib/<arch>/<os>/<library> from the executable path, " +
			"loads it and prints the greeting assembled by its shared_foo export.",
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGreeting()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// CLI flags - highest priority in the config hierarchy.
	f := root.PersistentFlags()

	a.overrides.ConfigPath = f.StringP("config", "f", "", "Path to YAML or TOML config file (overrides LIBRESOLVE_CONFIG env)")
	a.overrides.Executable = f.String("exe", "", "Executable path to resolve from (default argv[0])")
	a.overrides.LibraryName = f.String("library", core.DefaultLibraryName, "Library base name")
	a.overrides.LibraryVersion = f.String("lib-version", core.DefaultLibraryVersion, "Library version")
	a.overrides.Symbol = f.String("symbol", core.DefaultSymbol, "Exported function to call")
	a.overrides.DependenciesDir = f.String("dependencies-dir", "dependencies", "Dependencies directory name")
	a.overrides.LibDir = f.String("lib-dir", "lib", "Library directory name")
	a.overrides.Verbose = f.BoolP("verbose", "v", false, "Log resolution steps to stderr")

	root.AddCommand(a.pathCmd(), a.checkCmd(), a.platformCmd())
	return root
}

// setup resolves the configuration hierarchy and the executable path.
func (a *app) setup(flags *pflag.FlagSet) error {
	configPath := *a.overrides.ConfigPath
	if configPath == "" {
		configPath = os.Getenv("LIBRESOLVE_CONFIG")
	}

	cfg, err := core.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyExplicitFlags(flags, cfg, &a.overrides)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.exe = os.Args[0]
	if flags.Changed("exe") {
		a.exe = *a.overrides.Executable
	}

	if cfg.Log.Verbose {
		a.logger = log.New(a.stderr, "libresolve: ", 0)
		if configPath != "" {
			a.logger.Printf("config: %s", configPath)
		}
		a.logger.Printf("executable: %s", a.exe)
	}
	return nil
}

// applyExplicitFlags applies only the CLI flags that were explicitly set
// by the user on the command line. Unset flags are ignored so they do not
// override values resolved from the config file or environment variables.
func applyExplicitFlags(flags *pflag.FlagSet, cfg *core.Config, o *core.CLIOverrides) {
	overrides := core.CLIOverrides{}

	if flags.Changed("library") {
		overrides.LibraryName = o.LibraryName
	}
	if flags.Changed("lib-version") {
		overrides.LibraryVersion = o.LibraryVersion
	}
	if flags.Changed("symbol") {
		overrides.Symbol = o.Symbol
	}
	if flags.Changed("dependencies-dir") {
		overrides.DependenciesDir = o.DependenciesDir
	}
	if flags.Changed("lib-dir") {
		overrides.LibDir = o.LibDir
	}
	if flags.Changed("verbose") {
		overrides.Verbose = o.Verbose
	}

	cfg.ApplyCLIOverrides(&overrides)
}

// errReported is returned by commands that already wrote their own
// diagnostic.
var errReported = errors.New("reported")

// report writes err to stderr in the form expected for each failure kind.
func (a *app) report(err error) {
	var (
		loadErr  *dl.LoadError
		symErr   *dl.SymbolNotFoundError
		truncErr *libpath.TruncationError
	)
	switch {
	case errors.Is(err, errReported):
	case errors.As(err, &loadErr):
		fmt.Fprintf(a.stderr, "dlopen: %s\n", loadErr.Diag())
	case errors.As(err, &symErr):
		fmt.Fprintf(a.stderr, "dlsym: %s\n", symErr.Diag())
	case errors.As(err, &truncErr):
		fmt.Fprintf(a.stderr, "path: %v\n", truncErr)
	default:
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}
}
