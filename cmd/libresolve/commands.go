package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/denizumutdereli/libresolve/pkg/greeting"
	"github.com/denizumutdereli/libresolve/pkg/libpath"
	"github.com/denizumutdereli/libresolve/pkg/platform"
)

// runGreeting loads the library and prints the greeting its export builds.
func (a *app) runGreeting() error {
	msg, err := greeting.New(a.cfg, a.logger).Run(a.exe)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, msg)
	return nil
}

func (a *app) pathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the library path computed from the executable path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := libpath.New(a.cfg).ComputePath(a.exe)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, path)
			return nil
		},
	}
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that the library exists where the executable expects it",
		Long: "Prints the computed library path and whether a regular file exists there. " +
			"Warns when the arch/os directories around the executable differ from the host classifier.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := libpath.New(a.cfg)
			res, err := r.Resolve(a.exe)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "library: %s\n", res.Path)
			for _, w := range layoutWarnings(res, r.Platform) {
				fmt.Fprintf(a.stderr, "warning: %s\n", w)
			}

			fi, err := os.Stat(res.Path)
			switch {
			case err != nil:
				fmt.Fprintln(a.stdout, "status: missing")
				fmt.Fprintf(a.stderr, "check: %v\n", err)
				return errReported
			case !fi.Mode().IsRegular():
				fmt.Fprintln(a.stdout, "status: not a regular file")
				return errReported
			}
			fmt.Fprintln(a.stdout, "status: found")
			return nil
		},
	}
}

// layoutWarnings compares the captured directory names with the host's
// native-layout names.
func layoutWarnings(res libpath.Resolution, p platform.Platform) []string {
	var warnings []string
	if arch := strings.TrimLeft(res.Arch, `/\`); arch != p.Arch {
		warnings = append(warnings, fmt.Sprintf("arch directory %q does not match host arch %q", arch, p.Arch))
	}
	if osName := strings.TrimLeft(res.OS, `/\`); osName != p.OS {
		warnings = append(warnings, fmt.Sprintf("os directory %q does not match host os %q", osName, p.OS))
	}
	return warnings
}

func (a *app) platformCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "platform",
		Short: "Describe the host platform and the library file name it expects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := platform.Describe(platform.Detect(), a.cfg.Library.Name, a.cfg.Library.Version)

			switch format {
			case "yaml":
				enc := yaml.NewEncoder(a.stdout)
				enc.SetIndent(2)
				if err := enc.Encode(info); err != nil {
					return fmt.Errorf("encoding platform info: %w", err)
				}
				return enc.Close()
			case "toml":
				enc := toml.NewEncoder(a.stdout)
				enc.SetIndentTables(true)
				if err := enc.Encode(info); err != nil {
					return fmt.Errorf("encoding platform info: %w", err)
				}
				return nil
			case "text":
				fmt.Fprintf(a.stdout, "platform:   %s (%s/%s)\n", info.Platform, info.Platform.Arch, info.Platform.OS)
				fmt.Fprintf(a.stdout, "classifier: %s\n", info.Classifier)
				fmt.Fprintf(a.stdout, "library:    %s\n", info.LibraryFilename)
				fmt.Fprintf(a.stdout, "max path:   %d\n", info.MaxPath)
				fmt.Fprintf(a.stdout, "cpu:        %s (%s, %d logical cores)\n", info.CPU.Brand, info.CPU.Vendor, info.CPU.LogicalCores)
				if len(info.CPU.Features) > 0 {
					fmt.Fprintf(a.stdout, "features:   %s\n", strings.Join(info.CPU.Features, " "))
				}
				return nil
			default:
				return fmt.Errorf("unknown format %q (want text, yaml or toml)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, yaml or toml")
	return cmd
}
