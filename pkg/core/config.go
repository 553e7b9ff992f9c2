package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultLibraryName is the base name of the dependency library the
	// resolver looks for.
	DefaultLibraryName = "libshared-foo"

	// DefaultLibraryVersion is appended to the library base name.
	DefaultLibraryVersion = "1.0"

	// DefaultSymbol is the export resolved and called by the greeting run.
	DefaultSymbol = "shared_foo"
)

// ---------------------------------------------------------------------------
// Config: settings for one resolve/load run.
//
// The configuration is resolved through a four-level hierarchy where each
// layer overrides values set by the layer beneath it:
//
//	Priority (highest → lowest):
//	  1. CLI flags that were explicitly set
//	  2. Environment variables (LIBRESOLVE_* prefix)
//	  3. YAML or TOML configuration file
//	  4. Built-in defaults
// ---------------------------------------------------------------------------

// LibraryConfig names the dependency library and the export to call.
type LibraryConfig struct {
	// Name is the library base name without version or extension.
	Name string `yaml:"name" toml:"name"`

	// Version is joined to Name with a dash. Windows file names replace
	// the dots with dashes.
	Version string `yaml:"version" toml:"version"`

	// Symbol is the exported function resolved after loading.
	Symbol string `yaml:"symbol" toml:"symbol"`
}

// LayoutConfig names the fixed directories appended below the root that is
// reached by walking up from the executable.
type LayoutConfig struct {
	DependenciesDir string `yaml:"dependenciesDir" toml:"dependenciesDir"`
	LibDir          string `yaml:"libDir" toml:"libDir"`
}

// LogConfig controls operator diagnostics.
type LogConfig struct {
	Verbose bool `yaml:"verbose" toml:"verbose"`
}

// Config is the root configuration object.
type Config struct {
	Library LibraryConfig `yaml:"library" toml:"library"`
	Layout  LayoutConfig  `yaml:"layout" toml:"layout"`
	Log     LogConfig     `yaml:"log" toml:"log"`
}

// DefaultConfig returns a Config matching the conventional dependency layout.
func DefaultConfig() *Config {
	return &Config{
		Library: LibraryConfig{
			Name:    DefaultLibraryName,
			Version: DefaultLibraryVersion,
			Symbol:  DefaultSymbol,
		},
		Layout: LayoutConfig{
			DependenciesDir: "dependencies",
			LibDir:          "lib",
		},
	}
}

// ConfigFromFile reads a configuration file and merges it on top of the
// built-in defaults. Fields absent from the file retain their defaults.
// Files ending in .toml are parsed as TOML, anything else as YAML.
func ConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	unmarshal := yaml.Unmarshal
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		unmarshal = toml.Unmarshal
	}
	if err := unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return cfg, nil
}

// ConfigFromEnv applies environment variable overrides to the given Config.
// If cfg is nil a new default Config is created first.
//
// Environment variable mapping (all optional, prefix LIBRESOLVE_):
//
//	LIBRESOLVE_LIBRARY_NAME     → Library.Name
//	LIBRESOLVE_LIBRARY_VERSION  → Library.Version
//	LIBRESOLVE_SYMBOL           → Library.Symbol
//	LIBRESOLVE_DEPENDENCIES_DIR → Layout.DependenciesDir
//	LIBRESOLVE_LIB_DIR          → Layout.LibDir
//	LIBRESOLVE_VERBOSE          → Log.Verbose ("true"/"false")
func ConfigFromEnv(cfg *Config) *Config {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	setEnvStr("LIBRESOLVE_LIBRARY_NAME", &cfg.Library.Name)
	setEnvStr("LIBRESOLVE_LIBRARY_VERSION", &cfg.Library.Version)
	setEnvStr("LIBRESOLVE_SYMBOL", &cfg.Library.Symbol)

	setEnvStr("LIBRESOLVE_DEPENDENCIES_DIR", &cfg.Layout.DependenciesDir)
	setEnvStr("LIBRESOLVE_LIB_DIR", &cfg.Layout.LibDir)

	setEnvBool("LIBRESOLVE_VERBOSE", &cfg.Log.Verbose)

	return cfg
}

// LoadConfig resolves defaults, the optional YAML or TOML file and the
// environment, in that order. The caller applies CLI overrides afterwards.
func LoadConfig(configPath string) (*Config, error) {
	var cfg *Config

	if configPath != "" {
		var err error
		cfg, err = ConfigFromFile(configPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = DefaultConfig()
	}

	return ConfigFromEnv(cfg), nil
}

// Validate returns an error wrapping ErrInvalidConfig for the first invalid
// field encountered.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Library.Name) == "" {
		return fmt.Errorf("%w: library.name must not be empty", ErrInvalidConfig)
	}
	if strings.ContainsAny(c.Library.Name, `/\`) {
		return fmt.Errorf("%w: library.name must not contain path separators", ErrInvalidConfig)
	}
	if strings.ContainsAny(c.Library.Version, `/\`) {
		return fmt.Errorf("%w: library.version must not contain path separators", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Library.Symbol) == "" {
		return fmt.Errorf("%w: library.symbol must not be empty", ErrInvalidConfig)
	}

	for name, dir := range map[string]string{
		"layout.dependenciesDir": c.Layout.DependenciesDir,
		"layout.libDir":          c.Layout.LibDir,
	} {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, name)
		}
		if strings.ContainsAny(dir, `/\`) {
			return fmt.Errorf("%w: %s must be a single directory name, got %q", ErrInvalidConfig, name, dir)
		}
	}

	if c.Library.Version == "" {
		log.Printf("⚠ WARNING: library.version is empty; the file name will end in a bare dash")
	}

	return nil
}

// ---------------------------------------------------------------------------
// Environment variable helpers
// ---------------------------------------------------------------------------

// setEnvStr sets *target to the value of the named env var if it is non-empty.
func setEnvStr(key string, target *string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

// setEnvBool sets *target to the parsed boolean value of the named env var.
// Accepted values: "true", "1" → true; "false", "0" → false.
func setEnvBool(key string, target *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*target = b
		}
	}
}

// ---------------------------------------------------------------------------
// CLI flag overrides: final layer of the configuration hierarchy.
// ---------------------------------------------------------------------------

// CLIOverrides carries optional values set via command-line flags.
// Pointer fields are nil when the flag was not explicitly provided,
// allowing the caller to distinguish "not set" from the zero value.
type CLIOverrides struct {
	ConfigPath      *string
	Executable      *string
	LibraryName     *string
	LibraryVersion  *string
	Symbol          *string
	DependenciesDir *string
	LibDir          *string
	Verbose         *bool
}

// ApplyCLIOverrides patches the Config with any explicitly-set CLI flags.
// ConfigPath and Executable are consumed by the command itself.
func (c *Config) ApplyCLIOverrides(o *CLIOverrides) {
	if o == nil {
		return
	}
	if o.LibraryName != nil {
		c.Library.Name = *o.LibraryName
	}
	if o.LibraryVersion != nil {
		c.Library.Version = *o.LibraryVersion
	}
	if o.Symbol != nil {
		c.Library.Symbol = *o.Symbol
	}
	if o.DependenciesDir != nil {
		c.Layout.DependenciesDir = *o.DependenciesDir
	}
	if o.LibDir != nil {
		c.Layout.LibDir = *o.LibDir
	}
	if o.Verbose != nil {
		c.Log.Verbose = *o.Verbose
	}
}
