package platform

import (
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// CPUInfo summarises the processor a library will be loaded on. A library
// built for the right classifier can still fail to load if it was compiled
// for features the CPU lacks, so the report lists them.
type CPUInfo struct {
	Brand         string   `yaml:"brand" toml:"brand"`
	Vendor        string   `yaml:"vendor" toml:"vendor"`
	PhysicalCores int      `yaml:"physicalCores" toml:"physicalCores"`
	LogicalCores  int      `yaml:"logicalCores" toml:"logicalCores"`
	Features      []string `yaml:"features,omitempty" toml:"features,omitempty"`
}

// CPU reports the host processor. Fields cpuid cannot detect are zero.
func CPU() CPUInfo {
	info := CPUInfo{
		Brand:         cpuid.CPU.BrandName,
		Vendor:        cpuid.CPU.VendorString,
		PhysicalCores: cpuid.CPU.PhysicalCores,
		LogicalCores:  cpuid.CPU.LogicalCores,
		Features:      cpuid.CPU.FeatureSet(),
	}
	if info.LogicalCores == 0 {
		info.LogicalCores = runtime.NumCPU()
	}
	return info
}

// Info is the full host report printed by the platform command.
type Info struct {
	Platform        Platform `yaml:"platform" toml:"platform"`
	Classifier      string   `yaml:"classifier" toml:"classifier"`
	LibraryFilename string   `yaml:"libraryFilename" toml:"libraryFilename"`
	MaxPath         int      `yaml:"maxPath" toml:"maxPath"`
	CPU             CPUInfo  `yaml:"cpu" toml:"cpu"`
}

// Describe collects an Info for p using the given library name and version.
func Describe(p Platform, name, version string) Info {
	return Info{
		Platform:        p,
		Classifier:      p.Classifier(),
		LibraryFilename: p.LibraryFilename(name, version),
		MaxPath:         p.MaxPath(),
		CPU:             CPU(),
	}
}
