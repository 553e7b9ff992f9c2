// Package platform describes the host the resolver runs on in the naming
// used by native dependency layouts: normalised OS and architecture names,
// the "native-<arch>-<os>" classifier, the shared-library file naming
// strategy and the maximum path length.
package platform

import (
	"runtime"
	"strings"
)

// Normalised operating system names.
const (
	OSWindows = "windows"
	OSLinux   = "linux"
	OSMacOSX  = "macosx"
)

// Normalised architecture names.
const (
	ArchX86    = "x86"
	ArchX86_64 = "x86_64"
	ArchPPC    = "ppc"
	ArchPPC64  = "ppc64"
	ArchSparc  = "sparc"
)

// Platform is a Go target together with its native-layout names.
type Platform struct {
	GOOS   string `yaml:"goos" toml:"goos"`
	GOARCH string `yaml:"goarch" toml:"goarch"`
	OS     string `yaml:"os" toml:"os"`
	Arch   string `yaml:"arch" toml:"arch"`
}

// Detect returns the Platform of the running process.
func Detect() Platform {
	return New(runtime.GOOS, runtime.GOARCH)
}

// New builds a Platform for the given Go target.
func New(goos, goarch string) Platform {
	return Platform{
		GOOS:   goos,
		GOARCH: goarch,
		OS:     normalizeOS(goos),
		Arch:   normalizeArch(goarch),
	}
}

func normalizeOS(goos string) string {
	os := strings.ToLower(goos)
	switch {
	case strings.HasPrefix(os, "windows"):
		return OSWindows
	case os == "darwin" || os == "ios":
		return OSMacOSX
	}
	return strings.NewReplacer(" ", "", "/", "").Replace(os)
}

func normalizeArch(goarch string) string {
	switch arch := strings.ToLower(goarch); arch {
	case "386", "i386":
		return ArchX86
	case "amd64":
		return ArchX86_64
	case "powerpc":
		return ArchPPC
	default:
		return arch
	}
}

func (p Platform) IsWindows() bool { return p.OS == OSWindows }
func (p Platform) IsLinux() bool   { return p.OS == OSLinux }
func (p Platform) IsMacOSX() bool  { return p.OS == OSMacOSX }
func (p Platform) IsX86() bool     { return p.Arch == ArchX86 }
func (p Platform) IsX86_64() bool  { return p.Arch == ArchX86_64 }
func (p Platform) IsPPC() bool     { return p.Arch == ArchPPC }
func (p Platform) IsPPC64() bool   { return p.Arch == ArchPPC64 }
func (p Platform) IsSparc() bool   { return p.Arch == ArchSparc }

// Classifier returns the attached-artifact classifier, e.g.
// "native-x86_64-linux".
func (p Platform) Classifier() string {
	return "native-" + p.Arch + "-" + p.OS
}

// String implements fmt.Stringer.
func (p Platform) String() string {
	return p.GOOS + "/" + p.GOARCH
}
