package platform

import "strings"

// Naming turns a library base name and version into the file name the
// platform's dynamic loader expects.
type Naming interface {
	LibraryFilename(name, version string) string
}

// Naming returns the file naming strategy for p.
func (p Platform) Naming() Naming {
	switch {
	case p.IsMacOSX():
		return appleNaming{}
	case p.IsWindows():
		return windowsNaming{}
	default:
		return elfNaming{}
	}
}

// LibraryFilename is shorthand for p.Naming().LibraryFilename.
func (p Platform) LibraryFilename(name, version string) string {
	return p.Naming().LibraryFilename(name, version)
}

// appleNaming produces loadable bundles: libfoo-1.0.bundle.
type appleNaming struct{}

func (appleNaming) LibraryFilename(name, version string) string {
	return name + "-" + version + ".bundle"
}

// windowsNaming produces DLLs; the version dots become dashes because
// the loader treats everything after the first dot as the extension.
type windowsNaming struct{}

func (windowsNaming) LibraryFilename(name, version string) string {
	return name + "-" + strings.ReplaceAll(version, ".", "-") + ".dll"
}

type elfNaming struct{}

func (elfNaming) LibraryFilename(name, version string) string {
	return name + "-" + version + ".so"
}
