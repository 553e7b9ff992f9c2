// Package libpath computes where a dependency shared library lives
// relative to the executable that needs it.
//
// The layout walks up from the executable and back down into the
// dependency tree:
//
//	<root>/<x>/<y>/<arch>/<os>/<program>
//	<root>/dependencies/lib/<arch>/<os>/<library file>
//
// The arch and os directory names are taken from the executable's own
// path, so a program staged under any classifier directory finds the
// library staged under the same one.
package libpath

import (
	"github.com/denizumutdereli/libresolve/pkg/core"
	"github.com/denizumutdereli/libresolve/pkg/platform"
)

// Resolver computes library paths for one library and layout.
type Resolver struct {
	Platform        platform.Platform
	LibraryName     string
	LibraryVersion  string
	DependenciesDir string
	LibDir          string
}

// New returns a Resolver for the host platform configured from cfg.
func New(cfg *core.Config) *Resolver {
	return NewForPlatform(cfg, platform.Detect())
}

// NewForPlatform returns a Resolver that names the library the way p does.
func NewForPlatform(cfg *core.Config, p platform.Platform) *Resolver {
	return &Resolver{
		Platform:        p,
		LibraryName:     cfg.Library.Name,
		LibraryVersion:  cfg.Library.Version,
		DependenciesDir: cfg.Layout.DependenciesDir,
		LibDir:          cfg.Layout.LibDir,
	}
}

// Resolution is a computed path together with the directory names
// captured on the way up.
type Resolution struct {
	Path string
	// Arch and OS keep their leading separator, e.g. "/x86_64".
	Arch string
	OS   string
}

// ComputePath returns the library path for the executable at exe.
func (r *Resolver) ComputePath(exe string) (string, error) {
	res, err := r.Resolve(exe)
	if err != nil {
		return "", err
	}
	return res.Path, nil
}

// Resolve runs the trim/append sequence on exe. The result always fits in
// the platform's maximum path length with its terminating NUL; a
// *TruncationError is returned instead.
func (r *Resolver) Resolve(exe string) (Resolution, error) {
	b, err := NewBuffer(exe, r.Platform.MaxPath())
	if err != nil {
		return Resolution{}, err
	}

	var osSeg, archSeg string
	chops := []*string{nil, &osSeg, &archSeg, nil, nil}
	for _, capture := range chops {
		seg := b.Trim()
		if capture != nil {
			*capture = seg
		}
	}

	appends := []string{
		"/" + r.DependenciesDir,
		"/" + r.LibDir,
		archSeg,
		osSeg,
		"/" + r.Platform.LibraryFilename(r.LibraryName, r.LibraryVersion),
	}
	for _, seg := range appends {
		if err := b.Append(seg); err != nil {
			return Resolution{}, err
		}
	}

	return Resolution{Path: b.String(), Arch: archSeg, OS: osSeg}, nil
}
