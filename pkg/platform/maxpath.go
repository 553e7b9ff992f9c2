package platform

import "runtime"

// Maximum path lengths of targets other than the host, used when a
// Platform is built for another GOOS.
const (
	linuxMaxPath   = 4096
	bsdMaxPath     = 1024
	windowsMaxPath = 260
)

// MaxPath returns the longest path, in bytes, the platform's loader accepts.
// The host value comes from the system headers; other targets use the
// documented defaults.
func (p Platform) MaxPath() int {
	if p.GOOS == runtime.GOOS {
		return hostMaxPath
	}
	switch {
	case p.IsWindows():
		return windowsMaxPath
	case p.IsLinux(), p.GOOS == "android":
		return linuxMaxPath
	default:
		return bsdMaxPath
	}
}
