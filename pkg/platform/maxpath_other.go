//go:build !linux && !darwin && !freebsd && !windows

package platform

// POSIX guarantees at least _POSIX_PATH_MAX (256); 1024 matches the BSDs.
const hostMaxPath = 1024
