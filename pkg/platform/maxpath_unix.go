//go:build linux || darwin || freebsd

package platform

import "golang.org/x/sys/unix"

const hostMaxPath = unix.PathMax
