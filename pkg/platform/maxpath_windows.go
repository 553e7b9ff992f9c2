//go:build windows

package platform

import "golang.org/x/sys/windows"

const hostMaxPath = windows.MAX_PATH
