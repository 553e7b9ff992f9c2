package core

import "errors"

var (
	ErrPathTruncated  = errors.New("resolved path exceeds maximum path length")
	ErrLoad           = errors.New("failed to load shared library")
	ErrSymbolNotFound = errors.New("symbol not found in shared library")
	ErrInvalidConfig  = errors.New("invalid configuration")
)
