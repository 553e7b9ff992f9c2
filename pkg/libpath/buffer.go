package libpath

import (
	"fmt"

	"github.com/denizumutdereli/libresolve/pkg/core"
)

// TruncationError reports that appending Segment to Path would leave no
// room for the terminating NUL within Max bytes.
type TruncationError struct {
	Path    string
	Segment string
	Max     int
}

// errorPrefixLen bounds how much of the path Error quotes.
const errorPrefixLen = 48

func (e *TruncationError) Error() string {
	prefix := e.Path
	if len(prefix) > errorPrefixLen {
		prefix = prefix[:errorPrefixLen] + "..."
	}
	return fmt.Sprintf("path %q (%d bytes) + %d-byte segment exceeds limit of %d bytes",
		prefix, len(e.Path), len(e.Segment), e.Max)
}

// Unwrap lets errors.Is match core.ErrPathTruncated.
func (e *TruncationError) Unwrap() error { return core.ErrPathTruncated }

// Buffer is a path under construction with a fixed capacity of max bytes,
// terminating NUL included, as PATH_MAX and MAX_PATH count it. It never
// holds more than max-1 bytes.
type Buffer struct {
	path string
	max  int
}

// NewBuffer returns a Buffer holding path, or a TruncationError when path
// does not fit in max bytes with its terminator.
func NewBuffer(path string, max int) (*Buffer, error) {
	b := &Buffer{max: max}
	if err := b.Append(path); err != nil {
		return nil, err
	}
	return b, nil
}

// Trim removes the last path segment and returns it, separator included.
//
// The separator scan runs backwards and never inspects index 0: a path
// without a separator past its first byte trims to the empty string and
// the whole path is returned. Trimming an empty buffer returns "".
func (b *Buffer) Trim() string {
	n := len(b.path) - 1
	for n > 0 && !isSeparator(b.path[n]) {
		n--
	}
	if n < 0 {
		return ""
	}
	seg := b.path[n:]
	b.path = b.path[:n]
	return seg
}

// Append concatenates seg to the buffer. On overflow the buffer is left
// unchanged and a *TruncationError is returned.
func (b *Buffer) Append(seg string) error {
	if len(b.path)+len(seg) >= b.max {
		return &TruncationError{Path: b.path, Segment: seg, Max: b.max}
	}
	b.path += seg
	return nil
}

// Len returns the current length in bytes.
func (b *Buffer) Len() int { return len(b.path) }

// String returns the current path.
func (b *Buffer) String() string { return b.path }

func isSeparator(c byte) bool {
	return c == '/' || c == '\\'
}
