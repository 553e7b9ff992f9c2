package libpath

import (
	"errors"
	"strings"
	"testing"

	"github.com/denizumutdereli/libresolve/pkg/core"
)

func TestTrim(t *testing.T) {
	tests := []struct {
		path     string
		wantSeg  string
		wantPath string
	}{
		{"/a/b/c", "/c", "/a/b"},
		{`C:\dir\file.exe`, `\file.exe`, `C:\dir`},
		{`/mixed\sep`, `\sep`, "/mixed"},
		{"/a/", "/", "/a"},
		{"prog", "prog", ""},
		{"/prog", "/prog", ""},
		{"/", "/", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		b, err := NewBuffer(tt.path, 4096)
		if err != nil {
			t.Fatalf("NewBuffer(%q) failed: %v", tt.path, err)
		}
		seg := b.Trim()
		if seg != tt.wantSeg {
			t.Errorf("Trim(%q) segment = %q, want %q", tt.path, seg, tt.wantSeg)
		}
		if b.String() != tt.wantPath {
			t.Errorf("Trim(%q) left %q, want %q", tt.path, b.String(), tt.wantPath)
		}
	}
}

func TestTrim_RepeatedUntilEmpty(t *testing.T) {
	b, _ := NewBuffer("/a/b", 64)
	for i := 0; i < 5; i++ {
		b.Trim()
	}
	if b.Len() != 0 {
		t.Errorf("expected empty buffer, got %q", b.String())
	}
}

func TestAppend_WithinCapacity(t *testing.T) {
	b, _ := NewBuffer("/a", 9)
	if err := b.Append("/bcdef"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if b.String() != "/a/bcdef" {
		t.Errorf("expected /a/bcdef, got %q", b.String())
	}
}

func TestAppend_OverflowLeavesBufferUnchanged(t *testing.T) {
	b, _ := NewBuffer("/a", 8)
	err := b.Append("/bcdef")
	if err == nil {
		t.Fatal("expected overflow error")
	}
	if !errors.Is(err, core.ErrPathTruncated) {
		t.Errorf("expected ErrPathTruncated, got %v", err)
	}
	var te *TruncationError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TruncationError, got %T", err)
	}
	if te.Path != "/a" || te.Segment != "/bcdef" || te.Max != 8 {
		t.Errorf("unexpected error fields: %+v", te)
	}
	if b.String() != "/a" {
		t.Errorf("buffer changed on overflow: %q", b.String())
	}
}

func TestNewBuffer_TooLong(t *testing.T) {
	if _, err := NewBuffer("/abcdef", 4); !errors.Is(err, core.ErrPathTruncated) {
		t.Errorf("expected ErrPathTruncated, got %v", err)
	}
}

func TestNewBuffer_ReservesTerminator(t *testing.T) {
	if _, err := NewBuffer("/abc", 5); err != nil {
		t.Errorf("4 bytes should fit in 5: %v", err)
	}
	if _, err := NewBuffer("/abcd", 5); !errors.Is(err, core.ErrPathTruncated) {
		t.Errorf("5 bytes should not fit in 5, got %v", err)
	}
}

func TestTruncationError_ShortensPath(t *testing.T) {
	long := "/" + strings.Repeat("x", 4000)
	b, _ := NewBuffer(long, 4096)
	err := b.Append("/" + strings.Repeat("y", 200))
	if err == nil {
		t.Fatal("expected overflow error")
	}

	msg := err.Error()
	if len(msg) > 200 {
		t.Errorf("error message too long (%d bytes): %s", len(msg), msg)
	}
	for _, want := range []string{"(4001 bytes)", "201-byte segment", "limit of 4096 bytes", "..."} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}
