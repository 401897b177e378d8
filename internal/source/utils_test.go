package source

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestAbsPath(t *testing.T) {
	cases := []struct {
		base, path, want string
	}{
		{"/root/shaders", "a.frag", "/root/shaders/a.frag"},
		{"/root/shaders", "../lib/./b.glsl", "/root/lib/b.glsl"},
		{"/root/shaders", "/abs/x/../c.glsl", "/abs/c.glsl"},
	}
	for _, tc := range cases {
		got, err := OSFS{}.Abs(tc.base, tc.path)
		if err != nil {
			t.Fatalf("Abs(%q, %q): %v", tc.base, tc.path, err)
		}
		if got != filepath.FromSlash(tc.want) {
			t.Fatalf("Abs(%q, %q) = %q, want %q", tc.base, tc.path, got, tc.want)
		}
	}
	if _, err := (OSFS{}).Abs("/x", ""); !errors.Is(err, ErrEmptyPath) {
		t.Fatalf("err = %v, want ErrEmptyPath", err)
	}
}

func TestRelativePath(t *testing.T) {
	cases := []struct {
		target, base, want string
	}{
		{"/root/shaders/a.frag", "/root/shaders", "a.frag"},
		{"/root/lib/b.glsl", "/root/shaders", "../lib/b.glsl"},
		{"/root/shaders/a.frag", "", "/root/shaders/a.frag"},
		{"rel/a.frag", "/root", "rel/a.frag"},
	}
	for _, tc := range cases {
		if got := RelativePath(tc.target, tc.base); got != tc.want {
			t.Fatalf("RelativePath(%q, %q) = %q, want %q", tc.target, tc.base, got, tc.want)
		}
	}
}

func TestDefaultRoot(t *testing.T) {
	dir, err := DefaultRoot()
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(dir) {
		t.Fatalf("DefaultRoot() = %q, want absolute", dir)
	}
}
