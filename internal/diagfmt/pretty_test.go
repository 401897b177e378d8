package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"glslx/internal/diag"
)

func sampleBag() *diag.Bag {
	bag := diag.NewBag(0)
	bag.Add(diag.NewWarning(diag.ExpMultipleSameIncludes, "/s/main.glsl", "file x.glsl was included 2 times in file main.glsl").
		WithRelated("/s/x.glsl").
		WithCount(2).
		WithNote("", "set same-includes to change this behaviour"))
	bag.Add(diag.NewError(diag.ExpInfiniteRecursion, "/s/b.glsl", "infinite recursion: a.glsl -> b.glsl -> a.glsl").
		WithRelated("/s/a.glsl", "/s/b.glsl", "/s/a.glsl"))
	return bag
}

func TestPrettyPlain(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, sampleBag(), PrettyOpts{Root: "/s", ShowNotes: true})

	want := "main.glsl: WARNING EXW1001: file x.glsl was included 2 times in file main.glsl\n" +
		"  note: set same-includes to change this behaviour\n" +
		"b.glsl: ERROR EXP2001: infinite recursion: a.glsl -> b.glsl -> a.glsl\n" +
		"  cycle: a.glsl -> b.glsl -> a.glsl\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyColorAndPathModes(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, sampleBag(), PrettyOpts{Color: true, PathMode: PathModeBasename})
	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected ANSI sequences: %q", out)
	}
	if strings.Contains(out, "note:") {
		t.Fatalf("notes must be hidden without ShowNotes")
	}

	buf.Reset()
	PrettyReporter{W: &buf, Opts: PrettyOpts{PathMode: PathModeAbsolute}}.
		Report(diag.NewError(diag.IOFileNotFound, "/s/a.glsl", "file not found"))
	if got := buf.String(); got != "/s/a.glsl: ERROR IO4002: file not found\n" {
		t.Fatalf("absolute: %q", got)
	}
}
