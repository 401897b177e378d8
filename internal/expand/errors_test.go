package expand

import (
	"errors"
	"testing"

	"glslx/internal/diag"
	"glslx/internal/rules"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("cause")
	cases := []struct {
		err  *Error
		want string
		code diag.Code
	}{
		{&Error{Kind: PathNormalizationFailure, Path: "x", Root: "/s", Err: cause}, `unable to normalize path "x": cause`, diag.IOPathNormalization},
		{&Error{Kind: FileNotFound, Path: "/s/a/b.glsl", Root: "/s"}, `file not found: "a/b.glsl"`, diag.IOFileNotFound},
		{&Error{Kind: FileReadFailure, Path: "/t/b.glsl", Root: "/s", Err: cause}, `failed to read file "../t/b.glsl": cause`, diag.IOFileReadFailure},
		{&Error{Kind: PatternCompilationFailure, Err: cause}, `failed to compile pattern: cause`, diag.ExpPatternCompilation},
		{&Error{Kind: InvalidRange, Path: "/s/a.glsl", Root: "/s", Err: cause}, `invalid mark range in "a.glsl": cause`, diag.ExpInvalidRange},
		{&Error{Kind: MissingFileParent, Path: "/", Root: "/s"}, `unable to get parent directory of ".."`, diag.ExpMissingFileParent},
		{&Error{Kind: InfiniteRecursion}, `infinite recursion (no data)`, diag.ExpInfiniteRecursion},
		{&Error{Kind: TextExpansionFailure, Path: "/s/a.glsl", Root: "/s"}, `failed to expand text of "a.glsl"`, diag.ExpTextExpansion},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("%v: got %q want %q", tc.err.Kind, got, tc.want)
		}
		if !errors.Is(tc.err, tc.err.Kind.sentinel()) {
			t.Errorf("%v: errors.Is failed", tc.err.Kind)
		}
		if tc.err.Kind.Code() != tc.code {
			t.Errorf("%v: code %v", tc.err.Kind, tc.err.Kind.Code())
		}
	}
	if errors.Is(&Error{Kind: FileNotFound}, ErrFileRead) {
		t.Fatalf("kinds must not match each other")
	}
}

func TestWarningDiagnostic(t *testing.T) {
	w := Warning{
		Kind:     WarnMultipleSameIncludes,
		File:     "/s/main.glsl",
		Included: "/s/lib/x.glsl",
		Times:    3,
		Action:   rules.SameIncludesIgnoreAll,
	}
	d := w.Diagnostic("/s")
	if d.Severity != diag.SevWarning || d.Count != 3 || d.Path != "/s/main.glsl" {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
	if d.Message != "file lib/x.glsl was included 3 times in file main.glsl" {
		t.Fatalf("message: %q", d.Message)
	}
}
