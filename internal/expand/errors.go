package expand

import (
	"errors"
	"fmt"
	"strings"

	"glslx/internal/diag"
	"glslx/internal/source"
)

// ErrorKind classifies expansion failures.
type ErrorKind uint8

const (
	PathNormalizationFailure ErrorKind = iota + 1
	FileNotFound
	FileReadFailure
	PatternCompilationFailure
	InvalidRange
	MissingFileParent
	InfiniteRecursion
	TextExpansionFailure
)

// Sentinels for errors.Is; every *Error matches the one of its kind.
var (
	ErrPathNormalization  = errors.New("path normalization failure")
	ErrFileNotFound       = errors.New("file not found")
	ErrFileRead           = errors.New("file read failure")
	ErrPatternCompilation = errors.New("pattern compilation failure")
	ErrInvalidRange       = errors.New("invalid range")
	ErrMissingFileParent  = errors.New("missing file parent")
	ErrInfiniteRecursion  = errors.New("infinite recursion")
	ErrTextExpansion      = errors.New("text expansion failure")
)

func (k ErrorKind) String() string {
	switch k {
	case PathNormalizationFailure:
		return "path-normalization"
	case FileNotFound:
		return "file-not-found"
	case FileReadFailure:
		return "file-read"
	case PatternCompilationFailure:
		return "pattern-compilation"
	case InvalidRange:
		return "invalid-range"
	case MissingFileParent:
		return "missing-file-parent"
	case InfiniteRecursion:
		return "infinite-recursion"
	case TextExpansionFailure:
		return "text-expansion"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case PathNormalizationFailure:
		return ErrPathNormalization
	case FileNotFound:
		return ErrFileNotFound
	case FileReadFailure:
		return ErrFileRead
	case PatternCompilationFailure:
		return ErrPatternCompilation
	case InvalidRange:
		return ErrInvalidRange
	case MissingFileParent:
		return ErrMissingFileParent
	case InfiniteRecursion:
		return ErrInfiniteRecursion
	case TextExpansionFailure:
		return ErrTextExpansion
	}
	return nil
}

// Code maps the kind to its diagnostic code.
func (k ErrorKind) Code() diag.Code {
	switch k {
	case PathNormalizationFailure:
		return diag.IOPathNormalization
	case FileNotFound:
		return diag.IOFileNotFound
	case FileReadFailure:
		return diag.IOFileReadFailure
	case PatternCompilationFailure:
		return diag.ExpPatternCompilation
	case InvalidRange:
		return diag.ExpInvalidRange
	case MissingFileParent:
		return diag.ExpMissingFileParent
	case InfiniteRecursion:
		return diag.ExpInfiniteRecursion
	case TextExpansionFailure:
		return diag.ExpTextExpansion
	}
	return diag.ExpError
}

// Error is an expansion failure. Path and Files are absolute; Root is used
// only to print them shorter.
type Error struct {
	Kind  ErrorKind
	Path  string
	Files []string // цепочка include для InfiniteRecursion
	Root  string
	Err   error
}

func (e *Error) Error() string {
	rel := source.RelativePath(e.Path, e.Root)
	switch e.Kind {
	case PathNormalizationFailure:
		return fmt.Sprintf("unable to normalize path %q: %v", e.Path, e.Err)
	case FileNotFound:
		return fmt.Sprintf("file not found: %q", rel)
	case FileReadFailure:
		return fmt.Sprintf("failed to read file %q: %v", rel, e.Err)
	case PatternCompilationFailure:
		return fmt.Sprintf("failed to compile pattern: %v", e.Err)
	case InvalidRange:
		return fmt.Sprintf("invalid mark range in %q: %v", rel, e.Err)
	case MissingFileParent:
		return fmt.Sprintf("unable to get parent directory of %q", rel)
	case InfiniteRecursion:
		if len(e.Files) == 0 {
			return "infinite recursion (no data)"
		}
		return "infinite recursion: " + e.Chain()
	case TextExpansionFailure:
		if e.Err != nil {
			return fmt.Sprintf("failed to expand text of %q: %v", rel, e.Err)
		}
		return fmt.Sprintf("failed to expand text of %q", rel)
	}
	return fmt.Sprintf("expansion failed for %q", rel)
}

// Chain renders Files as "a -> b -> a", relative to Root.
func (e *Error) Chain() string {
	parts := make([]string, len(e.Files))
	for i, f := range e.Files {
		parts[i] = source.RelativePath(f, e.Root)
	}
	return strings.Join(parts, " -> ")
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel of e.Kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// Diagnostic converts e into an error diagnostic.
func (e *Error) Diagnostic() diag.Diagnostic {
	d := diag.NewError(e.Kind.Code(), e.Path, e.Error())
	if len(e.Files) > 0 {
		d = d.WithRelated(e.Files...)
	}
	return d
}

// ErrorDiagnostic converts any error returned by the resolver.
func ErrorDiagnostic(err error) diag.Diagnostic {
	var expErr *Error
	if errors.As(err, &expErr) {
		return expErr.Diagnostic()
	}
	return diag.NewError(diag.ExpError, "", err.Error())
}

func (r *Resolver) fail(kind ErrorKind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Root: r.root, Err: err}
}
