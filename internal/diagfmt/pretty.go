package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"glslx/internal/diag"
)

type palette struct {
	err, warn, info, code, path, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgHiYellow, color.Bold),
		info: color.New(color.FgCyan),
		code: color.New(color.Faint),
		path: color.New(color.Bold),
		note: color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>: <SEV> <CODE>: <Message>
// затем цепочку связанных файлов и Notes.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	for _, d := range bag.Items() {
		PrettyOne(w, d, opts)
	}
}

// PrettyOne prints a single diagnostic.
func PrettyOne(w io.Writer, d diag.Diagnostic, opts PrettyOpts) {
	p := newPalette(opts.Color)

	var sb strings.Builder
	if path := formatPath(d.Path, opts.PathMode, opts.Root); path != "" {
		sb.WriteString(p.path.Sprint(path))
		sb.WriteString(": ")
	}
	sb.WriteString(p.severity(d.Severity).Sprint(d.Severity.String()))
	sb.WriteString(" ")
	sb.WriteString(p.code.Sprint(d.Code.ID()))
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	sb.WriteString("\n")

	if d.Code == diag.ExpInfiniteRecursion && len(d.Related) > 0 {
		parts := make([]string, len(d.Related))
		for i, r := range d.Related {
			parts[i] = formatPath(r, opts.PathMode, opts.Root)
		}
		fmt.Fprintf(&sb, "  cycle: %s\n", strings.Join(parts, " -> "))
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			sb.WriteString("  ")
			sb.WriteString(p.note.Sprint("note"))
			sb.WriteString(": ")
			if path := formatPath(n.Path, opts.PathMode, opts.Root); path != "" {
				sb.WriteString(path)
				sb.WriteString(": ")
			}
			sb.WriteString(n.Msg)
			sb.WriteString("\n")
		}
	}

	_, _ = io.WriteString(w, sb.String()) //nolint:errcheck
}

// PrettyReporter prints every reported diagnostic immediately.
type PrettyReporter struct {
	W    io.Writer
	Opts PrettyOpts
}

func (r PrettyReporter) Report(d diag.Diagnostic) {
	PrettyOne(r.W, d, r.Opts)
}
