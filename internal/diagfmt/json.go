package diagfmt

import (
	"encoding/json"
	"io"

	"glslx/internal/diag"
)

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message string `json:"message" msgpack:"message"`
	File    string `json:"file,omitempty" msgpack:"file,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string     `json:"severity" msgpack:"severity"`
	Code     string     `json:"code" msgpack:"code"`
	Message  string     `json:"message" msgpack:"message"`
	File     string     `json:"file,omitempty" msgpack:"file,omitempty"`
	Related  []string   `json:"related,omitempty" msgpack:"related,omitempty"`
	Count    int        `json:"count,omitempty" msgpack:"count,omitempty"`
	Notes    []NoteJSON `json:"notes,omitempty" msgpack:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics" msgpack:"diagnostics"`
	Count       int              `json:"count" msgpack:"count"`
}

// MakeDiagnostic converts d with paths rendered per opts.
func MakeDiagnostic(d diag.Diagnostic, opts JSONOpts) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		File:     formatPath(d.Path, opts.PathMode, opts.Root),
		Count:    d.Count,
	}
	for _, r := range d.Related {
		out.Related = append(out.Related, formatPath(r, opts.PathMode, opts.Root))
	}
	if opts.IncludeNotes {
		for _, n := range d.Notes {
			out.Notes = append(out.Notes, NoteJSON{
				Message: n.Msg,
				File:    formatPath(n.Path, opts.PathMode, opts.Root),
			})
		}
	}
	return out
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for i := range maxItems {
		diagnostics = append(diagnostics, MakeDiagnostic(items[i], opts))
	}
	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(items),
	}
}

// JSON форматирует диагностики в JSON.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, opts))
}
