// Package diag defines the diagnostic model shared by the expander, the
// batch driver and the CLI.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Path – absolute path of the file the finding is about.
//   - Related – other files involved (the repeated include, a cycle chain).
//   - Count – occurrence count where it matters (repeated includes).
//
// # Emitting diagnostics
//
// Producers report through a Reporter so that emission stays decoupled from
// storage and rendering. BagReporter collects into a Bag (sorting,
// deduplication), MultiReporter fans out, DedupReporter filters repeats.
// Rendering lives in internal/diagfmt.
package diag
