package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Format selects how expansion results are written.
type Format uint8

const (
	FormatText Format = iota
	FormatJSON
	FormatMsgpack
)

// ParseFormat converts a flag value to Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	default:
		return FormatText, fmt.Errorf("invalid format: %q (expected: text|json|msgpack)", s)
	}
}

// ResultJSON is one expanded entry point.
type ResultJSON struct {
	Path        string           `json:"path" msgpack:"path"`
	Text        string           `json:"text" msgpack:"text"`
	Includes    []string         `json:"includes,omitempty" msgpack:"includes,omitempty"`
	Diagnostics []DiagnosticJSON `json:"diagnostics,omitempty" msgpack:"diagnostics,omitempty"`
	Failed      bool             `json:"failed,omitempty" msgpack:"failed,omitempty"`
}

// ResultsOutput is the root of machine-readable expand output.
type ResultsOutput struct {
	Results []ResultJSON `json:"results" msgpack:"results"`
	Count   int          `json:"count" msgpack:"count"`
	Failed  int          `json:"failed" msgpack:"failed"`
}

// NewResultsOutput fills the counters from results.
func NewResultsOutput(results []ResultJSON) ResultsOutput {
	out := ResultsOutput{Results: results, Count: len(results)}
	for _, r := range results {
		if r.Failed {
			out.Failed++
		}
	}
	return out
}

// WriteResults writes out in the given format. The text format prints the
// expanded sources one after another, with a header line per file when
// there is more than one.
func WriteResults(w io.Writer, out ResultsOutput, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case FormatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(out); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		return nil
	default:
		for _, r := range out.Results {
			if r.Failed {
				continue
			}
			if len(out.Results) > 1 {
				if _, err := fmt.Fprintf(w, "// ==== %s ====\n", r.Path); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, r.Text); err != nil {
				return err
			}
		}
		return nil
	}
}

// ReadResultsMsgpack decodes output written with FormatMsgpack.
func ReadResultsMsgpack(r io.Reader) (ResultsOutput, error) {
	var out ResultsOutput
	if err := msgpack.NewDecoder(r).Decode(&out); err != nil {
		return ResultsOutput{}, fmt.Errorf("failed to decode results: %w", err)
	}
	return out, nil
}
