package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleBag(), JSONOpts{Root: "/s", Max: 1, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 2 || len(out.Diagnostics) != 1 {
		t.Fatalf("max not applied: count=%d len=%d", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Code != "EXW1001" || d.File != "main.glsl" || d.Count != 2 || len(d.Related) != 1 || d.Related[0] != "x.glsl" {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
	if len(d.Notes) != 1 {
		t.Fatalf("notes missing: %+v", d)
	}
}

func TestResultsFormats(t *testing.T) {
	out := NewResultsOutput([]ResultJSON{
		{Path: "a.frag", Text: "A\n", Includes: []string{"common.glsl"}},
		{Path: "b.frag", Failed: true, Diagnostics: []DiagnosticJSON{{Severity: "ERROR", Code: "IO4002", Message: "file not found"}}},
	})
	if out.Count != 2 || out.Failed != 1 {
		t.Fatalf("counters: %+v", out)
	}

	var text bytes.Buffer
	if err := WriteResults(&text, out, FormatText); err != nil {
		t.Fatalf("text: %v", err)
	}
	if got := text.String(); got != "// ==== a.frag ====\nA\n" {
		t.Fatalf("text output: %q", got)
	}

	var packed bytes.Buffer
	if err := WriteResults(&packed, out, FormatMsgpack); err != nil {
		t.Fatalf("msgpack: %v", err)
	}
	back, err := ReadResultsMsgpack(&packed)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.Failed != 1 || back.Results[1].Diagnostics[0].Code != "IO4002" || back.Results[0].Includes[0] != "common.glsl" {
		t.Fatalf("msgpack lost data: %+v", back)
	}

	var js bytes.Buffer
	if err := WriteResults(&js, out, FormatJSON); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !json.Valid(js.Bytes()) {
		t.Fatalf("invalid json: %s", js.String())
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "JSON": FormatJSON, "msgpack": FormatMsgpack} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("%q: got %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Errorf("expected error for xml")
	}
}
