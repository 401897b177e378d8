package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"glslx/internal/diagfmt"
	"glslx/internal/driver"
	"glslx/internal/rules"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

// runCLI выполняет команду в dir и возвращает stdout, stderr и ошибку.
func runCLI(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(dir)
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--color", "off"}, args...))
	err := cmd.ExecuteContext(context.Background())
	runCleanup()
	return stdout.String(), stderr.String(), err
}

func repeatedProject() map[string]string {
	return map[string]string{
		"main.frag":   "#include \"common.glsl\"\n#include \"common.glsl\"\nvoid main(){}\n",
		"common.glsl": "C\n",
	}
}

func TestExpandCommandText(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, repeatedProject())

	stdout, stderr, err := runCLI(t, dir, "expand", "--ui", "off", "main.frag")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if want := "C\n\n\nvoid main(){}\n"; stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
	if !strings.Contains(stderr, "EXW1001") || !strings.Contains(stderr, "included 2 times") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestExpandCommandNoWarnings(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, repeatedProject())

	_, stderr, err := runCLI(t, dir, "expand", "--ui", "off", "--no-warnings", "main.frag")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if stderr != "" {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestExpandCommandManifestAndFlags(t *testing.T) {
	dir := t.TempDir()
	files := repeatedProject()
	files["glslx.toml"] = "[package]\nentries = [\"main.frag\"]\n\n[expand]\nsame_includes = \"ignore-all\"\n"
	writeFiles(t, dir, files)

	// манифест: все копии остаются
	stdout, _, err := runCLI(t, dir, "expand", "--ui", "off", "--format", "json")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	var out diagfmt.ResultsOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if out.Count != 1 || out.Results[0].Path != "main.frag" {
		t.Fatalf("results = %+v", out)
	}
	if got := out.Results[0].Text; got != "C\n\nC\n\nvoid main(){}\n" {
		t.Fatalf("text = %q", got)
	}

	// флаг сильнее манифеста
	stdout, _, err = runCLI(t, dir, "expand", "--ui", "off", "--format", "json", "--same-includes", "delete-repeats")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	out = diagfmt.ResultsOutput{}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	r := out.Results[0]
	if r.Text != "C\n\n\nvoid main(){}\n" || len(r.Diagnostics) != 1 || r.Diagnostics[0].Code != "EXW1001" {
		t.Fatalf("result = %+v", r)
	}
	if len(r.Includes) != 1 || r.Includes[0] != "common.glsl" {
		t.Fatalf("includes = %v", r.Includes)
	}
}

func TestExpandCommandWritesMsgpackFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, repeatedProject())
	outPath := filepath.Join(dir, "out.mp")

	if _, _, err := runCLI(t, dir, "expand", "--ui", "off", "--format", "msgpack", "-o", outPath, "main.frag", "common.glsl"); err != nil {
		t.Fatalf("expand: %v", err)
	}
	f, err := os.Open(outPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	out, err := diagfmt.ReadResultsMsgpack(f)
	if err != nil {
		t.Fatalf("ReadResultsMsgpack: %v", err)
	}
	if out.Count != 2 || out.Results[1].Text != "C\n" {
		t.Fatalf("out = %+v", out)
	}
}

func TestExpandCommandFailure(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"loop.glsl": "#include \"loop.glsl\"\n",
		"ok.glsl":   "fine\n",
	})

	stdout, stderr, err := runCLI(t, dir, "expand", "--ui", "off", "loop.glsl", "ok.glsl")
	if err == nil || !strings.Contains(err.Error(), "1 of 2 shaders failed") {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(stdout, "// ==== ok.glsl ====\nfine\n") || strings.Contains(stdout, "loop.glsl") {
		t.Fatalf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "cycle: loop.glsl -> loop.glsl") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestExpandCommandMetrics(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, repeatedProject())
	metricsPath := filepath.Join(dir, "metrics.txt")

	if _, _, err := runCLI(t, dir, "expand", "--ui", "off", "--metrics", metricsPath, "main.frag"); err != nil {
		t.Fatalf("expand: %v", err)
	}
	data, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"glslx_files_loaded_total 2", "glslx_repeats_removed_total 1"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("metrics missing %q:\n%s", want, data)
		}
	}
}

func TestDepsCommandOrder(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"main.frag":   "#include \"a.glsl\"\n#include \"b.glsl\"\n",
		"a.glsl":      "#include \"common.glsl\"\n",
		"b.glsl":      "#include \"common.glsl\"\n",
		"common.glsl": "C\n",
	})

	stdout, _, err := runCLI(t, dir, "deps", "--format", "order", "main.frag")
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	if want := "common.glsl\nb.glsl\na.glsl\nmain.frag\n"; stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}

	stdout, _, err = runCLI(t, dir, "deps", "main.frag")
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	if len(lines) != 5 || !strings.HasPrefix(lines[0], "main.frag") || !strings.HasPrefix(lines[4], "    └── common.glsl") {
		t.Fatalf("tree:\n%s", stdout)
	}
}

func TestInitThenExpand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")
	if _, _, err := runCLI(t, filepath.Dir(dir), "init", "proj"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, _, err := runCLI(t, dir, "init"); err == nil {
		t.Fatal("second init must fail")
	}

	stdout, _, err := runCLI(t, dir, "expand", "--ui", "off")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if !strings.Contains(stdout, "vec3 tint(vec3 c)") || strings.Contains(stdout, "#include") {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestExpandWithoutInputs(t *testing.T) {
	_, _, err := runCLI(t, t.TempDir(), "expand", "--ui", "off")
	if err == nil || !strings.Contains(err.Error(), "no input files") {
		t.Fatalf("err = %v", err)
	}
}

func TestVersionJSON(t *testing.T) {
	stdout, _, err := runCLI(t, t.TempDir(), "version", "--format", "json", "--full")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Tool != "glslx" || payload.GitCommit == "" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestReadUIMode(t *testing.T) {
	cases := map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff}
	for in, want := range cases {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Fatalf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Fatal("expected error")
	}
	if shouldUseTUI(uiModeOff, 10) || !shouldUseTUI(uiModeOn, 1) {
		t.Fatal("explicit modes must win")
	}
}

func TestBuildPolicyPrecedence(t *testing.T) {
	cmd := newExpandCmd()
	if err := cmd.Flags().Parse([]string{"--no-warnings"}); err != nil {
		t.Fatal(err)
	}
	policy, err := buildPolicy(cmd, nil)
	if err != nil {
		t.Fatalf("buildPolicy: %v", err)
	}
	if policy.DisplayWarnings.Value() || policy.DisplayWarnings.IsDefault() {
		t.Fatalf("display warnings = %+v", policy.DisplayWarnings)
	}
	if policy.SameIncludes.Value() != rules.SameIncludesDeleteRepeats || !policy.SameIncludes.IsDefault() {
		t.Fatalf("same includes = %+v", policy.SameIncludes)
	}

	bad := newExpandCmd()
	if err := bad.Flags().Parse([]string{"--same-includes", "sometimes"}); err != nil {
		t.Fatal(err)
	}
	if _, err := buildPolicy(bad, nil); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestTimingsAndProfiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, repeatedProject())
	cpu := filepath.Join(dir, "cpu.pprof")

	_, stderr, err := runCLI(t, dir, "--timings", "--cpu-profile", cpu, "expand", "--ui", "off", "--no-warnings", "main.frag")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	for _, want := range []string{"timings:", "config", "expand", "write", "total"} {
		if !strings.Contains(stderr, want) {
			t.Fatalf("stderr missing %q:\n%s", want, stderr)
		}
	}
	if _, err := os.Stat(cpu); err != nil {
		t.Fatalf("cpu profile: %v", err)
	}
}

func TestTraceToFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, repeatedProject())
	tracePath := filepath.Join(dir, "trace.ndjson")

	if _, _, err := runCLI(t, dir, "--trace", tracePath, "--trace-level", "detail", "expand", "--ui", "off", "main.frag"); err != nil {
		t.Fatalf("expand: %v", err)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"expand-batch"`) || !strings.Contains(string(data), `"file:main.frag"`) {
		t.Fatalf("trace:\n%s", data)
	}
}

type closeFails struct{ bytes.Buffer }

func (*closeFails) Close() error { return errors.New("disk full") }

func TestExpandOutputReportsCloseError(t *testing.T) {
	orig := createOutput
	t.Cleanup(func() { createOutput = orig })
	out := &closeFails{}
	createOutput = func(string) (io.WriteCloser, error) { return out, nil }

	err := writeExpandOutput(newRootCmd(), &driver.Batch{Root: t.TempDir()}, diagfmt.FormatJSON, "out.json")
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("close error lost: %v", err)
	}
	if out.Len() == 0 {
		t.Fatalf("nothing written before close")
	}
}
