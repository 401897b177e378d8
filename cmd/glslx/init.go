package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path|name]",
		Short: "Initialize a new shader project",
		Long: `Initialize a shader project by creating a manifest (glslx.toml), an entry
shader (main.frag) and a shared include (common.glsl). If [path|name] is
omitted, initializes the current directory; a missing directory is created.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "shaders"
	}

	manifestPath := filepath.Join(target, "glslx.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(buildDefaultManifest(name)), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized shader project in %s\n", target)
	fmt.Fprintf(out, "  - glslx.toml\n")
	for _, f := range []struct{ name, body string }{
		{"main.frag", defaultMainFrag},
		{"common.glsl", defaultCommonGLSL},
	} {
		path := filepath.Join(target, f.name)
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(out, "  - %s (existing)\n", f.name)
			continue
		}
		if err := os.WriteFile(path, []byte(f.body), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.name, err)
		}
		fmt.Fprintf(out, "  - %s\n", f.name)
	}
	return nil
}

func buildDefaultManifest(name string) string {
	return fmt.Sprintf(`# glslx project manifest
[package]
name = %q
root = "."
entries = ["main.frag"]

[expand]
display_warnings = true
same_includes = "delete-repeats"
`, name)
}

const defaultMainFrag = `#version 330 core
#include "common.glsl"

out vec4 fragColor;

void main() {
    fragColor = vec4(tint(vec3(1.0)), 1.0);
}
`

const defaultCommonGLSL = `// shared helpers
vec3 tint(vec3 c) {
    return c * vec3(1.0, 0.9, 0.8);
}
`
