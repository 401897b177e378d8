package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"glslx/internal/diag"
	"glslx/internal/diagfmt"
	"glslx/internal/driver"
	"glslx/internal/source"
)

func newDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps [flags] [file ...]",
		Short: "Show the include graph of shaders",
		RunE:  runDeps,
	}
	cmd.Flags().String("format", "tree", "output format (tree|order|json)")
	addPolicyFlags(cmd)
	return cmd
}

type depsFileJSON struct {
	Path     string   `json:"path"`
	Includes []string `json:"includes,omitempty"`
	Warnings int      `json:"warnings,omitempty"`
	TreeHash string   `json:"tree_hash"`
}

type depsJSON struct {
	Entries []string       `json:"entries"`
	Order   []string       `json:"order"`
	Files   []depsFileJSON `json:"files"`
}

func runDeps(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "tree", "order", "json":
	default:
		return fmt.Errorf("invalid format: %q (expected: tree|order|json)", format)
	}

	manifest, err := loadManifest(cmd)
	if err != nil {
		return err
	}
	policy, err := buildPolicy(cmd, manifest)
	if err != nil {
		return err
	}
	root, err := resolveRoot(cmd, manifest)
	if err != nil {
		return err
	}
	entries, err := collectEntries(args, manifest)
	if err != nil {
		return err
	}

	batch, err := driver.ExpandFiles(cmd.Context(), entries, driver.Options{Root: root, Policy: policy})
	if err != nil {
		return err
	}
	bag := batch.Bag()
	deps := driver.BuildDeps(batch.FileMetas(), diag.BagReporter{Bag: bag})

	out := cmd.OutOrStdout()
	switch format {
	case "order":
		for _, p := range deps.DependencyOrder() {
			fmt.Fprintln(out, source.RelativePath(p, root))
		}
	case "json":
		if err := writeDepsJSON(out, batch, deps, root); err != nil {
			return err
		}
	default:
		writeDepsTree(out, batch, deps, root)
	}

	bag.Sort()
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, diagfmt.PrettyOpts{Color: !color.NoColor, Root: root})
	if failed := batch.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d shaders failed to expand", failed, len(batch.Results))
	}
	return nil
}

type treeLine struct {
	text string
	hash string
}

func writeDepsTree(w io.Writer, batch *driver.Batch, deps *driver.DepGraph, root string) {
	var lines []treeLine
	var walk func(path, prefix string, last, top bool)
	walk = func(path, prefix string, last, top bool) {
		branch, next := "", ""
		if !top {
			branch, next = "├── ", "│   "
			if last {
				branch, next = "└── ", "    "
			}
		}
		line := treeLine{text: prefix + branch + source.RelativePath(path, root)}
		if meta, ok := deps.Meta(path); ok {
			line.hash = meta.TreeHash.Short()
		}
		lines = append(lines, line)
		children := deps.Includes(path)
		for i, child := range children {
			walk(child, prefix+next, i == len(children)-1, false)
		}
	}
	for _, r := range batch.Results {
		if r.File != nil {
			walk(r.File.Path, "", true, true)
		}
	}

	width := 0
	for _, l := range lines {
		width = max(width, runewidth.StringWidth(l.text))
	}
	hashColor := color.New(color.Faint)
	for _, l := range lines {
		if l.hash == "" {
			fmt.Fprintln(w, l.text)
			continue
		}
		fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(l.text, width), hashColor.Sprint(l.hash))
	}
}

func writeDepsJSON(w io.Writer, batch *driver.Batch, deps *driver.DepGraph, root string) error {
	out := depsJSON{}
	for _, r := range batch.Results {
		if r.File != nil {
			out.Entries = append(out.Entries, source.RelativePath(r.File.Path, root))
		}
	}
	for _, p := range deps.DependencyOrder() {
		out.Order = append(out.Order, source.RelativePath(p, root))
		meta, ok := deps.Meta(p)
		if !ok {
			continue
		}
		file := depsFileJSON{
			Path:     source.RelativePath(p, root),
			Warnings: meta.Warnings,
			TreeHash: meta.TreeHash.Short(),
		}
		for _, inc := range deps.Includes(p) {
			file.Includes = append(file.Includes, source.RelativePath(inc, root))
		}
		out.Files = append(out.Files, file)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
