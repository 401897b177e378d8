package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"glslx/internal/diagfmt"
	"glslx/internal/driver"
	"glslx/internal/metrics"
	"glslx/internal/source"
)

func newExpandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expand [flags] [file|directory ...]",
		Short: "Expand #include directives of GLSL shaders",
		Long: `Expand resolves #include directives recursively and writes self-contained shaders.
Without arguments the entries of the nearest glslx.toml are expanded.`,
		RunE: runExpand,
	}
	cmd.Flags().StringP("output", "o", "", "write results to file instead of stdout")
	cmd.Flags().String("format", "text", "output format (text|json|msgpack)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().String("metrics", "", "dump Prometheus metrics to file ('-' for stderr)")
	addPolicyFlags(cmd)
	return cmd
}

func runExpand(cmd *cobra.Command, args []string) error {
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := diagfmt.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	metricsPath, err := cmd.Flags().GetString("metrics")
	if err != nil {
		return fmt.Errorf("failed to get metrics flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	endConfig := timer.Track("config")
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
	endConfig(fmt.Sprintf("%d entries", len(entries)))

	var m *metrics.Metrics
	if metricsPath != "" {
		m = metrics.New(nil)
	}
	opts := driver.Options{
		Root:           root,
		Policy:         policy,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		Metrics:        m,
	}

	endExpand := timer.Track("expand")
	var batch *driver.Batch
	if shouldUseTUI(mode, len(entries)) {
		batch, err = runExpandWithUI(cmd.Context(), "expanding shaders", entries, opts)
	} else {
		batch, err = driver.ExpandFiles(cmd.Context(), entries, opts)
	}
	if err != nil {
		return err
	}
	endExpand(fmt.Sprintf("%d files read", batch.Files.Len()))

	endWrite := timer.Track("write")
	defer endWrite("")
	if err := writeExpandOutput(cmd, batch, format, outPath); err != nil {
		return err
	}
	if format == diagfmt.FormatText || outPath != "" {
		bag := batch.Bag()
		bag.Sort()
		diagfmt.Pretty(cmd.ErrOrStderr(), bag, diagfmt.PrettyOpts{
			Color:     !color.NoColor,
			Root:      root,
			ShowNotes: true,
		})
	}
	if err := dumpMetrics(cmd, m, metricsPath); err != nil {
		return err
	}

	if failed := batch.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d shaders failed to expand", failed, len(batch.Results))
	}
	return nil
}

// createOutput opens -o targets; tests swap it.
var createOutput = func(path string) (io.WriteCloser, error) { return os.Create(path) }

func writeExpandOutput(cmd *cobra.Command, batch *driver.Batch, format diagfmt.Format, outPath string) (err error) {
	var w io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, createErr := createOutput(outPath)
		if createErr != nil {
			return fmt.Errorf("failed to create output: %w", createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("failed to close output: %w", closeErr)
			}
		}()
		w = f
	}
	if err := diagfmt.WriteResults(w, buildResultsOutput(batch), format); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

func buildResultsOutput(batch *driver.Batch) diagfmt.ResultsOutput {
	jsonOpts := diagfmt.JSONOpts{Root: batch.Root, IncludeNotes: true}
	results := make([]diagfmt.ResultJSON, 0, len(batch.Results))
	for _, r := range batch.Results {
		item := diagfmt.ResultJSON{
			Path:   source.RelativePath(r.Path, batch.Root),
			Failed: r.Failed(),
		}
		if r.File != nil {
			item.Text = r.File.Text
			for _, inc := range r.File.Includes {
				item.Includes = append(item.Includes, source.RelativePath(inc, batch.Root))
			}
		}
		if r.Bag != nil {
			for _, d := range r.Bag.Items() {
				item.Diagnostics = append(item.Diagnostics, diagfmt.MakeDiagnostic(d, jsonOpts))
			}
		}
		results = append(results, item)
	}
	return diagfmt.NewResultsOutput(results)
}

func dumpMetrics(cmd *cobra.Command, m *metrics.Metrics, path string) error {
	switch path {
	case "":
		return nil
	case "-":
		return m.WriteText(cmd.ErrOrStderr())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	if err := m.WriteText(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
