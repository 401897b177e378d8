package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"glslx/internal/observ"
	"glslx/internal/version"
)

var (
	// runCleanup сбрасывает трейсер, останавливает профилировщики и печатает тайминги.
	runCleanup = func() {}
	// timer is nil unless --timings is set.
	timer *observ.Timer
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "glslx",
		Short:         "GLSL include expander",
		Long:          `glslx resolves #include directives in GLSL shaders and writes self-contained sources`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := setupColor(cmd); err != nil {
				return err
			}
			cleanupTrace, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			cleanupProf, err := setupProfiling(cmd)
			if err != nil {
				cleanupTrace()
				return err
			}
			timer = nil
			if on, _ := cmd.Root().PersistentFlags().GetBool("timings"); on {
				timer = observ.NewTimer()
			}
			runCleanup = func() {
				cleanupProf()
				cleanupTrace()
				if err := timer.WriteSummary(cmd.ErrOrStderr()); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "timings: %v\n", err)
				}
				runCleanup = func() {}
			}
			return nil
		},
	}

	rootCmd.AddCommand(newExpandCmd())
	rootCmd.AddCommand(newDepsCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.String("config", "", "path to glslx.toml or glslx.yaml (default: nearest one above the working directory)")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	flags.String("trace", "", "write trace events to file ('-' for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.String("trace-format", "auto", "trace output format (auto|text|ndjson)")
	flags.Bool("timings", false, "print phase timings to stderr")
	flags.String("cpu-profile", "", "write CPU profile to file")
	flags.String("mem-profile", "", "write heap profile to file on exit")
	flags.String("runtime-trace", "", "write Go runtime trace to file")
	return rootCmd
}

// main runs the root command and exits with status 1 on error.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	rootCmd := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	runCleanup()
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
		os.Exit(1)
	}
}

func setupColor(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(mode) {
	case "auto":
		color.NoColor = !isTerminal(os.Stderr)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
