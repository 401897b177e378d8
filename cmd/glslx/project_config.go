package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"glslx/internal/driver"
	"glslx/internal/project"
	"glslx/internal/rules"
)

func addPolicyFlags(cmd *cobra.Command) {
	cmd.Flags().String("same-includes", "", "handling of repeated includes (ignore-all|delete-repeats|throw-an-error)")
	cmd.Flags().Bool("no-warnings", false, "do not report warnings")
	cmd.Flags().String("root", "", "directory include paths are resolved against (default: manifest root or working directory)")
}

// loadManifest читает --config или ближайший манифест; nil, если его нет.
func loadManifest(cmd *cobra.Command) (*project.Manifest, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return project.LoadManifest(path)
	}
	m, ok, err := project.LoadNearest(".")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return m, nil
}

// buildPolicy layers the manifest over the defaults and explicitly set
// flags over the manifest.
func buildPolicy(cmd *cobra.Command, m *project.Manifest) (rules.Policy, error) {
	policy := rules.Defaults()
	if m != nil {
		p, err := m.Policy()
		if err != nil {
			return policy, fmt.Errorf("%s: %w", m.Path, err)
		}
		policy = p
	}

	flags := rules.Defaults()
	if cmd.Flags().Changed("same-includes") {
		value, err := cmd.Flags().GetString("same-includes")
		if err != nil {
			return policy, fmt.Errorf("failed to get same-includes flag: %w", err)
		}
		v, err := rules.ParseSameIncludes(value)
		if err != nil {
			return policy, err
		}
		flags.SetSameIncludes(v)
	}
	if cmd.Flags().Changed("no-warnings") {
		off, err := cmd.Flags().GetBool("no-warnings")
		if err != nil {
			return policy, fmt.Errorf("failed to get no-warnings flag: %w", err)
		}
		flags.SetDisplayWarnings(!off)
	}
	return policy.Merge(flags), nil
}

// resolveRoot picks --root, then the manifest root, then the working directory.
func resolveRoot(cmd *cobra.Command, m *project.Manifest) (string, error) {
	root, err := cmd.Flags().GetString("root")
	if err != nil {
		return "", fmt.Errorf("failed to get root flag: %w", err)
	}
	switch {
	case root != "":
		return filepath.Abs(root)
	case m != nil:
		return m.Root(), nil
	default:
		return os.Getwd()
	}
}

// collectEntries turns arguments into absolute shader paths. Directories are
// walked; without arguments the manifest entries are used.
func collectEntries(args []string, m *project.Manifest) ([]string, error) {
	if len(args) == 0 {
		if m == nil || len(m.Config.Package.Entries) == 0 {
			return nil, fmt.Errorf("no input files\nplease pass shaders explicitly or list them in glslx.toml:\n  [package]\n  entries = [\"main.frag\"]")
		}
		return m.Entries(), nil
	}

	var entries []string
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %q: %w", arg, err)
		}
		st, err := os.Stat(abs)
		if err != nil || !st.IsDir() {
			// отсутствующий файл сообщит резолвер
			entries = append(entries, abs)
			continue
		}
		found, err := driver.ListShaders(abs)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", arg, err)
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no shaders found in %s", arg)
		}
		entries = append(entries, found...)
	}
	return entries, nil
}
