package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vareach/internal/config"
)

// loadConfig reads --config, or the nearest vareach.toml above the working
// directory, or falls back to the defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		return config.Load(path)
	}
	cfg, _, err := config.Discover(".")
	return cfg, err
}

// fmtSettings is the merged view of vareach.toml and fmt flags.
type fmtSettings struct {
	lineBreak      config.LineBreakStyle
	extensions     []string
	jobs           int
	maxDiagnostics int
	cache          bool
}

// resolveFmtSettings applies flags the user set explicitly on top of cfg.
func resolveFmtSettings(cmd *cobra.Command, cfg config.Config) (fmtSettings, error) {
	s := fmtSettings{
		extensions:     cfg.Format.Extensions,
		jobs:           cfg.Run.Jobs,
		maxDiagnostics: cfg.Run.MaxDiagnostics,
		cache:          cfg.Run.Cache,
	}
	lineBreak := cfg.Format.LineBreak
	if cmd.Flags().Changed("line-break") {
		v, err := cmd.Flags().GetString("line-break")
		if err != nil {
			return s, err
		}
		lineBreak = v
	}
	lb, err := config.ParseLineBreak(lineBreak)
	if err != nil {
		return s, fmt.Errorf("fmt: %w", err)
	}
	s.lineBreak = lb

	if cmd.Flags().Changed("jobs") {
		if s.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return s, err
		}
		if s.jobs < 0 {
			return s, fmt.Errorf("fmt: --jobs must be >= 0")
		}
	}
	if cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		if s.maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
			return s, err
		}
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return s, err
	}
	if noCache {
		s.cache = false
	}
	return s, nil
}
