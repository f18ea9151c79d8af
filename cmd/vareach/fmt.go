package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"vareach/internal/diag"
	"vareach/internal/diagfmt"
	"vareach/internal/driver"
	"vareach/internal/observ"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Split multi-variable declarations in JavaScript files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

var errFmtFailed = errors.New("fmt: failed to format some files")

func init() {
	fmtCmd.Flags().Bool("check", false, "report files that would change without rewriting them")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().String("line-break", "auto", "line break for inserted statements (auto|lf|crlf|cr)")
	fmtCmd.Flags().Int("jobs", 0, "number of files formatted in parallel (0 = GOMAXPROCS)")
	fmtCmd.Flags().Bool("no-cache", false, "ignore and do not update the result cache")
	fmtCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	fmtCmd.Flags().BoolP("verbose", "v", false, "also show informational diagnostics")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	progressUI, err := parseFmtUI(uiValue)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	settings, err := resolveFmtSettings(cmd, cfg)
	if err != nil {
		return err
	}

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}
	opts := driver.FormatOptions{
		Check:          check,
		Stdout:         writeToStdout,
		LineBreak:      settings.lineBreak,
		Extensions:     settings.extensions,
		MaxDiagnostics: settings.maxDiagnostics,
		Jobs:           settings.jobs,
		Timer:          timer,
	}
	if settings.cache {
		cache, cacheErr := driver.OpenCache("vareach")
		if cacheErr != nil {
			fmt.Fprintf(os.Stderr, "fmt: cache disabled: %v\n", cacheErr)
		}
		opts.Cache = cache
	}

	var results []driver.FormatResult
	if progressUI.enabled(writeToStdout, outputFormat, quiet, os.Stdout) {
		files, collectErr := driver.CollectFiles(cmd.Context(), args, settings.extensions)
		if collectErr != nil {
			return collectErr
		}
		if len(files) == 0 {
			return driver.ErrNoFiles
		}
		results, err = runFormatWithUI(cmd.Context(), "vareach fmt", files, opts)
	} else {
		results, err = driver.FormatPaths(cmd.Context(), args, opts)
	}
	if err != nil {
		return err
	}

	var hasErrors, hasChanges bool
	switch {
	case outputFormat == "json":
		if err := renderFmtJSON(cmd.OutOrStdout(), results, check, verbose); err != nil {
			return err
		}
		for _, res := range results {
			hasErrors = hasErrors || res.Err != nil
			hasChanges = hasChanges || res.Changed
		}
	case writeToStdout:
		hasErrors = renderFmtStdout(cmd.OutOrStdout(), results, colorFlag, verbose)
	default:
		hasErrors, hasChanges = renderFmtText(cmd.OutOrStdout(), results, check, quiet, colorFlag, verbose)
	}

	if timer != nil {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	if hasErrors {
		return errFmtFailed
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

func reportFileError(res driver.FormatResult, colorFlag string, verbose bool) {
	if res.Bag != nil && res.Bag.Len() > 0 {
		if err := printDiagnostics(res.Bag, res.FileSet, colorFlag, verbose); err == nil && errors.Is(res.Err, driver.ErrSyntax) {
			return
		}
	}
	fmt.Fprintf(os.Stderr, "fmt: %v\n", res.Err)
}

func renderFmtStdout(out io.Writer, results []driver.FormatResult, colorFlag string, verbose bool) (hasErrors bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			reportFileError(res, colorFlag, verbose)
			continue
		}
		_ = printDiagnostics(res.Bag, res.FileSet, colorFlag, verbose)
		_, _ = out.Write(res.Formatted)
	}
	return hasErrors
}

func renderFmtText(out io.Writer, results []driver.FormatResult, check, quiet bool, colorFlag string, verbose bool) (hasErrors, hasChanges bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			reportFileError(res, colorFlag, verbose)
			continue
		}
		_ = printDiagnostics(res.Bag, res.FileSet, colorFlag, verbose)
		if !res.Changed {
			continue
		}
		hasChanges = true
		if quiet {
			continue
		}
		if check {
			fmt.Fprintln(out, res.Path)
			continue
		}
		fmt.Fprintf(out, "reformatted %s (%d declarations split)\n", res.Path, res.Splits)
	}
	return hasErrors, hasChanges
}

type fmtJSONResult struct {
	Path        string                   `json:"path"`
	Changed     bool                     `json:"changed"`
	Splits      int                      `json:"splits"`
	Cached      bool                     `json:"cached,omitempty"`
	Error       string                   `json:"error,omitempty"`
	CheckRun    bool                     `json:"check"`
	Diagnostics []diagfmt.DiagnosticJSON `json:"diagnostics,omitempty"`
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check, verbose bool) error {
	minSev := diag.SevWarning
	if verbose {
		minSev = diag.SevInfo
	}
	payload := make([]fmtJSONResult, 0, len(results))
	for _, res := range results {
		jr := fmtJSONResult{
			Path:     res.Path,
			Changed:  res.Changed,
			Splits:   res.Splits,
			Cached:   res.Cached,
			CheckRun: check,
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		if res.Bag != nil && res.FileSet != nil {
			jr.Diagnostics = diagfmt.BuildDiagnosticsOutput(res.Bag, res.FileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     true,
				PathMode:         diagfmt.PathModeRelative,
				MinSeverity:      minSev,
			}).Diagnostics
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
