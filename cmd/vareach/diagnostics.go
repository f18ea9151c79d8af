package main

import (
	"os"

	"vareach/internal/diag"
	"vareach/internal/diagfmt"
	"vareach/internal/source"
)

// printDiagnostics writes bag to stderr. Info diagnostics are shown only
// with verbose.
func printDiagnostics(bag *diag.Bag, fs *source.FileSet, colorFlag string, verbose bool) error {
	if bag == nil || fs == nil || bag.Len() == 0 {
		return nil
	}
	minSev := diag.SevWarning
	if verbose {
		minSev = diag.SevInfo
	}
	return diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:       useColor(colorFlag, os.Stderr),
		PathMode:    diagfmt.PathModeRelative,
		ShowNotes:   true,
		MinSeverity: minSev,
	})
}
