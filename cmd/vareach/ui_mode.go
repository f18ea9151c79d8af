package main

import (
	"fmt"
	"os"
	"strings"
)

// fmtUI selects whether `vareach fmt` shows the Bubble Tea progress view.
type fmtUI string

const (
	fmtUIAuto fmtUI = "auto"
	fmtUIOn   fmtUI = "on"
	fmtUIOff  fmtUI = "off"
)

func parseFmtUI(value string) (fmtUI, error) {
	v := fmtUI(strings.ToLower(strings.TrimSpace(value)))
	switch v {
	case "":
		return fmtUIAuto, nil
	case fmtUIAuto, fmtUIOn, fmtUIOff:
		return v, nil
	}
	return "", fmt.Errorf("fmt: --ui must be auto, on or off, got %q", value)
}

// enabled reports whether the progress view replaces the plain report.
// Formatted code on stdout, JSON output and --quiet always get the plain path.
func (u fmtUI) enabled(toStdout bool, format string, quiet bool, out *os.File) bool {
	if toStdout || format != "text" || quiet {
		return false
	}
	switch u {
	case fmtUIOn:
		return true
	case fmtUIOff:
		return false
	}
	return isTerminal(out)
}
