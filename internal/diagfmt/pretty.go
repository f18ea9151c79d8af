package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"vareach/internal/diag"
	"vareach/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if !d.Severity.AtLeast(opts.MinSeverity) {
			continue
		}
		if err := prettyOne(w, d, fs, opts, pal); err != nil {
			return err
		}
	}
	return nil
}

type palette struct {
	sev   map[diag.Severity]*color.Color
	dim   *color.Color
	caret *color.Color
	bold  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		dim:   color.New(color.FgBlue),
		caret: color.New(color.FgGreen, color.Bold),
		bold:  color.New(color.Bold),
	}
	all := []*color.Color{p.dim, p.caret, p.bold}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) error {
	start, end := fs.Resolve(d.Primary)
	sevColor := pal.sev[d.Severity]
	if sevColor == nil {
		sevColor = pal.bold
	}
	header := fmt.Sprintf("%s:%d:%d: %s %s: %s\n",
		formatPath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col,
		sevColor.Sprint(d.Severity.String()), pal.bold.Sprint(d.Code.ID()), d.Message)
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	if f := fs.Get(d.Primary.File); f != nil && start.Line > 0 {
		line := f.GetLine(start.Line)
		gutter := fmt.Sprintf("%4d | ", start.Line)
		blank := strings.Repeat(" ", len(gutter)-2) + "| "
		underline := caretLine(line, start, end)
		if _, err := fmt.Fprintf(w, "%s%s\n%s%s\n", pal.dim.Sprint(gutter), line, pal.dim.Sprint(blank), pal.caret.Sprint(underline)); err != nil {
			return err
		}
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			pos, _ := fs.Resolve(n.Span)
			if _, err := fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
				formatPath(fs, n.Span.File, opts.PathMode), pos.Line, pos.Col, n.Msg); err != nil {
				return err
			}
		}
	}
	return nil
}

// caretLine builds the ^~~ underline for line starting at start.Col
// (1-based, bytes). Tabs are kept so the underline lines up in the terminal; wide
// runes take their display width.
func caretLine(line string, start, end source.LineCol) string {
	startIdx := int(start.Col) - 1
	if startIdx < 0 {
		startIdx = 0
	}
	if startIdx > len(line) {
		startIdx = len(line)
	}
	var sb strings.Builder
	for _, r := range line[:startIdx] {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}

	endIdx := len(line)
	if end.Line == start.Line && int(end.Col)-1 <= len(line) && int(end.Col)-1 > startIdx {
		endIdx = int(end.Col) - 1
	}
	width := runewidth.StringWidth(line[startIdx:endIdx])
	sb.WriteByte('^')
	if width > 1 {
		sb.WriteString(strings.Repeat("~", width-1))
	}
	return sb.String()
}
