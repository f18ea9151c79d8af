package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"fortio.org/safecast"

	"vareach/internal/ast"
	"vareach/internal/config"
	"vareach/internal/diag"
	"vareach/internal/observ"
	"vareach/internal/parser"
	"vareach/internal/pipeline"
	"vareach/internal/source"
	"vareach/internal/split"
	"vareach/internal/token"
	"vareach/internal/trace"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrSyntax is returned when lexing or parsing reported errors. Such files
// are left as they are.
var ErrSyntax = errors.New("source has syntax errors")

// SourceOptions configures formatting of a single buffer.
type SourceOptions struct {
	LineBreak      config.LineBreakStyle
	MaxDiagnostics int
	Timer          *observ.Timer // nil: no timings
}

// SourceResult is the outcome of FormatSource.
type SourceResult struct {
	Output  []byte
	Changed bool
	Splits  int // declarations rewritten
	FileSet *source.FileSet
	FileID  source.FileID
	Bag     *diag.Bag
	Timings pipeline.Timings
}

// FormatSource lexes and parses src, splits every multi-declarator
// declaration and renders the chain back. Diagnostics land in the result's
// Bag. On ErrSyntax or a split failure Output holds the input unchanged.
func FormatSource(ctx context.Context, name string, src []byte, opts SourceOptions) (*SourceResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := safecast.Conv[uint32](len(src)); err != nil {
		return nil, fmt.Errorf("%s: file too large: %w", name, err)
	}
	tracer := trace.FromContext(ctx)
	fileSpan := trace.Begin(tracer, trace.ScopeFile, "format_file", trace.ParentSpan(ctx)).WithExtra("path", name)

	content, hadBOM := bytes.CutPrefix(src, utf8BOM)
	flags := source.FileFlags(0)
	if hadBOM {
		flags |= source.FileHadBOM
	}
	fs := source.NewFileSetWithBase("")
	id := fs.Add(name, content, flags)

	res := &SourceResult{
		Output:  src,
		FileSet: fs,
		FileID:  id,
		Bag:     diag.NewBag(diagLimit(opts.MaxDiagnostics)),
	}
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})

	started := time.Now()
	parseSpan := trace.Begin(tracer, trace.ScopePass, "parse", fileSpan.ID())
	maxErrors, convErr := safecast.Conv[uint](res.Bag.Cap())
	if convErr != nil {
		maxErrors = 0
	}
	parsed := parser.ParseFile(fs.Get(id), parser.Options{Reporter: reporter, MaxErrors: maxErrors})
	parseSpan.End(fmt.Sprintf("duplicates=%d", reporter.Suppressed()))
	res.Timings.Add(pipeline.StageParse, time.Since(started))
	opts.Timer.Add("parse", time.Since(started))
	if res.Bag.HasErrors() {
		res.Bag.Sort()
		fileSpan.End("syntax errors")
		return res, fmt.Errorf("%s: %w", name, ErrSyntax)
	}

	started = time.Now()
	splitSpan := trace.Begin(tracer, trace.ScopePass, "split", fileSpan.ID())
	splitter := split.New(split.Options{LineBreak: opts.LineBreak.Resolve(content)}, reporter)
	_, err := ast.Walk(parsed.Program, split.Visitor(splitter))
	res.Splits = splitter.Count()
	splitSpan.End(fmt.Sprintf("splits=%d", res.Splits))
	res.Timings.Add(pipeline.StageSplit, time.Since(started))
	opts.Timer.Add("split", time.Since(started))

	if err != nil {
		diag.ReportError(reporter, diag.VarInvariant, source.Span{File: id}, err.Error()).Emit()
		res.Bag.Sort()
		fileSpan.End("error")
		return res, fmt.Errorf("%s: %w", name, err)
	}

	first, last := parsed.Program.ChainBounds()
	out := []byte(token.Render(first, last))
	if hadBOM {
		out = append(append([]byte(nil), utf8BOM...), out...)
	}
	res.Output = out
	res.Changed = !bytes.Equal(src, out)
	res.Bag.Sort()
	fileSpan.End(fmt.Sprintf("changed=%t", res.Changed))
	return res, nil
}
