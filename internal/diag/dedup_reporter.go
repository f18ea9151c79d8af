package diag

import "vareach/internal/source"

// DedupReporter passes each distinct diagnostic through once. The lexer and
// the parser share one reporter per file, and an unterminated literal can be
// reported by both at the same span.
type DedupReporter struct {
	next       Reporter
	seen       map[reportID]struct{}
	suppressed int
}

// reportID is what makes two reports the same; notes are ignored.
type reportID struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

// NewDedupReporter wraps next. A nil next only counts.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: map[reportID]struct{}{}}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil {
		return
	}
	id := reportID{code: code, sev: sev, span: primary, msg: msg}
	if _, dup := r.seen[id]; dup {
		r.suppressed++
		return
	}
	r.seen[id] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}

// Suppressed returns how many repeats were dropped.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.suppressed
}
