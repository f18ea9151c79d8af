package trace_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"vareach/internal/trace"
)

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level trace.Level
		scope trace.Scope
		want  bool
	}{
		{trace.LevelOff, trace.ScopeDriver, false},
		{trace.LevelError, trace.ScopeDriver, false},
		{trace.LevelPhase, trace.ScopePass, true},
		{trace.LevelPhase, trace.ScopeFile, false},
		{trace.LevelDetail, trace.ScopeFile, true},
		{trace.LevelDetail, trace.ScopeNode, false},
		{trace.LevelDebug, trace.ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := trace.ParseLevel("DETAIL")
	if err != nil || lvl != trace.LevelDetail {
		t.Fatalf("ParseLevel(DETAIL) = %v, %v", lvl, err)
	}
	if _, err := trace.ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := trace.New(trace.Config{Level: trace.LevelDetail, Format: trace.FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	root := trace.Begin(tr, trace.ScopeDriver, "fmt", 0)
	file := trace.Begin(tr, trace.ScopeFile, "a.js", root.ID()).WithExtra("decls", "2")
	trace.Begin(tr, trace.ScopeNode, "decl", file.ID()).End("")
	file.End("changed")
	root.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events (node scope filtered), got %d:\n%s", len(lines), buf.String())
	}
	var ev struct {
		Kind     string            `json:"kind"`
		Scope    string            `json:"scope"`
		Name     string            `json:"name"`
		Detail   string            `json:"detail"`
		ParentID uint64            `json:"parent_id"`
		Extra    map[string]string `json:"extra"`
	}
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Kind != "end" || ev.Scope != "file" || ev.Detail != "changed" || ev.Extra["decls"] != "2" || ev.ParentID != root.ID() {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelPhase, trace.FormatText)
	trace.Begin(tr, trace.ScopePass, "parse", 0).End("ok")
	out := buf.String()
	if !strings.Contains(out, "\u2192 parse") || !strings.Contains(out, "\u2190 parse (ok)") {
		t.Fatalf("unexpected text output:\n%s", out)
	}
}

func TestContextPropagation(t *testing.T) {
	if trace.FromContext(context.Background()) != trace.Nop {
		t.Fatal("empty context must give Nop")
	}
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)
	if trace.FromContext(ctx) != trace.Tracer(tr) {
		t.Fatal("tracer not propagated")
	}
	sp := trace.Begin(tr, trace.ScopeDriver, "run", 0)
	ctx = trace.WithSpan(ctx, sp)
	if trace.ParentSpan(ctx) != sp.ID() || sp.ID() == 0 {
		t.Fatal("span not propagated")
	}
}

func TestNopSpanStillMeasures(t *testing.T) {
	sp := trace.Begin(trace.Nop, trace.ScopePass, "x", 0)
	if sp.ID() != 0 {
		t.Fatal("nop span must have no id")
	}
	if sp.End("") < 0 {
		t.Fatal("negative duration")
	}
}
