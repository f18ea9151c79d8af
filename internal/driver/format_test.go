package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"vareach/internal/pipeline"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestCollectFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.js":                  "",
		"b.mjs":                 "",
		"readme.md":             "",
		"sub/c.cjs":             "",
		"node_modules/dep/x.js": "",
		"sub/.git/hooks/pre.js": "",
	})
	got, err := CollectFiles(context.Background(), []string{dir, filepath.Join(dir, "a.js"), filepath.Join(dir, "readme.md")}, nil)
	if err != nil {
		t.Fatalf("CollectFiles: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.js"),
		filepath.Join(dir, "b.mjs"),
		filepath.Join(dir, "readme.md"),
		filepath.Join(dir, "sub", "c.cjs"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("files (-want +got):\n%s", diff)
	}

	got, err = CollectFiles(context.Background(), []string{dir}, []string{".mjs"})
	if err != nil {
		t.Fatalf("CollectFiles: %v", err)
	}
	if diff := cmp.Diff([]string{filepath.Join(dir, "b.mjs")}, got); diff != "" {
		t.Errorf("extension filter (-want +got):\n%s", diff)
	}

	if _, err := CollectFiles(context.Background(), []string{filepath.Join(dir, "missing")}, nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing path err = %v", err)
	}
}

func TestFormatPathsWrites(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.js":     "var a, b;\n",
		"b.js":     "let x = 1;\n",
		"bad.js":   "var s = 'open\n",
		"sub/c.js": "const p = 1, q = 2\n",
	})
	var mu sync.Mutex
	var done []string
	sink := pipeline.FuncSink(func(ev pipeline.Event) {
		if ev.Status == pipeline.StatusDone || ev.Status == pipeline.StatusError {
			mu.Lock()
			done = append(done, filepath.Base(ev.File))
			mu.Unlock()
		}
	})

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{Jobs: 2, Progress: sink})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if len(results) != 4 || len(done) != 4 {
		t.Fatalf("results = %d, finished events = %d", len(results), len(done))
	}
	byName := map[string]FormatResult{}
	for _, r := range results {
		byName[filepath.Base(r.Path)] = r
	}
	if r := byName["a.js"]; !r.Changed || r.Err != nil || r.Splits != 1 {
		t.Errorf("a.js result = %+v", r)
	}
	if r := byName["b.js"]; r.Changed || r.Err != nil {
		t.Errorf("b.js result = %+v", r)
	}
	if r := byName["bad.js"]; !errors.Is(r.Err, ErrSyntax) || r.Bag == nil || !r.Bag.HasErrors() {
		t.Errorf("bad.js result = %+v", r)
	}

	if got := readFile(t, filepath.Join(dir, "a.js")); got != "var a;\nvar b;\n" {
		t.Errorf("a.js = %q", got)
	}
	if got := readFile(t, filepath.Join(dir, "sub", "c.js")); got != "const p = 1\nconst q = 2\n" {
		t.Errorf("c.js = %q", got)
	}
	if got := readFile(t, filepath.Join(dir, "bad.js")); got != "var s = 'open\n" {
		t.Errorf("bad.js was modified: %q", got)
	}
}

func TestFormatPathsCheckAndStdout(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.js": "var a, b;\n"})
	path := filepath.Join(dir, "a.js")

	results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{Check: true})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if !results[0].Changed || results[0].Formatted != nil {
		t.Errorf("check result = %+v", results[0])
	}

	results, err = FormatPaths(context.Background(), []string{path}, FormatOptions{Stdout: true})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if string(results[0].Formatted) != "var a;\nvar b;\n" {
		t.Errorf("stdout output = %q", results[0].Formatted)
	}
	if got := readFile(t, path); got != "var a, b;\n" {
		t.Errorf("file touched in check/stdout mode: %q", got)
	}
}

func TestFormatPathsUsesCache(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.js": "var a, b;\n", "b.js": "var c, d;\n"})
	cache, err := OpenCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCacheAt: %v", err)
	}
	opts := FormatOptions{Check: true, Cache: cache}

	first, err := FormatPaths(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	for _, r := range first {
		if r.Cached {
			t.Errorf("%s: unexpected cache hit on first run", r.Path)
		}
	}

	opts.Check, opts.Stdout = false, true
	second, err := FormatPaths(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	for _, r := range second {
		if !r.Cached || !r.Changed || r.Splits != 1 {
			t.Errorf("%s: second run result = %+v", r.Path, r)
		}
	}
	if string(second[0].Formatted) != "var a;\nvar b;\n" {
		t.Errorf("cached output = %q", second[0].Formatted)
	}
}

func TestFormatPathsNoFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{"notes.txt": "x"})
	if _, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{}); !errors.Is(err, ErrNoFiles) {
		t.Fatalf("err = %v, want ErrNoFiles", err)
	}
}
