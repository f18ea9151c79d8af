package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"vareach/internal/config"
	"vareach/internal/version"
)

func TestCacheRoundTrip(t *testing.T) {
	cache, err := OpenCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCacheAt: %v", err)
	}
	key := CacheKey([]byte("var a, b;\n"), config.LineBreakAuto)

	var out CacheEntry
	if hit, err := cache.Get(key, &out); err != nil || hit {
		t.Fatalf("empty cache: hit=%v err=%v", hit, err)
	}
	in := CacheEntry{Changed: true, Splits: 1, Output: []byte("var a;\nvar b;\n")}
	if err := cache.Put(key, &in); err != nil {
		t.Fatalf("Put: %v", err)
	}
	hit, err := cache.Get(key, &out)
	if err != nil || !hit {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("entry (-want +got):\n%s", diff)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if hit, _ := cache.Get(key, &out); hit {
		t.Error("entry survived DropAll")
	}
}

func TestCacheKeyDependsOnOptions(t *testing.T) {
	src := []byte("var a, b;\n")
	if CacheKey(src, config.LineBreakLF) == CacheKey(src, config.LineBreakCRLF) {
		t.Error("line break style must change the key")
	}
	if CacheKey(src, config.LineBreakLF) != CacheKey(src, config.LineBreakLF) {
		t.Error("key is not deterministic")
	}
}

func TestCacheKeyDependsOnBuild(t *testing.T) {
	src := []byte("var a, b;\n")
	before := CacheKey(src, config.LineBreakAuto)

	saved := version.GitCommit
	t.Cleanup(func() { version.GitCommit = saved })
	version.GitCommit = saved + "rebuilt"

	if CacheKey(src, config.LineBreakAuto) == before {
		t.Error("a different build must not reuse cached output")
	}
}

func TestCacheCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenCacheAt(dir)
	if err != nil {
		t.Fatalf("OpenCacheAt: %v", err)
	}
	key := CacheKey([]byte("x"), config.LineBreakAuto)
	p := cache.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte{0xc1}, 0o644); err != nil {
		t.Fatal(err)
	}
	var out CacheEntry
	if _, err := cache.Get(key, &out); err == nil {
		t.Error("corrupt entry should fail to decode")
	}
}

func TestNilCache(t *testing.T) {
	var c *Cache
	var out CacheEntry
	if hit, err := c.Get(Digest{}, &out); hit || err != nil {
		t.Errorf("nil cache Get = %v, %v", hit, err)
	}
	if err := c.Put(Digest{}, &CacheEntry{}); err != nil {
		t.Errorf("nil cache Put = %v", err)
	}
}
