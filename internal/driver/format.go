package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"vareach/internal/config"
	"vareach/internal/diag"
	"vareach/internal/observ"
	"vareach/internal/pipeline"
	"vareach/internal/source"
	"vareach/internal/trace"
)

// ErrNoFiles is returned when the given paths contain no matching sources.
var ErrNoFiles = errors.New("format: no source files found")

// FormatOptions configures a batch run.
type FormatOptions struct {
	Check          bool // report only, never write
	Stdout         bool // return output instead of writing
	LineBreak      config.LineBreakStyle
	Extensions     []string // directory walks only pick these; nil means config defaults
	MaxDiagnostics int
	Jobs           int // 0 = GOMAXPROCS
	Cache          *Cache
	Timer          *observ.Timer
	Progress       pipeline.ProgressSink
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Cached    bool
	Splits    int
	Err       error
	Formatted []byte // set in Stdout mode
	FileSet   *source.FileSet
	Bag       *diag.Bag // nil for cache hits
}

// FormatPaths formats provided files or directories (recursively collecting
// files with a known extension). Files are processed in parallel; a failure
// in one file is recorded in its result and does not stop the others. The
// returned error is reserved for problems with the run itself (bad paths,
// cancellation).
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tracer := trace.FromContext(ctx)
	runSpan := trace.Begin(tracer, trace.ScopeDriver, "format_paths", trace.ParentSpan(ctx))
	ctx = trace.WithSpan(ctx, runSpan)

	collect := opts.Timer.Begin("collect")
	files, err := CollectFiles(ctx, paths, opts.Extensions)
	opts.Timer.End(collect, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		runSpan.End("error")
		return nil, err
	}
	if len(files) == 0 {
		runSpan.End("no files")
		return nil, ErrNoFiles
	}
	for _, f := range files {
		pipeline.Emit(opts.Progress, pipeline.Event{File: f, Status: pipeline.StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatFile(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		runSpan.End("cancelled")
		return results, err
	}
	runSpan.End(fmt.Sprintf("files=%d", len(files)))
	return results, nil
}

func formatFile(ctx context.Context, path string, opts FormatOptions) FormatResult {
	result := FormatResult{Path: path}
	begin := time.Now()
	fail := func(stage pipeline.Stage, err error) FormatResult {
		result.Err = err
		pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: stage, Status: pipeline.StatusError, Err: err, Elapsed: time.Since(begin)})
		return result
	}

	pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageRead, Status: pipeline.StatusWorking})
	readStart := time.Now()
	// #nosec G304 -- path comes from the command line or a directory walk
	data, err := os.ReadFile(path)
	opts.Timer.Add("read", time.Since(readStart))
	if err != nil {
		return fail(pipeline.StageRead, err)
	}

	key := CacheKey(data, opts.LineBreak)
	var entry CacheEntry
	if hit, cacheErr := opts.Cache.Get(key, &entry); cacheErr == nil && hit {
		result.Cached = true
		result.Changed = entry.Changed
		result.Splits = entry.Splits
		formatted := data
		if entry.Changed {
			formatted = entry.Output
		}
		return finish(path, formatted, result, opts, begin)
	}

	pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
	res, err := FormatSource(ctx, path, data, SourceOptions{
		LineBreak:      opts.LineBreak,
		MaxDiagnostics: opts.MaxDiagnostics,
		Timer:          opts.Timer,
	})
	if res != nil {
		result.FileSet = res.FileSet
		result.Bag = res.Bag
	}
	if err != nil {
		stage := pipeline.StageSplit
		if errors.Is(err, ErrSyntax) {
			stage = pipeline.StageParse
		}
		return fail(stage, err)
	}
	result.Changed = res.Changed
	result.Splits = res.Splits

	// только чистые файлы: иначе при попадании в кэш потеряем предупреждения
	if !res.Bag.HasWarnings() {
		entry = CacheEntry{Changed: res.Changed, Splits: res.Splits}
		if res.Changed {
			entry.Output = res.Output
		}
		_ = opts.Cache.Put(key, &entry)
	}
	return finish(path, res.Output, result, opts, begin)
}

func finish(path string, formatted []byte, result FormatResult, opts FormatOptions, begin time.Time) FormatResult {
	switch {
	case opts.Check:
	case opts.Stdout:
		result.Formatted = formatted
	case result.Changed:
		pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageWrite, Status: pipeline.StatusWorking})
		writeStart := time.Now()
		err := writeFile(path, formatted)
		opts.Timer.Add("write", time.Since(writeStart))
		if err != nil {
			result.Err = err
			pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageWrite, Status: pipeline.StatusError, Err: err, Elapsed: time.Since(begin)})
			return result
		}
	}
	pipeline.Emit(opts.Progress, pipeline.Event{
		File: path, Status: pipeline.StatusDone, Elapsed: time.Since(begin),
		Changed: result.Changed, Cached: result.Cached,
	})
	return result
}

// writeFile replaces path keeping its permissions.
func writeFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, data, mode.Perm())
}

// CollectFiles expands paths into a sorted, de-duplicated file list.
// Directories are walked recursively and filtered by extension; explicitly
// named files are always included.
func CollectFiles(ctx context.Context, paths []string, extensions []string) ([]string, error) {
	cfg := config.Default()
	if extensions != nil {
		cfg.Format.Extensions = extensions
	}
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(filepath.Clean(p))
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if cfg.HasExtension(path) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func skipDir(name string) bool {
	switch name {
	case "node_modules", ".git", ".hg", ".svn":
		return true
	}
	return false
}
