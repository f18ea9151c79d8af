package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"vareach/internal/source"
)

// FileName is the project configuration file looked up from the working directory.
const FileName = "vareach.toml"

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config is the decoded vareach.toml.
type Config struct {
	Format FormatConfig `toml:"format"`
	Run    RunConfig    `toml:"run"`

	// Path of the file the config was read from; empty for defaults.
	Path string `toml:"-"`
}

type FormatConfig struct {
	LineBreak  string   `toml:"line_break"`
	Extensions []string `toml:"extensions"`
}

type RunConfig struct {
	Jobs           int  `toml:"jobs"`
	MaxDiagnostics int  `toml:"max_diagnostics"`
	Cache          bool `toml:"cache"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Format: FormatConfig{
			LineBreak:  "auto",
			Extensions: []string{".js", ".mjs", ".cjs", ".jsx"},
		},
		Run: RunConfig{
			Jobs:           0,
			MaxDiagnostics: 100,
			Cache:          true,
		},
	}
}

// Find walks up from startDir looking for vareach.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path on top of the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: %s: unknown keys: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the nearest config, or returns the defaults.
func Discover(startDir string) (Config, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Default(), false, err
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, true, err
	}
	return cfg, true, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if _, err := ParseLineBreak(c.Format.LineBreak); err != nil {
		return err
	}
	if len(c.Format.Extensions) == 0 {
		return fmt.Errorf("%w: [format].extensions is empty", ErrInvalid)
	}
	for _, ext := range c.Format.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: [format].extensions entry %q must start with '.'", ErrInvalid, ext)
		}
	}
	if c.Run.Jobs < 0 {
		return fmt.Errorf("%w: [run].jobs must be >= 0, got %d", ErrInvalid, c.Run.Jobs)
	}
	if c.Run.MaxDiagnostics < 0 {
		return fmt.Errorf("%w: [run].max_diagnostics must be >= 0, got %d", ErrInvalid, c.Run.MaxDiagnostics)
	}
	return nil
}

// HasExtension reports whether path has one of the configured extensions.
func (c Config) HasExtension(path string) bool {
	return slices.Contains(c.Format.Extensions, strings.ToLower(filepath.Ext(path)))
}

// LineBreakStyle is the parsed form of [format].line_break.
type LineBreakStyle uint8

const (
	LineBreakAuto LineBreakStyle = iota
	LineBreakLF
	LineBreakCRLF
	LineBreakCR
)

// ParseLineBreak accepts lf, crlf, cr and auto.
func ParseLineBreak(s string) (LineBreakStyle, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return LineBreakAuto, nil
	case "lf":
		return LineBreakLF, nil
	case "crlf":
		return LineBreakCRLF, nil
	case "cr":
		return LineBreakCR, nil
	}
	return LineBreakAuto, fmt.Errorf("%w: line break %q (expected: lf|crlf|cr|auto)", ErrInvalid, s)
}

// Resolve returns the break sequence for a file. Auto uses the file's first
// break and falls back to "\n".
func (s LineBreakStyle) Resolve(content []byte) string {
	switch s {
	case LineBreakLF:
		return "\n"
	case LineBreakCRLF:
		return "\r\n"
	case LineBreakCR:
		return "\r"
	case LineBreakAuto:
		if lb := source.DetectLineBreak(content); lb != "" {
			return lb
		}
	}
	return "\n"
}

func (s LineBreakStyle) String() string {
	switch s {
	case LineBreakLF:
		return "lf"
	case LineBreakCRLF:
		return "crlf"
	case LineBreakCR:
		return "cr"
	default:
		return "auto"
	}
}
