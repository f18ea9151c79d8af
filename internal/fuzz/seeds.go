package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
	maxFuzzInput = 1 << 16  // 64 KiB
)

var languageSeeds = []string{
	"",
	"var a = 1, b = 2;\n",
	"let x, y\nfoo()\n",
	"const {a, b} = o, [c] = arr;\n",
	"for (var i = 0, j = 1; i < j; i++) {}\n",
	"if (x) var a, b;\nelse { var c, d; }\n",
	"var s = `t ${a, b} x`, r = /a,b/g;\n",
	"var a = 1 // c\n  , b = 2\n",
	"x = a\n/b/g.exec(c)\n",
	"label: for (;;) { var p, q; break label; }\n",
	"switch (v) { case 1: var m, n; default: }\n",
	"class A { static { var z, w; } }\n",
	"var a = 'unterminated\n",
	"var a = (1, 2), b = [3, (4)], c = {d: 5, e: 6};\n",
	"#!/usr/bin/env node\nvar a, b\r\nvar c, d\r",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.js файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".js" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
