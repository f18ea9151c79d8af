package driver

import (
	"fortio.org/safecast"

	"vareach/internal/ast"
	"vareach/internal/diag"
	"vareach/internal/lexer"
	"vareach/internal/parser"
	"vareach/internal/source"
	"vareach/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Chain   *token.Chain
	Bag     *diag.Bag
}

// Tokenize loads path and lexes it into a chain.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(diagLimit(maxDiagnostics))
	chain := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	bag.Sort()
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Chain:   chain,
		Bag:     bag,
	}, nil
}

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Program *ast.Node
	Bag     *diag.Bag
}

// Parse loads path and builds its statement tree.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(diagLimit(maxDiagnostics))
	maxErrors, convErr := safecast.Conv[uint](bag.Cap())
	if convErr != nil {
		maxErrors = 0
	}
	res := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}, MaxErrors: maxErrors})
	bag.Sort()
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Program: res.Program,
		Bag:     bag,
	}, nil
}

func diagLimit(n int) int {
	if n <= 0 {
		return 256
	}
	return n
}
