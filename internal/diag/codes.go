package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexUnterminatedTemplate     Code = 1004
	LexUnterminatedRegex        Code = 1005

	// Парсерные
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynUnbalancedClose   Code = 2003
	SynExpectDeclarator  Code = 2004
	SynForBadHeader      Code = 2005

	// Разбиение объявлений
	VarInfo                Code = 3000
	VarSplit               Code = 3001
	VarSkippedLoopHeader   Code = 3002
	VarSkippedUnbracedBody Code = 3003
	VarCommentRelocated    Code = 3004
	VarInvariant           Code = 3005

	// IO
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002

	// Конфигурация
	CfgInvalid Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexUnterminatedTemplate:     "Unterminated template literal",
	LexUnterminatedRegex:        "Unterminated regular expression",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynUnbalancedClose:          "Closing delimiter without opener",
	SynExpectDeclarator:         "Expected declarator",
	SynForBadHeader:             "Malformed loop header",
	VarInfo:                     "Declaration information",
	VarSplit:                    "Declaration split",
	VarSkippedLoopHeader:        "Declaration in loop header left intact",
	VarSkippedUnbracedBody:      "Declaration in unbraced body left intact",
	VarCommentRelocated:         "Comment between declarators relocated",
	VarInvariant:                "Malformed declaration",
	IOLoadFileError:             "I/O error",
	IOWriteFileError:            "Write error",
	CfgInvalid:                  "Invalid configuration",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("VAR%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
