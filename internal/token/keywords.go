package token

var keywords = map[string]struct{}{
	"break": {}, "case": {}, "catch": {}, "class": {}, "const": {}, "continue": {},
	"debugger": {}, "default": {}, "delete": {}, "do": {}, "else": {}, "export": {},
	"extends": {}, "finally": {}, "for": {}, "function": {}, "if": {}, "import": {},
	"in": {}, "instanceof": {}, "new": {}, "return": {}, "super": {}, "switch": {},
	"this": {}, "throw": {}, "try": {}, "typeof": {}, "var": {}, "void": {},
	"while": {}, "with": {}, "yield": {}, "let": {}, "static": {}, "await": {},
	"null": {}, "true": {}, "false": {},
}

// IsKeywordText reports whether s is a reserved word.
// Keywords are case sensitive.
func IsKeywordText(s string) bool {
	_, ok := keywords[s]
	return ok
}

// IsDeclKeyword reports whether s introduces a variable declaration.
func IsDeclKeyword(s string) bool {
	return s == "var" || s == "let" || s == "const"
}
