package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// Keyword represents a reserved word (var, for, function, ...).
	Keyword
	// Ident represents an identifier token.
	Ident
	// Punct represents punctuation and operators.
	Punct
	// Number represents a numeric literal.
	Number
	// String represents a quoted string literal.
	String
	// Template represents a whole template literal including substitutions.
	Template
	// Regex represents a regular expression literal.
	Regex
	// Whitespace represents a run of spaces and tabs.
	Whitespace
	// LineBreak represents exactly one line terminator (\n, \r\n or \r).
	LineBreak
	// LineComment represents a // comment without its line break.
	LineComment
	// BlockComment represents a /* */ comment.
	BlockComment
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	Keyword:      "Keyword",
	Ident:        "Ident",
	Punct:        "Punct",
	Number:       "Number",
	String:       "String",
	Template:     "Template",
	Regex:        "Regex",
	Whitespace:   "Whitespace",
	LineBreak:    "LineBreak",
	LineComment:  "LineComment",
	BlockComment: "BlockComment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}
