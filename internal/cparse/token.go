// Package cparse extracts function declarations from preprocessed C header
// text. It is deliberately not a C parser: a small ordered-choice grammar
// recognizes function prototypes (and, separately, struct typedefs) and skips
// everything else.
package cparse

// TokenKind classifies a scanned token.
type TokenKind int

const (
	// Ident is an identifier or keyword.
	Ident TokenKind = iota
	// Number is a numeric literal, including suffixes.
	Number
	// Punct is a single punctuation character.
	Punct
	// Str is a string or character literal, quotes included.
	Str
)

// Token is one lexical unit of the preprocessed stream. File and Line refer
// to the original header position recovered from preprocessor line markers,
// not to the position in the flattened stream. Pre holds the whitespace
// immediately before the token on its physical line, so spans of adjacent
// tokens can be reassembled verbatim.
type Token struct {
	Kind TokenKind
	Text string
	Pre  string
	File string
	Line int
}
