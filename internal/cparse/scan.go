package cparse

import (
	"regexp"
	"strconv"
	"strings"
)

// lineMarkerRE matches preprocessor line markers of the form
//
//	# <line> "<file>" <flags...>
//
// emitted by cpp after include/macro flattening.
var lineMarkerRE = regexp.MustCompile(`^#\s*(\d+)\s+"(.*?)"`)

// Scan tokenizes preprocessed C text. Line markers update the scanner's idea
// of the original file and line; every token is stamped with the last marker
// file plus the number of newlines seen since that marker, so declarations
// parsed later can report their true header position.
func Scan(src string) []Token {
	var toks []Token

	file := ""
	markerLine := 1
	sinceMarker := 0

	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			if m := lineMarkerRE.FindStringSubmatch(trimmed); m != nil {
				n, err := strconv.Atoi(m[1])
				if err == nil {
					markerLine = n
					file = m[2]
					sinceMarker = 0
					continue
				}
			}
			// Other directives (#pragma and friends) contribute nothing.
			sinceMarker++
			continue
		}

		curLine := markerLine + sinceMarker
		toks = append(toks, scanLine(line, file, curLine)...)
		sinceMarker++
	}

	return toks
}

// scanLine tokenizes a single physical line. Each token records the
// whitespace run separating it from the previous token.
func scanLine(line, file string, lineNo int) []Token {
	var toks []Token

	i := 0
	for i < len(line) {
		wsStart := i
		for i < len(line) && isSpace(line[i]) {
			i++
		}
		if i >= len(line) {
			break
		}
		pre := line[wsStart:i]
		c := line[i]

		switch {
		case isIdentStart(c):
			start := i
			for i < len(line) && isIdentPart(line[i]) {
				i++
			}
			toks = append(toks, Token{Kind: Ident, Text: line[start:i], Pre: pre, File: file, Line: lineNo})

		case c >= '0' && c <= '9':
			start := i
			for i < len(line) && isNumberPart(line[i]) {
				i++
			}
			toks = append(toks, Token{Kind: Number, Text: line[start:i], Pre: pre, File: file, Line: lineNo})

		case c == '"' || c == '\'':
			start := i
			quote := c
			i++
			for i < len(line) && line[i] != quote {
				if line[i] == '\\' {
					i++
				}
				i++
			}
			if i < len(line) {
				i++
			}
			toks = append(toks, Token{Kind: Str, Text: line[start:i], Pre: pre, File: file, Line: lineNo})

		default:
			toks = append(toks, Token{Kind: Punct, Text: string(c), Pre: pre, File: file, Line: lineNo})
			i++
		}
	}

	return toks
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// isNumberPart accepts digit runs plus the suffix and radix characters that
// show up in C literals. The grammar never interprets numbers, so sloppy
// acceptance here is harmless.
func isNumberPart(c byte) bool {
	return isIdentPart(c) || c == '.'
}
