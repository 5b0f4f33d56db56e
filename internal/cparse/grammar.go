package cparse

// The grammar is a handful of combinator primitives over an immutable token
// slice and an integer cursor. Rules thread an explicit *declState
// accumulator instead of mutating globals, so independent parses never
// interfere. Alternatives are tried in a fixed order and the FIRST successful
// alternative wins; this ordering is a behavioral contract, not an
// optimization target.

// declState accumulates fields for the declaration being parsed. A fresh
// value is used per parse attempt.
type declState struct {
	decl  FunctionDeclaration
	param Parameter
	td    StructTypedef
}

// rule attempts to match at pos and returns the position after the match.
type rule func(toks []Token, pos int, st *declState) (int, bool)

// seq matches every rule in order.
func seq(rules ...rule) rule {
	return func(toks []Token, pos int, st *declState) (int, bool) {
		for _, r := range rules {
			next, ok := r(toks, pos, st)
			if !ok {
				return pos, false
			}
			pos = next
		}
		return pos, true
	}
}

// first is the ordered alternative: the first rule that matches is taken.
func first(rules ...rule) rule {
	return func(toks []Token, pos int, st *declState) (int, bool) {
		for _, r := range rules {
			if next, ok := r(toks, pos, st); ok {
				return next, true
			}
		}
		return pos, false
	}
}

// many matches r zero or more times, greedily, stopping on the first failure
// or when r stops making progress.
func many(r rule) rule {
	return func(toks []Token, pos int, st *declState) (int, bool) {
		for {
			next, ok := r(toks, pos, st)
			if !ok || next == pos {
				return pos, true
			}
			pos = next
		}
	}
}

// opt matches r zero or one time.
func opt(r rule) rule {
	return func(toks []Token, pos int, st *declState) (int, bool) {
		if next, ok := r(toks, pos, st); ok {
			return next, true
		}
		return pos, true
	}
}

// lit matches one token with the exact text.
func lit(text string) rule {
	return func(toks []Token, pos int, st *declState) (int, bool) {
		if pos < len(toks) && toks[pos].Text == text {
			return pos + 1, true
		}
		return pos, false
	}
}

// skipPast advances past the next token with any of the given texts,
// consuming it. It always makes progress, even when no stop token remains.
func skipPast(toks []Token, pos int, stops ...string) int {
	for pos < len(toks) {
		text := toks[pos].Text
		pos++
		for _, s := range stops {
			if text == s {
				return pos
			}
		}
	}
	return pos
}

// specifiers are the numeric specifier keywords, legal in any order and
// multiplicity.
var specifierWords = map[string]bool{
	"unsigned": true,
	"signed":   true,
	"short":    true,
	"long":     true,
}

// reservedWords may not serve as a base type or name identifier.
var reservedWords = map[string]bool{
	"const":    true,
	"extern":   true,
	"restrict": true,
	"struct":   true,
	"union":    true,
	"enum":     true,
	"typedef":  true,
	"static":   true,
	"inline":   true,
}

func ident(toks []Token, pos int) (string, bool) {
	if pos < len(toks) && toks[pos].Kind == Ident &&
		!specifierWords[toks[pos].Text] && !reservedWords[toks[pos].Text] {
		return toks[pos].Text, true
	}
	return "", false
}

// extensionRule skips __extension__ markers and __attribute__((...)) groups,
// the latter with balanced parentheses.
func extensionRule(toks []Token, pos int, st *declState) (int, bool) {
	if pos >= len(toks) {
		return pos, false
	}
	switch toks[pos].Text {
	case "__extension__":
		return pos + 1, true
	case "__attribute__":
		pos++
		if pos >= len(toks) || toks[pos].Text != "(" {
			return pos, false
		}
		depth := 0
		for pos < len(toks) {
			switch toks[pos].Text {
			case "(":
				depth++
			case ")":
				depth--
			}
			pos++
			if depth == 0 {
				return pos, true
			}
		}
		return pos, false
	}
	return pos, false
}

// paramRule matches one formal parameter into st.param:
// [const] specifier* base *(n) [restrict] [const] name ([dim])*
func paramRule(toks []Token, pos int, st *declState) (int, bool) {
	p := Parameter{}

	if pos < len(toks) && toks[pos].Text == "const" {
		p.Const = true
		pos++
	}
	for pos < len(toks) && specifierWords[toks[pos].Text] {
		p.Specifiers = append(p.Specifiers, toks[pos].Text)
		pos++
	}
	base, ok := ident(toks, pos)
	if !ok {
		return pos, false
	}
	p.BaseType = base
	pos++
	for pos < len(toks) && toks[pos].Text == "*" {
		p.PointerDepth++
		pos++
	}
	if pos < len(toks) {
		switch toks[pos].Text {
		case "restrict", "__restrict", "__restrict__":
			p.Restrict = true
			pos++
		}
	}
	if pos < len(toks) && toks[pos].Text == "const" {
		p.ConstPointer = true
		pos++
	}
	name, ok := ident(toks, pos)
	if !ok {
		return pos, false
	}
	p.Name = name
	pos++
	for pos+1 < len(toks) && toks[pos].Text == "[" {
		// The dimension text is reassembled verbatim, inner whitespace
		// included, so the declarator survives re-emission byte-for-byte.
		dim := ""
		i := pos + 1
		for i < len(toks) && toks[i].Text != "]" {
			if dim != "" {
				dim += toks[i].Pre
			}
			dim += toks[i].Text
			i++
		}
		if i >= len(toks) {
			break
		}
		p.ArrayDims = append(p.ArrayDims, dim)
		pos = i + 1
	}

	st.param = p
	return pos, true
}

// peekRule matches without consuming when the next token has the given text.
func peekRule(text string) rule {
	return func(toks []Token, pos int, st *declState) (int, bool) {
		if pos < len(toks) && toks[pos].Text == text {
			return pos, true
		}
		return pos, false
	}
}

// paramListRule matches one or more comma-separated parameters, appending
// each to the declaration under construction. Attribute/extension noise may
// appear between parameters and is discarded.
func paramListRule(toks []Token, pos int, st *declState) (int, bool) {
	skipNoise := many(extensionRule)

	for {
		pos, _ = skipNoise(toks, pos, st)
		next, ok := paramRule(toks, pos, st)
		if !ok {
			return pos, false
		}
		st.decl.Params = append(st.decl.Params, st.param)
		pos = next
		pos, _ = skipNoise(toks, pos, st)
		if pos < len(toks) && toks[pos].Text == "," {
			pos++
			continue
		}
		return pos, true
	}
}

// paramSeqRule matches the contents between the parentheses of a function
// declaration. Alternatives, in order: empty list, a lone void, an actual
// parameter list. It stops before the closing paren.
var paramSeqRule = first(
	peekRule(")"),
	seq(lit("void"), peekRule(")")),
	paramListRule,
)

// functionRule matches one function prototype into st.decl:
// [extern] specifier* base *(n) name ( params )
func functionRule(toks []Token, pos int, st *declState) (int, bool) {
	r := seq(
		opt(func(toks []Token, pos int, st *declState) (int, bool) {
			if pos < len(toks) && toks[pos].Text == "extern" {
				st.decl.Extern = true
				return pos + 1, true
			}
			return pos, false
		}),
		many(func(toks []Token, pos int, st *declState) (int, bool) {
			if pos < len(toks) && specifierWords[toks[pos].Text] {
				st.decl.Specifiers = append(st.decl.Specifiers, toks[pos].Text)
				return pos + 1, true
			}
			return pos, false
		}),
		func(toks []Token, pos int, st *declState) (int, bool) {
			base, ok := ident(toks, pos)
			if !ok {
				return pos, false
			}
			st.decl.BaseType = base
			return pos + 1, true
		},
		many(func(toks []Token, pos int, st *declState) (int, bool) {
			if pos < len(toks) && toks[pos].Text == "*" {
				st.decl.PointerDepth++
				return pos + 1, true
			}
			return pos, false
		}),
		func(toks []Token, pos int, st *declState) (int, bool) {
			name, ok := ident(toks, pos)
			if !ok {
				return pos, false
			}
			// The name token fixes the declaration's original position.
			st.decl.Name = name
			st.decl.File = toks[pos].File
			st.decl.Line = toks[pos].Line
			return pos + 1, true
		},
		lit("("),
		paramSeqRule,
		lit(")"),
	)
	return r(toks, pos, st)
}

// ParseFunctions extracts every function prototype the grammar recognizes,
// in first-seen order. Unrecognized spans are skipped to the next semicolon
// and contribute nothing; duplicate declarations are not deduplicated.
func ParseFunctions(toks []Token) []FunctionDeclaration {
	var decls []FunctionDeclaration

	pos := 0
	for pos < len(toks) {
		st := &declState{}
		if next, ok := functionRule(toks, pos, st); ok {
			decls = append(decls, st.decl)
			pos = next
			continue
		}
		pos = skipPast(toks, pos, ";")
	}

	return decls
}
