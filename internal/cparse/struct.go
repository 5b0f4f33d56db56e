package cparse

// StructTypedef is one `typedef struct { ... } Name;` shape recognized by
// the secondary grammar. The hook pipeline does not consume these; the entry
// point exists independently over the same token stream.
type StructTypedef struct {
	Name   string
	File   string
	Line   int
	Fields []Parameter
}

// fieldRule matches one struct field: a parameter shape followed by a
// semicolon.
func fieldRule(toks []Token, pos int, st *declState) (int, bool) {
	next, ok := seq(paramRule, lit(";"))(toks, pos, st)
	if !ok {
		return pos, false
	}
	st.td.Fields = append(st.td.Fields, st.param)
	return next, true
}

// structTypedefRule matches `typedef struct { field* } Name ;`.
func structTypedefRule(toks []Token, pos int, st *declState) (int, bool) {
	r := seq(
		lit("typedef"),
		lit("struct"),
		lit("{"),
		many(fieldRule),
		lit("}"),
		func(toks []Token, pos int, st *declState) (int, bool) {
			name, ok := ident(toks, pos)
			if !ok {
				return pos, false
			}
			st.td.Name = name
			st.td.File = toks[pos].File
			st.td.Line = toks[pos].Line
			return pos + 1, true
		},
		lit(";"),
	)
	return r(toks, pos, st)
}

// ExtractStructTypedefs runs the secondary grammar over the token stream,
// returning struct typedefs in first-seen order. On failure the scan resumes
// at the next typedef keyword.
func ExtractStructTypedefs(toks []Token) []StructTypedef {
	var out []StructTypedef

	pos := 0
	for pos < len(toks) {
		st := &declState{}
		if next, ok := structTypedefRule(toks, pos, st); ok {
			out = append(out, st.td)
			pos = next
			continue
		}
		pos++
		for pos < len(toks) && toks[pos].Text != "typedef" {
			pos++
		}
	}

	return out
}
