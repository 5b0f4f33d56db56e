package cparse

import "strings"

// Parameter is one formal parameter of a function declaration. Order within
// the owning declaration is significant: it determines ABI-correct emission.
type Parameter struct {
	// BaseType is the base type identifier (char, size_t, ...).
	BaseType string
	// Specifiers are the numeric specifier keywords in source order
	// (unsigned, signed, short, long), duplicates preserved.
	Specifiers []string
	// PointerDepth is the number of pointer stars.
	PointerDepth int
	// Const reports a leading const qualifier.
	Const bool
	// Restrict reports a restrict/__restrict qualifier after the stars.
	Restrict bool
	// ConstPointer reports a trailing const (const pointer) after the stars.
	ConstPointer bool
	// Name is the declared parameter name. It is parsed for grammar
	// completeness but discarded at generation time.
	Name string
	// ArrayDims holds each bracketed dimension's text verbatim, one entry
	// per [..] group, never evaluated.
	ArrayDims []string
}

// Format renders the parameter as C source with the given name substituted
// for the original one. An empty name yields the abstract declarator form
// used in parameter-type-only signatures.
func (p Parameter) Format(name string) string {
	parts := make([]string, 0, len(p.Specifiers)+2)
	if p.Const {
		parts = append(parts, "const")
	}
	parts = append(parts, p.Specifiers...)
	parts = append(parts, p.BaseType)
	base := strings.Join(parts, " ")

	decl := strings.Repeat("*", p.PointerDepth)
	var quals []string
	if p.Restrict {
		quals = append(quals, "restrict")
	}
	if p.ConstPointer {
		quals = append(quals, "const")
	}
	if len(quals) > 0 {
		decl += strings.Join(quals, " ")
	}
	if name != "" {
		if decl != "" && !strings.HasSuffix(decl, "*") {
			decl += " "
		}
		decl += name
	}
	for _, dim := range p.ArrayDims {
		decl += "[" + dim + "]"
	}

	if decl == "" {
		return base
	}
	return base + " " + decl
}

// FunctionDeclaration is one parsed function prototype. Values are created
// during parsing and never mutated afterward.
type FunctionDeclaration struct {
	// Name is the function's symbol name.
	Name string
	// BaseType is the return type's base identifier.
	BaseType string
	// Specifiers are the return type's numeric specifiers in source order.
	Specifiers []string
	// PointerDepth is the return type's pointer depth.
	PointerDepth int
	// Extern reports an extern storage class on the declaration.
	Extern bool
	// File and Line locate the declaration in the original header, as
	// recovered from preprocessor line markers at the function name token.
	File string
	Line int
	// Params are the formal parameters in declaration order.
	Params []Parameter
}

// ReturnType renders the return type as C source, stars included.
func (d FunctionDeclaration) ReturnType() string {
	parts := make([]string, 0, len(d.Specifiers)+1)
	parts = append(parts, d.Specifiers...)
	parts = append(parts, d.BaseType)
	t := strings.Join(parts, " ")
	if d.PointerDepth > 0 {
		t += " " + strings.Repeat("*", d.PointerDepth)
	}
	return t
}

// ReturnsValue reports whether the declaration returns anything. Only a bare
// void at pointer depth zero counts as "no value"; void * is a value.
func (d FunctionDeclaration) ReturnsValue() bool {
	return d.BaseType != "void" || d.PointerDepth > 0 || len(d.Specifiers) > 0
}
