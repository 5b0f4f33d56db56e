package hookgen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/napsta32/libhook/internal/cparse"
)

// origPrefix prefixes the function-pointer variable holding the real symbol.
const origPrefix = "libhook_orig_"

// Generator assembles one self-contained C source unit. Headers are
// referenced by base name only; resolving them again at build time is the
// toolchain's contract, not re-done here.
type Generator struct {
	Headers   []string
	Selectors Selectors
}

// Generate emits the unit for the given declarations in order: runtime
// preamble, includes, then per declaration a pointer stub and a hook body.
// The declarations are assumed structurally well-formed by construction of
// the grammar; no further signature validation happens here.
func (g *Generator) Generate(decls []cparse.FunctionDeclaration) string {
	var b strings.Builder

	b.WriteString(preamble)
	if len(g.Headers) > 0 {
		b.WriteString("\n")
	}
	for _, h := range g.Headers {
		fmt.Fprintf(&b, "#include <%s>\n", filepath.Base(h))
	}
	for _, d := range decls {
		b.WriteString("\n")
		g.emitHook(&b, d)
	}

	return b.String()
}

// emitHook writes the pointer stub and replacement function for one
// declaration. Parameter names are synthesized positionally (p0, p1, ...);
// every qualifier of the original parameter types is reproduced verbatim.
func (g *Generator) emitHook(b *strings.Builder, d cparse.FunctionDeclaration) {
	ptr := origPrefix + d.Name
	ret := d.ReturnType()
	sig := typeOnlySignature(d.Params)

	fmt.Fprintf(b, "/* %s:%d */\n", d.File, d.Line)
	fmt.Fprintf(b, "static %s(*%s)(%s);\n\n", spaced(ret), ptr, sig)

	fmt.Fprintf(b, "%s%s(%s)\n{\n", spaced(ret), d.Name, namedParamList(d.Params))
	b.WriteString("    struct libhook_measurement libhook_m;\n")
	if d.ReturnsValue() {
		fmt.Fprintf(b, "    %slibhook_ret;\n", spaced(ret))
	}
	b.WriteString("\n")

	fmt.Fprintf(b, "    if (%s == NULL)\n", ptr)
	fmt.Fprintf(b, "        %s = (%s(*)(%s))dlsym(RTLD_NEXT, \"%s\");\n", ptr, spaced(ret), sig, d.Name)
	b.WriteString("    libhook_enter();\n")
	if d.ReturnsValue() {
		fmt.Fprintf(b, "    libhook_ret = %s(%s);\n", ptr, argList(d.Params))
	} else {
		fmt.Fprintf(b, "    %s(%s);\n", ptr, argList(d.Params))
	}

	if g.Selectors.Empty() {
		b.WriteString("    libhook_exit(&libhook_m);\n")
	} else {
		b.WriteString("    if (libhook_exit(&libhook_m)) {\n")
		if g.Selectors.Time {
			fmt.Fprintf(b, "        fprintf(stderr,\n")
			fmt.Fprintf(b, "            \"{\\\"cat\\\": \\\"libhook\\\", \\\"name\\\": \\\"%s\\\", \\\"ph\\\": \\\"X\\\", \\\"ts\\\": %%lld, \\\"dur\\\": %%lld, \\\"pid\\\": %%d}\\n\",\n", d.Name)
			b.WriteString("            libhook_m.start_us, libhook_m.dur_us, (int)libhook_pid);\n")
		}
		for _, field := range g.Selectors.Rusage {
			fmt.Fprintf(b, "        fprintf(stderr, \"%s %s %%ld +-%%ld\\n\",\n", d.Name, field)
			fmt.Fprintf(b, "            libhook_m.ru_end.%s,\n", field)
			fmt.Fprintf(b, "            libhook_m.ru_end.%s - libhook_m.ru_start.%s);\n", field, field)
		}
		b.WriteString("    }\n")
	}

	if d.ReturnsValue() {
		b.WriteString("    return libhook_ret;\n")
	}
	b.WriteString("}\n")
}

// spaced appends a space to a type unless it already ends in a star, so
// "int" becomes "int " while "int *" stays attachable.
func spaced(t string) string {
	if strings.HasSuffix(t, "*") {
		return t
	}
	return t + " "
}

// typeOnlySignature renders the parameter list with every name removed.
// An empty list renders as void.
func typeOnlySignature(params []cparse.Parameter) string {
	if len(params) == 0 {
		return "void"
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Format("")
	}
	return strings.Join(parts, ", ")
}

// namedParamList renders the parameter list with positional names.
func namedParamList(params []cparse.Parameter) string {
	if len(params) == 0 {
		return "void"
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Format(fmt.Sprintf("p%d", i))
	}
	return strings.Join(parts, ", ")
}

// argList renders the positional names for forwarding the call.
func argList(params []cparse.Parameter) string {
	parts := make([]string, len(params))
	for i := range params {
		parts[i] = fmt.Sprintf("p%d", i)
	}
	return strings.Join(parts, ", ")
}
