package hookgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napsta32/libhook/internal/cparse"
)

func parseDecls(t *testing.T, src string) []cparse.FunctionDeclaration {
	t.Helper()
	decls := cparse.ParseFunctions(cparse.Scan(src))
	require.NotEmpty(t, decls)
	return decls
}

func TestGenerate_EmptyMatchSet(t *testing.T) {
	g := Generator{Headers: []string{"/usr/include/mylib.h"}}
	unit := g.Generate(nil)

	// Preamble plus includes only; still a valid unit.
	assert.Equal(t, preamble+"\n#include <mylib.h>\n", unit)
	assert.NotContains(t, unit, "libhook_orig_")
}

func TestGenerate_IncludesUseBaseNames(t *testing.T) {
	g := Generator{Headers: []string{"/opt/foo/include/foo.h", "bar.h"}}
	unit := g.Generate(nil)

	assert.Contains(t, unit, "#include <foo.h>\n#include <bar.h>\n")
	assert.NotContains(t, unit, "/opt/foo")
}

func TestGenerate_PointerStubAndSignature(t *testing.T) {
	g := Generator{Headers: []string{"mylib.h"}}
	decls := parseDecls(t, "int dial(const char *host, unsigned short int port);")
	unit := g.Generate(decls)

	assert.Contains(t, unit, "static int (*libhook_orig_dial)(const char *, unsigned short int);")
	assert.Contains(t, unit, "int dial(const char *p0, unsigned short int p1)")
	assert.Contains(t, unit, `(int (*)(const char *, unsigned short int))dlsym(RTLD_NEXT, "dial");`)
	assert.Contains(t, unit, "libhook_ret = libhook_orig_dial(p0, p1);")
	assert.Contains(t, unit, "return libhook_ret;")
}

func TestGenerate_ParameterQualifiersVerbatim(t *testing.T) {
	g := Generator{}
	decls := parseDecls(t, "int sum(const unsigned char *restrict buf[16], char *const tag);")
	unit := g.Generate(decls)

	assert.Contains(t, unit, "int sum(const unsigned char *restrict p0[16], char *const p1)")
	assert.Contains(t, unit, "(const unsigned char *restrict[16], char *const)")
}

func TestGenerate_VoidReturn(t *testing.T) {
	g := Generator{}
	unit := g.Generate(parseDecls(t, "void reset(void);"))
	body := strings.TrimPrefix(unit, preamble)

	assert.Contains(t, body, "void reset(void)")
	assert.NotContains(t, body, "libhook_ret")
	assert.NotContains(t, body, "return")
	assert.Contains(t, body, "libhook_orig_reset();")
}

func TestGenerate_PointerReturn(t *testing.T) {
	g := Generator{}
	unit := g.Generate(parseDecls(t, "char *strdup_like(const char *s);"))

	assert.Contains(t, unit, "static char *(*libhook_orig_strdup_like)(const char *);")
	assert.Contains(t, unit, "char *strdup_like(const char *p0)")
	assert.Contains(t, unit, "char *libhook_ret;")
}

func TestGenerate_TimeSelector(t *testing.T) {
	g := Generator{Selectors: Selectors{Time: true}}
	src := "int alpha(int a);\nint beta(int b);\n"
	unit := g.Generate(parseDecls(t, src))

	// Exactly two hook bodies, each with one trace record and no
	// resource-usage record.
	assert.Equal(t, 2, strings.Count(unit, "dlsym(RTLD_NEXT"))
	assert.Equal(t, 2, strings.Count(unit, `\"ph\": \"X\"`))
	assert.Contains(t, unit, `\"name\": \"alpha\"`)
	assert.Contains(t, unit, `\"name\": \"beta\"`)
	assert.NotContains(t, unit, "+-")
}

func TestGenerate_RusageSelectors(t *testing.T) {
	g := Generator{Selectors: Selectors{Rusage: []string{"ru_minflt", "ru_majflt"}}}
	unit := g.Generate(parseDecls(t, "int work(void);"))

	assert.Contains(t, unit, `"work ru_minflt %ld +-%ld\n"`)
	assert.Contains(t, unit, `"work ru_majflt %ld +-%ld\n"`)
	assert.Contains(t, unit, "libhook_m.ru_end.ru_minflt - libhook_m.ru_start.ru_minflt")
	assert.NotContains(t, unit, `\"ph\": \"X\"`)
}

func TestGenerate_NoSelectors(t *testing.T) {
	g := Generator{}
	unit := g.Generate(parseDecls(t, "int quiet(void);"))

	// The frame is still pushed and popped; nothing is emitted.
	assert.Contains(t, unit, "libhook_enter();")
	assert.Contains(t, unit, "libhook_exit(&libhook_m);")
	assert.NotContains(t, unit, "fprintf")
}

func TestGenerate_DuplicateDeclarationsEmitTwice(t *testing.T) {
	g := Generator{}
	unit := g.Generate(parseDecls(t, "int dup_sym(void);\nint dup_sym(void);\n"))

	// Redundant hooks are the caller's problem, not auto-corrected.
	assert.Equal(t, 2, strings.Count(unit, "static int (*libhook_orig_dup_sym)(void);"))
}

func TestGenerate_SourceLocationComment(t *testing.T) {
	g := Generator{}
	src := "# 7 \"/usr/include/mylib.h\"\nint located(void);\n"
	unit := g.Generate(parseDecls(t, src))

	assert.Contains(t, unit, "/* /usr/include/mylib.h:7 */")
}
