package cparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, src string) FunctionDeclaration {
	t.Helper()
	decls := ParseFunctions(Scan(src))
	require.Len(t, decls, 1, "source: %s", src)
	return decls[0]
}

func TestParseFunctions_Basic(t *testing.T) {
	d := parseOne(t, "int foo(int a);")

	assert.Equal(t, "foo", d.Name)
	assert.Equal(t, "int", d.BaseType)
	assert.Empty(t, d.Specifiers)
	assert.Zero(t, d.PointerDepth)
	assert.False(t, d.Extern)
	require.Len(t, d.Params, 1)
	assert.Equal(t, "int", d.Params[0].BaseType)
	assert.Equal(t, "a", d.Params[0].Name)
}

func TestParseFunctions_ReturnShapes(t *testing.T) {
	tests := []struct {
		src        string
		specifiers []string
		baseType   string
		depth      int
		extern     bool
	}{
		{"void reset(void);", nil, "void", 0, false},
		{"extern int close_it(int fd);", nil, "int", 0, true},
		{"unsigned long int counter(void);", []string{"unsigned", "long"}, "int", 0, false},
		{"char *name(void);", nil, "char", 1, false},
		{"void **handles(void);", nil, "void", 2, false},
		{"extern unsigned short int ***deep(void);", []string{"unsigned", "short"}, "int", 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			d := parseOne(t, tt.src)
			assert.Equal(t, tt.specifiers, d.Specifiers)
			assert.Equal(t, tt.baseType, d.BaseType)
			assert.Equal(t, tt.depth, d.PointerDepth)
			assert.Equal(t, tt.extern, d.Extern)
		})
	}
}

func TestParseFunctions_ParameterShapes(t *testing.T) {
	tests := []struct {
		src   string
		check func(t *testing.T, p Parameter)
	}{
		{"int f(char c);", func(t *testing.T, p Parameter) {
			assert.Equal(t, "char", p.BaseType)
			assert.Equal(t, "c", p.Name)
		}},
		{"int f(const char *s);", func(t *testing.T, p Parameter) {
			assert.True(t, p.Const)
			assert.Equal(t, 1, p.PointerDepth)
		}},
		{"int f(char ***s);", func(t *testing.T, p Parameter) {
			assert.Equal(t, 3, p.PointerDepth)
		}},
		{"int f(char *restrict s);", func(t *testing.T, p Parameter) {
			assert.True(t, p.Restrict)
		}},
		{"int f(char *__restrict s);", func(t *testing.T, p Parameter) {
			assert.True(t, p.Restrict)
		}},
		{"int f(char *const s);", func(t *testing.T, p Parameter) {
			assert.True(t, p.ConstPointer)
		}},
		{"int f(unsigned long int n);", func(t *testing.T, p Parameter) {
			assert.Equal(t, []string{"unsigned", "long"}, p.Specifiers)
			assert.Equal(t, "n", p.Name)
		}},
		{"int f(int m[3][4]);", func(t *testing.T, p Parameter) {
			assert.Equal(t, []string{"3", "4"}, p.ArrayDims)
		}},
		{"int f(int m[N+1]);", func(t *testing.T, p Parameter) {
			assert.Equal(t, []string{"N+1"}, p.ArrayDims)
		}},
		{"int f(int m[N + 1]);", func(t *testing.T, p Parameter) {
			assert.Equal(t, []string{"N + 1"}, p.ArrayDims)
		}},
		{"int f(const unsigned char *restrict const buf[16]);", func(t *testing.T, p Parameter) {
			assert.True(t, p.Const)
			assert.Equal(t, []string{"unsigned"}, p.Specifiers)
			assert.Equal(t, "char", p.BaseType)
			assert.Equal(t, 1, p.PointerDepth)
			assert.True(t, p.Restrict)
			assert.True(t, p.ConstPointer)
			assert.Equal(t, "buf", p.Name)
			assert.Equal(t, []string{"16"}, p.ArrayDims)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			d := parseOne(t, tt.src)
			require.Len(t, d.Params, 1)
			tt.check(t, d.Params[0])
		})
	}
}

func TestParseFunctions_ParameterOrderPreserved(t *testing.T) {
	d := parseOne(t, "int mix(char a, const void *b, unsigned long int c);")

	require.Len(t, d.Params, 3)
	assert.Equal(t, "a", d.Params[0].Name)
	assert.Equal(t, "b", d.Params[1].Name)
	assert.Equal(t, "c", d.Params[2].Name)
}

func TestParseFunctions_EmptyAndVoidParams(t *testing.T) {
	assert.Empty(t, parseOne(t, "int f();").Params)
	assert.Empty(t, parseOne(t, "int f(void);").Params)
}

func TestParseFunctions_AttributeNoise(t *testing.T) {
	d := parseOne(t, "int f(const char *s __attribute__((unused)), __extension__ int n);")

	require.Len(t, d.Params, 2)
	assert.Equal(t, "s", d.Params[0].Name)
	assert.Equal(t, "n", d.Params[1].Name)
}

func TestParseFunctions_SkipsUnsupportedConstructs(t *testing.T) {
	src := `
struct point { int x; int y; };
int global_counter;
enum color { RED, GREEN };
typedef unsigned long size_type;
int keep_me(int a);
int printf_like(const char *fmt, ...);
`
	decls := ParseFunctions(Scan(src))

	require.Len(t, decls, 1)
	assert.Equal(t, "keep_me", decls[0].Name)
}

func TestParseFunctions_FirstSeenOrderAndDuplicates(t *testing.T) {
	src := "int a(void);\nint b(void);\nint a(void);\n"
	decls := ParseFunctions(Scan(src))

	require.Len(t, decls, 3)
	assert.Equal(t, "a", decls[0].Name)
	assert.Equal(t, "b", decls[1].Name)
	assert.Equal(t, "a", decls[2].Name)
}

func TestParseFunctions_LineAttribution(t *testing.T) {
	src := "# 1 \"wrapper.c\"\n" +
		"# 40 \"/usr/include/mylib.h\"\n" +
		"typedef unsigned long size_type;\n" +
		"extern int hooked(int fd);\n"

	decls := ParseFunctions(Scan(src))

	require.Len(t, decls, 1)
	assert.Equal(t, "/usr/include/mylib.h", decls[0].File)
	assert.Equal(t, 41, decls[0].Line)
}

func TestParseFunctions_RecoveryResumesAfterSemicolon(t *testing.T) {
	src := "int broken(int, int);\nint fine(int a);\n"
	decls := ParseFunctions(Scan(src))

	// The unnamed-parameter prototype fails the grammar; recovery must not
	// swallow the following declaration.
	require.Len(t, decls, 1)
	assert.Equal(t, "fine", decls[0].Name)
}
