// Package match filters parsed declarations by function name patterns.
package match

import (
	"fmt"
	"regexp"

	"github.com/napsta32/libhook/internal/cparse"
)

// Filter holds an ordered list of name patterns. Patterns are regular
// expressions anchored at the start of the function name; per declaration
// they are tried in list order and the first match wins.
type Filter struct {
	patterns []*regexp.Regexp
}

// New compiles the given patterns in order. An invalid pattern is a usage
// error reported back to the caller; nothing is compiled past it.
func New(patterns []string) (*Filter, error) {
	f := &Filter{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		re, err := regexp.Compile("^(?:" + p + ")")
		if err != nil {
			return nil, fmt.Errorf("invalid function pattern %q: %w", p, err)
		}
		f.patterns = append(f.patterns, re)
	}
	return f, nil
}

// Matches reports whether any pattern matches the name, starting at the
// first character.
func (f *Filter) Matches(name string) bool {
	for _, re := range f.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Apply returns the declarations selected by the filter, preserving input
// order. Declarations matching no pattern are dropped. Duplicate
// declarations of the same symbol are not deduplicated; selecting the same
// name twice yields two entries.
func (f *Filter) Apply(decls []cparse.FunctionDeclaration) []cparse.FunctionDeclaration {
	var out []cparse.FunctionDeclaration
	for _, d := range decls {
		if f.Matches(d.Name) {
			out = append(out, d)
		}
	}
	return out
}
