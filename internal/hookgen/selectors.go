// Package hookgen emits the C source unit that intercepts matched library
// functions. The unit is self-contained: a fixed measurement runtime, one
// include per requested header, then per function a lazily-resolved pointer
// to the real symbol and an instrumented replacement.
package hookgen

import "fmt"

// TimeSelector requests one trace event record per completed call.
const TimeSelector = "time"

// RusageFields lists the struct rusage counters accepted as resource-usage
// selectors, in their C declaration order.
var RusageFields = []string{
	"ru_maxrss",
	"ru_ixrss",
	"ru_idrss",
	"ru_isrss",
	"ru_minflt",
	"ru_majflt",
	"ru_nswap",
	"ru_inblock",
	"ru_oublock",
	"ru_msgsnd",
	"ru_msgrcv",
	"ru_nsignals",
	"ru_nvcsw",
	"ru_nivcsw",
}

// Selectors is the set of requested instrumentation kinds: at most one time
// marker plus zero or more resource-usage fields. Field order follows the
// request order with duplicates removed.
type Selectors struct {
	Time   bool
	Rusage []string
}

// Empty reports whether no instrumentation was requested.
func (s Selectors) Empty() bool {
	return !s.Time && len(s.Rusage) == 0
}

// ParseSelectors validates raw selector values from the command line or
// config file. Unknown field names are usage errors.
func ParseSelectors(raw []string) (Selectors, error) {
	var s Selectors
	seen := make(map[string]bool)
	for _, r := range raw {
		if r == TimeSelector {
			s.Time = true
			continue
		}
		if !validRusageField(r) {
			return Selectors{}, fmt.Errorf("unknown measurement %q (expected %q or a rusage field such as ru_minflt)", r, TimeSelector)
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		s.Rusage = append(s.Rusage, r)
	}
	return s, nil
}

func validRusageField(name string) bool {
	for _, f := range RusageFields {
		if f == name {
			return true
		}
	}
	return false
}
