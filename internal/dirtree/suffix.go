package dirtree

import (
	"slices"
	"strings"
)

// Suffixes is a normalized set of lower-case name endings. The empty set
// matches every name.
type Suffixes []string

// ParseSuffixes normalizes raw suffixes. Each item may hold a
// comma-separated list; blanks and duplicates are dropped.
func ParseSuffixes(raw ...string) Suffixes {
	var out Suffixes
	for _, item := range raw {
		for _, s := range strings.Split(item, ",") {
			s = strings.ToLower(strings.TrimSpace(s))
			if s == "" || slices.Contains(out, s) {
				continue
			}
			out = append(out, s)
		}
	}
	return out
}

// Match reports whether name ends with one of the suffixes, ignoring case.
func (s Suffixes) Match(name string) bool {
	if len(s) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, suffix := range s {
		if strings.HasSuffix(lower, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

func (s Suffixes) String() string {
	return strings.Join(s, ",")
}
