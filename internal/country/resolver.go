// Package country maps committee codes to display names.
package country

import "strings"

// Resolver looks up names from configured overrides first, then the IOC table.
type Resolver struct {
	overrides map[string]string
}

// NewResolver copies overrides, keyed case-insensitively by code.
func NewResolver(overrides map[string]string) *Resolver {
	m := make(map[string]string, len(overrides))
	for code, name := range overrides {
		if c, n := normalize(code), strings.TrimSpace(name); c != "" && n != "" {
			m[c] = n
		}
	}
	return &Resolver{overrides: m}
}

// Name returns the display name for code and whether one is known.
func (r *Resolver) Name(code string) (string, bool) {
	c := normalize(code)
	if c == "" {
		return "", false
	}
	if n, ok := r.overrides[c]; ok {
		return n, true
	}
	n, ok := ioc[c]
	return n, ok
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
