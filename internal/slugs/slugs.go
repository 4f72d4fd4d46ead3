// Package slugs normalizes user-supplied names for patterns and dialects.
//
// Registry names are lower case ASCII with words joined by underscores, the
// shape of the built-in names ("iso_8601", "24_hour", "strftime"). Names from
// config and extension files go through Name before they reach a registry so
// "Fiscal Quarter" and "fiscal-quarter" refer to the same entry.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// Name converts s to a registry name.
func Name(s string) string {
	s = strings.TrimSpace(s)
	slugged := goslug.Make(s)
	if slugged == "" {
		slugged = strings.ToLower(strings.Join(strings.Fields(s), "_"))
	}
	return strings.ReplaceAll(slugged, "-", "_")
}

// Names applies Name to each element, dropping empties.
func Names(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := Name(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}
