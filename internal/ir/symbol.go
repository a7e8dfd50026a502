package ir

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Symbol joins non-empty name parts with "." and NFC-normalizes the
// result. Qualified names that differ only in Unicode normalization form
// would otherwise slip past symbol-uniqueness checks and produce two
// textually indistinguishable symbols.
func Symbol(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return norm.NFC.String(strings.Join(kept, "."))
}
