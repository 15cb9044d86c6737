package query

import "strings"

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

// EscapeWildcard escapes the wildcard meta-characters of a user value.
func EscapeWildcard(s string) string {
	return wildcardEscaper.Replace(s)
}

// Contains builds the "*value*" pattern for a user value.
func Contains(s string) string {
	return "*" + EscapeWildcard(s) + "*"
}
