// internal/app/system/normalize/normalize.go

// Package normalize canonicalizes user-supplied identity fields before
// they are stored or compared.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace; case is preserved.
func Name(s string) string {
	return strings.TrimSpace(s)
}
