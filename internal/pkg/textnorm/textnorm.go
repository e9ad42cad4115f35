package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	nonSlug   = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	separator = regexp.MustCompile(`[-_\s]+`)
)

// Slug lower-cases s and collapses every run of characters that are not
// letters or digits into "-". Non-Latin names keep their script; a result of
// "" means s had nothing to build an identifier from.
func Slug(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-"), "-")
}

// DisplayName turns an identifier like "ocean-basket_sandton" into
// "Ocean Basket Sandton".
func DisplayName(id string) string {
	words := strings.TrimSpace(separator.ReplaceAllString(id, " "))
	if words == "" {
		return ""
	}
	// Casers keep state between calls and must not be shared across goroutines.
	return cases.Title(language.English).String(strings.ToLower(words))
}

// Command lower-cases and trims an inbound message for keyword matching.
func Command(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
