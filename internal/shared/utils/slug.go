package utils

import (
	"regexp"
	"strings"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// GenerateSlug turns a display name into a URL-safe slug.
// "The Left Hand of Darkness" -> "the-left-hand-of-darkness"
func GenerateSlug(input string) string {
	lower := strings.ToLower(strings.TrimSpace(input))
	hyphenated := strings.ReplaceAll(lower, " ", "-")
	cleaned := nonSlugChars.ReplaceAllString(hyphenated, "")
	normalized := hyphenRuns.ReplaceAllString(cleaned, "-")
	return strings.Trim(normalized, "-")
}
