// File: internal/infra/security/sanitizer.go
package security

import (
	"html"
	"regexp"
	"unicode/utf8"
)

// Patterns removed from free text before it reaches the AI layer.
// Removal happens before HTML escaping so the escaped output cannot
// reassemble a dangerous construct.
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`(?is)<iframe[^>]*>.*?</iframe>`),
}

// SanitizeText truncates to maxLen, strips dangerous patterns, and
// HTML-escapes the remainder. Re-sanitizing already-escaped text with no
// dangerous content yields the same text except for stable re-escaping of
// entity ampersands; callers should sanitize exactly once per input.
func SanitizeText(text string, maxLen int) (string, bool) {
	if text == "" {
		return "", false
	}
	if maxLen > 0 && len(text) > maxLen {
		// Back the cut up to a rune boundary so a multi-byte character
		// is dropped whole instead of split.
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	original := text
	for _, p := range dangerousPatterns {
		text = p.ReplaceAllString(text, "")
	}
	text = html.EscapeString(text)
	return text, text != original
}
