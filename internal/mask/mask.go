// Package mask reduces card numbers to their last four digits before they
// reach results, logs, or exports.
package mask

import (
	"regexp"
	"strings"
)

var (
	digitRun   = regexp.MustCompile(`\d`)
	cardInText = regexp.MustCompile(`\b(?:\d[ -]?){12,16}\b`)
)

// LastFour extracts the trailing four digits from any card number writing,
// including masked forms like "XXXX XXXX XXXX 1234" or "4321 98XX XXXX 5678".
// Returns "" when fewer than four digits are present.
func LastFour(raw string) string {
	digits := digitRun.FindAllString(raw, -1)
	if len(digits) < 4 {
		return ""
	}
	return strings.Join(digits[len(digits)-4:], "")
}

// Card renders the canonical masked form for a card number.
func Card(raw string) string {
	last := LastFour(raw)
	if last == "" {
		return ""
	}
	return "XXXX-XXXX-XXXX-" + last
}

// Scrub replaces full card numbers embedded in free text with their masked
// form, for safe logging of statement excerpts.
func Scrub(text string) string {
	return cardInText.ReplaceAllStringFunc(text, func(m string) string {
		masked := Card(m)
		if masked == "" {
			return m
		}
		return masked
	})
}
