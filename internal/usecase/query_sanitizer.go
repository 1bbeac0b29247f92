package usecase

import (
	"regexp"
	"strings"
)

// maxQueryLength caps what gets forwarded to the reasoning service.
const maxQueryLength = 500

// Compiled patterns for query sanitation
var (
	controlCharPattern = regexp.MustCompile(`[\x00-\x1f\x7f]`)
	multiSpacePattern  = regexp.MustCompile(`\s+`)
)

// SanitizeQuery cleans a free-text query before it is sent to the reasoning
// service: strips control characters, collapses whitespace, and caps length
// at a word boundary. The semantics of the text are left untouched; category
// detection is entirely the service's job.
func SanitizeQuery(query string) string {
	cleaned := controlCharPattern.ReplaceAllString(query, " ")
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	if len(cleaned) > maxQueryLength {
		cleaned = cleaned[:maxQueryLength]
		if lastSpace := strings.LastIndex(cleaned, " "); lastSpace > maxQueryLength/2 {
			cleaned = cleaned[:lastSpace]
		}
	}
	return cleaned
}
