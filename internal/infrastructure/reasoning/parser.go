package reasoning

import (
	"regexp"
	"strings"
)

// tagToken accepts lowercase snake_case category tokens only. Anything else
// in the service's reply is discarded.
var tagToken = regexp.MustCompile(`^[a-z][a-z_]*$`)

// parseCategoryTags parses the raw extraction reply into candidate tags.
// The reply is treated as untrusted text: it is split on commas and
// newlines, stripped of list punctuation and quoting, and reduced to tokens
// matching the tag shape. Validation against the category set is the
// caller's job; this parser only guarantees a well-formed token list.
func parseCategoryTags(content string) []string {
	cleaned := strings.NewReplacer("[", " ", "]", " ", "'", " ", `"`, " ", "\n", ",").Replace(content)

	var tags []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(cleaned, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		tag = strings.TrimSuffix(tag, ".")
		if tag == "" || tag == "none" {
			continue
		}
		if !tagToken.MatchString(tag) {
			continue
		}
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}
