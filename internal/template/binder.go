// Package template discovers and substitutes [INSERT_*] placeholders in
// the target Word document.
package template

import (
	"sort"

	"dsrdraft/internal/mapping"
)

// Binder is the placeholder substitution engine over the target
// document. Implementations scan and replace across the document's
// paragraph-level text.
type Binder interface {
	// Placeholders returns the unique placeholder tokens found in the
	// document, sorted.
	Placeholders() []string
	// Replace substitutes every occurrence of placeholder with content
	// and returns the number of paragraphs changed.
	Replace(placeholder, content string) int
	// Save writes the document to path.
	Save(path string) error
}

// FindPlaceholders extracts the unique [INSERT_*] tokens in a text
// fragment, sorted.
func FindPlaceholders(text string) []string {
	seen := make(map[string]bool)
	for _, m := range mapping.PlaceholderRe.FindAllString(text, -1) {
		seen[m] = true
	}
	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
