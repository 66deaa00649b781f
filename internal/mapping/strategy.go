package mapping

import "strings"

// unavailableKeywords mark fields whose data must come from outside the
// source document. Checked against both the section reference and the
// notes cell.
var unavailableKeywords = []string{
	"not in ib",
	"external source",
	"safety database",
	"case report",
	"requires query",
	"not available",
	"n/a",
}

// synthesisKeywords in the notes cell mean the content cannot be lifted
// verbatim and needs the language-model gateway.
var synthesisKeywords = []string{
	"synthesis",
	"combine",
	"summarize",
	"multiple sections",
	"rewrite",
	"adapt",
}

// Classify derives the resolution strategy for a mapping row.
// Precedence matters: an unavailable keyword always wins, even when a
// synthesis signal is present in the same row.
func Classify(sectionRef, notes string) Strategy {
	sectionLower := strings.ToLower(sectionRef)
	notesLower := strings.ToLower(notes)

	for _, kw := range unavailableKeywords {
		if strings.Contains(sectionLower, kw) || strings.Contains(notesLower, kw) {
			return Unavailable
		}
	}

	for _, kw := range synthesisKeywords {
		if strings.Contains(notesLower, kw) {
			return SynthesisRequired
		}
	}

	// Multiple source sections imply synthesis even without a keyword.
	if strings.Contains(sectionRef, "+") || strings.Contains(sectionRef, ",") ||
		strings.Contains(sectionLower, "and") {
		return SynthesisRequired
	}

	return DirectExtract
}
