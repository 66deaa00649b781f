package matcher

import (
	"fmt"
	"strings"

	"dsrdraft/internal/template"
)

// Validation thresholds. Advisory only: warnings never block population.
const (
	MaxContentLen = 20000
	MinContentLen = 10
)

// Validation is the advisory check result for one resolved field.
type Validation struct {
	Field    string   `json:"field"`
	Valid    bool     `json:"is_valid"`
	Warnings []string `json:"warnings"`
}

// Validate flags empty content, error/unavailable sentinels, leftover
// placeholder tokens, and content of implausible length. Bracketed
// sentinels are exempt from the minimum-length check.
func Validate(placeholder, content string) Validation {
	v := Validation{Field: placeholder, Valid: true}

	if strings.TrimSpace(content) == "" {
		v.Valid = false
		v.Warnings = append(v.Warnings, "Content is empty")
	}

	if strings.Contains(content, "[ERROR") || strings.Contains(content, "[DATA NOT AVAILABLE") {
		v.Warnings = append(v.Warnings, "Contains error or unavailable message")
	}

	if toks := template.FindPlaceholders(content); len(toks) > 0 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("Contains unresolved placeholder tokens: %s", strings.Join(toks, ", ")))
	}

	if len(content) > MaxContentLen {
		v.Warnings = append(v.Warnings, fmt.Sprintf("Content very long (%d chars)", len(content)))
	}

	if len(content) < MinContentLen && !strings.Contains(content, "[") {
		v.Warnings = append(v.Warnings, "Content very short")
	}

	return v
}
