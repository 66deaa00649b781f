// Package report categorizes matched content for the population
// accounting shown to the operator and served by the HTTP API.
package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"

	"dsrdraft/internal/matcher"
)

// Report groups placeholders by what happened to them during matching
// and population.
type Report struct {
	Populated []string `json:"populated"`
	Empty     []string `json:"empty"`
	NotInIB   []string `json:"not_in_ib"`
	Errors    []string `json:"errors"`
}

// Build categorizes every match result. A field lands in exactly one
// bucket: empty beats unavailable beats error beats populated.
func Build(results []matcher.Result) Report {
	var r Report
	for _, res := range results {
		content := res.Content
		switch {
		case content == "" || content == "N/A" || strings.TrimSpace(content) == "":
			r.Empty = append(r.Empty, res.Placeholder)
		case strings.Contains(content, "NOT AVAILABLE IN IB") || strings.Contains(content, "REQUIRES:"):
			r.NotInIB = append(r.NotInIB, res.Placeholder)
		case strings.Contains(content, "[ERROR") || strings.Contains(strings.ToLower(content), "error"):
			r.Errors = append(r.Errors, res.Placeholder)
		default:
			r.Populated = append(r.Populated, res.Placeholder)
		}
	}
	sort.Strings(r.Populated)
	sort.Strings(r.Empty)
	sort.Strings(r.NotInIB)
	sort.Strings(r.Errors)
	return r
}

// Markdown renders the report as a human-readable document.
func (r Report) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# Population Report\n\n")
	writeSection(&sb, "Successfully Populated", r.Populated)
	writeSection(&sb, "Empty / No Content", r.Empty)
	writeSection(&sb, "Not Available in IB", r.NotInIB)
	writeSection(&sb, "Errors", r.Errors)
	return sb.String()
}

// HTML renders the markdown report to HTML.
func (r Report) HTML() (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(r.Markdown()), &buf); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

func writeSection(sb *strings.Builder, title string, fields []string) {
	fmt.Fprintf(sb, "## %s (%d)\n\n", title, len(fields))
	for _, f := range fields {
		fmt.Fprintf(sb, "- `%s`\n", f)
	}
	sb.WriteString("\n")
}
