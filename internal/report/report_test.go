package report

import (
	"strings"
	"testing"

	"dsrdraft/internal/matcher"
)

func sampleResults() []matcher.Result {
	return []matcher.Result{
		{Placeholder: "[INSERT_A]", Content: "Real extracted prose."},
		{Placeholder: "[INSERT_B]", Content: ""},
		{Placeholder: "[INSERT_C]", Content: "[DATA NOT AVAILABLE IN IB - REQUIRES: safety database]"},
		{Placeholder: "[INSERT_D]", Content: "[ERROR EXTRACTING CONTENT: boom]"},
		{Placeholder: "[INSERT_E]", Content: "N/A"},
	}
}

func TestBuild_Categorization(t *testing.T) {
	r := Build(sampleResults())

	if len(r.Populated) != 1 || r.Populated[0] != "[INSERT_A]" {
		t.Errorf("populated = %v", r.Populated)
	}
	if len(r.Empty) != 2 {
		t.Errorf("empty = %v", r.Empty)
	}
	if len(r.NotInIB) != 1 || r.NotInIB[0] != "[INSERT_C]" {
		t.Errorf("not_in_ib = %v", r.NotInIB)
	}
	if len(r.Errors) != 1 || r.Errors[0] != "[INSERT_D]" {
		t.Errorf("errors = %v", r.Errors)
	}
}

func TestMarkdown_ListsEveryBucket(t *testing.T) {
	md := Build(sampleResults()).Markdown()
	for _, want := range []string{
		"## Successfully Populated (1)",
		"## Empty / No Content (2)",
		"## Not Available in IB (1)",
		"## Errors (1)",
		"`[INSERT_A]`",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestHTML_Renders(t *testing.T) {
	html, err := Build(sampleResults()).HTML()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<h2") {
		t.Errorf("expected rendered headings, got:\n%s", html)
	}
}
