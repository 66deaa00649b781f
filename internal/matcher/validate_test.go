package matcher

import (
	"strings"
	"testing"
)

func TestValidate_GoodContent(t *testing.T) {
	v := Validate("[INSERT_X]", "A reasonable paragraph of extracted content.")
	if !v.Valid || len(v.Warnings) != 0 {
		t.Errorf("expected clean validation, got %+v", v)
	}
}

func TestValidate_EmptyContent(t *testing.T) {
	v := Validate("[INSERT_X]", "   ")
	if v.Valid {
		t.Error("expected empty content to be invalid")
	}
	if len(v.Warnings) == 0 {
		t.Error("expected a warning for empty content")
	}
}

func TestValidate_SentinelContentWarns(t *testing.T) {
	for _, content := range []string{
		"[ERROR EXTRACTING CONTENT: boom]",
		"[DATA NOT AVAILABLE IN IB - REQUIRES: safety database]",
	} {
		v := Validate("[INSERT_X]", content)
		if !v.Valid {
			t.Errorf("sentinel content is advisory, should stay valid: %q", content)
		}
		if len(v.Warnings) == 0 {
			t.Errorf("expected a warning for %q", content)
		}
	}
}

func TestValidate_UnresolvedPlaceholderTokens(t *testing.T) {
	v := Validate("[INSERT_X]", "See [INSERT_SAFETY_SUMMARY] for details on adverse events.")
	if !containsWarning(v.Warnings, "Contains unresolved placeholder tokens: [INSERT_SAFETY_SUMMARY]") {
		t.Errorf("expected placeholder-token warning, got %v", v.Warnings)
	}

	v = Validate("[INSERT_X]", "Plain extracted prose with bracketed [notes] but no tokens.")
	for _, w := range v.Warnings {
		if strings.Contains(w, "placeholder tokens") {
			t.Errorf("unexpected placeholder warning: %q", w)
		}
	}
}

func TestValidate_LengthBounds(t *testing.T) {
	long := strings.Repeat("a", MaxContentLen+1)
	if v := Validate("[INSERT_X]", long); len(v.Warnings) == 0 {
		t.Error("expected warning for very long content")
	}

	if v := Validate("[INSERT_X]", "short"); len(v.Warnings) == 0 {
		t.Error("expected warning for very short content")
	}

	// Bracketed sentinels are exempt from the minimum length.
	if v := Validate("[INSERT_X]", "[ok]"); containsWarning(v.Warnings, "Content very short") {
		t.Error("bracketed content should skip the short-content warning")
	}
}

func containsWarning(warnings []string, w string) bool {
	for _, x := range warnings {
		if x == w {
			return true
		}
	}
	return false
}
