package mapping

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		sectionRef string
		notes      string
		want       Strategy
	}{
		{"plain section", "Section 1.2", "", DirectExtract},
		{"synthesis keyword in notes", "Section 5.5", "Summarize key findings", SynthesisRequired},
		{"combine keyword", "Section 4", "Combine with tox data", SynthesisRequired},
		{"plus joined sections", "5.5 + 5.6", "", SynthesisRequired},
		{"comma joined sections", "1.2, 1.3", "", SynthesisRequired},
		{"and joined sections", "1.2 and 1.3", "", SynthesisRequired},
		{"not in ib", "Not in IB", "", Unavailable},
		{"external source in notes", "Section 2", "requires external source", Unavailable},
		{"safety database", "Safety database", "", Unavailable},
		{"na section", "N/A", "", Unavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.sectionRef, tt.notes); got != tt.want {
				t.Errorf("Classify(%q, %q) = %s, want %s", tt.sectionRef, tt.notes, got, tt.want)
			}
		})
	}
}

// An unavailable keyword always overrides a synthesis signal, even when
// both appear in the same row.
func TestClassify_UnavailableBeatsSynthesis(t *testing.T) {
	got := Classify("external source + Section 5.5", "summarize from multiple sections")
	if got != Unavailable {
		t.Errorf("expected Unavailable to take precedence, got %s", got)
	}
}
