package mapping

// Strategy is the resolution method assigned to a field mapping.
// It is derived from the mapping row, never declared by the author.
type Strategy int

const (
	// DirectExtract copies content straight out of the indexed source.
	DirectExtract Strategy = iota
	// SynthesisRequired needs the language-model gateway to combine or
	// rewrite content from one or more source sections.
	SynthesisRequired
	// Unavailable marks fields whose data lives outside the source
	// document entirely.
	Unavailable
)

func (s Strategy) String() string {
	switch s {
	case DirectExtract:
		return "direct_extract"
	case SynthesisRequired:
		return "synthesis_required"
	case Unavailable:
		return "unavailable"
	}
	return "unknown"
}

// MarshalText makes Strategy readable in persisted artifacts.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses the persisted form.
func (s *Strategy) UnmarshalText(b []byte) error {
	switch string(b) {
	case "synthesis_required":
		*s = SynthesisRequired
	case "unavailable":
		*s = Unavailable
	default:
		*s = DirectExtract
	}
	return nil
}

// FieldMapping is one row of the mapping table: a template placeholder
// and where its content comes from in the source document.
type FieldMapping struct {
	Placeholder string   `json:"placeholder"`
	Description string   `json:"description"`
	SectionRef  string   `json:"ib_section"`
	Pages       []int    `json:"ib_pages"`
	Notes       string   `json:"notes"`
	Strategy    Strategy `json:"mapping_type"`
}

// Table is the parsed mapping document. Fields keep their declared
// order; duplicate placeholders keep the first row's position but the
// last row's values.
type Table struct {
	fields []*FieldMapping
	byName map[string]int
}

// NewTable builds a table from mappings in declared order, applying the
// same duplicate-placeholder rule as parsing (last wins).
func NewTable(fields ...*FieldMapping) *Table {
	t := &Table{}
	for _, f := range fields {
		t.add(f)
	}
	return t
}

// Fields returns the mappings in declared order.
func (t *Table) Fields() []*FieldMapping {
	return t.fields
}

// Get returns the mapping for a placeholder, or nil.
func (t *Table) Get(placeholder string) *FieldMapping {
	if i, ok := t.byName[placeholder]; ok {
		return t.fields[i]
	}
	return nil
}

// Len returns the number of distinct placeholders.
func (t *Table) Len() int {
	return len(t.fields)
}

// Placeholders lists all placeholder names in declared order.
func (t *Table) Placeholders() []string {
	out := make([]string, len(t.fields))
	for i, f := range t.fields {
		out[i] = f.Placeholder
	}
	return out
}

// ByStrategy groups placeholder names by their resolution strategy.
func (t *Table) ByStrategy() map[Strategy][]string {
	out := make(map[Strategy][]string)
	for _, f := range t.fields {
		out[f.Strategy] = append(out[f.Strategy], f.Placeholder)
	}
	return out
}

// SynthesisFields lists the placeholders that need the synthesis gateway.
func (t *Table) SynthesisFields() []string {
	var out []string
	for _, f := range t.fields {
		if f.Strategy == SynthesisRequired {
			out = append(out, f.Placeholder)
		}
	}
	return out
}

func (t *Table) add(f *FieldMapping) {
	if t.byName == nil {
		t.byName = make(map[string]int)
	}
	if i, ok := t.byName[f.Placeholder]; ok {
		// Last row wins on duplicate placeholders.
		t.fields[i] = f
		return
	}
	t.byName[f.Placeholder] = len(t.fields)
	t.fields = append(t.fields, f)
}
