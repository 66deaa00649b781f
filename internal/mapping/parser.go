package mapping

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strings"
)

// ErrNoMappings is returned when the document contains no parseable
// field rows at all. Individual malformed rows are skipped silently.
var ErrNoMappings = errors.New("mapping document contains no field rows")

// rowRe matches a four-cell delimited table row with leading and
// trailing pipes. The last cell may be empty (notes are optional).
var rowRe = regexp.MustCompile(`^\|([^|]+)\|([^|]+)\|([^|]+)\|([^|]*)\|`)

// PlaceholderRe matches the insertion-point tokens used in both the
// mapping table and the target template.
var PlaceholderRe = regexp.MustCompile(`\[INSERT_[A-Z0-9_]+\]`)

// headerLabels are first-cell values that mark a header row.
var headerLabels = map[string]bool{
	"DSR Template Field": true,
	"DSR Field":          true,
	"Template Field":     true,
	"---":                true,
	"":                   true,
}

// Parse reads a mapping document and returns the field table.
// A line contributes a mapping only if it is a four-cell table row whose
// first cell carries an [INSERT_*] placeholder; everything else in the
// document (prose, headers, rule dividers) is ignored.
func Parse(r io.Reader) (*Table, error) {
	table := &Table{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		m := rowRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		field := strings.TrimSpace(m[1])
		sectionRef := strings.TrimSpace(m[2])
		pages := strings.TrimSpace(m[3])
		notes := strings.TrimSpace(m[4])

		if headerLabels[field] || strings.Contains(field, "---") || strings.Contains(field, "===") {
			continue
		}

		placeholder := PlaceholderRe.FindString(field)
		if placeholder == "" {
			continue
		}

		table.add(&FieldMapping{
			Placeholder: placeholder,
			Description: strings.Trim(strings.Replace(field, placeholder, "", 1), " -:"),
			SectionRef:  sectionRef,
			Pages:       ParsePages(pages),
			Notes:       notes,
			Strategy:    Classify(sectionRef, notes),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if table.Len() == 0 {
		return nil, ErrNoMappings
	}
	return table, nil
}
