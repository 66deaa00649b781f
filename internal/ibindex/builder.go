package ibindex

import (
	"regexp"
	"strings"
)

// PageText is the raw text of one source page, 1-indexed.
type PageText struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}

// headingRe matches numbered section headings at the start of a line:
// "1. SUMMARY", "1.1 SCIENTIFIC RATIONALE", "5.5.1.2.4 DEATHS".
// The title must be uppercase-led; very short matches are discarded
// below as false positives.
var headingRe = regexp.MustCompile(`(?m)^(\d+(?:\.\d+)*)\.?[ \t]+([A-Z][A-Z ,\-()]+)`)

// Build constructs an immutable Index from extracted page text. It is a
// pure function of its input: detection, metadata, table scanning and
// hierarchy assembly all happen here, and the returned Index is never
// mutated afterwards.
func Build(pages []PageText) *Index {
	flat := make(map[string]*Section)
	var order []string

	pageText := make(map[int]string, len(pages))
	for _, pg := range pages {
		pageText[pg.Page] = pg.Text

		for _, m := range headingRe.FindAllStringSubmatch(pg.Text, -1) {
			number := m[1]
			title := strings.TrimSpace(m[2])
			if len(title) < 3 {
				continue
			}
			sec, ok := flat[number]
			if !ok {
				sec = &Section{Title: title}
				flat[number] = sec
				order = append(order, number)
			}
			if !containsPage(sec.Pages, pg.Page) {
				sec.Pages = append(sec.Pages, pg.Page)
			}
		}
	}

	ix := &Index{
		Metadata:   extractMetadata(pages),
		Tables:     extractTables(pages),
		TotalPages: len(pages),
		PageText:   pageText,
	}
	ix.Sections, ix.Orphans = buildHierarchy(flat, order)
	ix.rebuildFlat()
	return ix
}

// buildHierarchy nests subsections under their top-level parent by the
// first dotted component. Subsections with no detected parent heading go
// into the orphan map instead of being dropped.
func buildHierarchy(flat map[string]*Section, order []string) (map[string]*Section, map[string]*Section) {
	SortSectionNumbers(order)

	sections := make(map[string]*Section)
	orphans := make(map[string]*Section)

	for _, number := range order {
		sec := flat[number]
		parts := strings.Split(number, ".")
		if len(parts) == 1 {
			if sec.Subsections == nil {
				sec.Subsections = make(map[string]*Section)
			}
			sections[number] = sec
			continue
		}
		parent, ok := sections[parts[0]]
		if !ok {
			orphans[number] = sec
			continue
		}
		parent.Subsections[number] = sec
	}
	if len(orphans) == 0 {
		orphans = nil
	}
	return sections, orphans
}

var (
	roNumberRe = regexp.MustCompile(`\bRO\d+\b`)
	versionRe  = regexp.MustCompile(`(?i)\bversion[:\s]+(\d[\w.]*)`)
	dateRe     = regexp.MustCompile(`\b\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}\b`)
)

// extractMetadata pulls best-effort document facts from the first five
// pages: compound number, document version, issue date. Missing facts
// are simply absent from the map.
func extractMetadata(pages []PageText) map[string]string {
	meta := make(map[string]string)
	for i, pg := range pages {
		if i >= 5 {
			break
		}
		if _, ok := meta["ro_number"]; !ok {
			if m := roNumberRe.FindString(pg.Text); m != "" {
				meta["ro_number"] = m
			}
		}
		if _, ok := meta["version"]; !ok {
			if m := versionRe.FindStringSubmatch(pg.Text); m != nil {
				meta["version"] = m[1]
			}
		}
		if _, ok := meta["date"]; !ok {
			if m := dateRe.FindString(pg.Text); m != "" {
				meta["date"] = m
			}
		}
	}
	return meta
}

var cellSplitRe = regexp.MustCompile(`\t|\s{2,}`)

// extractTables detects column-aligned runs of lines on each page.
// Two or more consecutive lines that split into two or more cells are
// treated as one table. This is a text-layout heuristic, not a PDF
// structure parse.
func extractTables(pages []PageText) []Table {
	var tables []Table
	for _, pg := range pages {
		tableIdx := 0
		var rows [][]string

		flush := func() {
			if len(rows) >= 2 {
				tables = append(tables, Table{Page: pg.Page, Index: tableIdx, Rows: rows})
				tableIdx++
			}
			rows = nil
		}

		for _, line := range strings.Split(pg.Text, "\n") {
			cells := splitCells(line)
			if len(cells) >= 2 {
				rows = append(rows, cells)
			} else {
				flush()
			}
		}
		flush()
	}
	return tables
}

func splitCells(line string) []string {
	var cells []string
	for _, c := range cellSplitRe.Split(strings.TrimSpace(line), -1) {
		if c = strings.TrimSpace(c); c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

func containsPage(pages []int, page int) bool {
	for _, p := range pages {
		if p == page {
			return true
		}
	}
	return false
}
