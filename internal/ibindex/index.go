// Package ibindex builds and queries a page-level index of an
// Investigator Brochure PDF: per-page text, a hierarchy of numbered
// section headings, detected tables, and best-effort metadata.
package ibindex

import (
	"slices"
	"strconv"
	"strings"
)

// Section is one numbered heading in the source document and the pages
// it appears on.
type Section struct {
	Title       string              `json:"title"`
	Pages       []int               `json:"pages"`
	Subsections map[string]*Section `json:"subsections,omitempty"`
}

// Table is a tabular structure detected on a single page.
type Table struct {
	Page  int        `json:"page"`
	Index int        `json:"table_index"`
	Rows  [][]string `json:"content"`
}

// Index is the immutable result of indexing one source document.
// Sections holds the hierarchical view; subsections whose top-level
// parent heading was never detected are excluded from the hierarchy but
// stay reachable through Orphans and Lookup.
type Index struct {
	Metadata   map[string]string   `json:"metadata"`
	Sections   map[string]*Section `json:"sections"`
	Orphans    map[string]*Section `json:"orphans,omitempty"`
	Tables     []Table             `json:"tables"`
	TotalPages int                 `json:"total_pages"`
	PageText   map[int]string      `json:"page_text"`

	flat map[string]*Section
}

// Lookup finds a section by its exact dotted number, searching top-level
// sections, nested subsections, and orphans alike.
func (ix *Index) Lookup(number string) *Section {
	if ix.flat == nil {
		ix.rebuildFlat()
	}
	return ix.flat[number]
}

// SectionNumbers returns every indexed section number in numeric order.
func (ix *Index) SectionNumbers() []string {
	if ix.flat == nil {
		ix.rebuildFlat()
	}
	nums := make([]string, 0, len(ix.flat))
	for n := range ix.flat {
		nums = append(nums, n)
	}
	SortSectionNumbers(nums)
	return nums
}

// PageContent returns the stored text for the given pages, skipping
// pages the document does not have. This is the page-content provider
// behind all section lookups.
func (ix *Index) PageContent(pages []int) []string {
	var out []string
	for _, p := range pages {
		if text, ok := ix.PageText[p]; ok && strings.TrimSpace(text) != "" {
			out = append(out, text)
		}
	}
	return out
}

func (ix *Index) rebuildFlat() {
	ix.flat = make(map[string]*Section)
	for num, sec := range ix.Sections {
		ix.flat[num] = sec
		for sub, subSec := range sec.Subsections {
			ix.flat[sub] = subSec
		}
	}
	for num, sec := range ix.Orphans {
		ix.flat[num] = sec
	}
}

// SortKey converts a dotted section number into its numeric components,
// so "1.10" orders after "1.9" instead of between "1.1" and "1.2".
func SortKey(number string) []int {
	parts := strings.Split(number, ".")
	key := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil
		}
		key[i] = n
	}
	return key
}

// SortSectionNumbers sorts dotted section numbers in place by their
// numeric component tuples.
func SortSectionNumbers(numbers []string) {
	slices.SortFunc(numbers, func(a, b string) int {
		return slices.Compare(SortKey(a), SortKey(b))
	})
}
