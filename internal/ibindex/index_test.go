package ibindex

import (
	"reflect"
	"testing"
)

func TestSortSectionNumbers_NumericOrder(t *testing.T) {
	nums := []string{"2", "1.10", "1.9", "1", "1.2.3", "10"}
	SortSectionNumbers(nums)
	want := []string{"1", "1.2.3", "1.9", "1.10", "2", "10"}
	if !reflect.DeepEqual(nums, want) {
		t.Errorf("sorted = %v, want %v", nums, want)
	}
}

func TestLookup_TopLevelNestedAndOrphan(t *testing.T) {
	ix := &Index{
		Sections: map[string]*Section{
			"1": {
				Title: "SUMMARY",
				Pages: []int{1},
				Subsections: map[string]*Section{
					"1.2": {Title: "INDICATION", Pages: []int{12, 13}},
				},
			},
		},
		Orphans: map[string]*Section{
			"7.1": {Title: "ORPHANED DETAIL", Pages: []int{70}},
		},
	}

	if sec := ix.Lookup("1"); sec == nil || sec.Title != "SUMMARY" {
		t.Errorf("top-level lookup failed: %+v", sec)
	}
	if sec := ix.Lookup("1.2"); sec == nil || sec.Title != "INDICATION" {
		t.Errorf("nested lookup failed: %+v", sec)
	}
	if sec := ix.Lookup("7.1"); sec == nil || sec.Title != "ORPHANED DETAIL" {
		t.Errorf("orphan lookup failed: %+v", sec)
	}
	if sec := ix.Lookup("9.9"); sec != nil {
		t.Errorf("expected nil for unknown section, got %+v", sec)
	}
}

func TestPageContent_SkipsMissingAndBlankPages(t *testing.T) {
	ix := &Index{
		PageText: map[int]string{
			1: "page one",
			2: "   ",
			3: "page three",
		},
	}
	got := ix.PageContent([]int{1, 2, 3, 4})
	want := []string{"page one", "page three"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PageContent = %v, want %v", got, want)
	}
}

func TestSectionNumbers_Sorted(t *testing.T) {
	ix := &Index{
		Sections: map[string]*Section{
			"2": {Title: "B", Subsections: map[string]*Section{"2.10": {}, "2.9": {}}},
			"1": {Title: "A", Subsections: map[string]*Section{}},
		},
	}
	got := ix.SectionNumbers()
	want := []string{"1", "2", "2.9", "2.10"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SectionNumbers = %v, want %v", got, want)
	}
}
