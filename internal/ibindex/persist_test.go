package ibindex

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	pages := []PageText{
		{Page: 1, Text: "1. SUMMARY\nIntro text RO7499790."},
		{Page: 2, Text: "1.2 INDICATION\nIndication details."},
		{Page: 3, Text: "7.2 ORPHAN DETAIL\nOrphan text."},
	}
	ix := Build(pages)

	path := filepath.Join(t.TempDir(), "intermediate", "ib_index.json")
	if err := ix.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.TotalPages != ix.TotalPages {
		t.Errorf("total pages: %d != %d", loaded.TotalPages, ix.TotalPages)
	}
	if !reflect.DeepEqual(loaded.Metadata, ix.Metadata) {
		t.Errorf("metadata mismatch: %v != %v", loaded.Metadata, ix.Metadata)
	}
	if !reflect.DeepEqual(loaded.SectionNumbers(), ix.SectionNumbers()) {
		t.Errorf("section numbers mismatch: %v != %v", loaded.SectionNumbers(), ix.SectionNumbers())
	}
	if !reflect.DeepEqual(loaded.PageText, ix.PageText) {
		t.Error("page text mismatch after reload")
	}

	// Reloaded index answers the same queries.
	for _, num := range ix.SectionNumbers() {
		a, b := ix.Lookup(num), loaded.Lookup(num)
		if a.Title != b.Title || !reflect.DeepEqual(a.Pages, b.Pages) {
			t.Errorf("section %s differs after reload: %+v != %+v", num, a, b)
		}
	}
	if !reflect.DeepEqual(ix.PageContent([]int{1, 2, 3}), loaded.PageContent([]int{1, 2, 3})) {
		t.Error("page content differs after reload")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing index file")
	}
}
