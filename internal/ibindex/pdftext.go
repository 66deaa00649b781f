package ibindex

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ExtractPages validates the source PDF and extracts per-page plain
// text, 1-indexed. The Go library is tried first; if it fails and
// pdftotext is installed, that is used as a fallback.
func ExtractPages(path string) ([]PageText, error) {
	pageCount, err := validatePDF(path)
	if err != nil {
		return nil, fmt.Errorf("validate pdf: %w", err)
	}

	pages, err := extractNative(path)
	if err != nil {
		pages, err = extractPdftotext(path)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	// Pad to the authoritative page count so page numbers stay aligned
	// even when trailing pages yield no text.
	for len(pages) < pageCount {
		pages = append(pages, PageText{Page: len(pages) + 1})
	}
	return pages, nil
}

// validatePDF runs a relaxed structural validation and returns the
// authoritative page count.
func validatePDF(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return 0, fmt.Errorf("read pdf context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	return ctx.PageCount, nil
}

func extractNative(path string) ([]PageText, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pages []PageText
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		text := ""
		if !page.V.IsNull() {
			if t, err := page.GetPlainText(nil); err == nil {
				text = t
			}
		}
		pages = append(pages, PageText{Page: i, Text: text})
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages extracted")
	}
	return pages, nil
}

func extractPdftotext(path string) ([]PageText, error) {
	out, err := exec.Command("pdftotext", "-layout", path, "-").Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	var pages []PageText
	for i, text := range strings.Split(string(out), "\f") {
		pages = append(pages, PageText{Page: i + 1, Text: text})
	}
	return pages, nil
}
