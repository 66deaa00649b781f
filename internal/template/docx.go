package template

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fumiama/go-docx"

	"dsrdraft/internal/mapping"
)

// DocxBinder implements Binder over a .docx template using go-docx.
// It covers body paragraphs and table cells; go-docx does not parse
// header and footer parts, so placeholders there are left untouched.
type DocxBinder struct {
	doc *docx.Docx
}

// OpenDocx parses the template file into a binder.
func OpenDocx(path string) (*DocxBinder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat template: %w", err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &DocxBinder{doc: doc}, nil
}

// Placeholders scans every paragraph in the body and in table cells for
// [INSERT_*] tokens.
func (b *DocxBinder) Placeholders() []string {
	seen := make(map[string]bool)
	b.walkParagraphs(func(p *docx.Paragraph) {
		for _, m := range mapping.PlaceholderRe.FindAllString(paragraphText(p), -1) {
			seen[m] = true
		}
	})
	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Replace substitutes the placeholder in every paragraph that contains
// it. Empty content is replaced with a visible marker so the
// placeholder never survives silently blank.
func (b *DocxBinder) Replace(placeholder, content string) int {
	if content == "" {
		content = "[NO CONTENT]"
	}
	count := 0
	b.walkParagraphs(func(p *docx.Paragraph) {
		count += replaceInParagraph(p, placeholder, content)
	})
	return count
}

// Save writes the populated document, creating parent directories.
func (b *DocxBinder) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	if _, err := b.doc.WriteTo(f); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// walkParagraphs visits every paragraph in the document body, including
// those nested in table cells.
func (b *DocxBinder) walkParagraphs(fn func(*docx.Paragraph)) {
	for _, item := range b.doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			fn(it)
		case *docx.Table:
			for _, row := range it.TableRows {
				for _, cell := range row.TableCells {
					for _, p := range cell.Paragraphs {
						fn(p)
					}
				}
			}
		}
	}
}

// replaceInParagraph rewrites a paragraph's text with the placeholder
// substituted. Run-level formatting within the paragraph collapses onto
// the first run; paragraph-level formatting is preserved.
func replaceInParagraph(p *docx.Paragraph, old, new string) int {
	full := paragraphText(p)
	if !strings.Contains(full, old) {
		return 0
	}
	replaced := strings.ReplaceAll(full, old, new)

	first := true
	for _, child := range p.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			t, ok := rc.(*docx.Text)
			if !ok {
				continue
			}
			if first {
				t.Text = replaced
				first = false
			} else {
				t.Text = ""
			}
		}
	}
	if first {
		p.AddText(replaced)
	}
	return 1
}

func paragraphText(p *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range p.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return buf.String()
}

// ReadDocx is a convenience for loading a binder from a reader when the
// template does not live on disk (HTTP uploads).
func ReadDocx(r io.Reader) (*DocxBinder, error) {
	tmp, err := os.CreateTemp("", "dsrdraft-template-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	return OpenDocx(tmpPath)
}
