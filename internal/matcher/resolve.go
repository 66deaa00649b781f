package matcher

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"dsrdraft/internal/mapping"
	"dsrdraft/internal/synth"
)

// sectionTokenRe extracts dotted section numbers from a free-text
// reference like "Section 1.2" or "5.5.1 Clinical Safety".
var sectionTokenRe = regexp.MustCompile(`\b\d+(?:\.\d+)*\b`)

// SectionTokens returns every dotted section number mentioned in a
// free-text section reference, in order of appearance.
func SectionTokens(sectionRef string) []string {
	return sectionTokenRe.FindAllString(sectionRef, -1)
}

// directExtract resolves a field by section lookup, falling back to the
// mapping's explicit page list. Page text is whitespace-normalized; the
// section title stays as a heading above its content.
func (m *Matcher) directExtract(fm *mapping.FieldMapping) string {
	var parts []string
	for _, token := range SectionTokens(fm.SectionRef) {
		if title, text, ok := m.sectionContent(token); ok {
			parts = append(parts, title+"\n\n"+CleanText(text))
		}
	}

	if len(parts) == 0 && len(fm.Pages) > 0 {
		if pageParts := m.Index.PageContent(fm.Pages); len(pageParts) > 0 {
			parts = append(parts, CleanText(strings.Join(pageParts, "\n\n")))
		}
	}

	if len(parts) == 0 {
		return SentinelNotFound
	}
	return strings.Join(parts, "\n\n")
}

// synthesize resolves a field through the gateway. Source content keeps
// its per-section headings and raw whitespace so the model sees the
// document structure.
func (m *Matcher) synthesize(ctx context.Context, fm *mapping.FieldMapping) string {
	if m.Gateway == nil {
		return SentinelSkipped
	}

	var parts []string
	for _, token := range SectionTokens(fm.SectionRef) {
		if title, text, ok := m.sectionContent(token); ok {
			parts = append(parts, fmt.Sprintf("### Section %s\n%s\n\n%s", token, title, text))
		}
	}
	if len(parts) == 0 && len(fm.Pages) > 0 {
		parts = m.Index.PageContent(fm.Pages)
	}
	if len(parts) == 0 {
		return SentinelNoSource
	}

	source := strings.Join(parts, "\n\n")
	limit := m.SourceLimit
	if limit <= 0 {
		limit = DefaultSourceLimit
	}
	if len(source) > limit {
		source = clip(source, limit) + TruncationMarker
	}

	text, err := m.Gateway.Synthesize(ctx, synth.Request{
		Placeholder: fm.Placeholder,
		Description: fm.Description,
		Source:      source,
		Notes:       fm.Notes,
	})
	if err != nil {
		m.Log.Warn("synthesis failed", "placeholder", fm.Placeholder, "error", err)
		return fmt.Sprintf("[AI extraction failed: %s]\n\nRaw content:\n%s", err, excerpt(source, failureExcerptLen))
	}

	if m.RateDelay > 0 {
		m.sleep(m.RateDelay)
	}
	return strings.TrimSpace(text)
}

// unavailable reports what external source the field needs. No index
// lookup is attempted.
func (m *Matcher) unavailable(fm *mapping.FieldMapping) string {
	notes := fm.Notes
	if notes == "" {
		notes = DefaultRequires
	}
	return fmt.Sprintf("[DATA NOT AVAILABLE IN IB - REQUIRES: %s]", notes)
}

// sectionContent fetches the title and the joined text of every page a
// section appears on. ok is false if the section is unknown or its
// pages carry no text.
func (m *Matcher) sectionContent(number string) (title, text string, ok bool) {
	sec := m.Index.Lookup(number)
	if sec == nil {
		return "", "", false
	}
	parts := m.Index.PageContent(sec.Pages)
	if len(parts) == 0 {
		return "", "", false
	}
	return sec.Title, strings.Join(parts, "\n\n"), true
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	pageFooterRe = regexp.MustCompile(`Page \d+ of \d+`)
)

// CleanText collapses whitespace runs, strips residual "Page N of M"
// footer artifacts, and trims.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = pageFooterRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return clip(s, n) + "..."
}

// clip cuts s to at most n bytes without splitting a multi-byte rune.
func clip(s string, n int) string {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
