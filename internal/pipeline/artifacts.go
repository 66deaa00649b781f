package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"dsrdraft/internal/matcher"
	"dsrdraft/internal/report"
)

// matchedContentPath is where stage 2 persists its result, so stage 3
// can be re-run without repeating extraction or synthesis.
func (p *Pipeline) matchedContentPath() string {
	return filepath.Join(p.cfg.IntermediateDir, "matched_content.json")
}

// SaveResults writes the matched-content artifact: a JSON object
// mapping placeholder to content.
func SaveResults(path string, results []matcher.Result) error {
	content := make(map[string]string, len(results))
	for _, r := range results {
		content[r.Placeholder] = r.Content
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create intermediate dir: %w", err)
	}
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal matched content: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write matched content: %w", err)
	}
	return nil
}

// LoadResults reads a matched-content artifact back. Ordering follows
// placeholder name; strategies are not part of the persisted contract.
func LoadResults(path string) ([]matcher.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read matched content: %w", err)
	}
	var content map[string]string
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("parse matched content: %w", err)
	}

	names := make([]string, 0, len(content))
	for name := range content {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]matcher.Result, 0, len(names))
	for _, name := range names {
		results = append(results, matcher.Result{Placeholder: name, Content: content[name]})
	}
	return results, nil
}

// SaveReport writes the population report next to the output document,
// as JSON and as markdown.
func SaveReport(outputPath string, rep report.Report) error {
	dir := filepath.Dir(outputPath)
	stamp := time.Now().Format("20060102_150405")

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	jsonPath := filepath.Join(dir, fmt.Sprintf("population_report_%s.json", stamp))
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	mdPath := filepath.Join(dir, fmt.Sprintf("population_report_%s.md", stamp))
	if err := os.WriteFile(mdPath, []byte(rep.Markdown()), 0o644); err != nil {
		return fmt.Errorf("write report markdown: %w", err)
	}
	return nil
}
