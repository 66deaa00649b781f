// Package pipeline sequences the three stages: index the source PDF,
// match mapped fields to content, populate the Word template.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"dsrdraft/internal/config"
	"dsrdraft/internal/ibindex"
	"dsrdraft/internal/mapping"
	"dsrdraft/internal/matcher"
	"dsrdraft/internal/report"
	"dsrdraft/internal/synth"
	"dsrdraft/internal/template"
)

// Pipeline runs the full source-to-populated-document flow.
type Pipeline struct {
	cfg     config.Config
	log     *slog.Logger
	gateway matcher.Gateway
}

// New builds a pipeline. Without an API key the synthesis gateway is
// left unset and synthesis fields resolve to a skip sentinel.
func New(cfg config.Config, log *slog.Logger) *Pipeline {
	p := &Pipeline{cfg: cfg, log: log}
	if cfg.APIKey != "" {
		p.gateway = synth.NewClient(cfg.APIKey, cfg.Model)
	} else {
		log.Warn("no synthesis API key provided, AI extraction will be skipped")
	}
	return p
}

// Run executes all three stages. Structural failures (missing inputs,
// unparseable mapping) abort; per-field failures only show up in the
// summary counts.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.cfg.ValidatePipeline(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	p.log.Info("stage 1: indexing source document", "source", p.cfg.SourcePDF)
	idx, err := p.Index(ctx)
	if err != nil {
		return fmt.Errorf("stage 1 (index): %w", err)
	}

	var results []matcher.Result
	if p.cfg.Resume {
		p.log.Info("stage 2: resuming from persisted matched content")
		results, err = LoadResults(p.matchedContentPath())
		if err != nil {
			return fmt.Errorf("stage 2 (resume): %w", err)
		}
	} else {
		p.log.Info("stage 2: matching fields to source content", "mapping", p.cfg.MappingPath)
		outcome, err := p.Match(ctx, idx)
		if err != nil {
			return fmt.Errorf("stage 2 (match): %w", err)
		}
		results = outcome.Results
	}

	p.log.Info("stage 3: populating template", "template", p.cfg.TemplatePath)
	if err := p.Populate(results); err != nil {
		return fmt.Errorf("stage 3 (populate): %w", err)
	}

	p.log.Info("pipeline complete", "output", p.cfg.OutputPath)
	return nil
}

// Index builds or reloads the source document index. A cached artifact
// is reused unless force-reindex is set.
func (p *Pipeline) Index(ctx context.Context) (*ibindex.Index, error) {
	if !p.cfg.ForceReindex {
		if _, err := os.Stat(p.cfg.IndexPath); err == nil {
			p.log.Info("loading cached index", "path", p.cfg.IndexPath)
			return ibindex.Load(p.cfg.IndexPath)
		}
	}

	pages, err := ibindex.ExtractPages(p.cfg.SourcePDF)
	if err != nil {
		return nil, err
	}
	idx := ibindex.Build(pages)
	p.log.Info("source indexed",
		"pages", idx.TotalPages,
		"sections", len(idx.SectionNumbers()),
		"tables", len(idx.Tables),
	)

	if err := idx.Save(p.cfg.IndexPath); err != nil {
		return nil, err
	}
	return idx, nil
}

// Match parses the mapping table, resolves every field, runs the
// advisory validation, and persists the matched-content artifact.
func (p *Pipeline) Match(ctx context.Context, idx *ibindex.Index) (*matcher.Outcome, error) {
	f, err := os.Open(p.cfg.MappingPath)
	if err != nil {
		return nil, fmt.Errorf("open mapping: %w", err)
	}
	table, err := mapping.Parse(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("parse mapping: %w", err)
	}

	byStrategy := table.ByStrategy()
	p.log.Info("mapping parsed",
		"fields", table.Len(),
		"direct", len(byStrategy[mapping.DirectExtract]),
		"synthesis", len(byStrategy[mapping.SynthesisRequired]),
		"unavailable", len(byStrategy[mapping.Unavailable]),
	)

	m := matcher.New(idx, p.gateway, p.log)
	m.RateDelay = p.cfg.RateDelay
	m.SourceLimit = p.cfg.SourceLimit

	outcome := m.MatchAll(ctx, table)

	for _, r := range outcome.Results {
		if v := matcher.Validate(r.Placeholder, r.Content); len(v.Warnings) > 0 {
			p.log.Warn("content validation", "placeholder", r.Placeholder, "warnings", v.Warnings)
		}
	}

	if err := SaveResults(p.matchedContentPath(), outcome.Results); err != nil {
		return nil, err
	}
	p.log.Info("matched content saved", "path", p.matchedContentPath())
	return outcome, nil
}

// Populate substitutes matched content into the template and writes the
// output document plus the population report.
func (p *Pipeline) Populate(results []matcher.Result) error {
	binder, err := template.OpenDocx(p.cfg.TemplatePath)
	if err != nil {
		return err
	}

	inTemplate := make(map[string]bool)
	for _, ph := range binder.Placeholders() {
		inTemplate[ph] = true
	}
	p.log.Info("template scanned", "placeholders", len(inTemplate))

	populated, skipped := 0, 0
	for _, r := range results {
		if r.Content == "" || r.Content == "N/A" {
			p.log.Warn("skipping field with no content", "placeholder", r.Placeholder)
			skipped++
			continue
		}
		if !inTemplate[r.Placeholder] {
			p.log.Warn("placeholder not found in template", "placeholder", r.Placeholder)
			skipped++
			continue
		}
		if n := binder.Replace(r.Placeholder, r.Content); n > 0 {
			populated++
		} else {
			skipped++
		}
	}
	p.log.Info("population summary", "populated", populated, "skipped", skipped)

	if err := binder.Save(p.cfg.OutputPath); err != nil {
		return err
	}

	rep := report.Build(results)
	if err := SaveReport(p.cfg.OutputPath, rep); err != nil {
		return err
	}
	p.log.Info("population report",
		"populated", len(rep.Populated),
		"empty", len(rep.Empty),
		"not_in_ib", len(rep.NotInIB),
		"errors", len(rep.Errors),
	)
	return nil
}
