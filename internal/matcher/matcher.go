// Package matcher resolves mapping-table fields against an indexed
// source document: direct lookup, gateway synthesis, or a declared
// unavailability report. One bad field never aborts the batch.
package matcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dsrdraft/internal/ibindex"
	"dsrdraft/internal/mapping"
	"dsrdraft/internal/synth"
)

// Sentinel content strings used in place of real content to signal a
// specific unresolved state. They flow through to the populated
// document so a reviewer sees exactly what is missing and why.
const (
	SentinelNotFound  = "[Content not found in IB]"
	SentinelSkipped   = "[AI extraction skipped - no API key provided]"
	SentinelNoSource  = "[No source content found in IB for AI extraction]"
	TruncationMarker  = "\n\n[Content truncated...]"
	DefaultRequires   = "External data source required"
	failureExcerptLen = 500
)

// DefaultSourceLimit caps the source excerpt handed to the gateway.
// A token-budget guard, not a quality judgment.
const DefaultSourceLimit = 10000

// Gateway is the synthesis collaborator. A nil gateway skips synthesis
// fields with a sentinel instead of failing them.
type Gateway interface {
	Synthesize(ctx context.Context, req synth.Request) (string, error)
}

// Result is the resolution outcome for one field. Content is never
// empty; unresolved states carry a sentinel string.
type Result struct {
	Placeholder string           `json:"placeholder"`
	Content     string           `json:"content"`
	Strategy    mapping.Strategy `json:"strategy"`
}

// Counts tallies results per strategy for the summary report.
type Counts struct {
	Direct      int `json:"direct"`
	Synthesis   int `json:"synthesis"`
	Unavailable int `json:"unavailable"`
	Errors      int `json:"errors"`
}

// Outcome is the full batch result in mapping order.
type Outcome struct {
	Results []Result `json:"results"`
	Counts  Counts   `json:"counts"`
}

// ContentMap flattens the outcome into placeholder→content, the shape
// the template binder and the persisted artifact use.
func (o *Outcome) ContentMap() map[string]string {
	m := make(map[string]string, len(o.Results))
	for _, r := range o.Results {
		m[r.Placeholder] = r.Content
	}
	return m
}

// Matcher resolves fields one at a time, in mapping order. Matching is
// strictly sequential: the rate delay after each synthesis call assumes
// no overlapping in-flight requests.
type Matcher struct {
	Index       *ibindex.Index
	Gateway     Gateway
	Log         *slog.Logger
	RateDelay   time.Duration // pause after each successful gateway call
	SourceLimit int           // max chars of source handed to the gateway

	sleep func(time.Duration) // injectable for tests
}

// New creates a Matcher with default rate limiting. gw may be nil.
func New(ix *ibindex.Index, gw Gateway, log *slog.Logger) *Matcher {
	if log == nil {
		log = slog.Default()
	}
	return &Matcher{
		Index:       ix,
		Gateway:     gw,
		Log:         log,
		RateDelay:   500 * time.Millisecond,
		SourceLimit: DefaultSourceLimit,
		sleep:       time.Sleep,
	}
}

// MatchAll resolves every field in the table. Per-field failures are
// converted to sentinel content and tallied; the batch always runs to
// completion.
func (m *Matcher) MatchAll(ctx context.Context, table *mapping.Table) *Outcome {
	out := &Outcome{}
	fields := table.Fields()
	for i, fm := range fields {
		m.Log.Info("matching field",
			"placeholder", fm.Placeholder,
			"strategy", fm.Strategy.String(),
			"progress", fmt.Sprintf("%d/%d", i+1, len(fields)),
		)

		content, err := m.resolveField(ctx, fm)
		if err != nil {
			m.Log.Warn("field resolution failed", "placeholder", fm.Placeholder, "error", err)
			content = fmt.Sprintf("[ERROR EXTRACTING CONTENT: %s]", err)
			out.Counts.Errors++
		} else {
			switch fm.Strategy {
			case mapping.DirectExtract:
				out.Counts.Direct++
			case mapping.SynthesisRequired:
				out.Counts.Synthesis++
			case mapping.Unavailable:
				out.Counts.Unavailable++
			}
		}

		out.Results = append(out.Results, Result{
			Placeholder: fm.Placeholder,
			Content:     content,
			Strategy:    fm.Strategy,
		})
	}

	m.Log.Info("matching complete",
		"direct", out.Counts.Direct,
		"synthesis", out.Counts.Synthesis,
		"unavailable", out.Counts.Unavailable,
		"errors", out.Counts.Errors,
	)
	return out
}

// resolveField dispatches on strategy. Panics inside a single field's
// resolution are recovered here so they stay within the per-field
// boundary.
func (m *Matcher) resolveField(ctx context.Context, fm *mapping.FieldMapping) (content string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	switch fm.Strategy {
	case mapping.SynthesisRequired:
		return m.synthesize(ctx, fm), nil
	case mapping.Unavailable:
		return m.unavailable(fm), nil
	default:
		return m.directExtract(fm), nil
	}
}
