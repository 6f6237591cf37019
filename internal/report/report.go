// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders scan results as a console report or as JSON/YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/esg-scan/pkg/types"
)

// Options controls report rendering.
type Options struct {
	Format types.ReportFormat

	// MinMatches is the smallest subcategory total shown in text reports.
	// Values below 1 are treated as 1.
	MinMatches int
}

// Document is the serialized form of one scanned document.
type Document struct {
	Name    string             `json:"name" yaml:"name"`
	Status  string             `json:"status" yaml:"status"`
	Error   string             `json:"error,omitempty" yaml:"error,omitempty"`
	Totals  *types.MatchResult `json:"totals,omitempty" yaml:"totals,omitempty"`
	Results *types.ResultsTree `json:"results,omitempty" yaml:"results,omitempty"`
}

// Output is the top-level JSON/YAML document.
type Output struct {
	Documents []Document `json:"documents" yaml:"documents"`
}

// Write renders docs to w in the format selected by opts.
func Write(w io.Writer, docs []types.DocumentResult, opts Options) error {
	switch opts.Format {
	case types.FormatText, "":
		return WriteText(w, docs, opts.MinMatches)
	case types.FormatJSON:
		return WriteJSON(w, docs)
	case types.FormatYAML:
		return WriteYAML(w, docs)
	default:
		return fmt.Errorf("unsupported report format %q: use text, json, or yaml", opts.Format)
	}
}

// WriteJSON writes every document, including zero counts, as indented JSON.
func WriteJSON(w io.Writer, docs []types.DocumentResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newOutput(docs)); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	return nil
}

// WriteYAML writes every document, including zero counts, as YAML.
func WriteYAML(w io.Writer, docs []types.DocumentResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newOutput(docs)); err != nil {
		return fmt.Errorf("encoding YAML report: %w", err)
	}
	return enc.Close()
}

func newOutput(docs []types.DocumentResult) Output {
	out := Output{Documents: make([]Document, 0, len(docs))}
	for _, d := range docs {
		doc := Document{
			Name:    d.Name,
			Status:  string(d.Status),
			Error:   d.Error,
			Results: d.Results,
		}
		if d.Results != nil {
			sum := d.Results.Sum()
			doc.Totals = &sum
		}
		out.Documents = append(out.Documents, doc)
	}
	return out
}
