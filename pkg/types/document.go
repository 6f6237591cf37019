// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DocumentStatus indicates the outcome of scanning one document.
type DocumentStatus string

const (
	DocumentScanned DocumentStatus = "scanned"
	DocumentEmpty   DocumentStatus = "empty"
	DocumentFailed  DocumentStatus = "failed"
)

// DocumentResult holds the outcome of scanning a single PDF.
type DocumentResult struct {
	// Name is the file name within the documents directory (e.g. "report-2024.pdf").
	Name string `json:"name" yaml:"name"`

	// Path is the filesystem path that was passed to the extractor.
	Path string `json:"path" yaml:"path"`

	// Status records whether the document was scanned, had no text, or failed.
	Status DocumentStatus `json:"status" yaml:"status"`

	// Error is the extraction failure message when Status is DocumentFailed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Results is set only when Status is DocumentScanned.
	Results *ResultsTree `json:"results,omitempty" yaml:"results,omitempty"`
}
