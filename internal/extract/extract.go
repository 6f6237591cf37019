// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns PDF files into lowercased plain text for term
// matching. Backends (a pure-Go parser and poppler's pdftotext) implement
// the Extractor interface.
package extract

import (
	"context"
	"fmt"

	"github.com/pdiddy/esg-scan/pkg/types"
)

// Extractor reads the PDF at path and returns its full text, lowercased.
// Extract returns an error when the file cannot be opened or parsed; an
// empty string means the document has no extractable text.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// New returns the Extractor for backend. An empty backend selects the
// native parser.
func New(backend types.ExtractionBackend) (Extractor, error) {
	switch backend {
	case types.BackendNative, "":
		return NewNativeExtractor(), nil
	case types.BackendPdftotext:
		return NewPdftotextExtractor()
	default:
		return nil, fmt.Errorf("unsupported extraction backend %q: use %s or %s",
			backend, types.BackendNative, types.BackendPdftotext)
	}
}
