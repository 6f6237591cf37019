// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// NativeExtractor reads PDFs with the pure-Go github.com/ledongthuc/pdf
// parser. Pages are concatenated in order; pages without a content
// dictionary are skipped.
type NativeExtractor struct{}

// NewNativeExtractor creates a native extractor.
func NewNativeExtractor() *NativeExtractor {
	return &NativeExtractor{}
}

// Extract returns the lowercased text of every page of the PDF at path.
// The parser panics on some malformed files; those panics are returned as
// errors so one bad document does not stop a batch.
func (n *NativeExtractor) Extract(ctx context.Context, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("parsing PDF %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		s, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extracting page %d of %s: %w", i, path, err)
		}
		b.WriteString(s)
	}

	return strings.ToLower(b.String()), nil
}
