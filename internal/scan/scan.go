// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan runs the per-document pipeline over a directory of PDFs:
// extract text, evaluate the taxonomy, and collect one result per document.
// A failing document is reported and skipped; the batch continues.
package scan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/esg-scan/internal/extract"
	"github.com/pdiddy/esg-scan/pkg/types"
)

const pdfExt = ".pdf"

var (
	// ErrNoDocumentsDir is returned when the documents directory does not exist.
	ErrNoDocumentsDir = errors.New("documents directory not found")

	// ErrNoPDFs is returned when the documents directory holds no .pdf files.
	ErrNoPDFs = errors.New("no PDF files found")
)

// Evaluator produces a results tree for one document's text.
type Evaluator interface {
	Evaluate(text string) types.ResultsTree
}

// Options controls a scan run.
type Options struct {
	// DocumentsDir is the directory searched for *.pdf files (not recursive).
	DocumentsDir string

	// Workers is the number of documents processed concurrently. Values
	// below 2 process documents one at a time.
	Workers int

	// OnResult, when set, is called once per document right after it is
	// processed, with the writer that document's progress lines went to.
	// The document's results tree is dropped after the call, so the
	// results returned by Run carry only name and status.
	OnResult func(r types.DocumentResult, w io.Writer) error
}

// process scans one document and hands it to opts.OnResult.
func (o Options) process(ctx context.Context, path string, ex extract.Extractor, ev Evaluator, w io.Writer) (types.DocumentResult, error) {
	r := ScanDocument(ctx, path, ex, ev, w)
	if o.OnResult == nil {
		return r, nil
	}
	if err := o.OnResult(r, w); err != nil {
		return r, fmt.Errorf("reporting %s: %w", r.Name, err)
	}
	r.Results = nil
	return r, nil
}

// Summary holds the outcome counts of a scan run.
type Summary struct {
	Scanned int `json:"scanned" yaml:"scanned"`
	Empty   int `json:"empty" yaml:"empty"`
	Failed  int `json:"failed" yaml:"failed"`
}

// Total returns the number of documents processed.
func (s Summary) Total() int {
	return s.Scanned + s.Empty + s.Failed
}

// HasFailures reports whether any document failed extraction.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// ListPDFs returns the paths of regular files in dir whose names end in
// ".pdf", sorted by name. The suffix match is case-sensitive.
func ListPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoDocumentsDir, dir)
		}
		return nil, fmt.Errorf("reading documents directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), pdfExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// Run scans every PDF in opts.DocumentsDir. Progress lines, and whatever
// opts.OnResult writes, reach w in directory order regardless of Workers.
// The returned results are in the same order.
//
// A missing directory or a directory without PDFs is reported to w and
// returned as ErrNoDocumentsDir or ErrNoPDFs; callers treat both as a
// graceful end. Per-document failures never produce an error.
func Run(ctx context.Context, opts Options, ex extract.Extractor, ev Evaluator, w io.Writer) (Summary, []types.DocumentResult, error) {
	paths, err := ListPDFs(opts.DocumentsDir)
	if err != nil {
		if errors.Is(err, ErrNoDocumentsDir) {
			fmt.Fprintf(w, "Documents folder '%s' not found!\n", opts.DocumentsDir)
		}
		return Summary{}, nil, err
	}
	if len(paths) == 0 {
		fmt.Fprintf(w, "No PDF files found in '%s' folder!\n", opts.DocumentsDir)
		return Summary{}, nil, fmt.Errorf("%w in %s", ErrNoPDFs, opts.DocumentsDir)
	}

	fmt.Fprintf(w, "Found %d PDF file(s) to process...\n", len(paths))

	results := make([]types.DocumentResult, len(paths))
	if opts.Workers > 1 {
		err = runParallel(ctx, opts, paths, ex, ev, results, w)
	} else {
		err = runSequential(ctx, opts, paths, ex, ev, results, w)
	}

	var summary Summary
	processed := results[:0]
	for _, r := range results {
		switch r.Status {
		case types.DocumentScanned:
			summary.Scanned++
		case types.DocumentEmpty:
			summary.Empty++
		case types.DocumentFailed:
			summary.Failed++
		default:
			// Not reached before cancellation.
			continue
		}
		processed = append(processed, r)
	}

	if err != nil {
		return summary, processed, err
	}

	fmt.Fprintf(w, "\nScan summary: %d scanned, %d empty, %d failed (total: %d)\n",
		summary.Scanned, summary.Empty, summary.Failed, summary.Total())
	return summary, processed, nil
}

func runSequential(ctx context.Context, opts Options, paths []string, ex extract.Extractor, ev Evaluator, results []types.DocumentResult, w io.Writer) error {
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		r, err := opts.process(ctx, p, ex, ev, w)
		results[i] = r
		if err != nil {
			return err
		}
	}
	return nil
}

// runParallel buffers each document's output and flushes it in path
// order once every worker is done.
func runParallel(ctx context.Context, opts Options, paths []string, ex extract.Extractor, ev Evaluator, results []types.DocumentResult, w io.Writer) error {
	logs := make([]bytes.Buffer, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := opts.process(gctx, p, ex, ev, &logs[i])
			results[i] = r
			return err
		})
	}
	err := g.Wait()

	for i := range logs {
		if results[i].Status == "" {
			continue
		}
		if _, werr := w.Write(logs[i].Bytes()); werr != nil && err == nil {
			err = fmt.Errorf("writing progress: %w", werr)
		}
	}
	return err
}

// ScanDocument extracts and evaluates a single PDF. Extraction errors and
// empty text are recorded in the result rather than returned.
func ScanDocument(ctx context.Context, path string, ex extract.Extractor, ev Evaluator, w io.Writer) types.DocumentResult {
	name := filepath.Base(path)
	result := types.DocumentResult{Name: name, Path: path}

	fmt.Fprintf(w, "\nProcessing: %s\n", name)

	text, err := ex.Extract(ctx, path)
	if err != nil {
		fmt.Fprintf(w, "  Error extracting text from %s: %v\n", name, err)
		result.Status = types.DocumentFailed
		result.Error = err.Error()
		return result
	}

	if text == "" {
		fmt.Fprintf(w, "  No text extracted from %s\n", name)
		result.Status = types.DocumentEmpty
		return result
	}

	tree := ev.Evaluate(text)
	result.Status = types.DocumentScanned
	result.Results = &tree
	return result
}
