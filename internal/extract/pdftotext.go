// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const binPdftotext = "pdftotext"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

var defaultExec = &osExecutor{}

// PdftotextExtractor runs poppler's pdftotext and reads the text from its
// stdout. It handles some encodings the native parser does not.
type PdftotextExtractor struct {
	exec executor
}

// NewPdftotextExtractor verifies that pdftotext is on PATH.
func NewPdftotextExtractor() (*PdftotextExtractor, error) {
	return newPdftotextExtractor(defaultExec)
}

func newPdftotextExtractor(exec executor) (*PdftotextExtractor, error) {
	if _, err := exec.LookPath(binPdftotext); err != nil {
		return nil, fmt.Errorf("%s backend unavailable: %w", binPdftotext, err)
	}
	return &PdftotextExtractor{exec: exec}, nil
}

// Extract runs `pdftotext -enc UTF-8 <path> -` and returns the lowercased output.
func (p *PdftotextExtractor) Extract(ctx context.Context, path string) (string, error) {
	out, err := p.exec.Output(ctx, binPdftotext, "-enc", "UTF-8", path, "-")
	if err != nil {
		return "", fmt.Errorf("running %s on %s: %w", binPdftotext, path, err)
	}
	return strings.ToLower(string(out)), nil
}
