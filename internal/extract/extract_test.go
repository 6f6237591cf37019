// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/esg-scan/pkg/types"
)

// writeTestPDF writes a single-page PDF that shows text in Helvetica.
// Object offsets in the xref table are computed from the generated bytes.
func writeTestPDF(t *testing.T, path, text string) {
	t.Helper()

	content := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestNativeExtractor(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "report.pdf")
	writeTestPDF(t, pdfPath, "Scope 1 CO2 Emissions")

	text, err := NewNativeExtractor().Extract(context.Background(), pdfPath)
	require.NoError(t, err)
	assert.Contains(t, text, "co2")
	assert.Equal(t, strings.ToLower(text), text, "text should be lowercased")
}

func TestNativeExtractor_Errors(t *testing.T) {
	dir := t.TempDir()
	notPDF := filepath.Join(dir, "notes.pdf")
	require.NoError(t, os.WriteFile(notPDF, []byte("plain text, not a pdf"), 0o644))

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.pdf")},
		{name: "not a pdf", path: notPDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := NewNativeExtractor().Extract(context.Background(), tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.path)
			assert.Empty(t, text)
		})
	}
}

// fakeExecutor records calls and returns canned output.
type fakeExecutor struct {
	available bool
	output    []byte
	err       error
	gotName   string
	gotArgs   []string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.available {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (f *fakeExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.gotName = name
	f.gotArgs = args
	return f.output, f.err
}

func TestPdftotextExtractor(t *testing.T) {
	exec := &fakeExecutor{available: true, output: []byte("Board Diversity\fR&D\n")}
	p, err := newPdftotextExtractor(exec)
	require.NoError(t, err)

	text, err := p.Extract(context.Background(), "documents/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "board diversity\fr&d\n", text)
	assert.Equal(t, "pdftotext", exec.gotName)
	assert.Equal(t, []string{"-enc", "UTF-8", "documents/a.pdf", "-"}, exec.gotArgs)
}

func TestPdftotextExtractor_Errors(t *testing.T) {
	_, err := newPdftotextExtractor(&fakeExecutor{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftotext backend unavailable")

	p, err := newPdftotextExtractor(&fakeExecutor{available: true, err: errors.New("exit status 1")})
	require.NoError(t, err)
	_, err = p.Extract(context.Background(), "documents/broken.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "documents/broken.pdf")
}

func TestNew(t *testing.T) {
	ex, err := New(types.BackendNative)
	require.NoError(t, err)
	assert.IsType(t, &NativeExtractor{}, ex)

	ex, err = New("")
	require.NoError(t, err)
	assert.IsType(t, &NativeExtractor{}, ex)

	_, err = New("ocr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported extraction backend "ocr"`)
}
