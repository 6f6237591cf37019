// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/esg-scan/pkg/types"
)

const (
	bannerWidth = 60
	ruleWidth   = 40
)

// styles are built per writer so color is only emitted for terminals.
type styles struct {
	banner   lipgloss.Style
	pillar   lipgloss.Style
	category lipgloss.Style
	subcat   lipgloss.Style
	term     lipgloss.Style
	dim      lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		banner:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		pillar:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		category: r.NewStyle().Bold(true),
		subcat:   r.NewStyle().Foreground(lipgloss.Color("220")),
		term:     r.NewStyle(),
		dim:      r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// WriteText renders the console report for every scanned document. Empty
// and failed documents were already reported during the scan and are not
// repeated. Subcategories whose total is below minMatches are left out,
// as are terms without matches; pillar and category headers are always
// printed.
func WriteText(w io.Writer, docs []types.DocumentResult, minMatches int) error {
	tw := newTextWriter(w, minMatches)
	for _, d := range docs {
		tw.result(d)
	}
	return tw.err
}

// WriteDocument renders the console report for a single document, so a
// scan can print each document's results as soon as it is processed.
// Documents that were not scanned produce no output.
func WriteDocument(w io.Writer, d types.DocumentResult, minMatches int) error {
	tw := newTextWriter(w, minMatches)
	tw.result(d)
	return tw.err
}

// textWriter keeps the first write error so rendering code stays linear.
type textWriter struct {
	w   io.Writer
	st  styles
	min int
	err error
}

func newTextWriter(w io.Writer, minMatches int) *textWriter {
	if minMatches < 1 {
		minMatches = 1
	}
	return &textWriter{w: w, st: newStyles(w), min: minMatches}
}

func (t *textWriter) result(d types.DocumentResult) {
	if d.Status != types.DocumentScanned || d.Results == nil {
		return
	}
	t.document(d.Name, d.Results)
}

func (t *textWriter) line(style lipgloss.Style, indent int, format string, args ...any) {
	if t.err != nil {
		return
	}
	text := fmt.Sprintf(format, args...)
	if text != "" {
		text = style.Render(text)
	}
	_, t.err = fmt.Fprintf(t.w, "%s%s\n", strings.Repeat("  ", indent), text)
}

func (t *textWriter) document(name string, tree *types.ResultsTree) {
	banner := strings.Repeat("=", bannerWidth)
	t.line(t.st.term, 0, "")
	t.line(t.st.dim, 0, "%s", banner)
	t.line(t.st.banner, 0, "Results for: %s", name)
	t.line(t.st.dim, 0, "%s", banner)

	for _, p := range tree.Pillars {
		t.line(t.st.term, 0, "")
		t.line(t.st.pillar, 0, "%s:", strings.ToUpper(p.Name))
		t.line(t.st.dim, 0, "%s", strings.Repeat("-", ruleWidth))

		for _, c := range p.Categories {
			t.line(t.st.term, 0, "")
			t.line(t.st.category, 1, "%s:", c.Name)

			for _, s := range c.Subcategories {
				t.subcategory(s)
			}
		}
	}
}

func (t *textWriter) subcategory(s types.SubcategoryResult) {
	sum := s.Sum()
	if sum.Total == 0 || sum.Total < t.min {
		return
	}

	t.line(t.st.subcat, 2, "%s: %s", s.Name, formatCounts(sum))

	if s.Kind != types.KindNested {
		t.terms(s.Counts, 3)
		return
	}
	for _, g := range s.Nested {
		gsum := g.Counts.Sum()
		if gsum.Total == 0 || gsum.Total < t.min {
			continue
		}
		t.line(t.st.subcat, 3, "%s: %s", g.Name, formatCounts(gsum))
		t.terms(g.Counts, 4)
	}
}

func (t *textWriter) terms(counts types.Counts, indent int) {
	for _, tc := range counts {
		if tc.Total == 0 {
			continue
		}
		t.line(t.st.term, indent, "%s: %s", tc.Term, formatCounts(tc.MatchResult))
	}
}

func formatCounts(r types.MatchResult) string {
	return fmt.Sprintf("%d matches (%d exact, %d partial)", r.Total, r.Exact, r.Partial)
}
