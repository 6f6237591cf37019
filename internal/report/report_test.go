// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/esg-scan/internal/match"
	"github.com/pdiddy/esg-scan/pkg/types"
)

func sampleTaxonomy() *types.Taxonomy {
	return &types.Taxonomy{Pillars: []types.Pillar{
		{
			Name: types.PillarEnvironmental,
			Categories: []types.Category{
				{
					Name: "Climate",
					Subcategories: []types.Subcategory{
						{Name: "Emissions", Node: types.TermList{"CO2", "greenhouse gas", "methane"}},
						{Name: "Biodiversity", Node: types.TermList{"habitat"}},
						{Name: "Targets", Node: types.NestedGroup{
							{Name: "Net Zero", Terms: types.TermList{"net zero"}},
							{Name: "Offsets", Terms: types.TermList{"offset credits"}},
						}},
					},
				},
			},
		},
		{Name: types.PillarSocial},
		{Name: types.PillarGovernance},
	}}
}

func scanned(name, text string) types.DocumentResult {
	tree := match.Evaluate(sampleTaxonomy(), text)
	return types.DocumentResult{
		Name:    name,
		Path:    "documents/" + name,
		Status:  types.DocumentScanned,
		Results: &tree,
	}
}

const scenarioText = "our CO2 footprint and greenhouse gas emissions are tracked; CO2 CO2. net zero by 2040."

func TestWriteText(t *testing.T) {
	docs := []types.DocumentResult{
		scanned("report-2024.pdf", scenarioText),
		{Name: "broken.pdf", Status: types.DocumentFailed, Error: "bad xref"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, docs, 1))
	out := buf.String()
	lines := strings.Split(out, "\n")

	assert.Contains(t, lines, "Results for: report-2024.pdf")
	assert.Contains(t, lines, strings.Repeat("=", 60))
	assert.Contains(t, lines, "ENVIRONMENTAL:")
	assert.Contains(t, lines, "SOCIAL:")
	assert.Contains(t, lines, "GOVERNANCE:")
	assert.Contains(t, lines, "  Climate:")
	assert.Contains(t, lines, "    Emissions: 4 matches (4 exact, 4 partial)")
	assert.Contains(t, lines, "      CO2: 3 matches (3 exact, 3 partial)")
	assert.Contains(t, lines, "      greenhouse gas: 1 matches (1 exact, 1 partial)")
	assert.Contains(t, lines, "    Targets: 1 matches (1 exact, 1 partial)")
	assert.Contains(t, lines, "      Net Zero: 1 matches (1 exact, 1 partial)")
	assert.Contains(t, lines, "        net zero: 1 matches (1 exact, 1 partial)")

	assert.NotContains(t, out, "methane", "zero-count terms are omitted")
	assert.NotContains(t, out, "Biodiversity", "zero-total subcategories are omitted")
	assert.NotContains(t, out, "Offsets", "zero-total nested subcategories are omitted")
	assert.NotContains(t, out, "broken.pdf", "failed documents are not rendered")
}

func TestWriteText_MinMatches(t *testing.T) {
	docs := []types.DocumentResult{scanned("a.pdf", scenarioText)}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, docs, 2))
	out := buf.String()

	assert.Contains(t, out, "Emissions: 4 matches")
	assert.NotContains(t, out, "Targets:")
}

func TestWriteDocument(t *testing.T) {
	doc := scanned("a.pdf", scenarioText)

	var single, batch bytes.Buffer
	require.NoError(t, WriteDocument(&single, doc, 1))
	require.NoError(t, WriteText(&batch, []types.DocumentResult{doc}, 1))
	assert.Equal(t, batch.String(), single.String())

	var none bytes.Buffer
	require.NoError(t, WriteDocument(&none, types.DocumentResult{Name: "empty.pdf", Status: types.DocumentEmpty}, 1))
	assert.Empty(t, none.String())
}

func TestWriteJSON(t *testing.T) {
	docs := []types.DocumentResult{
		scanned("a.pdf", scenarioText),
		{Name: "empty.pdf", Status: types.DocumentEmpty},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, docs))

	var out Output
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Documents, 2)

	a := out.Documents[0]
	assert.Equal(t, "scanned", a.Status)
	require.NotNil(t, a.Totals)
	assert.Equal(t, 5, a.Totals.Total)
	require.NotNil(t, a.Results)

	emissions := a.Results.Pillars[0].Categories[0].Subcategories[0]
	methane, ok := emissions.Counts.Lookup("methane")
	require.True(t, ok, "zero counts are kept in structured output")
	assert.Equal(t, types.MatchResult{}, methane)

	assert.Contains(t, buf.String(), `"exact_matches": 3`)
	assert.Equal(t, "empty", out.Documents[1].Status)
	assert.Nil(t, out.Documents[1].Results)
}

func TestWriteYAML(t *testing.T) {
	docs := []types.DocumentResult{scanned("a.pdf", scenarioText)}

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, docs))
	assert.Contains(t, buf.String(), "term: CO2")
	assert.Contains(t, buf.String(), "total_matches: 3")

	var out Output
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Documents, 1)
	assert.Equal(t, docs[0].Results.Sum(), *out.Documents[0].Totals)
}

func TestWrite_Format(t *testing.T) {
	docs := []types.DocumentResult{scanned("a.pdf", scenarioText)}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, docs, Options{}))
	assert.Contains(t, buf.String(), "Results for: a.pdf")

	err := Write(&buf, docs, Options{Format: "csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported report format "csv"`)
}
