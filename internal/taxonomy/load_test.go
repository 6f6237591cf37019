// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/esg-scan/pkg/types"
)

const sampleJSON = `{
  "Environmental": {
    "Climate": {
      "Emissions": ["CO2", "greenhouse gas"],
      "Targets": {
        "Net Zero": ["net zero", "carbon neutral"],
        "Interim": ["2030 target"]
      }
    },
    "Water": {
      "Usage": ["water withdrawal"]
    }
  },
  "Social": {
    "Workforce": {
      "Safety": ["lost time injury", "LTIFR"]
    }
  },
  "Governance": {}
}`

const sampleYAML = `
Environmental:
  Climate:
    Emissions: [CO2, greenhouse gas]
    Targets:
      Net Zero: [net zero, carbon neutral]
      Interim: ["2030 target"]
  Water:
    Usage: [water withdrawal]
Social:
  Workforce:
    Safety: [lost time injury, LTIFR]
Governance: {}
`

func TestParse_Formats(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{name: "json", data: sampleJSON, format: FormatJSON},
		{name: "yaml", data: sampleYAML, format: FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, err := Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)
			require.Len(t, tax.Pillars, 3)

			env := tax.Pillar(types.PillarEnvironmental)
			require.NotNil(t, env)
			require.Len(t, env.Categories, 2)
			assert.Equal(t, "Climate", env.Categories[0].Name)
			assert.Equal(t, "Water", env.Categories[1].Name)

			climate := env.Categories[0]
			require.Len(t, climate.Subcategories, 2)
			assert.Equal(t, "Emissions", climate.Subcategories[0].Name)
			assert.Equal(t, types.TermList{"CO2", "greenhouse gas"}, climate.Subcategories[0].Node)

			nested, ok := climate.Subcategories[1].Node.(types.NestedGroup)
			require.True(t, ok, "Targets should resolve to a nested group")
			require.Len(t, nested, 2)
			assert.Equal(t, "Net Zero", nested[0].Name)
			assert.Equal(t, "Interim", nested[1].Name)
			assert.Equal(t, types.TermList{"2030 target"}, nested[1].Terms)

			assert.Empty(t, tax.Pillar(types.PillarGovernance).Categories)
		})
	}
}

func TestParse_PillarOrderIsFixed(t *testing.T) {
	data := `{"Governance": {}, "Social": {}, "Environmental": {}}`
	tax, err := Parse([]byte(data), FormatJSON)
	require.NoError(t, err)

	names := make([]string, len(tax.Pillars))
	for i, p := range tax.Pillars {
		names[i] = p.Name
	}
	assert.Equal(t, types.Pillars, names)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  Format
		wantErr error
		errMsg  string
	}{
		{
			name:    "missing pillar",
			data:    `{"Environmental": {}, "Social": {}}`,
			format:  FormatJSON,
			wantErr: ErrMissingPillar,
			errMsg:  "Governance",
		},
		{
			name:    "invalid json",
			data:    `{"Environmental": {`,
			format:  FormatJSON,
			wantErr: ErrMalformed,
		},
		{
			name:    "trailing data",
			data:    `{} {}`,
			format:  FormatJSON,
			wantErr: ErrMalformed,
		},
		{
			name:    "empty document",
			data:    "  \n",
			format:  FormatJSON,
			wantErr: ErrMalformed,
			errMsg:  "empty document",
		},
		{
			name:    "top level is a list",
			data:    `["Environmental"]`,
			format:  FormatJSON,
			wantErr: ErrMalformed,
			errMsg:  "top level must be an object",
		},
		{
			name:    "pillar is not an object",
			data:    `{"Environmental": [], "Social": {}, "Governance": {}}`,
			format:  FormatJSON,
			wantErr: ErrMalformed,
			errMsg:  "Environmental must be an object",
		},
		{
			name:    "category is not an object",
			data:    `{"Environmental": {"Climate": ["co2"]}, "Social": {}, "Governance": {}}`,
			format:  FormatJSON,
			wantErr: ErrMalformed,
			errMsg:  "Environmental > Climate",
		},
		{
			name:    "non-string term",
			data:    `{"Environmental": {"Climate": {"Emissions": ["co2", 42]}}, "Social": {}, "Governance": {}}`,
			format:  FormatJSON,
			wantErr: ErrMalformed,
			errMsg:  "term 2 must be a string",
		},
		{
			name:    "unquoted yaml number term",
			data:    "Environmental:\n  Climate:\n    Targets: [2030]\nSocial: {}\nGovernance: {}\n",
			format:  FormatYAML,
			wantErr: ErrMalformed,
			errMsg:  "must be a string",
		},
		{
			name:    "empty yaml",
			data:    "",
			format:  FormatYAML,
			wantErr: ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestParse_SkipsUnrecognizedShapesWithWarnings(t *testing.T) {
	data := `{
  "Environmental": {
    "Climate": {
      "Emissions": ["co2", "", "methane"],
      "Notes": "free text",
      "Count": 7,
      "Targets": {"Net Zero": ["net zero"], "Owner": "cfo", "Deep": {"x": ["y"]}}
    }
  },
  "Social": {},
  "Governance": {},
  "Extra": {}
}`

	var warnings []Warning
	tax, err := Parse([]byte(data), FormatJSON, WithWarningHandler(func(w Warning) {
		warnings = append(warnings, w)
	}))
	require.NoError(t, err)

	climate := tax.Pillar(types.PillarEnvironmental).Categories[0]
	require.Len(t, climate.Subcategories, 2, "Notes and Count are skipped")
	assert.Equal(t, types.TermList{"co2", "", "methane"}, climate.Subcategories[0].Node)

	targets, ok := climate.Subcategories[1].Node.(types.NestedGroup)
	require.True(t, ok)
	require.Len(t, targets, 1)
	assert.Equal(t, "Net Zero", targets[0].Name)

	var got []string
	for _, w := range warnings {
		got = append(got, w.String())
	}
	assert.ElementsMatch(t, []string{
		"Extra: unknown top-level key ignored",
		"Environmental > Climate > Emissions: term 2 is blank",
		"Environmental > Climate > Notes: expected a list of terms or an object, got string; skipped",
		"Environmental > Climate > Count: expected a list of terms or an object, got scalar; skipped",
		"Environmental > Climate > Targets > Owner: expected a list of terms, got string; skipped",
		"Environmental > Climate > Targets > Deep: expected a list of terms, got object; skipped",
	}, got)
}

func TestParse_DuplicateKeysKeepFirstPosition(t *testing.T) {
	data := `{"Environmental": {"A": {"x": ["1"]}, "B": {}, "A": {"y": ["2"]}}, "Social": {}, "Governance": {}}`
	tax, err := Parse([]byte(data), FormatJSON)
	require.NoError(t, err)

	cats := tax.Pillar(types.PillarEnvironmental).Categories
	require.Len(t, cats, 2)
	assert.Equal(t, "A", cats[0].Name)
	assert.Equal(t, "y", cats[0].Subcategories[0].Name)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "taxonomy.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(sampleJSON), 0o644))
	yamlPath := filepath.Join(dir, "taxonomy.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(sampleYAML), 0o644))

	fromJSON, err := Load(jsonPath)
	require.NoError(t, err)
	fromYAML, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, fromJSON, fromYAML)

	_, err = Load(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTaxonomy_StatsAndTerms(t *testing.T) {
	tax, err := Parse([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, types.TaxonomyStats{
		Pillars:       3,
		Categories:    3,
		Subcategories: 4,
		TermLists:     5,
		NestedGroups:  1,
		Terms:         8,
	}, tax.Stats())

	assert.Equal(t, []string{
		"CO2", "greenhouse gas", "net zero", "carbon neutral", "2030 target",
		"water withdrawal", "lost time injury", "LTIFR",
	}, tax.Terms())
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("dictionary/taxonomy.json"))
	assert.Equal(t, FormatYAML, FormatFromPath("taxonomy.YAML"))
	assert.Equal(t, FormatYAML, FormatFromPath("taxonomy.yml"))
	assert.Equal(t, FormatJSON, FormatFromPath("taxonomy"))
}
