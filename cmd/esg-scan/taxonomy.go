// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/esg-scan/internal/taxonomy"
	"github.com/pdiddy/esg-scan/pkg/types"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Inspect the ESG taxonomy (validate, terms)",
	Long: `Taxonomy loads the dictionary file given by --taxonomy and reports on it
without scanning any documents.`,
}

// --- validate subcommand ---

var taxonomyValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the taxonomy structure and print its size",
	Long: `Validate loads the taxonomy and fails if it is malformed or missing one of
the Environmental, Social, or Governance pillars. Entries that a scan would
skip are logged as warnings.`,
	RunE: runTaxonomyValidate,
}

func runTaxonomyValidate(cmd *cobra.Command, args []string) error {
	path := viper.GetString("taxonomy")
	var warnings int
	tax, err := taxonomy.Load(path, taxonomy.WithWarningHandler(func(w taxonomy.Warning) {
		warnings++
		fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
	}))
	if err != nil {
		return err
	}

	st := tax.Stats()
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s: valid\n", path)
	fmt.Fprintf(w, "  pillars:        %d\n", st.Pillars)
	fmt.Fprintf(w, "  categories:     %d\n", st.Categories)
	fmt.Fprintf(w, "  subcategories:  %d (%d nested)\n", st.Subcategories, st.NestedGroups)
	fmt.Fprintf(w, "  term lists:     %d\n", st.TermLists)
	fmt.Fprintf(w, "  terms:          %d\n", st.Terms)
	fmt.Fprintf(w, "  warnings:       %d\n", warnings)
	return nil
}

// --- terms subcommand ---

var taxonomyTermsCmd = &cobra.Command{
	Use:   "terms",
	Short: "List every term with its taxonomy path",
	RunE:  runTaxonomyTerms,
}

// termEntry is one row of `taxonomy terms` output.
type termEntry struct {
	Path []string `json:"path"`
	Term string   `json:"term"`
}

func runTaxonomyTerms(cmd *cobra.Command, args []string) error {
	tax, err := loadTaxonomy(viper.GetString("taxonomy"))
	if err != nil {
		return err
	}

	entries := flattenTerms(tax)
	w := cmd.OutOrStdout()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	for _, e := range entries {
		fmt.Fprintf(w, "%-60s  %s\n", strings.Join(e.Path, " > "), e.Term)
	}
	fmt.Fprintf(w, "\n%d terms\n", len(entries))
	return nil
}

func flattenTerms(tax *types.Taxonomy) []termEntry {
	var entries []termEntry
	add := func(terms types.TermList, path ...string) {
		for _, t := range terms {
			entries = append(entries, termEntry{Path: path, Term: t})
		}
	}
	for _, p := range tax.Pillars {
		for _, c := range p.Categories {
			for _, s := range c.Subcategories {
				switch n := s.Node.(type) {
				case types.TermList:
					add(n, p.Name, c.Name, s.Name)
				case types.NestedGroup:
					for _, g := range n {
						add(g.Terms, p.Name, c.Name, s.Name, g.Name)
					}
				}
			}
		}
	}
	return entries
}

// --- shared helpers ---

// loadTaxonomy loads the taxonomy and logs skipped entries through slog.
func loadTaxonomy(path string) (*types.Taxonomy, error) {
	tax, err := taxonomy.Load(path, taxonomy.WithWarningHandler(func(w taxonomy.Warning) {
		slog.Warn("taxonomy entry skipped", "path", strings.Join(w.Path, " > "), "reason", w.Message)
	}))
	if err != nil {
		return nil, err
	}
	st := tax.Stats()
	slog.Debug("taxonomy loaded", "path", path, "term_lists", st.TermLists, "terms", st.Terms)
	return tax, nil
}

func init() {
	taxonomyTermsCmd.Flags().Bool("json", false, "output terms as JSON")

	taxonomyCmd.AddCommand(taxonomyValidateCmd)
	taxonomyCmd.AddCommand(taxonomyTermsCmd)

	rootCmd.AddCommand(taxonomyCmd)
}
