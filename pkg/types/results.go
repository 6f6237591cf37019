// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MatchResult holds the match counts for a single term in one document.
// Total always equals Partial: every exact match is also a partial match,
// so the partial scan already covers both.
type MatchResult struct {
	Exact   int `json:"exact_matches" yaml:"exact_matches"`
	Partial int `json:"partial_matches" yaml:"partial_matches"`
	Total   int `json:"total_matches" yaml:"total_matches"`
}

// Add returns the element-wise sum of r and o.
func (r MatchResult) Add(o MatchResult) MatchResult {
	return MatchResult{
		Exact:   r.Exact + o.Exact,
		Partial: r.Partial + o.Partial,
		Total:   r.Total + o.Total,
	}
}

// TermCount pairs a term, as written in the taxonomy, with its counts.
type TermCount struct {
	Term        string `json:"term" yaml:"term"`
	MatchResult `yaml:",inline"`
}

// Counts is the count mapping for one term list. It has exactly one entry
// per input term, in input order, duplicates included.
type Counts []TermCount

// Sum aggregates the counts of every term.
func (c Counts) Sum() MatchResult {
	var sum MatchResult
	for _, tc := range c {
		sum = sum.Add(tc.MatchResult)
	}
	return sum
}

// Lookup returns the counts of the first entry for term.
func (c Counts) Lookup(term string) (MatchResult, bool) {
	for _, tc := range c {
		if tc.Term == term {
			return tc.MatchResult, true
		}
	}
	return MatchResult{}, false
}

// ResultsTree mirrors a Taxonomy with every term list replaced by Counts.
type ResultsTree struct {
	Pillars []PillarResult `json:"pillars" yaml:"pillars"`
}

// PillarResult mirrors a Pillar.
type PillarResult struct {
	Name       string           `json:"name" yaml:"name"`
	Categories []CategoryResult `json:"categories" yaml:"categories"`
}

// CategoryResult mirrors a Category.
type CategoryResult struct {
	Name          string              `json:"name" yaml:"name"`
	Subcategories []SubcategoryResult `json:"subcategories" yaml:"subcategories"`
}

// NodeKind tags the shape of a SubcategoryResult.
type NodeKind string

const (
	KindTerms  NodeKind = "terms"
	KindNested NodeKind = "nested"
)

// SubcategoryResult mirrors a Subcategory. Counts is set for KindTerms,
// Nested for KindNested.
type SubcategoryResult struct {
	Name   string        `json:"name" yaml:"name"`
	Kind   NodeKind      `json:"kind" yaml:"kind"`
	Counts Counts        `json:"counts,omitempty" yaml:"counts,omitempty"`
	Nested []GroupResult `json:"nested,omitempty" yaml:"nested,omitempty"`
}

// GroupResult mirrors a TermGroup inside a NestedGroup.
type GroupResult struct {
	Name   string `json:"name" yaml:"name"`
	Counts Counts `json:"counts" yaml:"counts"`
}

// Sum aggregates the counts below this subcategory.
func (s SubcategoryResult) Sum() MatchResult {
	if s.Kind == KindNested {
		var sum MatchResult
		for _, g := range s.Nested {
			sum = sum.Add(g.Counts.Sum())
		}
		return sum
	}
	return s.Counts.Sum()
}

// Sum aggregates the counts below this category.
func (c CategoryResult) Sum() MatchResult {
	var sum MatchResult
	for _, s := range c.Subcategories {
		sum = sum.Add(s.Sum())
	}
	return sum
}

// Sum aggregates the counts below this pillar.
func (p PillarResult) Sum() MatchResult {
	var sum MatchResult
	for _, c := range p.Categories {
		sum = sum.Add(c.Sum())
	}
	return sum
}

// Sum aggregates every count in the tree.
func (t ResultsTree) Sum() MatchResult {
	var sum MatchResult
	for _, p := range t.Pillars {
		sum = sum.Add(p.Sum())
	}
	return sum
}

// Leaf is one count mapping together with its location in the tree.
// Path is (pillar, category, subcategory) or
// (pillar, category, subcategory, nested subcategory).
type Leaf struct {
	Path   []string
	Counts Counts
}

// Leaves returns every count mapping in traversal order.
func (t ResultsTree) Leaves() []Leaf {
	var leaves []Leaf
	for _, p := range t.Pillars {
		for _, c := range p.Categories {
			for _, s := range c.Subcategories {
				if s.Kind == KindNested {
					for _, g := range s.Nested {
						leaves = append(leaves, Leaf{
							Path:   []string{p.Name, c.Name, s.Name, g.Name},
							Counts: g.Counts,
						})
					}
					continue
				}
				leaves = append(leaves, Leaf{
					Path:   []string{p.Name, c.Name, s.Name},
					Counts: s.Counts,
				})
			}
		}
	}
	return leaves
}
