// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the esg-scan pipeline:
// the typed taxonomy, per-term match counts, the results tree that mirrors
// the taxonomy, and the per-document scan outcome.
package types

// The three fixed top-level pillars of an ESG taxonomy, in report order.
const (
	PillarEnvironmental = "Environmental"
	PillarSocial        = "Social"
	PillarGovernance    = "Governance"
)

// Pillars lists the ESG pillar keys in the order they are evaluated and reported.
var Pillars = []string{PillarEnvironmental, PillarSocial, PillarGovernance}

// Taxonomy is the loaded, immutable ESG dictionary. Source key order is
// preserved at every level.
type Taxonomy struct {
	Pillars []Pillar `json:"pillars" yaml:"pillars"`
}

// Pillar is one of Environmental, Social, or Governance.
type Pillar struct {
	Name       string     `json:"name" yaml:"name"`
	Categories []Category `json:"categories" yaml:"categories"`
}

// Category groups related subcategories within a pillar.
type Category struct {
	Name          string        `json:"name" yaml:"name"`
	Subcategories []Subcategory `json:"subcategories" yaml:"subcategories"`
}

// Subcategory is a named taxonomy node. Node is either a TermList or a
// NestedGroup; the shape is resolved once when the taxonomy is loaded.
type Subcategory struct {
	Name string `json:"name" yaml:"name"`
	Node Node   `json:"-" yaml:"-"`
}

// Node is the tagged variant held by a Subcategory.
type Node interface {
	isNode()
}

// TermList is a leaf list of literal search terms.
type TermList []string

// NestedGroup is one further level of named term lists.
type NestedGroup []TermGroup

// TermGroup is a named term list inside a NestedGroup.
type TermGroup struct {
	Name  string   `json:"name" yaml:"name"`
	Terms TermList `json:"terms" yaml:"terms"`
}

func (TermList) isNode()    {}
func (NestedGroup) isNode() {}

// Pillar returns the pillar with the given name, or nil.
func (t *Taxonomy) Pillar(name string) *Pillar {
	for i := range t.Pillars {
		if t.Pillars[i].Name == name {
			return &t.Pillars[i]
		}
	}
	return nil
}

// Terms returns every term in the taxonomy in traversal order.
// Duplicates across subcategories are kept.
func (t *Taxonomy) Terms() []string {
	var terms []string
	for _, p := range t.Pillars {
		for _, c := range p.Categories {
			for _, s := range c.Subcategories {
				switch n := s.Node.(type) {
				case TermList:
					terms = append(terms, n...)
				case NestedGroup:
					for _, g := range n {
						terms = append(terms, g.Terms...)
					}
				}
			}
		}
	}
	return terms
}

// TaxonomyStats summarizes the size of a taxonomy.
type TaxonomyStats struct {
	Pillars       int `json:"pillars" yaml:"pillars"`
	Categories    int `json:"categories" yaml:"categories"`
	Subcategories int `json:"subcategories" yaml:"subcategories"`
	TermLists     int `json:"term_lists" yaml:"term_lists"`
	NestedGroups  int `json:"nested_groups" yaml:"nested_groups"`
	Terms         int `json:"terms" yaml:"terms"`
}

// Stats counts the nodes of the taxonomy. TermLists counts every list that
// the walker evaluates: direct subcategory lists plus nested lists.
func (t *Taxonomy) Stats() TaxonomyStats {
	var st TaxonomyStats
	st.Pillars = len(t.Pillars)
	for _, p := range t.Pillars {
		st.Categories += len(p.Categories)
		for _, c := range p.Categories {
			st.Subcategories += len(c.Subcategories)
			for _, s := range c.Subcategories {
				switch n := s.Node.(type) {
				case TermList:
					st.TermLists++
					st.Terms += len(n)
				case NestedGroup:
					st.NestedGroups++
					st.TermLists += len(n)
					for _, g := range n {
						st.Terms += len(g.Terms)
					}
				}
			}
		}
	}
	return st
}
