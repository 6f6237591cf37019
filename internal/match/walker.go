// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"strings"

	"github.com/pdiddy/esg-scan/pkg/types"
)

// Evaluator walks a taxonomy and counts its terms in document text. It is
// built once per taxonomy and reused for every document.
type Evaluator struct {
	taxonomy *types.Taxonomy
	counter  *Counter
}

// NewEvaluator precompiles the patterns for every term in tax.
func NewEvaluator(tax *types.Taxonomy) *Evaluator {
	return &Evaluator{
		taxonomy: tax,
		counter:  NewCounter(tax.Terms()),
	}
}

// Evaluate returns a ResultsTree for tax and text. It is a shorthand for
// NewEvaluator(tax).Evaluate(text).
func Evaluate(tax *types.Taxonomy, text string) types.ResultsTree {
	return NewEvaluator(tax).Evaluate(text)
}

// Evaluate counts every term list of the taxonomy in text. The tree holds
// the Environmental, Social and Governance pillars in that order; below the
// pillars it mirrors the taxonomy exactly, with each term list replaced by
// its counts.
func (e *Evaluator) Evaluate(text string) types.ResultsTree {
	text = strings.ToLower(text)

	tree := types.ResultsTree{Pillars: make([]types.PillarResult, 0, len(types.Pillars))}
	for _, name := range types.Pillars {
		pr := types.PillarResult{Name: name}
		if p := e.taxonomy.Pillar(name); p != nil {
			pr.Categories = make([]types.CategoryResult, 0, len(p.Categories))
			for _, c := range p.Categories {
				pr.Categories = append(pr.Categories, e.evaluateCategory(c, text))
			}
		}
		tree.Pillars = append(tree.Pillars, pr)
	}
	return tree
}

func (e *Evaluator) evaluateCategory(c types.Category, text string) types.CategoryResult {
	cr := types.CategoryResult{
		Name:          c.Name,
		Subcategories: make([]types.SubcategoryResult, 0, len(c.Subcategories)),
	}

	for _, s := range c.Subcategories {
		switch n := s.Node.(type) {
		case types.TermList:
			cr.Subcategories = append(cr.Subcategories, types.SubcategoryResult{
				Name:   s.Name,
				Kind:   types.KindTerms,
				Counts: e.counter.countLower(text, n),
			})
		case types.NestedGroup:
			sr := types.SubcategoryResult{
				Name:   s.Name,
				Kind:   types.KindNested,
				Nested: make([]types.GroupResult, 0, len(n)),
			}
			for _, g := range n {
				sr.Nested = append(sr.Nested, types.GroupResult{
					Name:   g.Name,
					Counts: e.counter.countLower(text, g.Terms),
				})
			}
			cr.Subcategories = append(cr.Subcategories, sr)
		}
	}
	return cr
}
