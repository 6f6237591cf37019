// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match counts taxonomy terms in document text and folds the counts
// back into the shape of the taxonomy.
//
// Matching is purely lexical. Terms and text are lowercased; nothing else is
// normalized. A term is always treated as literal text, so "R&D", "CO2" and
// "100%" match exactly those characters.
package match

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/pdiddy/esg-scan/pkg/types"
)

// Counter counts exact and partial occurrences of terms. Boundary patterns
// for the terms given to NewCounter are compiled once; other terms are
// compiled on demand. A Counter is immutable and safe for concurrent use.
type Counter struct {
	patterns map[string]*regexp2.Regexp
}

// NewCounter precompiles the exact-match patterns for terms.
func NewCounter(terms []string) *Counter {
	c := &Counter{patterns: make(map[string]*regexp2.Regexp, len(terms))}
	for _, t := range terms {
		lt := strings.ToLower(t)
		if lt == "" {
			continue
		}
		if _, ok := c.patterns[lt]; !ok {
			c.patterns[lt] = compileExact(lt)
		}
	}
	return c
}

// Count returns one TermCount per term, in order, for text. See the package
// Count function for the counting rules.
func (c *Counter) Count(text string, terms []string) types.Counts {
	return c.countLower(strings.ToLower(text), terms)
}

// Count computes per-term match counts for text.
//
// The exact count is the number of non-overlapping occurrences bounded by
// word boundaries (Unicode letter, digit or underscore on one side, anything
// else or a string edge on the other). Multi-word terms only need boundaries
// at their outer edges. The partial count is the number of non-overlapping
// literal occurrences anywhere. Total equals Partial.
//
// Every term yields an entry, including terms absent from text and
// duplicates. An empty term never matches.
func Count(text string, terms []string) types.Counts {
	return NewCounter(terms).Count(text, terms)
}

// countLower expects text to be lowercased already.
func (c *Counter) countLower(text string, terms []string) types.Counts {
	counts := make(types.Counts, len(terms))
	for i, term := range terms {
		counts[i] = types.TermCount{
			Term:        term,
			MatchResult: c.countTerm(text, strings.ToLower(term)),
		}
	}
	return counts
}

func (c *Counter) countTerm(text, term string) types.MatchResult {
	if term == "" || text == "" {
		return types.MatchResult{}
	}

	partial := strings.Count(text, term)
	if partial == 0 {
		return types.MatchResult{}
	}

	re, ok := c.patterns[term]
	if !ok {
		re = compileExact(term)
	}

	return types.MatchResult{
		Exact:   countMatches(re, text),
		Partial: partial,
		Total:   partial,
	}
}

func compileExact(term string) *regexp2.Regexp {
	return regexp2.MustCompile(`\b`+regexp2.Escape(term)+`\b`, regexp2.None)
}

// countMatches counts successive non-overlapping matches of re in text.
func countMatches(re *regexp2.Regexp, text string) int {
	n := 0
	m, err := re.FindStringMatch(text)
	for m != nil && err == nil {
		n++
		m, err = re.FindNextMatch(m)
	}
	return n
}
