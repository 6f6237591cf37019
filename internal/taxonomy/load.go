// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package taxonomy loads the ESG term dictionary into a typed, ordered tree.
//
// The file is a nested object keyed by the three pillar names
// (Environmental, Social, Governance). Each pillar maps category names to
// subcategories, and each subcategory holds either a list of terms or one
// further level of named term lists:
//
//	{
//	  "Environmental": {
//	    "Climate": {
//	      "Emissions": ["CO2", "greenhouse gas"],
//	      "Targets": {"Net Zero": ["net zero", "carbon neutral"]}
//	    }
//	  },
//	  "Social": {},
//	  "Governance": {}
//	}
//
// JSON and YAML encodings are accepted. Key order in the file is kept.
// Structural errors are fatal; shapes the walker cannot use are skipped and
// reported through a warning handler.
package taxonomy

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/esg-scan/pkg/types"
)

var (
	// ErrMissingPillar is returned when Environmental, Social, or Governance is absent.
	ErrMissingPillar = errors.New("taxonomy is missing a required ESG pillar")

	// ErrMalformed is returned when the taxonomy does not have the expected structure.
	ErrMalformed = errors.New("malformed taxonomy")
)

// Format identifies the encoding of a taxonomy file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension. Anything other
// than .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Warning describes a taxonomy entry that was skipped during loading.
type Warning struct {
	// Path locates the entry, from pillar downward.
	Path    []string
	Message string
}

func (w Warning) String() string {
	return strings.Join(w.Path, " > ") + ": " + w.Message
}

// Option configures Load and Parse.
type Option func(*loader)

// WithWarningHandler registers fn to receive every skipped-entry warning.
func WithWarningHandler(fn func(Warning)) Option {
	return func(l *loader) {
		l.warn = fn
	}
}

type loader struct {
	warn func(Warning)
}

func (l *loader) warnf(path []string, format string, args ...any) {
	if l.warn == nil {
		return
	}
	l.warn(Warning{
		Path:    append([]string(nil), path...),
		Message: fmt.Sprintf(format, args...),
	})
}

// Load reads and parses the taxonomy file at path.
func Load(path string, opts ...Option) (*types.Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy %s: %w", path, err)
	}
	tax, err := Parse(data, FormatFromPath(path), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading taxonomy %s: %w", path, err)
	}
	return tax, nil
}

// Parse decodes a taxonomy document and resolves every subcategory into a
// TermList or a NestedGroup.
func Parse(data []byte, format Format, opts ...Option) (*types.Taxonomy, error) {
	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}

	var (
		root *value
		err  error
	)
	switch format {
	case FormatYAML:
		root, err = decodeYAML(data)
	case FormatJSON, "":
		root, err = decodeJSON(data)
	default:
		return nil, fmt.Errorf("unsupported taxonomy format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return l.build(root)
}

func (l *loader) build(root *value) (*types.Taxonomy, error) {
	if root.kind != kindMap {
		return nil, fmt.Errorf("%w: top level must be an object, got %s", ErrMalformed, root.kind)
	}

	known := make(map[string]bool, len(types.Pillars))
	for _, name := range types.Pillars {
		known[name] = true
	}
	for _, key := range root.keys {
		if !known[key] {
			l.warnf([]string{key}, "unknown top-level key ignored")
		}
	}

	tax := &types.Taxonomy{Pillars: make([]types.Pillar, 0, len(types.Pillars))}
	for _, name := range types.Pillars {
		pv, ok := root.get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingPillar, name)
		}
		p, err := l.buildPillar(name, pv)
		if err != nil {
			return nil, err
		}
		tax.Pillars = append(tax.Pillars, p)
	}
	return tax, nil
}

func (l *loader) buildPillar(name string, v *value) (types.Pillar, error) {
	if v.kind != kindMap {
		return types.Pillar{}, fmt.Errorf("%w: %s must be an object, got %s", ErrMalformed, name, v.kind)
	}

	p := types.Pillar{Name: name, Categories: make([]types.Category, 0, len(v.keys))}
	for i, catName := range v.keys {
		cv := v.vals[i]
		if cv.kind != kindMap {
			return types.Pillar{}, fmt.Errorf("%w: %s > %s must be an object, got %s",
				ErrMalformed, name, catName, cv.kind)
		}

		c := types.Category{Name: catName, Subcategories: make([]types.Subcategory, 0, len(cv.keys))}
		for j, subName := range cv.keys {
			path := []string{name, catName, subName}
			node, ok, err := l.buildNode(path, cv.vals[j])
			if err != nil {
				return types.Pillar{}, err
			}
			if ok {
				c.Subcategories = append(c.Subcategories, types.Subcategory{Name: subName, Node: node})
			}
		}
		p.Categories = append(p.Categories, c)
	}
	return p, nil
}

// buildNode resolves a subcategory value. ok is false when the value is
// neither a list nor an object and has been skipped.
func (l *loader) buildNode(path []string, v *value) (types.Node, bool, error) {
	switch v.kind {
	case kindList:
		terms, err := l.buildTerms(path, v)
		if err != nil {
			return nil, false, err
		}
		return terms, true, nil

	case kindMap:
		group := make(types.NestedGroup, 0, len(v.keys))
		for i, nestedName := range v.keys {
			nv := v.vals[i]
			nestedPath := append(append([]string(nil), path...), nestedName)
			if nv.kind != kindList {
				l.warnf(nestedPath, "expected a list of terms, got %s; skipped", nv.kind)
				continue
			}
			terms, err := l.buildTerms(nestedPath, nv)
			if err != nil {
				return nil, false, err
			}
			group = append(group, types.TermGroup{Name: nestedName, Terms: terms})
		}
		return group, true, nil

	default:
		l.warnf(path, "expected a list of terms or an object, got %s; skipped", v.kind)
		return nil, false, nil
	}
}

func (l *loader) buildTerms(path []string, v *value) (types.TermList, error) {
	terms := make(types.TermList, 0, len(v.items))
	for i, item := range v.items {
		if item.kind != kindString {
			return nil, fmt.Errorf("%w: %s: term %d must be a string, got %s",
				ErrMalformed, strings.Join(path, " > "), i+1, item.kind)
		}
		if strings.TrimSpace(item.str) == "" {
			l.warnf(path, "term %d is blank", i+1)
		}
		terms = append(terms, item.str)
	}
	return terms, nil
}
