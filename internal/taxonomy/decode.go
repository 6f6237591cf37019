// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package taxonomy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

type valueKind int

const (
	kindNull valueKind = iota
	kindMap
	kindList
	kindString
	kindScalar
)

func (k valueKind) String() string {
	switch k {
	case kindMap:
		return "object"
	case kindList:
		return "list"
	case kindString:
		return "string"
	case kindScalar:
		return "scalar"
	default:
		return "null"
	}
}

// value is a decoded document node that keeps object key order. Both the
// JSON and the YAML decoders produce it so that the taxonomy is resolved by
// one code path.
type value struct {
	kind  valueKind
	keys  []string
	vals  []*value
	items []*value
	str   string
}

func (v *value) get(key string) (*value, bool) {
	for i, k := range v.keys {
		if k == key {
			return v.vals[i], true
		}
	}
	return nil, false
}

// set adds key, or replaces its value in place when the key repeats.
func (v *value) set(key string, val *value) {
	for i, k := range v.keys {
		if k == key {
			v.vals[i] = val
			return
		}
	}
	v.keys = append(v.keys, key)
	v.vals = append(v.vals, val)
}

// decodeJSON walks the token stream so object keys stay in file order.
func decodeJSON(data []byte) (*value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			if len(bytes.TrimSpace(data)) == 0 {
				return nil, errors.New("empty document")
			}
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (*value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			v := &value{kind: kindMap}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key %v is not a string", keyTok)
				}
				child, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				v.set(key, child)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return v, nil
		case '[':
			v := &value{kind: kindList}
			for dec.More() {
				child, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				v.items = append(v.items, child)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return v, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return &value{kind: kindString, str: t}, nil
	case nil:
		return &value{kind: kindNull}, nil
	default:
		return &value{kind: kindScalar, str: fmt.Sprint(t)}, nil
	}
}

// decodeYAML uses the yaml.Node tree, which keeps mapping order.
func decodeYAML(data []byte) (*value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("empty document")
	}
	return fromYAMLNode(doc.Content[0], 0)
}

// maxAliasDepth bounds alias chains so a self-referencing anchor cannot loop.
const maxAliasDepth = 64

func fromYAMLNode(n *yaml.Node, depth int) (*value, error) {
	if depth > maxAliasDepth {
		return nil, errors.New("document nested too deeply")
	}

	switch n.Kind {
	case yaml.MappingNode:
		v := &value{kind: kindMap}
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key must be a scalar", keyNode.Line)
			}
			child, err := fromYAMLNode(n.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			v.set(keyNode.Value, child)
		}
		return v, nil
	case yaml.SequenceNode:
		v := &value{kind: kindList}
		for _, c := range n.Content {
			child, err := fromYAMLNode(c, depth+1)
			if err != nil {
				return nil, err
			}
			v.items = append(v.items, child)
		}
		return v, nil
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias, depth+1)
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!str":
			return &value{kind: kindString, str: n.Value}, nil
		case "!!null":
			return &value{kind: kindNull}, nil
		default:
			return &value{kind: kindScalar, str: n.Value}, nil
		}
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
	}
}
