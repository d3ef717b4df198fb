// =============================================================================
// Stormworks Definitions Converter - Generic Element Tree
// =============================================================================
//
// This package turns one XML document into a schema-agnostic tree that the
// definition normalizer can walk with plain field paths.
//
// NODE KINDS:
//   - KindScalar   : a string (attribute value or text-only element)
//   - KindMapping  : ordered field name -> node
//   - KindSequence : ordered list of nodes
//
// MAPPING RULES:
//   <definition name="Box" mass="1">          {
//     <tooltip_properties description="d"/>     "definition": [{
//     <voxels>                                    "@name": "Box",
//       <voxel flags="1"/>                        "@mass": "1",
//     </voxels>                                   "tooltip_properties": [{"@description": "d"}],
//   </definition>                                 "voxels": [{"voxel": [{"@flags": "1"}]}]
//                                               }]
//                                             }
//
//   - Attributes are stored as scalar fields under AttributePrefix + name.
//   - Child elements are ALWAYS stored as a sequence field, even when the
//     name occurs only once. Readers decide whether to unwrap.
//   - An element with neither attributes nor child elements is a scalar
//     holding its trimmed text.
//   - Text next to attributes or children is kept under TextKey.
//
// =============================================================================

package xmltree

import (
	"bytes"
	"encoding/json"
)

// AttributePrefix marks attribute keys. '@' is not a legal XML name
// character, so attribute keys never collide with child element keys.
const AttributePrefix = "@"

// TextKey holds the text content of an element that also has attributes or
// child elements.
const TextKey = "#text"

// Kind identifies which variant a Node holds.
type Kind uint8

const (
	KindScalar Kind = iota
	KindMapping
	KindSequence
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Node is one value of the Generic Element Tree.
type Node struct {
	kind   Kind
	text   string
	keys   []string
	fields map[string]*Node
	items  []*Node
}

// NewScalar returns a scalar node holding s.
func NewScalar(s string) *Node {
	return &Node{kind: KindScalar, text: s}
}

// NewMapping returns an empty mapping node.
func NewMapping() *Node {
	return &Node{kind: KindMapping, fields: make(map[string]*Node)}
}

// NewSequence returns a sequence node holding items in order.
func NewSequence(items ...*Node) *Node {
	return &Node{kind: KindSequence, items: items}
}

// Kind reports the variant held by n.
func (n *Node) Kind() Kind {
	return n.kind
}

// Text returns the scalar value. It is empty for mappings and sequences.
func (n *Node) Text() string {
	return n.text
}

// Keys returns the mapping field names in insertion order.
func (n *Node) Keys() []string {
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

// Items returns the sequence elements in order.
func (n *Node) Items() []*Node {
	out := make([]*Node, len(n.items))
	copy(out, n.items)
	return out
}

// Len returns the number of fields of a mapping or items of a sequence.
func (n *Node) Len() int {
	switch n.kind {
	case KindMapping:
		return len(n.keys)
	case KindSequence:
		return len(n.items)
	default:
		return 0
	}
}

// Set stores child under key. Setting an existing key replaces the value
// but keeps the original position. Set is a no-op on non-mapping nodes.
func (n *Node) Set(key string, child *Node) {
	if n.kind != KindMapping {
		return
	}
	if _, ok := n.fields[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = child
}

// Append adds items to a sequence node. It is a no-op on other kinds.
func (n *Node) Append(items ...*Node) {
	if n.kind != KindSequence {
		return
	}
	n.items = append(n.items, items...)
}

// MarshalJSON renders scalars as strings, mappings as objects with fields
// in insertion order, and sequences as arrays. Sequences are always arrays,
// even with a single item.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) writeJSON(buf *bytes.Buffer) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}

	switch n.kind {
	case KindScalar:
		return writeJSONString(buf, n.text)

	case KindMapping:
		buf.WriteByte('{')
		for i, key := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := n.fields[key].writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')

	case KindSequence:
		buf.WriteByte('[')
		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	}

	return nil
}

// writeJSONString writes s as a JSON string without HTML escaping, so
// descriptions such as "A < B" survive verbatim.
func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
