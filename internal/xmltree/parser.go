package xmltree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// MalformedXMLError reports that a document could not be parsed. It is the
// only error Parse returns.
type MalformedXMLError struct {
	Err error
}

func (e *MalformedXMLError) Error() string {
	return fmt.Sprintf("malformed XML: %v", e.Err)
}

func (e *MalformedXMLError) Unwrap() error {
	return e.Err
}

var (
	// errNoRoot is wrapped when the text holds no element at all.
	errNoRoot = errors.New("document has no root element")

	// errMultipleRoots is wrapped when more than one element sits at
	// document level.
	errMultipleRoots = errors.New("document has more than one root element")

	// errTextOutsideRoot is wrapped when non-whitespace text sits before or
	// after the root element.
	errTextOutsideRoot = errors.New("text outside the root element")
)

// Parse converts XML text into a Generic Element Tree. The returned node is
// a mapping with a single field, named after the root element, holding a
// one-item sequence with the root's node.
func Parse(text string) (*Node, error) {
	return ParseBytes([]byte(text))
}

// ParseBytes is Parse for raw file contents.
func ParseBytes(data []byte) (*Node, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{Permissive: false}

	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &MalformedXMLError{Err: err}
	}

	root, err := documentRoot(doc)
	if err != nil {
		return nil, &MalformedXMLError{Err: err}
	}

	node, err := buildElement(root)
	if err != nil {
		return nil, &MalformedXMLError{Err: err}
	}

	tree := NewMapping()
	tree.Set(root.FullTag(), NewSequence(node))
	return tree, nil
}

// documentRoot returns the single element at document level. Only the XML
// declaration, comments, directives and whitespace may surround it.
func documentRoot(doc *etree.Document) (*etree.Element, error) {
	var root *etree.Element
	for _, tok := range doc.Child {
		switch tok := tok.(type) {
		case *etree.Element:
			if root != nil {
				return nil, errMultipleRoots
			}
			root = tok
		case *etree.CharData:
			if strings.TrimSpace(tok.Data) != "" {
				return nil, errTextOutsideRoot
			}
		}
	}
	if root == nil {
		return nil, errNoRoot
	}
	return root, nil
}

// buildElement maps one element and its subtree. A repeated attribute
// name is an error.
func buildElement(el *etree.Element) (*Node, error) {
	children := el.ChildElements()
	text := strings.TrimSpace(elementText(el))

	if len(el.Attr) == 0 && len(children) == 0 {
		return NewScalar(text), nil
	}

	node := NewMapping()
	for _, attr := range el.Attr {
		key := AttributePrefix + attr.FullKey()
		if _, dup := node.fields[key]; dup {
			return nil, fmt.Errorf("element <%s> repeats attribute %q", el.FullTag(), attr.FullKey())
		}
		node.Set(key, NewScalar(attr.Value))
	}

	for _, child := range children {
		childNode, err := buildElement(child)
		if err != nil {
			return nil, err
		}
		key := child.FullTag()
		seq, ok := node.fields[key]
		if !ok {
			seq = NewSequence()
			node.Set(key, seq)
		}
		seq.Append(childNode)
	}

	if text != "" {
		node.Set(TextKey, NewScalar(text))
	}

	return node, nil
}

// elementText concatenates every character data token directly under el,
// including CDATA sections. Comments and processing instructions are skipped.
func elementText(el *etree.Element) string {
	var b strings.Builder
	for _, tok := range el.Child {
		if cd, ok := tok.(*etree.CharData); ok {
			b.WriteString(cd.Data)
		}
	}
	return b.String()
}
