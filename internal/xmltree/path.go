package xmltree

// Get returns the field stored under key. It never panics: a nil node or a
// node that is not a mapping reports absent.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.kind != KindMapping {
		return nil, false
	}
	child, ok := n.fields[key]
	return child, ok
}

// Scalar returns the string held by n, stepping into a single-item
// sequence first.
func (n *Node) Scalar() (string, bool) {
	u := Unwrap(n)
	if u == nil || u.kind != KindScalar {
		return "", false
	}
	return u.text, true
}

// Unwrap returns the only item of a single-item sequence. Any other node,
// including nil, is returned unchanged.
func Unwrap(n *Node) *Node {
	if n != nil && n.kind == KindSequence && len(n.items) == 1 {
		return n.items[0]
	}
	return n
}

// Lookup follows path from n and returns the node at its end.
//
// Each step unwraps a single-item sequence before reading the field, so
// "definition", "tooltip_properties" reaches the first and only tooltip
// element. A sequence with several items in the middle of a path is
// ambiguous and reports absent, as do missing keys and scalars. The final
// node is returned as stored.
func Lookup(n *Node, path ...string) (*Node, bool) {
	cur := n
	for _, key := range path {
		next, ok := Unwrap(cur).Get(key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// LookupScalar is Lookup followed by Scalar.
func LookupScalar(n *Node, path ...string) (string, bool) {
	node, ok := Lookup(n, path...)
	if !ok {
		return "", false
	}
	return node.Scalar()
}

// Attr returns the field key for the attribute called name.
func Attr(name string) string {
	return AttributePrefix + name
}
