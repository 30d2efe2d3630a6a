package formbind

// Kind discriminates leaf and branch nodes. The kind is fixed at
// construction; a node never changes shape afterwards.
type Kind uint8

const (
	KindBranch Kind = iota
	KindLeaf
)

// Node is the structural recursion shared by the schema, state and binding
// trees: a single tagged tree parameterized over its leaf payload. Branch
// children preserve insertion order, which is also traversal order.
//
// Trees are built once and treated as immutable afterwards; mutation of form
// state happens by producing a new tree that shares untouched subtrees.
type Node[P any] struct {
	kind Kind
	leaf P
	keys []string
	kids map[string]*Node[P]
}

// NewLeaf wraps a payload into a leaf node.
func NewLeaf[P any](payload P) *Node[P] {
	return &Node[P]{kind: KindLeaf, leaf: payload}
}

// NewBranch returns an empty branch node.
func NewBranch[P any]() *Node[P] {
	return &Node[P]{kind: KindBranch, kids: map[string]*Node[P]{}}
}

// Kind reports whether the node is a leaf or a branch.
func (n *Node[P]) Kind() Kind { return n.kind }

// Leaf returns the leaf payload; the zero payload on branches.
func (n *Node[P]) Leaf() P { return n.leaf }

// Put registers a child under name and returns the receiver for chaining.
// Re-registering a name replaces the child but keeps its original position.
// Put is for tree construction only; never call it on a node already owned
// by a Form.
func (n *Node[P]) Put(name string, child *Node[P]) *Node[P] {
	if _, ok := n.kids[name]; !ok {
		n.keys = append(n.keys, name)
	}
	n.kids[name] = child
	return n
}

// Child returns the child registered under name, or nil.
func (n *Node[P]) Child(name string) *Node[P] {
	if n == nil || n.kids == nil {
		return nil
	}
	return n.kids[name]
}

// Keys returns child names in insertion order. Callers must not mutate the
// returned slice.
func (n *Node[P]) Keys() []string {
	if n == nil {
		return nil
	}
	return n.keys
}

// ForEachLeaf visits every leaf depth-first in insertion order, passing its
// full path. nil nodes and nil child entries are treated as empty.
func ForEachLeaf[P any](n *Node[P], visit func(path Path, payload P)) {
	walkLeaves(n, nil, visit)
}

func walkLeaves[P any](n *Node[P], prefix Path, visit func(Path, P)) {
	if n == nil {
		return
	}
	if n.kind == KindLeaf {
		visit(prefix.clone(), n.leaf)
		return
	}
	for _, k := range n.keys {
		walkLeaves(n.kids[k], append(prefix, k), visit)
	}
}

// ExistsLeaf reports whether any leaf satisfies pred, short-circuiting on the
// first match. An empty or nil tree reports false.
func ExistsLeaf[P any](n *Node[P], pred func(payload P) bool) bool {
	if n == nil {
		return false
	}
	if n.kind == KindLeaf {
		return pred(n.leaf)
	}
	for _, k := range n.keys {
		if ExistsLeaf(n.kids[k], pred) {
			return true
		}
	}
	return false
}

// LeafAt returns the leaf payload addressed by path. ok is false when the
// path runs off the tree or ends on a branch.
func LeafAt[P any](n *Node[P], path ...string) (P, bool) {
	cur := n
	for _, seg := range path {
		if cur == nil || cur.kind != KindBranch {
			var zero P
			return zero, false
		}
		cur = cur.kids[seg]
	}
	if cur == nil || cur.kind != KindLeaf {
		var zero P
		return zero, false
	}
	return cur.leaf, true
}

// setLeaf returns a new tree with transform applied to the leaf at path,
// rebuilding only the spine and sharing every untouched subtree. A path that
// does not address a leaf returns the tree unchanged.
func setLeaf[P any](n *Node[P], path Path, transform func(P) P) *Node[P] {
	if n == nil {
		return nil
	}
	if len(path) == 0 {
		if n.kind != KindLeaf {
			return n
		}
		return NewLeaf(transform(n.leaf))
	}
	if n.kind != KindBranch {
		return n
	}
	child := n.kids[path[0]]
	next := setLeaf(child, path[1:], transform)
	if next == child {
		return n
	}
	out := &Node[P]{kind: KindBranch, keys: n.keys, kids: make(map[string]*Node[P], len(n.kids))}
	for k, v := range n.kids {
		out.kids[k] = v
	}
	out.kids[path[0]] = next
	return out
}

// mapLeaves rebuilds the tree applying transform to every leaf payload.
func mapLeaves[P any](n *Node[P], transform func(Path, P) P) *Node[P] {
	return mapLeavesAt(n, nil, transform)
}

func mapLeavesAt[P any](n *Node[P], prefix Path, transform func(Path, P) P) *Node[P] {
	if n == nil {
		return nil
	}
	if n.kind == KindLeaf {
		return NewLeaf(transform(prefix.clone(), n.leaf))
	}
	out := &Node[P]{kind: KindBranch, keys: n.keys, kids: make(map[string]*Node[P], len(n.kids))}
	for _, k := range n.keys {
		out.kids[k] = mapLeavesAt(n.kids[k], append(prefix, k), transform)
	}
	return out
}
