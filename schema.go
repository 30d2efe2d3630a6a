package formbind

// Rule evaluates a leaf value against the whole-object value and returns nil
// on success. The first failing rule's message becomes the leaf's error.
// Rules must be pure and deterministic given their two inputs, and must not
// mutate the whole map. Built-in rules fail with an Issue so callers can
// recover code and params via AsIssues/errors.As; any other error is carried
// by its message.
type Rule func(value any, whole map[string]any) error

// LeafSchema declares one field: its default value and its validation rules.
// Arrays are leaf values regardless of element type; the tree never recurses
// into them.
type LeafSchema struct {
	Default any
	Rules   []Rule
}

// The three parallel trees are the same structural recursion instantiated
// with different leaf payloads.
type (
	SchemaNode  = Node[LeafSchema]
	StateNode   = Node[LeafState]
	BindingNode = Node[*Binding]
)
