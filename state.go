package formbind

import (
	"reflect"

	"github.com/reoring/formbind/internal/objpath"
)

// LeafState is the live per-field state held inside a Form.
type LeafState struct {
	Value   any
	Touched bool
	Error   string // first failing rule's message; empty when valid
	Rules   []Rule
}

// DeriveInitialState builds the initial state tree from a schema plus an
// optional seed object. A seed value wins iff it is present and non-nil;
// definedness, not truthiness, decides, so falsy-but-meaningful seed values
// (0, false, "") are preserved. Every other leaf takes its schema default.
// touched starts false, error starts empty, rules carry over verbatim.
//
// A seed whose shape disagrees with the schema is not an error: missing or
// non-object segments simply fall back to the default.
func DeriveInitialState(schema *SchemaNode, seed map[string]any) *StateNode {
	return deriveNode(schema, nil, seed)
}

func deriveNode(n *SchemaNode, prefix Path, seed map[string]any) *StateNode {
	if n == nil {
		return nil
	}
	if n.Kind() == KindLeaf {
		ls := n.Leaf()
		v := ls.Default
		if sv, ok := objpath.Get(seed, prefix); ok && sv != nil {
			v = sv
		}
		return NewLeaf(LeafState{Value: v, Rules: ls.Rules})
	}
	out := NewBranch[LeafState]()
	for _, k := range n.Keys() {
		if c := n.Child(k); c != nil {
			out.Put(k, deriveNode(c, append(prefix, k), seed))
		}
	}
	return out
}

// extract flattens the state tree's leaf values into a fresh plain nested
// object matching the schema shape.
func extract(n *StateNode) map[string]any {
	out := map[string]any{}
	ForEachLeaf(n, func(p Path, ls LeafState) {
		objpath.Put(out, p, ls.Value)
	})
	return out
}

// firstError evaluates rules in order against (value, whole) and returns the
// first failure's message; empty when every rule passes.
func firstError(rules []Rule, value any, whole map[string]any) string {
	for _, r := range rules {
		if r == nil {
			continue
		}
		if err := r(value, whole); err != nil {
			return err.Error()
		}
	}
	return ""
}

// isEmptyValue is the semantic empty test behind IsEmpty: nil, the empty
// string, or a zero-length list.
func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len() == 0
	}
	return false
}

func existsTouched(n *StateNode) bool {
	return ExistsLeaf(n, func(ls LeafState) bool { return ls.Touched })
}
