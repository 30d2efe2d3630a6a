package dsl

import (
	"fmt"

	formbind "github.com/reoring/formbind"
	"github.com/reoring/formbind/rules"
)

// SchemaSpec is anything that can yield a schema node: leaf builders, object
// builders, and raw nodes via Raw.
type SchemaSpec interface {
	schemaNode() (*formbind.SchemaNode, error)
}

// ObjectBuilder assembles a branch node. Field order is declaration order
// and becomes the schema's traversal order.
type ObjectBuilder struct {
	keys   []string
	fields map[string]SchemaSpec
	err    error
}

// Object creates a new object builder.
func Object() *ObjectBuilder {
	return &ObjectBuilder{fields: map[string]SchemaSpec{}}
}

// Field registers a child under name. Empty and duplicate names are build
// errors, surfaced by Build/MustBuild.
func (b *ObjectBuilder) Field(name string, spec SchemaSpec) *ObjectBuilder {
	if b.err != nil {
		return b
	}
	if name == "" {
		b.err = fmt.Errorf("dsl: empty field name")
		return b
	}
	if _, dup := b.fields[name]; dup {
		b.err = fmt.Errorf("dsl: duplicate field %q", name)
		return b
	}
	if spec == nil {
		b.err = fmt.Errorf("dsl: nil spec for field %q", name)
		return b
	}
	b.keys = append(b.keys, name)
	b.fields[name] = spec
	return b
}

// Build assembles the schema tree, propagating any nested builder error.
func (b *ObjectBuilder) Build() (*formbind.SchemaNode, error) {
	return b.schemaNode()
}

// MustBuild panics when Build fails.
func (b *ObjectBuilder) MustBuild() *formbind.SchemaNode {
	n, err := b.Build()
	if err != nil {
		panic(err)
	}
	return n
}

func (b *ObjectBuilder) schemaNode() (*formbind.SchemaNode, error) {
	if b.err != nil {
		return nil, b.err
	}
	out := formbind.NewBranch[formbind.LeafSchema]()
	for _, k := range b.keys {
		child, err := b.fields[k].schemaNode()
		if err != nil {
			return nil, err
		}
		out.Put(k, child)
	}
	return out, nil
}

// Raw adapts an already-built schema node into a SchemaSpec, so hand-built
// subtrees can be embedded into a builder chain.
func Raw(n *formbind.SchemaNode) SchemaSpec { return rawSpec{n: n} }

type rawSpec struct{ n *formbind.SchemaNode }

func (r rawSpec) schemaNode() (*formbind.SchemaNode, error) {
	if r.n == nil {
		return nil, fmt.Errorf("dsl: Raw(nil)")
	}
	return r.n, nil
}

// LeafBuilder declares one field. Until Rules is called the leaf carries the
// single required rule; Rules replaces the list, and calling it with no
// arguments clears it.
type LeafBuilder struct {
	def      any
	rules    []formbind.Rule
	explicit bool
}

// Default overrides the leaf's default value.
func (l *LeafBuilder) Default(v any) *LeafBuilder {
	l.def = v
	return l
}

// Rules replaces the rule list.
func (l *LeafBuilder) Rules(rs ...formbind.Rule) *LeafBuilder {
	l.rules = rs
	l.explicit = true
	return l
}

func (l *LeafBuilder) schemaNode() (*formbind.SchemaNode, error) {
	rs := l.rules
	if !l.explicit {
		rs = []formbind.Rule{rules.Required()}
	}
	return formbind.NewLeaf(formbind.LeafSchema{Default: l.def, Rules: rs}), nil
}
