// Package codec loads declarative form definitions and seed/value documents.
//
// A form definition is a YAML (or JSON) document mirroring the schema tree:
//
//	fields:
//	  name: { kind: text }
//	  address:
//	    fields:
//	      city: { kind: text }
//	  tags: { kind: nonempty-list }
//	  age:  { kind: count, rules: [nonnegative] }
//
// Field order in the document becomes traversal order in the schema. Leaf
// kinds map to the dsl leaf constructors; a rules list replaces the kind's
// default rule (an empty list clears it). Unknown keys, kinds and rule names
// are errors.
package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	formbind "github.com/reoring/formbind"
	"github.com/reoring/formbind/rules"
)

var ruleRegistry = map[string]func() formbind.Rule{
	"required":    rules.Required,
	"nonempty":    rules.NonEmpty,
	"positive":    rules.Positive,
	"nonnegative": rules.NonNegative,
}

// SchemaFromYAML loads a form definition document into a schema tree.
func SchemaFromYAML(data []byte) (*formbind.SchemaNode, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("codec: parse form definition: %w", err)
	}
	doc := &root
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, fmt.Errorf("codec: empty form definition")
		}
		doc = doc.Content[0]
	}
	return buildNode(doc, "")
}

// SchemaFromJSON accepts the same definition document as JSON. JSON being a
// subset of YAML, parsing is delegated to the YAML loader, which preserves
// field order.
func SchemaFromJSON(data []byte) (*formbind.SchemaNode, error) {
	return SchemaFromYAML(data)
}

func buildNode(n *yaml.Node, at string) (*formbind.SchemaNode, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("codec: %s: expected a mapping", pointerOr(at))
	}
	var kind, fields, def, ruleList *yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		val := n.Content[i+1]
		switch key {
		case "kind":
			kind = val
		case "fields":
			fields = val
		case "default":
			def = val
		case "rules":
			ruleList = val
		default:
			return nil, fmt.Errorf("codec: %s: unknown key %q", pointerOr(at), key)
		}
	}
	switch {
	case fields != nil:
		if kind != nil || def != nil || ruleList != nil {
			return nil, fmt.Errorf("codec: %s: fields cannot be combined with kind/default/rules", pointerOr(at))
		}
		return buildBranch(fields, at)
	case kind != nil:
		return buildLeaf(kind, def, ruleList, at)
	default:
		return nil, fmt.Errorf("codec: %s: need either kind or fields", pointerOr(at))
	}
}

func buildBranch(fields *yaml.Node, at string) (*formbind.SchemaNode, error) {
	if fields.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("codec: %s: fields must be a mapping", pointerOr(at))
	}
	out := formbind.NewBranch[formbind.LeafSchema]()
	seen := map[string]bool{}
	for i := 0; i+1 < len(fields.Content); i += 2 {
		name := fields.Content[i].Value
		if name == "" {
			return nil, fmt.Errorf("codec: %s: empty field name", pointerOr(at))
		}
		if seen[name] {
			return nil, fmt.Errorf("codec: %s: duplicate field %q", pointerOr(at), name)
		}
		seen[name] = true
		child, err := buildNode(fields.Content[i+1], at+"/"+name)
		if err != nil {
			return nil, err
		}
		out.Put(name, child)
	}
	return out, nil
}

func buildLeaf(kind, def, ruleList *yaml.Node, at string) (*formbind.SchemaNode, error) {
	ls := formbind.LeafSchema{}
	switch kind.Value {
	case "text":
		ls.Default = ""
		ls.Rules = []formbind.Rule{rules.Required()}
	case "flag":
		ls.Default = false
		ls.Rules = []formbind.Rule{rules.Required()}
	case "count":
		ls.Default = 0
		ls.Rules = []formbind.Rule{rules.Required()}
	case "list":
		ls.Default = []any{}
		ls.Rules = []formbind.Rule{rules.Required()}
	case "nonempty-list":
		ls.Default = []any{}
		ls.Rules = []formbind.Rule{rules.NonEmpty()}
	default:
		return nil, fmt.Errorf("codec: %s: unknown kind %q", pointerOr(at), kind.Value)
	}
	if def != nil {
		var v any
		if err := def.Decode(&v); err != nil {
			return nil, fmt.Errorf("codec: %s: decode default: %w", pointerOr(at), err)
		}
		ls.Default = v
	}
	if ruleList != nil {
		rs, err := decodeRules(ruleList, at)
		if err != nil {
			return nil, err
		}
		ls.Rules = rs
	}
	return formbind.NewLeaf(ls), nil
}

func decodeRules(n *yaml.Node, at string) ([]formbind.Rule, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("codec: %s: rules must be a list of names", pointerOr(at))
	}
	out := make([]formbind.Rule, 0, len(n.Content))
	for _, item := range n.Content {
		mk, ok := ruleRegistry[item.Value]
		if !ok {
			return nil, fmt.Errorf("codec: %s: unknown rule %q", pointerOr(at), item.Value)
		}
		out = append(out, mk())
	}
	return out, nil
}

func pointerOr(at string) string {
	if at == "" {
		return "/"
	}
	return at
}
