package dsl

import (
	formbind "github.com/reoring/formbind"
	"github.com/reoring/formbind/rules"
)

// Text declares a string leaf defaulting to "".
func Text() *LeafBuilder { return &LeafBuilder{def: ""} }

// Flag declares a boolean leaf defaulting to false.
func Flag() *LeafBuilder { return &LeafBuilder{def: false} }

// Count declares a numeric leaf defaulting to zero.
func Count() *LeafBuilder { return &LeafBuilder{def: 0} }

// List declares a list leaf defaulting to an empty list. Lists are opaque
// leaf values; the schema never recurses into their elements.
func List() *LeafBuilder { return &LeafBuilder{def: []any{}} }

// NonEmptyList declares a list leaf defaulting to an empty list that must
// not be empty. The non-empty check replaces the default required rule;
// Rules still overrides.
func NonEmptyList() *LeafBuilder {
	return &LeafBuilder{def: []any{}, rules: []formbind.Rule{rules.NonEmpty()}, explicit: true}
}

// Leaf declares a leaf with an arbitrary default value.
func Leaf(def any) *LeafBuilder { return &LeafBuilder{def: def} }
