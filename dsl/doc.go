// Package dsl provides the fluent schema builders for formbind.
//
// Overview
//   - Builder API: declare the form's shape with Object()/Field(...) and
//     finish with Build()/MustBuild().
//   - Leaf constructors: Text()/Flag()/Count()/List()/NonEmptyList()/Leaf(v)
//     produce a leaf with a type-appropriate default and, unless Rules is
//     called, the single required rule.
//   - Rules: Field("age", Count().Rules(rules.NonNegative())) replaces the
//     rule list; Rules() with no arguments clears it entirely.
//   - Raw: embed an already-built *formbind.SchemaNode into a builder chain.
//
// Entry points
//   - Object(): create an object builder; chain Field then MustBuild()/Build.
//   - Nesting: Field("address", Object().Field("city", Text())) — builders
//     compose directly, errors propagate to the outermost Build.
package dsl
