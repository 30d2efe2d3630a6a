package formbind

// Package formbind provides:
//
// - Schema-driven form state management: a declarative schema tree yields a
//   live state tree (value/touched/error per leaf) and a regenerated tree of
//   bound mutators (Set/SetAndValidate/Reset/Validate per leaf)
// - Whole-form operations (ValidateAll/ResetAll/Value) evaluated against one
//   consistent state snapshot, plus derived aggregates (IsEmpty/IsTouched)
// - A stable error model via Issue/Issues (JSON Pointer, code, message);
//   validation errors are data on leaves, never panics
// - A debounced change-notification bridge (Options.OnStateChange) with
//   flush-or-drop teardown semantics (Form.Close)
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place the schema DSL under dsl/, built-in rules under rules/, document codecs under codec/,
//   and the CLI under cmd/formbind.
// - All mutation is copy-on-write against a single state cell per Form; bindings close over
//   a path and the cell, never over a state snapshot, so batched mutator calls compose.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := dsl.Object().
//		Field("name", dsl.Text()).
//		Field("address", dsl.Object().
//			Field("city", dsl.Text())).
//		MustBuild()
//
//	f := formbind.New(s, seed, formbind.Options{OnStateChange: persist})
//	defer f.Close()
//
//	b, _ := formbind.LeafAt(f.Bindings(), "name")
//	ok := b.SetAndValidate("Ada")
//	valid := f.ValidateAll()
//	value := f.Value()
//
// A Form is bound to the schema it was constructed with; when the host's
// schema changes, tear the old instance down and construct a new one.
