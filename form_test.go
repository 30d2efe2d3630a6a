package formbind_test

import (
	"errors"
	"reflect"
	"testing"

	formbind "github.com/reoring/formbind"
	g "github.com/reoring/formbind/dsl"
	"github.com/reoring/formbind/rules"
)

func mustBinding(t *testing.T, f *formbind.Form, path ...string) *formbind.Binding {
	t.Helper()
	b, ok := formbind.LeafAt(f.Bindings(), path...)
	if !ok {
		t.Fatalf("no binding at %v", path)
	}
	return b
}

func TestValidateAll_RequiredAndRuleFreeFields(t *testing.T) {
	s := g.Object().
		Field("name", g.Text()).
		Field("age", g.Count().Rules()).
		MustBuild()
	f := formbind.New(s, nil)
	defer f.Close()

	if f.ValidateAll() {
		t.Fatalf("empty required name must fail validation")
	}
	if got := mustBinding(t, f, "name").Error; got != "This field is required" {
		t.Fatalf("name error: expected required message, got %q", got)
	}
	if got := mustBinding(t, f, "age").Error; got != "" {
		t.Fatalf("rule-free age must carry no error, got %q", got)
	}

	mustBinding(t, f, "name").Set("Ada")
	if !f.ValidateAll() {
		t.Fatalf("expected valid form after filling name")
	}
	if got := mustBinding(t, f, "name").Error; got != "" {
		t.Fatalf("revalidation must clear the error, got %q", got)
	}
}

func TestSetAndValidate_CrossFieldRuleSeesSiblingPreUpdateValues(t *testing.T) {
	needsDescription := func(v any, whole map[string]any) error {
		if v == nil {
			return nil
		}
		if d, _ := whole["description"].(string); d == "" {
			return errors.New("To upload a photo, you need to add a description")
		}
		return nil
	}
	s := g.Object().
		Field("description", g.Text().Rules()).
		Field("picture", g.Leaf(nil).Rules(needsDescription)).
		MustBuild()
	f := formbind.New(s, map[string]any{"description": nil, "picture": nil})
	defer f.Close()

	if mustBinding(t, f, "picture").SetAndValidate("bytes") {
		t.Fatalf("picture without description must fail")
	}
	if got := mustBinding(t, f, "picture").Error; got != "To upload a photo, you need to add a description" {
		t.Fatalf("unexpected picture error %q", got)
	}

	// A prior mutator invocation is visible to the next one's snapshot.
	mustBinding(t, f, "description").Set("a lovely photo")
	if !mustBinding(t, f, "picture").SetAndValidate("bytes") {
		t.Fatalf("picture with description must pass")
	}
	if got := mustBinding(t, f, "picture").Error; got != "" {
		t.Fatalf("expected cleared error, got %q", got)
	}
}

func TestSetAndValidate_RuleNeverSeesItsOwnUpdate(t *testing.T) {
	sawWhole := map[string]any(nil)
	spy := func(v any, whole map[string]any) error {
		sawWhole = whole
		return nil
	}
	s := g.Object().
		Field("name", g.Text().Rules(spy)).
		MustBuild()
	f := formbind.New(s, map[string]any{"name": "old"})
	defer f.Close()

	if !mustBinding(t, f, "name").SetAndValidate("new") {
		t.Fatalf("spy rule never fails")
	}
	if sawWhole["name"] != "old" {
		t.Fatalf("rule must see the pre-update whole-object value, saw %v", sawWhole["name"])
	}
	if got := f.Value()["name"]; got != "new" {
		t.Fatalf("update must still apply, got %v", got)
	}
}

func TestNonEmptyListLifecycle(t *testing.T) {
	s := g.Object().
		Field("tags", g.NonEmptyList()).
		MustBuild()
	f := formbind.New(s, nil)
	defer f.Close()

	b := mustBinding(t, f, "tags")
	b.Set([]any{1, 2, 3})
	if !f.ValidateAll() {
		t.Fatalf("populated list must validate")
	}
	mustBinding(t, f, "tags").Set([]any{})
	if f.ValidateAll() {
		t.Fatalf("emptied list must fail validation")
	}
	if got := mustBinding(t, f, "tags").Error; got != "This field can't be empty." {
		t.Fatalf("unexpected list error %q", got)
	}
}

func TestBatchedSetsComposeCumulatively(t *testing.T) {
	s := g.Object().
		Field("a", g.Text().Rules()).
		Field("b", g.Text().Rules()).
		MustBuild()
	f := formbind.New(s, nil)
	defer f.Close()

	// Both bindings come from the same synthesis; the second Set must not
	// lose the first one's update.
	bs := f.Bindings()
	ba, _ := formbind.LeafAt(bs, "a")
	bb, _ := formbind.LeafAt(bs, "b")
	ba.Set("one")
	bb.Set("two")

	got := f.Value()
	if got["a"] != "one" || got["b"] != "two" {
		t.Fatalf("lost update in batch: %#v", got)
	}
}

func TestBindingsAreRegeneratedSnapshots(t *testing.T) {
	s := g.Object().Field("name", g.Text()).MustBuild()
	f := formbind.New(s, map[string]any{"name": "before"})
	defer f.Close()

	old := mustBinding(t, f, "name")
	old.Set("after")
	if old.Value != "before" {
		t.Fatalf("a synthesized binding is a snapshot; it must not mutate in place")
	}
	if fresh := mustBinding(t, f, "name"); fresh.Value != "after" || !fresh.Touched {
		t.Fatalf("re-read binding must carry the new state, got %+v", fresh)
	}
}

func TestResetLeafAndResetAll(t *testing.T) {
	s := g.Object().
		Field("name", g.Text()).
		Field("address", g.Object().
			Field("city", g.Text().Rules())).
		MustBuild()
	seed := map[string]any{"name": "Ada", "address": map[string]any{"city": "London"}}
	f := formbind.New(s, seed)
	defer f.Close()

	mustBinding(t, f, "name").SetAndValidate("")
	mustBinding(t, f, "address", "city").Set("Paris")
	if !f.IsTouched() {
		t.Fatalf("expected touched form")
	}

	// Leaf reset restores the initial value, not the previous one.
	mustBinding(t, f, "name").Reset()
	nb := mustBinding(t, f, "name")
	if nb.Value != "Ada" || nb.Touched || nb.Error != "" {
		t.Fatalf("leaf reset mismatch: %+v", nb)
	}

	f.ResetAll()
	if f.IsTouched() {
		t.Fatalf("ResetAll must untouch every leaf")
	}
	if !reflect.DeepEqual(f.Value(), seed) {
		t.Fatalf("ResetAll must restore the post-construction value, got %#v", f.Value())
	}

	override := map[string]any{"name": "Grace", "address": map[string]any{"city": "Oslo"}}
	f.ResetAllTo(override)
	if !reflect.DeepEqual(f.Value(), override) {
		t.Fatalf("ResetAllTo must reshape the override, got %#v", f.Value())
	}

	// Partial overrides fall back to the initial state per leaf.
	f.ResetAllTo(map[string]any{"name": "Lin"})
	got := f.Value()
	if got["name"] != "Lin" {
		t.Fatalf("override leaf not applied: %#v", got)
	}
	if got["address"].(map[string]any)["city"] != "London" {
		t.Fatalf("uncovered leaf must fall back to initial value: %#v", got)
	}
}

func TestResetToOverridesSingleLeaf(t *testing.T) {
	s := g.Object().Field("name", g.Text()).MustBuild()
	f := formbind.New(s, map[string]any{"name": "Ada"})
	defer f.Close()

	mustBinding(t, f, "name").ResetTo("Grace")
	b := mustBinding(t, f, "name")
	if b.Value != "Grace" || b.Touched || b.Error != "" {
		t.Fatalf("ResetTo mismatch: %+v", b)
	}
}

func TestValidateLeafLeavesTouchedAlone(t *testing.T) {
	s := g.Object().Field("name", g.Text()).MustBuild()
	f := formbind.New(s, nil)
	defer f.Close()

	mustBinding(t, f, "name").Validate()
	b := mustBinding(t, f, "name")
	if b.Touched {
		t.Fatalf("Validate must not touch the leaf")
	}
	if b.Error != "This field is required" {
		t.Fatalf("expected required error, got %q", b.Error)
	}
}

func TestIsEmptyAndIsTouchedAggregates(t *testing.T) {
	s := g.Object().
		Field("name", g.Text().Rules()).
		Field("tags", g.List().Rules()).
		Field("count", g.Leaf(nil).Rules()).
		MustBuild()
	f := formbind.New(s, nil)
	defer f.Close()

	if !f.IsEmpty() {
		t.Fatalf("defaults ('', [], nil) are all empty")
	}
	if f.IsTouched() {
		t.Fatalf("fresh form must be untouched")
	}

	// Zero is a value: flipping one leaf to a non-empty value flips IsEmpty.
	mustBinding(t, f, "count").Set(0)
	if f.IsEmpty() {
		t.Fatalf("a 0-valued leaf is not empty")
	}
	if !f.IsTouched() {
		t.Fatalf("Set must mark the leaf touched")
	}

	mustBinding(t, f, "count").Reset()
	if !f.IsEmpty() || f.IsTouched() {
		t.Fatalf("reset must restore empty/untouched aggregates")
	}
}

func TestIssues_ReportsPointerPaths(t *testing.T) {
	s := g.Object().
		Field("name", g.Text()).
		Field("address", g.Object().
			Field("city", g.Text())).
		MustBuild()
	f := formbind.New(s, map[string]any{"name": "Ada"})
	defer f.Close()

	iss := f.Issues()
	if len(iss) != 1 {
		t.Fatalf("expected exactly one failing leaf, got %v", iss)
	}
	if iss[0].Path != "/address/city" || iss[0].Code != formbind.CodeRequired {
		t.Fatalf("unexpected issue %+v", iss[0])
	}
	if got := mustBinding(t, f, "address", "city").Error; got != "This field is required" {
		t.Fatalf("Issues must also record leaf errors, got %q", got)
	}
}

func TestRuleCombinatorsInsideForm(t *testing.T) {
	s := g.Object().
		Field("status", g.Text().Rules()).
		Field("reason", g.Text().Rules(
			rules.If("/status", rules.Eq, "rejected").Then(rules.Required()),
		)).
		MustBuild()
	f := formbind.New(s, nil)
	defer f.Close()

	if !f.ValidateAll() {
		t.Fatalf("reason is only required for rejected status")
	}
	mustBinding(t, f, "status").Set("rejected")
	if f.ValidateAll() {
		t.Fatalf("rejected status requires a reason")
	}
	mustBinding(t, f, "reason").Set("incomplete paperwork")
	if !f.ValidateAll() {
		t.Fatalf("expected valid form once reason is present")
	}
}
