package formbind_test

import (
	"testing"

	formbind "github.com/reoring/formbind"
	g "github.com/reoring/formbind/dsl"
)

func TestValidate_OneShotOutsideBindingLifecycle(t *testing.T) {
	s := g.Object().
		Field("name", g.Text()).
		Field("address", g.Object().
			Field("city", g.Text())).
		MustBuild()

	ok := formbind.Validate(map[string]any{
		"name":    "Ada",
		"address": map[string]any{"city": "London"},
	}, s)
	if !ok {
		t.Fatalf("complete object must validate")
	}

	if formbind.Validate(map[string]any{"name": "Ada"}, s) {
		t.Fatalf("missing required city must fail")
	}
}

func TestValidateIssues_FirstFailurePerLeafWithPointerPaths(t *testing.T) {
	failBoth := func(any, map[string]any) error {
		return formbind.Issue{Code: "custom", Message: "custom failure"}
	}
	s := g.Object().
		Field("name", g.Text().Rules(failBoth, failBoth)).
		Field("a/b", g.Text()).
		MustBuild()

	iss := formbind.ValidateIssues(map[string]any{}, s)
	if len(iss) != 2 {
		t.Fatalf("expected one issue per failing leaf, got %v", iss)
	}
	if iss[0].Path != "/name" || iss[0].Code != "custom" {
		t.Fatalf("unexpected first issue %+v", iss[0])
	}
	if iss[1].Path != "/a~1b" {
		t.Fatalf("pointer escaping lost: %+v", iss[1])
	}
}

func TestValidateIssues_PlainErrorsBecomeRuleIssues(t *testing.T) {
	s := g.Object().
		Field("name", g.Text().Rules(func(any, map[string]any) error {
			return errString("boom")
		})).
		MustBuild()
	iss := formbind.ValidateIssues(nil, s)
	if len(iss) != 1 || iss[0].Code != formbind.CodeRule || iss[0].Message != "boom" {
		t.Fatalf("unexpected issues %v", iss)
	}
}

type errString string

func (e errString) Error() string { return string(e) }
