package dsl_test

import (
	"testing"

	formbind "github.com/reoring/formbind"
	g "github.com/reoring/formbind/dsl"
)

func TestObject_PreservesFieldOrder(t *testing.T) {
	s := g.Object().
		Field("z", g.Text()).
		Field("a", g.Text()).
		Field("m", g.Object().
			Field("inner", g.Text())).
		MustBuild()

	var got []string
	formbind.ForEachLeaf(s, func(p formbind.Path, _ formbind.LeafSchema) {
		got = append(got, p.Pointer())
	})
	want := []string{"/z", "/a", "/m/inner"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("field order lost: %v", got)
		}
	}
}

func TestLeafConstructors_DefaultsAndRules(t *testing.T) {
	s := g.Object().
		Field("text", g.Text()).
		Field("flag", g.Flag()).
		Field("count", g.Count()).
		Field("list", g.List()).
		Field("tags", g.NonEmptyList()).
		Field("free", g.Text().Rules()).
		MustBuild()

	cases := []struct {
		name   string
		def    any
		nrules int
	}{
		{"text", "", 1},
		{"flag", false, 1},
		{"count", 0, 1},
		{"free", "", 0},
	}
	for _, c := range cases {
		ls, ok := formbind.LeafAt(s, c.name)
		if !ok {
			t.Fatalf("missing leaf %s", c.name)
		}
		if ls.Default != c.def {
			t.Fatalf("%s: expected default %#v, got %#v", c.name, c.def, ls.Default)
		}
		if len(ls.Rules) != c.nrules {
			t.Fatalf("%s: expected %d rules, got %d", c.name, c.nrules, len(ls.Rules))
		}
	}

	list, _ := formbind.LeafAt(s, "list")
	if vs, ok := list.Default.([]any); !ok || len(vs) != 0 {
		t.Fatalf("list default must be an empty list, got %#v", list.Default)
	}

	// The non-empty check replaces required and fails the empty default.
	tags, _ := formbind.LeafAt(s, "tags")
	if len(tags.Rules) != 1 {
		t.Fatalf("nonempty-list must carry exactly the non-empty rule")
	}
	if err := tags.Rules[0]([]any{}, nil); err == nil {
		t.Fatalf("empty list must fail the non-empty rule")
	}
	if err := tags.Rules[0]([]any{1}, nil); err != nil {
		t.Fatalf("populated list must pass, got %v", err)
	}
}

func TestBuild_SurfacesBuilderErrors(t *testing.T) {
	if _, err := g.Object().Field("", g.Text()).Build(); err == nil {
		t.Fatalf("empty field name must error")
	}
	if _, err := g.Object().Field("a", g.Text()).Field("a", g.Text()).Build(); err == nil {
		t.Fatalf("duplicate field must error")
	}
	if _, err := g.Object().Field("a", nil).Build(); err == nil {
		t.Fatalf("nil spec must error")
	}
	// Nested builder errors propagate to the outermost Build.
	if _, err := g.Object().Field("outer", g.Object().Field("", g.Text())).Build(); err == nil {
		t.Fatalf("nested error must propagate")
	}
}

func TestMustBuild_PanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	g.Object().Field("", g.Text()).MustBuild()
}

func TestRaw_EmbedsPrebuiltSubtree(t *testing.T) {
	sub := formbind.NewLeaf(formbind.LeafSchema{Default: 42})
	s := g.Object().Field("answer", g.Raw(sub)).MustBuild()
	ls, ok := formbind.LeafAt(s, "answer")
	if !ok || ls.Default != 42 {
		t.Fatalf("raw subtree lost: ok=%v %#v", ok, ls)
	}
}
