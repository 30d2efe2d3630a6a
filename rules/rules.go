// Package rules provides the built-in validation rules and combinators for
// formbind schemas. Rules are pure functions of (leafValue, wholeObject);
// failures are Issues whose messages come from the i18n catalog.
package rules

import (
	"reflect"

	formbind "github.com/reoring/formbind"
	"github.com/reoring/formbind/i18n"
	"github.com/reoring/formbind/internal/objpath"
)

// Required fails on nil values and the empty string.
func Required() formbind.Rule {
	return func(v any, _ map[string]any) error {
		if v == nil {
			return fail(formbind.CodeRequired, "required", nil)
		}
		if s, ok := v.(string); ok && s == "" {
			return fail(formbind.CodeRequired, "required", nil)
		}
		return nil
	}
}

// NonEmpty fails on nil values and zero-length lists.
func NonEmpty() formbind.Rule {
	return func(v any, _ map[string]any) error {
		if v == nil {
			return fail(formbind.CodeEmptyList, "non_empty", nil)
		}
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			if rv.Len() == 0 {
				return fail(formbind.CodeEmptyList, "non_empty", map[string]any{"minItems": 1})
			}
		}
		return nil
	}
}

// Positive fails on nil values and numbers <= 0. Non-numeric values pass;
// type enforcement is the schema author's concern, not this rule's.
func Positive() formbind.Rule {
	return func(v any, _ map[string]any) error {
		if v == nil {
			return fail(formbind.CodeNotPositive, "positive", nil)
		}
		if n, ok := toFloat(v); ok && n <= 0 {
			return fail(formbind.CodeNotPositive, "positive", map[string]any{"got": v})
		}
		return nil
	}
}

// NonNegative fails on nil values and numbers < 0.
func NonNegative() formbind.Rule {
	return func(v any, _ map[string]any) error {
		if v == nil {
			return fail(formbind.CodeNegative, "non_negative", nil)
		}
		if n, ok := toFloat(v); ok && n < 0 {
			return fail(formbind.CodeNegative, "non_negative", map[string]any{"got": v})
		}
		return nil
	}
}

func fail(code, rule string, params map[string]any) formbind.Issue {
	return formbind.Issue{Code: code, Message: i18n.T(code, nil), Params: params, Rule: rule}
}

// ---------- Rule combinators ----------

// And executes rules in order and fails with the first failure.
func And(rules ...formbind.Rule) formbind.Rule {
	return func(v any, whole map[string]any) error {
		for _, r := range rules {
			if r == nil {
				continue
			}
			if err := r(v, whole); err != nil {
				return err
			}
		}
		return nil
	}
}

// Or succeeds if any rule passes; when all fail it returns the first failure.
func Or(rules ...formbind.Rule) formbind.Rule {
	return func(v any, whole map[string]any) error {
		var first error
		ran := false
		for _, r := range rules {
			if r == nil {
				continue
			}
			err := r(v, whole)
			if err == nil {
				return nil
			}
			if !ran {
				first = err
				ran = true
			}
		}
		if ran {
			return first
		}
		return nil
	}
}

// ---------- Conditional rules over the whole-object value ----------

// Op defines simple comparison operators for If(...).Then(...)
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// Conditional composes conditional execution of rules against the
// whole-object value.
type Conditional struct {
	path formbind.Path
	op   Op
	want any
	all  []Conditional // composite AND
	any  []Conditional // composite OR
}

// If builds a conditional that evaluates a whole-object path against a value
// using an operator. The path is a JSON Pointer like "/status".
func If(path string, op Op, want any) Conditional {
	return Conditional{path: formbind.ParsePointer(path), op: op, want: want}
}

// IfAll builds a conditional that requires all conditions to hold.
func IfAll(conds ...Conditional) Conditional { return Conditional{all: conds} }

// IfAny builds a conditional that requires any condition to hold.
func IfAny(conds ...Conditional) Conditional { return Conditional{any: conds} }

// And combines the receiver with additional conditions using logical AND.
func (c Conditional) And(others ...Conditional) Conditional {
	return IfAll(append([]Conditional{c}, others...)...)
}

// Or combines the receiver with additional conditions using logical OR.
func (c Conditional) Or(others ...Conditional) Conditional {
	return IfAny(append([]Conditional{c}, others...)...)
}

// Then attaches rules to run when the condition is satisfied; the leaf
// passes whenever the condition does not hold.
func (c Conditional) Then(rules ...formbind.Rule) formbind.Rule {
	return func(v any, whole map[string]any) error {
		if !evalConditional(whole, c) {
			return nil
		}
		return And(rules...)(v, whole)
	}
}

func evalConditional(whole map[string]any, c Conditional) bool {
	if len(c.all) > 0 {
		for _, it := range c.all {
			if !evalConditional(whole, it) {
				return false
			}
		}
		return true
	}
	if len(c.any) > 0 {
		for _, it := range c.any {
			if evalConditional(whole, it) {
				return true
			}
		}
		return false
	}
	cur, ok := objpath.Get(whole, c.path)
	if !ok {
		return false
	}
	return compare(cur, c.op, c.want)
}

func compare(cur any, op Op, want any) bool {
	switch op {
	case Eq:
		return reflect.DeepEqual(cur, want)
	case Ne:
		return !reflect.DeepEqual(cur, want)
	case Lt, Le, Gt, Ge:
		a, aok := toFloat(cur)
		b, bok := toFloat(want)
		if !aok || !bok {
			return false
		}
		switch op {
		case Lt:
			return a < b
		case Le:
			return a <= b
		case Gt:
			return a > b
		case Ge:
			return a >= b
		}
	}
	return false
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
