package formbind

import "github.com/reoring/formbind/internal/objpath"

// Validate runs every leaf's rules against an already-formed object, outside
// the interactive binding lifecycle. It reports true iff no rule fails.
func Validate(whole map[string]any, schema *SchemaNode) bool {
	return len(ValidateIssues(whole, schema)) == 0
}

// ValidateIssues is Validate returning the failing leaves as Issues with
// JSON Pointer paths; nil when the object is valid. Per leaf only the first
// failing rule is reported.
func ValidateIssues(whole map[string]any, schema *SchemaNode) Issues {
	var iss Issues
	ForEachLeaf(schema, func(p Path, ls LeafSchema) {
		v, _ := objpath.Get(whole, p)
		for _, r := range ls.Rules {
			if r == nil {
				continue
			}
			if err := r(v, whole); err != nil {
				iss = AppendIssues(iss, issueAt(p, err))
				break
			}
		}
	})
	return iss
}
