package formbind

import (
	"errors"
	"fmt"
	"strings"
)

// Rule codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired    = "required"
	CodeEmptyList   = "empty_list"
	CodeNotPositive = "not_positive"
	CodeNegative    = "negative"
	// CodeRule is the catch-all for caller-supplied rules that return a plain
	// error rather than an Issue.
	CodeRule = "rule"
)

// Issue represents a single validation entry. Leaf errors are data produced
// by rule evaluation, never thrown; a rule that panics is a caller bug and
// propagates to the host.
type Issue struct {
	Path    string // JSON Pointer of the leaf (for example: /address/city).
	Code    string // One of the codes listed above, or caller-defined.
	Message string
	// Params carries structured parameters (e.g., {"min": 1, "got": 0})
	// for i18n and observability.
	Params map[string]any
	// Rule optionally records the rule name that produced this issue.
	Rule string
}

// Error returns the human-readable message; the code when no message is set.
func (it Issue) Error() string {
	if it.Message != "" {
		return it.Message
	}
	return it.Code
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. required at /name
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// issueAt normalizes a rule failure into an Issue anchored at path.
func issueAt(p Path, err error) Issue {
	var it Issue
	if errors.As(err, &it) {
		it.Path = p.Pointer()
		return it
	}
	return Issue{Path: p.Pointer(), Code: CodeRule, Message: err.Error()}
}
