package formbind

import "strings"

// Path is the ordered field-name sequence addressing one leaf inside a tree.
// Paths are stable for the lifetime of a schema; binding identities are not.
type Path []string

func (p Path) clone() Path {
	if p == nil {
		return nil
	}
	return append(Path{}, p...)
}

// Pointer renders the path as a JSON Pointer with RFC 6901 escaping
// ('~' -> '~0', '/' -> '~1'). The empty path renders as "/".
func (p Path) Pointer() string {
	if len(p) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, seg := range p {
		b.WriteByte('/')
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(seg, "~", "~0"), "/", "~1"))
	}
	return b.String()
}

func (p Path) String() string { return p.Pointer() }

// ParsePointer parses a JSON Pointer back into a Path, reversing the RFC 6901
// escaping. Empty segments are dropped, so "/", "" and "//" all yield the
// empty path.
func ParsePointer(s string) Path {
	var out Path
	for _, seg := range strings.Split(s, "/") {
		if seg == "" {
			continue
		}
		seg = strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
		out = append(out, seg)
	}
	return out
}
