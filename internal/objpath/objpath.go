// Package objpath navigates plain nested objects (map[string]any) by field
// path. It backs seed lookup, value extraction and whole-object rule helpers.
package objpath

// Get returns the value at path. ok is false when any segment is missing or
// a non-map value intervenes; a nil map is treated as empty. The empty path
// addresses the object itself.
func Get(obj map[string]any, path []string) (any, bool) {
	if len(path) == 0 {
		return obj, true
	}
	var cur any = obj
	for _, seg := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Put writes v at path, materializing intermediate maps. A non-map value in
// the way is overwritten; the empty path is a no-op.
func Put(obj map[string]any, path []string, v any) {
	if len(path) == 0 {
		return
	}
	cur := obj
	for _, seg := range path[:len(path)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[seg] = next
		}
		cur = next
	}
	cur[path[len(path)-1]] = v
}
