package formbind

// Binding is the live, mutation-capable view of one leaf handed to the host.
// Value/Touched/Error are copied from the state the tree was synthesized
// from; the mutators always act on the form's current state, whatever it is
// when they execute.
//
// Binding trees are regenerated (new identities) by every Bindings call, but
// paths are stable: hosts must re-read bindings from the latest tree after a
// mutation rather than caching them across the render boundary.
type Binding struct {
	Value   any
	Touched bool
	Error   string

	path Path
	form *Form
}

// Path returns the leaf's stable path.
func (b *Binding) Path() Path { return b.path.clone() }

// Set replaces the leaf value and marks it touched. No validation runs and
// no result is produced; the call is fire-and-forget.
func (b *Binding) Set(v any) { b.form.setValue(b.path, v, false) }

// SetAndValidate replaces the leaf value, marks it touched, and evaluates
// the leaf's rules against the new value alongside the whole-object value as
// it stood immediately before this update — a cross-field rule sees every
// sibling's pre-update value next to this field's new one. It reports
// whether the leaf is free of error once the update is committed.
func (b *Binding) SetAndValidate(v any) bool { return b.form.setValue(b.path, v, true) }

// Reset restores the leaf to the value it held in the initial state (not the
// current state), clears its error and marks it untouched.
func (b *Binding) Reset() { b.form.resetLeaf(b.path, nil, false) }

// ResetTo is Reset with an explicit value in place of the initial one.
func (b *Binding) ResetTo(v any) { b.form.resetLeaf(b.path, v, true) }

// Validate recomputes the leaf's error from its current value and the
// current whole-object value. Touched is left alone.
func (b *Binding) Validate() { b.form.validateLeaf(b.path) }

// Bindings synthesizes a fresh binding tree from the current state. The tree
// mirrors the schema shape exactly; call Bindings again after any mutation
// to observe the new state.
func (f *Form) Bindings() *BindingNode {
	f.mu.Lock()
	state := f.state
	f.mu.Unlock()
	return f.bindNode(state, nil)
}

func (f *Form) bindNode(n *StateNode, prefix Path) *BindingNode {
	if n == nil {
		return nil
	}
	if n.Kind() == KindLeaf {
		ls := n.Leaf()
		return NewLeaf(&Binding{
			Value:   ls.Value,
			Touched: ls.Touched,
			Error:   ls.Error,
			path:    prefix.clone(),
			form:    f,
		})
	}
	out := NewBranch[*Binding]()
	for _, k := range n.Keys() {
		if c := n.Child(k); c != nil {
			out.Put(k, f.bindNode(c, append(prefix, k)))
		}
	}
	return out
}

func (f *Form) setValue(path Path, v any, runValidation bool) bool {
	ok := true
	f.transact(func(cur *StateNode) *StateNode {
		// Snapshot the whole-object value before applying the update so the
		// rules never observe this invocation's own effect on a sibling.
		var whole map[string]any
		if runValidation {
			whole = extract(cur)
		}
		return setLeaf(cur, path, func(ls LeafState) LeafState {
			ls.Value = v
			ls.Touched = true
			if runValidation {
				ls.Error = firstError(ls.Rules, v, whole)
				ok = ls.Error == ""
			}
			return ls
		})
	})
	return ok
}

func (f *Form) resetLeaf(path Path, v any, hasOverride bool) {
	f.transact(func(cur *StateNode) *StateNode {
		return setLeaf(cur, path, func(ls LeafState) LeafState {
			if hasOverride {
				ls.Value = v
			} else if init, found := LeafAt(f.initial, path...); found {
				ls.Value = init.Value
			}
			ls.Touched = false
			ls.Error = ""
			return ls
		})
	})
}

func (f *Form) validateLeaf(path Path) {
	f.transact(func(cur *StateNode) *StateNode {
		whole := extract(cur)
		return setLeaf(cur, path, func(ls LeafState) LeafState {
			ls.Error = firstError(ls.Rules, ls.Value, whole)
			return ls
		})
	})
}
