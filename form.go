package formbind

import (
	"sync"
	"time"

	"github.com/reoring/formbind/internal/objpath"
)

// DefaultDelay is the debounce quiet period used when Options.Delay is zero.
const DefaultDelay = 500 * time.Millisecond

// Options configures a Form. It is passed variadically to New; the zero
// value disables change notification.
type Options struct {
	// OnStateChange receives the extracted whole-object value after a quiet
	// period, once the form has been touched. Repeated updates within the
	// delay window coalesce to a single trailing invocation.
	OnStateChange func(value map[string]any)
	// Delay is the debounce window; DefaultDelay when zero or negative.
	Delay time.Duration
	// CallOnChangeOnTeardown flushes a pending notification during Close
	// instead of dropping it.
	CallOnChangeOnTeardown bool
}

// Form owns one state tree derived from one schema. The state is a single
// immutable value replaced wholesale on every mutation; all mutation flows
// through transact, which applies a pure transform to whatever the state is
// at execution time. Bindings close over the form and a path, never over a
// state snapshot, so mutators invoked back-to-back each observe the
// cumulative effect of the ones before them.
//
// The mutex is the Go rendition of the single mutation entry point: the only
// writer besides the host is the debounce timer goroutine.
type Form struct {
	mu      sync.Mutex
	schema  *SchemaNode
	initial *StateNode
	state   *StateNode
	opts    Options

	timer   *time.Timer
	pending bool
	closed  bool
}

// New constructs a form instance from a schema and an optional seed object.
// The schema is supplied once per instance; when the host's schema changes,
// tear this instance down and construct a new one.
func New(schema *SchemaNode, seed map[string]any, opt ...Options) *Form {
	var o Options
	if len(opt) > 0 {
		o = opt[0]
	}
	if o.Delay <= 0 {
		o.Delay = DefaultDelay
	}
	init := DeriveInitialState(schema, seed)
	return &Form{schema: schema, initial: init, state: init, opts: o}
}

// Schema returns the schema this form instance was constructed with.
func (f *Form) Schema() *SchemaNode { return f.schema }

// transact applies transform to the current state under the lock and, when
// the resulting tree is touched, (re)schedules the change notification.
// Superseding the outstanding timer on every update gives trailing-edge
// debounce semantics.
func (f *Form) transact(transform func(*StateNode) *StateNode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = transform(f.state)
	if f.closed || f.opts.OnStateChange == nil || !existsTouched(f.state) {
		return
	}
	if f.timer != nil {
		f.timer.Stop()
	}
	f.pending = true
	f.timer = time.AfterFunc(f.opts.Delay, f.fireNotify)
}

func (f *Form) fireNotify() {
	f.mu.Lock()
	if !f.pending || f.closed {
		f.mu.Unlock()
		return
	}
	f.pending = false
	value := extract(f.state)
	cb := f.opts.OnStateChange
	f.mu.Unlock()
	cb(value)
}

// Close tears the form instance down. A pending notification is flushed
// synchronously when CallOnChangeOnTeardown is set, dropped otherwise.
// Close is idempotent; mutations after Close still apply but no longer
// schedule notifications.
func (f *Form) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	if f.timer != nil {
		f.timer.Stop()
	}
	flush := f.pending && f.opts.CallOnChangeOnTeardown && f.opts.OnStateChange != nil
	f.pending = false
	var value map[string]any
	if flush {
		value = extract(f.state)
	}
	cb := f.opts.OnStateChange
	f.mu.Unlock()
	if flush {
		cb(value)
	}
}

// Value extracts the current whole-object value as a fresh nested map whose
// shape matches the schema exactly; leaves (including arrays) appear as
// plain values, branches as nested maps.
func (f *Form) Value() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return extract(f.state)
}

// ValidateAll revalidates every leaf against one consistent snapshot — each
// rule sees the same whole-object value, never a partially-updated sibling —
// and reports whether the whole form is free of errors. It always completes;
// failing leaves record their message and contribute a false result.
func (f *Form) ValidateAll() bool {
	valid := true
	f.transact(func(cur *StateNode) *StateNode {
		whole := extract(cur)
		return mapLeaves(cur, func(_ Path, ls LeafState) LeafState {
			ls.Error = firstError(ls.Rules, ls.Value, whole)
			if ls.Error != "" {
				valid = false
			}
			return ls
		})
	})
	return valid
}

// Issues revalidates every leaf like ValidateAll and returns the failures as
// Issues with JSON Pointer paths; nil when the form is valid.
func (f *Form) Issues() Issues {
	var iss Issues
	f.transact(func(cur *StateNode) *StateNode {
		whole := extract(cur)
		return mapLeaves(cur, func(p Path, ls LeafState) LeafState {
			ls.Error = ""
			for _, r := range ls.Rules {
				if r == nil {
					continue
				}
				if err := r(ls.Value, whole); err != nil {
					it := issueAt(p, err)
					ls.Error = it.Error()
					iss = AppendIssues(iss, it)
					break
				}
			}
			return ls
		})
	})
	return iss
}

// ResetAll restores every leaf to its initial-state value, clears every
// error and marks every leaf untouched.
func (f *Form) ResetAll() { f.resetAll(nil) }

// ResetAllTo is ResetAll with an override object: each leaf takes the value
// the override holds at its path when defined, falling back to the initial
// state where it holds none.
func (f *Form) ResetAllTo(override map[string]any) { f.resetAll(override) }

func (f *Form) resetAll(override map[string]any) {
	f.transact(func(cur *StateNode) *StateNode {
		return mapLeaves(cur, func(p Path, ls LeafState) LeafState {
			ls.Value = f.baseValue(p, override)
			ls.Touched = false
			ls.Error = ""
			return ls
		})
	})
}

func (f *Form) baseValue(p Path, override map[string]any) any {
	if override != nil {
		if v, ok := objpath.Get(override, p); ok {
			return v
		}
	}
	if init, ok := LeafAt(f.initial, p...); ok {
		return init.Value
	}
	return nil
}

// IsEmpty reports whether every leaf value is semantically empty: nil, the
// empty string, or a zero-length list.
func (f *Form) IsEmpty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !ExistsLeaf(f.state, func(ls LeafState) bool { return !isEmptyValue(ls.Value) })
}

// IsTouched reports whether any leaf has been touched.
func (f *Form) IsTouched() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return existsTouched(f.state)
}
