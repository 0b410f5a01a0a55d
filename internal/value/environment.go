package value

import "fmt"

// privateCallRecordSlot is the private binding name a procedure
// activation's CallRecord is stored under, consulted by the evaluator
// to decide whether an application is self-tail-recursive and by
// internal/serror to walk a frame trace.
const privateCallRecordSlot = "_cp"

// Environment is one frame of the lexical scope chain: a map of
// public bindings (ordinary variables), a map of private bindings
// (interpreter bookkeeping such as "_cp", never visible to Lookup),
// and a link to the enclosing frame. Adapted from the teacher's
// store/outer Environment shape, generalized to the public/private
// split spec.md §4.1 requires.
type Environment struct {
	bindings map[string]Value
	private  map[string]Value
	outer    *Environment
}

// NewEnvironment creates a root environment with no outer scope,
// typically the global frame builtins are registered into.
func NewEnvironment() *Environment {
	return &Environment{bindings: make(map[string]Value)}
}

// Bind creates or overwrites name in the current frame only.
func (e *Environment) Bind(name string, val Value) {
	e.bindings[name] = val
}

// BindPrivate creates or overwrites a private slot in the current
// frame only. Private slots never participate in Lookup.
func (e *Environment) BindPrivate(name string, val Value) {
	if e.private == nil {
		e.private = make(map[string]Value)
	}
	e.private[name] = val
}

// Names returns the public binding names of the current frame only,
// in no particular order. Used by tooling (the `skimpy builtins`
// command) to enumerate what's registered in the global frame.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.bindings))
	for name := range e.bindings {
		names = append(names, name)
	}
	return names
}

// Lookup searches the current frame, then each outer frame in turn,
// for a public binding of name.
func (e *Environment) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.outer {
		if v, ok := env.bindings[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// LookupPrivate searches the current frame, then each outer frame, for
// a private binding of name. Used for the "_cp" call-record slot.
func (e *Environment) LookupPrivate(name string) (Value, bool) {
	for env := e; env != nil; env = env.outer {
		if v, ok := env.private[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Extend creates a new child frame enclosed by e, binding each of
// names to the corresponding value in vals (same length required).
// Used when applying a procedure to a call that is not a self-tail
// call: the new frame is a child of the procedure's defining
// environment, not of the caller's environment.
func (e *Environment) Extend(names []string, vals []Value) (*Environment, error) {
	if len(names) != len(vals) {
		return nil, fmt.Errorf("arity mismatch: expected %d argument(s), got %d", len(names), len(vals))
	}
	child := &Environment{bindings: make(map[string]Value, len(names)), outer: e}
	for i, name := range names {
		child.bindings[name] = vals[i]
	}
	return child, nil
}

// Rebind overwrites e's own public bindings in place with exactly
// names/vals, used for self-tail-recursive application so no new
// frame is allocated. Per spec.md's rebind invariant, the frame's
// arity after Rebind equals len(names) exactly — no stale slot from
// a previous activation survives.
func (e *Environment) Rebind(names []string, vals []Value) error {
	if len(names) != len(vals) {
		return fmt.Errorf("arity mismatch: expected %d argument(s), got %d", len(names), len(vals))
	}
	e.bindings = make(map[string]Value, len(names))
	for i, name := range names {
		e.bindings[name] = vals[i]
	}
	return nil
}

// CurrentCall returns the CallRecord of the procedure activation
// currently executing in e, if any.
func (e *Environment) CurrentCall() (*CallRecord, bool) {
	v, ok := e.LookupPrivate(privateCallRecordSlot)
	if !ok {
		return nil, false
	}
	rec, ok := v.(*callRecordValue)
	if !ok {
		return nil, false
	}
	return rec.rec, true
}

// SetCurrentCall records rec as the call record of the procedure
// activation executing in e.
func (e *Environment) SetCurrentCall(rec *CallRecord) {
	e.BindPrivate(privateCallRecordSlot, &callRecordValue{rec: rec})
}

// callRecordValue adapts *CallRecord to the Value interface so it can
// live in the same private-bindings map as ordinary values, without
// widening Value's method set for every other variant.
type callRecordValue struct {
	rec *CallRecord
}

func (*callRecordValue) Type() string   { return "call-record" }
func (*callRecordValue) String() string { return "#<call-record>" }
