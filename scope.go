package vcd

import "strconv"

// ScopeType is the kind of a hierarchical scope, as written in its $scope
// declaration.
type ScopeType int

// Scope types, in VCD keyword order.
const (
	ScopeBegin ScopeType = iota
	ScopeFork
	ScopeFunction
	ScopeModule
	ScopeTask
)

var scopeTypes = [...]string{"begin", "fork", "function", "module", "task"}

func (t ScopeType) String() string {
	if t < ScopeBegin || t > ScopeTask {
		return "ScopeType(" + strconv.Itoa(int(t)) + ")"
	}
	return scopeTypes[t]
}

// A Scope is a node in the design hierarchy, identified by its full dotted
// name. It owns the ordered list of variables declared under it; nesting is
// implied by the name and reconstructed at declaration time.
type Scope struct {
	name string
	typ  ScopeType
	vars []*Variable // insertion order
}

// Name returns the scope's full dotted name.
func (s *Scope) Name() string { return s.name }

// Type returns the scope's type.
func (s *Scope) Type() ScopeType { return s.typ }

// Vars returns the variables declared under this scope, in registration
// order. The returned slice is shared with the writer and must not be
// modified.
func (s *Scope) Vars() []*Variable { return s.vars }

// RegisterScope creates a scope with the given full dotted name and type, or
// returns the existing scope if the name is already registered (leaving its
// type unchanged). It fails with a PhaseError once registration is finished.
func (w *Writer) RegisterScope(name string, typ ScopeType) (*Scope, error) {
	if w.closed {
		return nil, phaseErrorf("cannot register scope %q after Close", name)
	}
	if !w.registering {
		return nil, phaseErrorf("cannot register scope %q, registration finished", name)
	}
	if name == "" {
		return nil, validationErrorf("empty scope name")
	}
	if typ < ScopeBegin || typ > ScopeTask {
		return nil, validationErrorf("invalid scope type for scope %q", name)
	}
	return w.scope(name, typ), nil
}

// SetScopeType changes the type of an existing scope. It fails with a
// PhaseError if the scope is unknown or the writer is closed. Changing the
// type after registration has been finalized has no effect on output, since
// the declarations have already been written.
func (w *Writer) SetScopeType(name string, typ ScopeType) error {
	if w.closed {
		return phaseErrorf("cannot set scope type after Close")
	}
	if typ < ScopeBegin || typ > ScopeTask {
		return validationErrorf("invalid scope type for scope %q", name)
	}
	s, ok := w.scopes[name]
	if !ok {
		return phaseErrorf("scope %q does not exist", name)
	}
	s.typ = typ
	return nil
}

// Scope looks up a registered scope by its full dotted name, resolving the
// back-reference held by Variable.ScopeName. It fails with a PhaseError if
// no such scope exists.
func (w *Writer) Scope(name string) (*Scope, error) {
	s, ok := w.scopes[name]
	if !ok {
		return nil, phaseErrorf("scope %q does not exist", name)
	}
	return s, nil
}

// scope returns the scope with the given name, creating it if necessary.
func (w *Writer) scope(name string, typ ScopeType) *Scope {
	s, ok := w.scopes[name]
	if !ok {
		s = &Scope{name: name, typ: typ}
		w.scopes[name] = s
	}
	return s
}
