// Package form defines the analyzed AST node types Skimpy programs
// reduce to: Literal, Variable, Lambda, Define, If, Sequence,
// Application, and Qualifier (or/and). Every node type implements
// value.Body so the trampoline in internal/eval can drive it directly.
package form

import (
	"sync"

	"github.com/vkramer/go-skimpy/internal/cst"
	"github.com/vkramer/go-skimpy/internal/value"
)

// TranslateFunc turns one CST node into its analyzed form. Supplied by
// internal/analyze at construction time rather than imported directly,
// since internal/analyze itself depends on this package to build the
// nodes it returns — importing it back here would cycle.
type TranslateFunc func(node *cst.Node) (value.Body, error)

// Slot is a CST node awaiting analysis, analogous to a single entry in
// the reference implementation's subnode_values cache. The node is
// translated into its analyzed form at most once, on the first Step
// call (i.e. the first time it is actually evaluated) — analysis of
// subexpressions that are never reached never happens at all. The
// sync.Once guard makes repeated or concurrent Resolve/Step calls on
// one Slot safe and idempotent.
type Slot struct {
	node      *cst.Node
	translate TranslateFunc

	once sync.Once
	body value.Body
	err  error
}

// NewSlot wraps node for lazy translation via translate.
func NewSlot(node *cst.Node, translate TranslateFunc) *Slot {
	return &Slot{node: node, translate: translate}
}

// Resolve translates the wrapped node on first call and caches the
// result (or error) for every subsequent call.
func (s *Slot) Resolve() (value.Body, error) {
	s.once.Do(func() {
		s.body, s.err = s.translate(s.node)
		s.node = nil // the CST reference is no longer needed once analyzed
	})
	return s.body, s.err
}

// Step resolves the slot and bounces the trampoline into the resulting
// form under the same environment — the slot itself never appears in
// a final result.
func (s *Slot) Step(env *value.Environment) (value.StepResult, error) {
	body, err := s.Resolve()
	if err != nil {
		return value.StepResult{}, err
	}
	return value.Continue(body, env), nil
}
