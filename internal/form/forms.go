package form

import (
	"github.com/vkramer/go-skimpy/internal/eval"
	"github.com/vkramer/go-skimpy/internal/serror"
	"github.com/vkramer/go-skimpy/internal/token"
	"github.com/vkramer/go-skimpy/internal/value"
)

// Literal is a self-evaluating constant: a number, string, char,
// boolean, or the empty list. Terminal — Step always returns Result.
type Literal struct {
	Val value.Value
}

func (l *Literal) Step(*value.Environment) (value.StepResult, error) {
	return value.Done(l.Val), nil
}

// Variable is a name reference, resolved by walking the environment
// chain at evaluation time. Terminal.
type Variable struct {
	Name string
	Tok  token.Token
}

func (v *Variable) Step(env *value.Environment) (value.StepResult, error) {
	val, ok := env.Lookup(v.Name)
	if !ok {
		return value.StepResult{}, serror.New(v.Tok.Line, v.Tok.Col, "unbound variable: %s", v.Name).WithFrames(env.FrameTrace())
	}
	return value.Done(val), nil
}

// Lambda builds a closure over the environment current at the point
// the lambda expression is evaluated (invariant 5) — never the
// environment active when the closure is later called.
type Lambda struct {
	Name   string // set by `define` sugar for (define (f x) ...); empty otherwise
	Params []string
	Body   value.Body
}

func (l *Lambda) Step(env *value.Environment) (value.StepResult, error) {
	return value.Done(&value.Compound{Name: l.Name, Params: l.Params, Body: l.Body, Env: env}), nil
}

// Define evaluates its value expression and binds Name into the
// current frame, in place, at the point it runs — not hoisted. This
// resolution of the define-semantics open question is recorded in
// DESIGN.md: combined with closures capturing their defining frame by
// reference, a later top-level (define x ...) is visible to a closure
// created before it ran.
type Define struct {
	Name      string
	ValueForm value.Body
}

func (d *Define) Step(env *value.Environment) (value.StepResult, error) {
	v, err := eval.Eval(d.ValueForm, env)
	if err != nil {
		return value.StepResult{}, err
	}
	if lam, ok := d.ValueForm.(*Lambda); ok && lam.Name == "" {
		lam.Name = d.Name
		if c, ok := v.(*value.Compound); ok && c.Name == "" {
			c.Name = d.Name
		}
	}
	env.Bind(d.Name, v)
	return value.Done(value.None), nil
}

// If evaluates Cond (non-tail) and tails into Then or Else. Only #f
// is false; every other value, including 0 and the empty list, is
// truthy.
type If struct {
	Cond, Then, Else value.Body
}

func (f *If) Step(env *value.Environment) (value.StepResult, error) {
	c, err := eval.Eval(f.Cond, env)
	if err != nil {
		return value.StepResult{}, err
	}
	if IsTruthy(c) {
		return value.Continue(f.Then, env), nil
	}
	return value.Continue(f.Else, env), nil
}

// IsTruthy reports whether v counts as true in a conditional context.
// Only the Boolean false value is false.
func IsTruthy(v value.Value) bool {
	b, ok := v.(value.Boolean)
	return !ok || bool(b)
}

// Sequence evaluates all but its last form for effect (non-tail) and
// tails into the last. An empty Sequence (e.g. an empty `begin` body)
// evaluates to None.
type Sequence struct {
	Forms []value.Body
}

func (s *Sequence) Step(env *value.Environment) (value.StepResult, error) {
	if len(s.Forms) == 0 {
		return value.Done(value.None), nil
	}
	for _, f := range s.Forms[:len(s.Forms)-1] {
		if _, err := eval.Eval(f, env); err != nil {
			return value.StepResult{}, err
		}
	}
	return value.Continue(s.Forms[len(s.Forms)-1], env), nil
}

// QualifierKind selects or/and short-circuit behavior.
type QualifierKind int

const (
	Or QualifierKind = iota
	And
)

// Qualifier implements `or`/`and`: every operand but the last is
// evaluated in turn (non-tail); Or returns as soon as one is truthy,
// And returns as soon as one is falsy. If none trigger early return,
// the last operand is evaluated in tail position. `(or)` is #f;
// `(and)` is #t, matching the empty-conjunction/disjunction identity.
type Qualifier struct {
	Kind  QualifierKind
	Forms []value.Body
}

func (q *Qualifier) Step(env *value.Environment) (value.StepResult, error) {
	if len(q.Forms) == 0 {
		return value.Done(value.BoolOf(q.Kind == And)), nil
	}
	for _, f := range q.Forms[:len(q.Forms)-1] {
		v, err := eval.Eval(f, env)
		if err != nil {
			return value.StepResult{}, err
		}
		truthy := IsTruthy(v)
		if (q.Kind == Or && truthy) || (q.Kind == And && !truthy) {
			return value.Done(v), nil
		}
	}
	return value.Continue(q.Forms[len(q.Forms)-1], env), nil
}

// Application evaluates its operator and operands (non-tail), then
// tails into whatever the resolved procedure's application produces:
// a Result for a native call, or a Continuation into a compound
// procedure's body (possibly via a Rebind onto the current frame for
// self-tail recursion — see internal/eval.Apply).
type Application struct {
	Operator value.Body
	Operands []value.Body
	Tok      token.Token
}

func (a *Application) Step(env *value.Environment) (value.StepResult, error) {
	proc, err := eval.Eval(a.Operator, env)
	if err != nil {
		return value.StepResult{}, err
	}
	args := make([]value.Value, len(a.Operands))
	for i, operand := range a.Operands {
		v, err := eval.Eval(operand, env)
		if err != nil {
			return value.StepResult{}, err
		}
		args[i] = v
	}
	return eval.Apply(proc, args, a.Tok, env)
}
