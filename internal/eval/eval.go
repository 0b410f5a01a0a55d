// Package eval drives evaluation of analyzed forms (internal/form)
// through an iterative trampoline, and applies procedures — both
// host-native and user-defined — to argument lists.
//
// Go has no native generator/yield, so the "step generator" contract
// each form implements is realized as a plain interface method,
// value.Body.Step, and Eval is an ordinary loop bouncing between forms
// and environments rather than resuming a suspended coroutine. No
// panic/recover is used for control flow anywhere in this package.
package eval

import "github.com/vkramer/go-skimpy/internal/value"

// Eval drives f to a final value, bouncing through every Continuation
// disposition without recursing — this is the trampoline. Each form's
// own Step method may still recurse into Eval for its non-tail
// subexpressions; only the tail position avoids stack growth, which is
// exactly what makes self-tail-recursive Skimpy procedures run in
// bounded Go stack depth regardless of iteration count.
func Eval(f value.Body, env *value.Environment) (value.Value, error) {
	for {
		res, err := f.Step(env)
		if err != nil {
			return nil, err
		}
		if res.Disposition == value.Result {
			return res.Value, nil
		}
		f, env = res.NextForm, res.NextEnv
	}
}
