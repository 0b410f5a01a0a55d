package eval

import (
	"testing"

	"github.com/vkramer/go-skimpy/internal/token"
	"github.com/vkramer/go-skimpy/internal/value"
)

// countdown is a toy Body that counts down to zero via Continuation,
// exercising the trampoline's bounce without growing the Go stack.
type countdown struct{ n int }

func (c countdown) Step(env *value.Environment) (value.StepResult, error) {
	if c.n <= 0 {
		return value.Done(value.Number(0)), nil
	}
	return value.Continue(countdown{n: c.n - 1}, env), nil
}

func TestEvalBouncesThroughManyContinuationsWithoutOverflow(t *testing.T) {
	env := value.NewEnvironment()
	got, err := Eval(countdown{n: 1_000_000}, env)
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if got != value.Number(0) {
		t.Fatalf("got %v, want 0", got)
	}
}

func TestApplyNativeChecksArity(t *testing.T) {
	proc := &value.Native{
		Name: "add1", Min: 1, Max: 1,
		Fn: func(args []value.Value) (value.Value, error) {
			return args[0], nil
		},
	}
	env := value.NewEnvironment()
	if _, err := Apply(proc, nil, token.New("add1", 1, 1), env); err == nil {
		t.Error("expected an arity error for zero arguments")
	}
	res, err := Apply(proc, []value.Value{value.Number(5)}, token.New("add1", 1, 1), env)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Disposition != value.Result || res.Value != value.Number(5) {
		t.Errorf("got %+v", res)
	}
}

func TestApplyCompoundRebindsOnSelfTailCall(t *testing.T) {
	body := countdown{n: 0}
	proc := &value.Compound{Name: "loop", Params: []string{"x"}, Body: body, Env: value.NewEnvironment()}
	tok := token.New("loop", 1, 1)

	first, err := Apply(proc, []value.Value{value.Number(1)}, tok, proc.Env)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if first.Disposition != value.Continuation {
		t.Fatalf("expected a continuation, got %+v", first)
	}
	callEnv := first.NextEnv
	rec, ok := callEnv.CurrentCall()
	if !ok || rec.Proc != proc {
		t.Fatalf("expected a call record for proc to be set on the new frame")
	}

	second, err := Apply(proc, []value.Value{value.Number(2)}, tok, callEnv)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if second.NextEnv != callEnv {
		t.Error("self-tail-recursive application should reuse the same frame")
	}
	if v, _ := callEnv.Lookup("x"); v != value.Number(2) {
		t.Errorf("x = %v, want 2 after rebind", v)
	}
}
