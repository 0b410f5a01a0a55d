package analyze

import (
	"testing"

	"github.com/vkramer/go-skimpy/internal/cst"
	"github.com/vkramer/go-skimpy/internal/eval"
	"github.com/vkramer/go-skimpy/internal/lexer"
	"github.com/vkramer/go-skimpy/internal/value"
)

func parseSource(t *testing.T, src string) *cst.Node {
	t.Helper()
	toks, err := lexer.Scan(src)
	if err != nil {
		t.Fatalf("Scan(%q): %v", src, err)
	}
	node, err := cst.Parse(toks)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return node
}

func evalSource(t *testing.T, env *value.Environment, src string) value.Value {
	t.Helper()
	root := parseSource(t, src)
	a := New()
	form := a.Analyze(root)
	got, err := eval.Eval(form, env)
	if err != nil {
		t.Fatalf("Eval(%q): %v", src, err)
	}
	return got
}

func TestArithmeticApplication(t *testing.T) {
	env := value.NewEnvironment()
	env.Bind("+", &value.Native{Name: "+", Min: 0, Max: -1, Fn: func(args []value.Value) (value.Value, error) {
		var sum value.Number
		for _, a := range args {
			sum += a.(value.Number)
		}
		return sum, nil
	}})
	got := evalSource(t, env, "(+ 1 2 3)")
	if got != value.Number(6) {
		t.Errorf("got %v, want 6", got)
	}
}

func TestIfReducesToTakenBranch(t *testing.T) {
	env := value.NewEnvironment()
	got := evalSource(t, env, "(if 0 1 2)")
	if got != value.Number(1) {
		t.Errorf("0 should be truthy (only #f is false): got %v, want 1", got)
	}
}

func TestCondFallsThroughToElse(t *testing.T) {
	env := value.NewEnvironment()
	env.Bind("#f", value.False)
	got := evalSource(t, env, "(cond (#f 1) (else 2))")
	if got != value.Number(2) {
		t.Errorf("got %v, want 2", got)
	}
}

func TestLetDesugarsToLambdaApplication(t *testing.T) {
	env := value.NewEnvironment()
	env.Bind("+", &value.Native{Name: "+", Min: 0, Max: -1, Fn: func(args []value.Value) (value.Value, error) {
		return args[0].(value.Number) + args[1].(value.Number), nil
	}})
	got := evalSource(t, env, "(let ((x 1) (y 2)) (+ x y))")
	if got != value.Number(3) {
		t.Errorf("got %v, want 3", got)
	}
}

func TestDefineProcedureSugarBindsNamedLambda(t *testing.T) {
	env := value.NewEnvironment()
	got := evalSource(t, env, "(define (square x) x) square")
	proc, ok := got.(*value.Compound)
	if !ok {
		t.Fatalf("got %T, want *value.Compound", got)
	}
	if proc.Name != "square" {
		t.Errorf("proc.Name = %q, want square", proc.Name)
	}
	if len(proc.Params) != 1 || proc.Params[0] != "x" {
		t.Errorf("proc.Params = %v, want [x]", proc.Params)
	}
}

func TestAnalysisIsIdempotentAcrossRepeatedRuns(t *testing.T) {
	root := parseSource(t, "(+ 1 2)")
	a := New()
	env := value.NewEnvironment()
	env.Bind("+", &value.Native{Name: "+", Min: 0, Max: -1, Fn: func(args []value.Value) (value.Value, error) {
		return args[0].(value.Number) + args[1].(value.Number), nil
	}})
	form1 := a.Analyze(root)
	got1, err := eval.Eval(form1, env)
	if err != nil {
		t.Fatalf("first Eval: %v", err)
	}
	form2 := a.Analyze(root) // same node: must return the cached slot
	got2, err := eval.Eval(form2, env)
	if err != nil {
		t.Fatalf("second Eval: %v", err)
	}
	if got1 != got2 {
		t.Errorf("re-evaluating the same analyzed node gave different results: %v vs %v", got1, got2)
	}
}
