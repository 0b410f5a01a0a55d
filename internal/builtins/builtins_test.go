package builtins

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/vkramer/go-skimpy/internal/analyze"
	"github.com/vkramer/go-skimpy/internal/cst"
	"github.com/vkramer/go-skimpy/internal/eval"
	"github.com/vkramer/go-skimpy/internal/lexer"
	"github.com/vkramer/go-skimpy/internal/serror"
	"github.com/vkramer/go-skimpy/internal/value"
)

func run(t *testing.T, env *value.Environment, src string) value.Value {
	t.Helper()
	toks, err := lexer.Scan(src)
	if err != nil {
		t.Fatalf("Scan(%q): %v", src, err)
	}
	root, err := cst.Parse(toks)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	a := analyze.New()
	form := a.Analyze(root)
	got, err := eval.Eval(form, env)
	if err != nil {
		t.Fatalf("Eval(%q): %v", src, err)
	}
	return got
}

func newEnv(t *testing.T) (*value.Environment, *bytes.Buffer) {
	t.Helper()
	env := value.NewEnvironment()
	var out bytes.Buffer
	Register(env, &out)
	return env, &out
}

func TestArithmeticPrimitives(t *testing.T) {
	env, _ := newEnv(t)
	cases := map[string]value.Number{
		"(+ 1 2 3)":  6,
		"(* 2 3 4)":  24,
		"(- 5)":      -5,
		"(- 10 3 2)": 5,
		"(/ 2)":      0.5,
		"(/ 20 2 2)": 5,
	}
	for src, want := range cases {
		got := run(t, env, src)
		if got != want {
			t.Errorf("%s = %v, want %v", src, got, want)
		}
	}
}

func TestRemainder(t *testing.T) {
	env, _ := newEnv(t)
	got := run(t, env, "(remainder 7 2)")
	if got != value.Number(1) {
		t.Errorf("got %v, want 1", got)
	}
}

func TestComparisons(t *testing.T) {
	env, _ := newEnv(t)
	if got := run(t, env, "(< 1 2)"); got != value.True {
		t.Errorf("(< 1 2) = %v, want #t", got)
	}
	if got := run(t, env, "(> 1 2)"); got != value.False {
		t.Errorf("(> 1 2) = %v, want #f", got)
	}
	if got := run(t, env, "(= 2 2)"); got != value.True {
		t.Errorf("(= 2 2) = %v, want #t", got)
	}
}

func TestConsCarCdrAndList(t *testing.T) {
	env, _ := newEnv(t)
	got := run(t, env, "(car (cons 1 2))")
	if got != value.Number(1) {
		t.Errorf("car = %v, want 1", got)
	}
	got = run(t, env, "(cdr (cons 1 2))")
	if got != value.Number(2) {
		t.Errorf("cdr = %v, want 2", got)
	}
	got = run(t, env, "(pair? (list 1 2 3))")
	if got != value.True {
		t.Errorf("pair? of a list = %v, want #t", got)
	}
	got = run(t, env, "(null? (cdr (list 1)))")
	if got != value.True {
		t.Errorf("null? of the tail of a 1-element list = %v, want #t", got)
	}
}

func TestMapAppliesProcedureAcrossList(t *testing.T) {
	env, _ := newEnv(t)
	got := run(t, env, "(car (map (lambda (x) (* x x)) (list 1 2 3)))")
	if got != value.Number(1) {
		t.Errorf("got %v, want 1", got)
	}
	got = run(t, env, "(car (cdr (map (lambda (x) (* x x)) (list 1 2 3))))")
	if got != value.Number(4) {
		t.Errorf("got %v, want 4", got)
	}
}

func TestEqIdentityAndValueSemantics(t *testing.T) {
	env, _ := newEnv(t)
	if got := run(t, env, "(eq? 1 1)"); got != value.True {
		t.Errorf("(eq? 1 1) = %v, want #t", got)
	}
	if got := run(t, env, "(eq? (list 1) (list 1))"); got != value.False {
		t.Errorf("(eq? (list 1) (list 1)) = %v, want #f (distinct pairs)", got)
	}
	env.Bind("p", value.NewPair(value.Number(1), value.Empty))
	if got := run(t, env, "(eq? p p)"); got != value.True {
		t.Errorf("(eq? p p) = %v, want #t (same pair)", got)
	}
}

func TestCanonicalBooleanAndCharBindings(t *testing.T) {
	env, _ := newEnv(t)
	if got := run(t, env, "#t"); got != value.True {
		t.Errorf("#t = %v, want #t", got)
	}
	if got := run(t, env, "#f"); got != value.False {
		t.Errorf("#f = %v, want #f", got)
	}
	got := run(t, env, `#\newline`)
	if got != value.Char('\n') {
		t.Errorf(`#\newline = %v, want a newline char`, got)
	}
}

func TestDisplayWritesToConfiguredWriter(t *testing.T) {
	env, out := newEnv(t)
	run(t, env, `(display "hi")`)
	if out.String() != "hi" {
		t.Errorf("display wrote %q, want %q", out.String(), "hi")
	}
}

func TestDisplayOnCyclicPairDoesNotHang(t *testing.T) {
	env, out := newEnv(t)
	p := value.NewPair(value.Number(1), value.Empty)
	p.Cdr = p
	env.Bind("cyclic", p)

	toks, err := lexer.Scan("(display cyclic)")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	root, err := cst.Parse(toks)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	a := analyze.New()
	form := a.Analyze(root)
	if _, err := eval.Eval(form, env); err == nil {
		t.Fatalf("expected display of a cyclic pair to report an error instead of looping forever")
	}
	if out.Len() != 0 {
		t.Errorf("display wrote %q before detecting the cycle, want no output", out.String())
	}
}

func TestNativeProcedureErrorCarriesPosition(t *testing.T) {
	env, _ := newEnv(t)
	toks, err := lexer.Scan("(+ 1 \"two\")")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	root, err := cst.Parse(toks)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	a := analyze.New()
	form := a.Analyze(root)
	_, err = eval.Eval(form, env)
	if err == nil {
		t.Fatalf("expected an error from (+ 1 \"two\")")
	}
	se, ok := err.(*serror.SkimpyError)
	if !ok {
		t.Fatalf("got %T, want *serror.SkimpyError", err)
	}
	if se.Line == 0 {
		t.Errorf("native error missing line position: %v", se)
	}
}

func TestLoadEvaluatesFileInCallerEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defs.skimpy")
	if err := os.WriteFile(path, []byte("(define forty-two 42)"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	env, _ := newEnv(t)
	if err := Load(path, env); err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := run(t, env, "forty-two")
	if got != value.Number(42) {
		t.Errorf("got %v, want 42", got)
	}
}
