// Package skimpy is the public facade wiring the lexer, parser,
// analyzer, evaluator, and builtin registry into a single embeddable
// interpreter, the way the teacher's cmd/dwscript drove its own
// lex→parse→semantic→interp pipeline through one entry point.
package skimpy

import (
	"io"
	"os"

	"github.com/vkramer/go-skimpy/internal/analyze"
	"github.com/vkramer/go-skimpy/internal/builtins"
	"github.com/vkramer/go-skimpy/internal/cst"
	evaluator "github.com/vkramer/go-skimpy/internal/eval"
	"github.com/vkramer/go-skimpy/internal/lexer"
	"github.com/vkramer/go-skimpy/internal/serror"
	"github.com/vkramer/go-skimpy/internal/value"
)

// Interpreter holds the global environment and analyzer cache shared
// across every Eval/EvalFile call made against it, so `define`s and
// `load`s from one call are visible to the next, matching a REPL's
// expected persistence.
type Interpreter struct {
	global *value.Environment
	az     *analyze.Analyzer
	out    io.Writer
}

// Option configures a new Interpreter.
type Option func(*Interpreter)

// WithOutput directs `display` output to w instead of os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// New builds an Interpreter with a fresh global environment and the
// full builtin procedure set registered into it.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		global: value.NewEnvironment(),
		az:     analyze.New(),
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(i)
	}
	builtins.Register(i.global, i.out)
	return i
}

// Global returns the interpreter's top-level environment, so callers
// can bind additional host procedures before running a program.
func (i *Interpreter) Global() *value.Environment {
	return i.global
}

// Parse tokenizes and trees source without evaluating it, exposed for
// tooling (`--dump-cst`) and the parse-unparse round-trip tests.
func (i *Interpreter) Parse(source string) (*cst.Node, error) {
	toks, err := lexer.Scan(source)
	if err != nil {
		if lexErr, ok := err.(*lexer.Error); ok {
			return nil, serror.New(lexErr.Line, lexErr.Col, "%s", lexErr.Reason)
		}
		return nil, err
	}
	return cst.Parse(toks)
}

// Eval tokenizes, parses, analyzes, and evaluates source in the
// interpreter's global environment, returning its last top-level
// form's value.
func (i *Interpreter) Eval(source string) (value.Value, error) {
	root, err := i.Parse(source)
	if err != nil {
		return nil, err
	}
	form := i.az.Analyze(root)
	return evaluator.Eval(form, i.global)
}

// EvalFile reads and evaluates the file at path in the interpreter's
// global environment, returning its last top-level form's value. A
// program loaded this way can itself call `(load ...)` against the
// same running environment.
func (i *Interpreter) EvalFile(path string) (value.Value, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return i.Eval(string(content))
}
