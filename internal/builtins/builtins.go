// Package builtins registers Skimpy's primitive procedures and
// canonical bindings into a global environment. It sits above the
// rest of the interpreter (lexer, cst, analyze, eval) because `load`
// needs to tokenize, parse, analyze, and evaluate another source file
// from within a running program.
package builtins

import (
	"fmt"
	"io"
	"os"

	"github.com/vkramer/go-skimpy/internal/analyze"
	"github.com/vkramer/go-skimpy/internal/cst"
	"github.com/vkramer/go-skimpy/internal/eval"
	"github.com/vkramer/go-skimpy/internal/lexer"
	"github.com/vkramer/go-skimpy/internal/pretty"
	"github.com/vkramer/go-skimpy/internal/serror"
	"github.com/vkramer/go-skimpy/internal/token"
	"github.com/vkramer/go-skimpy/internal/value"
)

// Register installs the primitive procedure set and canonical bindings
// described in SPEC_FULL.md §6 into env. Output from `display` is
// written to out.
func Register(env *value.Environment, out io.Writer) {
	registerArithmetic(env)
	registerComparisons(env)
	registerPairs(env)
	registerPredicates(env)
	registerIO(env, out)
	registerConstants(env)
}

func registerConstants(env *value.Environment) {
	env.Bind("#t", value.True)
	env.Bind("#f", value.False)
	env.Bind(`#\newline`, value.Char('\n'))
}

func isNumber(v value.Value) bool { _, ok := v.(value.Number); return ok }
func isPair(v value.Value) bool   { _, ok := v.(*value.Pair); return ok }
func isProc(v value.Value) bool {
	switch v.(type) {
	case *value.Compound, *value.Native:
		return true
	}
	return false
}

func numberPredicate(name string) value.NativePredicate {
	return value.NativePredicate{Name: "a number", Check: isNumber}
}

func registerArithmetic(env *value.Environment) {
	env.Bind("+", &value.Native{
		Name: "+", Min: 0, Max: -1,
		Params: []value.NativePredicate{numberPredicate("+")},
		Fn: func(args []value.Value) (value.Value, error) {
			var sum value.Number
			for _, a := range args {
				n, ok := a.(value.Number)
				if !ok {
					return nil, fmt.Errorf("+: argument must be a number, got %s", a.Type())
				}
				sum += n
			}
			return sum, nil
		},
	})
	env.Bind("*", &value.Native{
		Name: "*", Min: 0, Max: -1,
		Fn: func(args []value.Value) (value.Value, error) {
			prod := value.Number(1)
			for _, a := range args {
				n, ok := a.(value.Number)
				if !ok {
					return nil, fmt.Errorf("*: argument must be a number, got %s", a.Type())
				}
				prod *= n
			}
			return prod, nil
		},
	})
	// `-` with one argument negates; with two or more, left-folds
	// subtraction, matching original_source/sbuiltins.py.
	env.Bind("-", &value.Native{
		Name: "-", Min: 1, Max: -1,
		Fn: func(args []value.Value) (value.Value, error) {
			first, ok := args[0].(value.Number)
			if !ok {
				return nil, fmt.Errorf("-: argument must be a number, got %s", args[0].Type())
			}
			if len(args) == 1 {
				return -first, nil
			}
			result := first
			for _, a := range args[1:] {
				n, ok := a.(value.Number)
				if !ok {
					return nil, fmt.Errorf("-: argument must be a number, got %s", a.Type())
				}
				result -= n
			}
			return result, nil
		},
	})
	env.Bind("/", &value.Native{
		Name: "/", Min: 1, Max: -1,
		Fn: func(args []value.Value) (value.Value, error) {
			first, ok := args[0].(value.Number)
			if !ok {
				return nil, fmt.Errorf("/: argument must be a number, got %s", args[0].Type())
			}
			if len(args) == 1 {
				if first == 0 {
					return nil, fmt.Errorf("/: division by zero")
				}
				return 1 / first, nil
			}
			result := first
			for _, a := range args[1:] {
				n, ok := a.(value.Number)
				if !ok {
					return nil, fmt.Errorf("/: argument must be a number, got %s", a.Type())
				}
				if n == 0 {
					return nil, fmt.Errorf("/: division by zero")
				}
				result /= n
			}
			return result, nil
		},
	})
	env.Bind("remainder", &value.Native{
		Name: "remainder", Min: 2, Max: 2,
		Params: []value.NativePredicate{numberPredicate("remainder"), numberPredicate("remainder")},
		Fn: func(args []value.Value) (value.Value, error) {
			a := args[0].(value.Number)
			b := args[1].(value.Number)
			if b == 0 {
				return nil, fmt.Errorf("remainder: division by zero")
			}
			return value.Number(intMod(float64(a), float64(b))), nil
		},
	})
}

func intMod(a, b float64) float64 {
	m := int64(a) % int64(b)
	return float64(m)
}

func registerComparisons(env *value.Environment) {
	cmp := func(name string, ok func(a, b float64) bool) *value.Native {
		return &value.Native{
			Name: name, Min: 2, Max: 2,
			Params: []value.NativePredicate{numberPredicate(name), numberPredicate(name)},
			Fn: func(args []value.Value) (value.Value, error) {
				a := float64(args[0].(value.Number))
				b := float64(args[1].(value.Number))
				return value.BoolOf(ok(a, b)), nil
			},
		}
	}
	env.Bind("=", cmp("=", func(a, b float64) bool { return a == b }))
	env.Bind("<", cmp("<", func(a, b float64) bool { return a < b }))
	env.Bind(">", cmp(">", func(a, b float64) bool { return a > b }))
}

func registerPairs(env *value.Environment) {
	env.Bind("cons", &value.Native{
		Name: "cons", Min: 2, Max: 2, Raw: true,
		Fn: func(args []value.Value) (value.Value, error) {
			return value.NewPair(args[0], args[1]), nil
		},
	})
	env.Bind("car", &value.Native{
		Name: "car", Min: 1, Max: 1, Raw: true,
		Params: []value.NativePredicate{{Name: "a pair", Check: isPair}},
		Fn: func(args []value.Value) (value.Value, error) {
			return args[0].(*value.Pair).Car, nil
		},
	})
	env.Bind("cdr", &value.Native{
		Name: "cdr", Min: 1, Max: 1, Raw: true,
		Params: []value.NativePredicate{{Name: "a pair", Check: isPair}},
		Fn: func(args []value.Value) (value.Value, error) {
			return args[0].(*value.Pair).Cdr, nil
		},
	})
	env.Bind("list", &value.Native{
		Name: "list", Min: 0, Max: -1, Raw: true,
		Fn: func(args []value.Value) (value.Value, error) {
			var result value.Value = value.Empty
			for i := len(args) - 1; i >= 0; i-- {
				result = value.NewPair(args[i], result)
			}
			return result, nil
		},
	})
	env.Bind("map", &value.Native{
		Name: "map", Min: 2, Max: 2, Raw: true,
		Params: []value.NativePredicate{{Name: "a procedure", Check: isProc}},
		Fn: func(args []value.Value) (value.Value, error) {
			elems, err := toSlice(args[1])
			if err != nil {
				return nil, err
			}
			tok := token.New("map", 0, 0)
			mapped := make([]value.Value, len(elems))
			for i, e := range elems {
				res, err := eval.Apply(args[0], []value.Value{e}, tok, env)
				if err != nil {
					return nil, err
				}
				v := res.Value
				if res.Disposition == value.Continuation {
					v, err = eval.Eval(res.NextForm, res.NextEnv)
					if err != nil {
						return nil, err
					}
				}
				mapped[i] = v
			}
			var result value.Value = value.Empty
			for i := len(mapped) - 1; i >= 0; i-- {
				result = value.NewPair(mapped[i], result)
			}
			return result, nil
		},
	})
}

func toSlice(list value.Value) ([]value.Value, error) {
	var out []value.Value
	for {
		switch t := list.(type) {
		case value.EmptyValue:
			return out, nil
		case *value.Pair:
			out = append(out, t.Car)
			list = t.Cdr
		default:
			return nil, fmt.Errorf("expected a proper list, got %s", list.Type())
		}
	}
}

func registerPredicates(env *value.Environment) {
	env.Bind("null?", &value.Native{
		Name: "null?", Min: 1, Max: 1, Raw: true,
		Fn: func(args []value.Value) (value.Value, error) {
			_, ok := args[0].(value.EmptyValue)
			return value.BoolOf(ok), nil
		},
	})
	env.Bind("pair?", &value.Native{
		Name: "pair?", Min: 1, Max: 1, Raw: true,
		Fn: func(args []value.Value) (value.Value, error) {
			return value.BoolOf(isPair(args[0])), nil
		},
	})
	// eq? compares by identity for reference-like variants (pairs,
	// symbols, procedures) and by value for the small fixed-size
	// variants (numbers, chars, booleans), matching is_eq/SkimpySymbol
	// identity in original_source/sdata.py.
	env.Bind("eq?", &value.Native{
		Name: "eq?", Min: 2, Max: 2, Raw: true,
		Fn: func(args []value.Value) (value.Value, error) {
			return value.BoolOf(isEq(args[0], args[1])), nil
		},
	})
}

func isEq(a, b value.Value) bool {
	switch av := a.(type) {
	case *value.Pair:
		bv, ok := b.(*value.Pair)
		return ok && av == bv
	case *value.SymbolValue:
		bv, ok := b.(*value.SymbolValue)
		return ok && av.Sym == bv.Sym
	case *value.Compound:
		bv, ok := b.(*value.Compound)
		return ok && av == bv
	case *value.Native:
		bv, ok := b.(*value.Native)
		return ok && av == bv
	case value.Number:
		bv, ok := b.(value.Number)
		return ok && av == bv
	case value.String:
		bv, ok := b.(value.String)
		return ok && av == bv
	case value.Char:
		bv, ok := b.(value.Char)
		return ok && av == bv
	case value.Boolean:
		bv, ok := b.(value.Boolean)
		return ok && av == bv
	case value.EmptyValue:
		_, ok := b.(value.EmptyValue)
		return ok
	default:
		return false
	}
}

func registerIO(env *value.Environment, out io.Writer) {
	env.Bind("display", &value.Native{
		Name: "display", Min: 0, Max: -1, Raw: true,
		Fn: func(args []value.Value) (value.Value, error) {
			for _, a := range args {
				rendered, err := pretty.Write(a, 0, 0)
				if err != nil {
					return nil, err
				}
				fmt.Fprint(out, rendered)
			}
			return value.None, nil
		},
	})
	env.Bind("load", &value.Native{
		Name: "load", Min: 1, Max: 1, Raw: true,
		Fn: func(args []value.Value) (value.Value, error) {
			path, ok := args[0].(value.String)
			if !ok {
				return nil, fmt.Errorf("load: argument must be a string, got %s", args[0].Type())
			}
			if err := Load(string(path), env); err != nil {
				return nil, err
			}
			return value.None, nil
		},
	})
}

// Load reads, tokenizes, parses, analyzes, and evaluates the file at
// path in env, used by the `load` primitive. The primitive passes the
// environment it was registered into, not the caller's environment.
func Load(path string, env *value.Environment) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	toks, err := lexer.Scan(string(content))
	if err != nil {
		if lexErr, ok := err.(*lexer.Error); ok {
			return serror.New(lexErr.Line, lexErr.Col, "%s", lexErr.Reason)
		}
		return err
	}
	root, err := cst.Parse(toks)
	if err != nil {
		return err
	}
	a := analyze.New()
	program := a.Analyze(root)
	_, err = eval.Eval(program, env)
	return err
}
