// Package value defines Skimpy's runtime value model and the lexical
// environment that binds names to values. The two live together
// because they are mutually referential: a Compound procedure closes
// over an *Environment, and an Environment's bindings hold Values.
package value

import (
	"strconv"
	"strings"

	"github.com/vkramer/go-skimpy/internal/symbol"
)

// Value is the tagged sum every runtime datum implements. Unlike the
// capability-interface style used for DWScript's richer type system,
// Skimpy's value set is small and fixed, so Value itself only carries
// identification; per-variant behavior (arithmetic, comparison) lives
// in the packages that consume values (internal/builtins, internal/pretty).
type Value interface {
	// Type returns a short type tag, used in error messages and by
	// native procedures' positional type predicates.
	Type() string
	String() string
}

// Number is Skimpy's only numeric type: every numeric literal becomes
// a float64, matching original_source/parse.py's unconditional float()
// conversion (spec Open Question (b), resolved in SPEC_FULL.md §3).
type Number float64

func (Number) Type() string { return "number" }
func (n Number) String() string {
	return formatNumber(float64(n))
}

// String is a Skimpy string value. Distinct from the Go string type
// it wraps, since Value must be a defined type with methods.
type String string

func (String) Type() string   { return "string" }
func (s String) String() string { return string(s) }

// Char is a single Skimpy character, e.g. #\newline.
type Char rune

func (Char) Type() string   { return "char" }
func (c Char) String() string { return string(rune(c)) }

// Boolean is Skimpy's boolean value. Only two instances ever exist
// (True and False below); callers compare by value since Boolean is
// a defined bool type, not a pointer, but equality still behaves like
// interning because there are exactly two possible values.
type Boolean bool

func (Boolean) Type() string { return "boolean" }
func (b Boolean) String() string {
	if b {
		return "#t"
	}
	return "#f"
}

// Canonical boolean values. Builtins and the analyzer should use these
// rather than constructing Boolean literals, so `eq?` on booleans is
// trivially true for same-truth-value comparisons.
const (
	True  Boolean = true
	False Boolean = false
)

// BoolOf converts a host bool to a Skimpy Boolean.
func BoolOf(b bool) Boolean {
	if b {
		return True
	}
	return False
}

// EmptyValue is the empty list, `()`. There is exactly one instance,
// Empty, below.
type EmptyValue struct{}

func (EmptyValue) Type() string   { return "empty-list" }
func (EmptyValue) String() string { return "()" }

// Empty is the singleton empty list value.
var Empty = EmptyValue{}

// Pair is a cons cell. Pair is always a pointer type so that pairs
// have reference identity, required by `eq?` and by the pretty
// printer's cycle detection.
type Pair struct {
	Car, Cdr Value
}

func (*Pair) Type() string   { return "pair" }

// String gives a best-effort, non-cycle-safe rendering, useful in
// error messages and debug output. Display-facing output should go
// through internal/pretty.Write instead, which detects cycles.
func (p *Pair) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	var cur Value = p
	first := true
	for {
		pair, ok := cur.(*Pair)
		if !ok {
			break
		}
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(pair.Car.String())
		cur = pair.Cdr
	}
	switch t := cur.(type) {
	case EmptyValue:
		// proper list, nothing more to print
	default:
		sb.WriteString(" . ")
		sb.WriteString(t.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// NewPair conses car onto cdr.
func NewPair(car, cdr Value) *Pair {
	return &Pair{Car: car, Cdr: cdr}
}

// SymbolValue wraps an interned *symbol.Symbol as a Value, so symbols
// can flow through the same evaluator plumbing as every other datum.
type SymbolValue struct {
	Sym *symbol.Symbol
}

func (*SymbolValue) Type() string   { return "symbol" }
func (s *SymbolValue) String() string { return s.Sym.Name() }

// NewSymbol interns name and wraps it as a Value.
func NewSymbol(name string) *SymbolValue {
	return &SymbolValue{Sym: symbol.Intern(name)}
}

// NonReturn is the value produced by forms that have no useful result
// (e.g. `display`, `load`). It renders as nothing when printed at a
// REPL prompt.
type NonReturn struct{}

func (NonReturn) Type() string   { return "non-return" }
func (NonReturn) String() string { return "" }

// None is the singleton NonReturn value.
var None = NonReturn{}

// formatNumber renders f without a trailing ".0" for integer-valued
// numbers, matching the teacher's FloatValue.String pattern.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
