package value

import "github.com/vkramer/go-skimpy/internal/token"

// Compound is a user-defined procedure: parameter names, an analyzed
// body, and the environment it closes over. Per invariant 5, the
// closed-over environment is the frame current at the point the
// lambda expression was evaluated, not at call time.
type Compound struct {
	Name   string // empty for anonymous lambdas; set by `define` sugar
	Params []string
	Body   Body
	Env    *Environment
}

func (*Compound) Type() string { return "procedure" }
func (c *Compound) String() string {
	if c.Name != "" {
		return "#<procedure " + c.Name + ">"
	}
	return "#<procedure>"
}

// NativePredicate checks one positional argument's type, returning a
// human-readable type name on failure for the arity/type error message.
type NativePredicate struct {
	Name  string
	Check func(Value) bool
}

// Native is a host-implemented procedure. Min/Max bound the accepted
// argument count (Max < 0 means unbounded). Params, when non-nil,
// declares a positional type predicate per argument checked in order;
// it is shorter than the accepted arity when trailing arguments are
// unchecked or variadic.
//
// Every native, raw or not, receives and returns Value directly:
// internal/eval.Apply does not consult Raw, and does not pass
// arguments or results through Pythonify/Skimpify.
type Native struct {
	Name   string
	Min    int
	Max    int // -1 for unbounded
	Params []NativePredicate
	Raw    bool
	Fn     func(args []Value) (Value, error)
}

func (*Native) Type() string   { return "procedure" }
func (n *Native) String() string { return "#<procedure " + n.Name + ">" }

// CallRecord identifies one activation of a Compound procedure: the
// procedure itself and the token of its call site, plus the caller's
// own record for walking a trace back to the top level. Written into
// an Environment's private "_cp" slot at apply-time (see Environment.SetCurrentCall).
type CallRecord struct {
	Proc   *Compound
	Tok    token.Token
	Caller *CallRecord
}
