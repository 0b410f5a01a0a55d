package eval

import (
	"fmt"

	"github.com/vkramer/go-skimpy/internal/serror"
	"github.com/vkramer/go-skimpy/internal/token"
	"github.com/vkramer/go-skimpy/internal/value"
)

// Apply resolves a procedure call: proc is the already-evaluated
// operator, args the already-evaluated operands, tok the call site
// (for the frame trace), and callerEnv the environment active where
// the call occurs (consulted to detect self-tail-recursion).
//
// A Native call completes immediately (Result). A Compound call
// produces a Continuation into the procedure's body, so the caller's
// own Step can tail into it without growing the Go call stack.
func Apply(proc value.Value, args []value.Value, tok token.Token, callerEnv *value.Environment) (value.StepResult, error) {
	switch p := proc.(type) {
	case *value.Native:
		v, err := applyNative(p, args, tok, callerEnv)
		if err != nil {
			return value.StepResult{}, err
		}
		return value.Done(v), nil
	case *value.Compound:
		return applyCompound(p, args, tok, callerEnv)
	default:
		return value.StepResult{}, serror.New(tok.Line, tok.Col, "not a procedure: %s", proc.String()).WithFrames(callerEnv.FrameTrace())
	}
}

func applyNative(p *value.Native, args []value.Value, tok token.Token, callerEnv *value.Environment) (value.Value, error) {
	n := len(args)
	if n < p.Min || (p.Max >= 0 && n > p.Max) {
		return nil, serror.New(tok.Line, tok.Col, "%s: expected %s, got %d argument(s)", p.Name, arityDescription(p.Min, p.Max), n).WithFrames(callerEnv.FrameTrace())
	}
	for i, pred := range p.Params {
		if i >= n {
			break
		}
		if !pred.Check(args[i]) {
			return nil, serror.New(tok.Line, tok.Col, "%s: argument %d must be %s, got %s", p.Name, i+1, pred.Name, args[i].Type()).WithFrames(callerEnv.FrameTrace())
		}
	}
	v, err := p.Fn(args)
	if err != nil {
		if se, ok := err.(*serror.SkimpyError); ok {
			return nil, se
		}
		return nil, serror.New(tok.Line, tok.Col, "%s", err.Error()).WithFrames(callerEnv.FrameTrace())
	}
	return v, nil
}

func arityDescription(min, max int) string {
	switch {
	case max < 0:
		return fmt.Sprintf("at least %d argument(s)", min)
	case min == max:
		return fmt.Sprintf("%d argument(s)", min)
	default:
		return fmt.Sprintf("between %d and %d argument(s)", min, max)
	}
}

// applyCompound decides between Rebind (self-tail-recursive application, no
// new frame) and Extend (ordinary application, new frame off the
// procedure's defining environment) by comparing the call record
// currently active in callerEnv against p. This is the Go-idiomatic
// equivalent of the requester-tagging trick in
// original_source/seval.py's explicit_eval, reusing the "_cp" private
// slot the spec already dedicates to stack-trace synthesis.
func applyCompound(p *value.Compound, args []value.Value, tok token.Token, callerEnv *value.Environment) (value.StepResult, error) {
	if len(args) != len(p.Params) {
		return value.StepResult{}, serror.New(tok.Line, tok.Col, "%s: expected %d argument(s), got %d",
			procName(p), len(p.Params), len(args)).WithFrames(callerEnv.FrameTrace())
	}

	if current, ok := callerEnv.CurrentCall(); ok && current.Proc == p {
		if err := callerEnv.Rebind(p.Params, args); err != nil {
			return value.StepResult{}, err
		}
		return value.Continue(p.Body, callerEnv), nil
	}

	target, err := p.Env.Extend(p.Params, args)
	if err != nil {
		return value.StepResult{}, err
	}
	var caller *value.CallRecord
	if current, ok := callerEnv.CurrentCall(); ok {
		caller = current
	}
	target.SetCurrentCall(&value.CallRecord{Proc: p, Tok: tok, Caller: caller})
	return value.Continue(p.Body, target), nil
}

func procName(p *value.Compound) string {
	if p.Name != "" {
		return p.Name
	}
	return "#<procedure>"
}
