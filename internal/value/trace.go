package value

import "github.com/vkramer/go-skimpy/internal/serror"

// FrameTrace walks the chain of CallRecords starting at the call
// record active in e (if any), innermost first, rendering each as a
// serror.Frame. Mirrors original_source/serror.py's generate_frames,
// which walks the same "_cp" chain to build a textual stack trace.
func (e *Environment) FrameTrace() []serror.Frame {
	rec, ok := e.CurrentCall()
	if !ok {
		return nil
	}
	var frames []serror.Frame
	for r := rec; r != nil; r = r.Caller {
		name := r.Proc.Name
		if name == "" {
			name = "#<procedure>"
		}
		frames = append(frames, serror.Frame{Proc: name, Line: r.Tok.Line, Col: r.Tok.Col})
	}
	return frames
}
