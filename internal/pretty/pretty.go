// Package pretty renders Skimpy values for display, adding cycle
// detection on top of the best-effort String() methods in
// internal/value: a pair reachable from itself raises a SkimpyError
// instead of looping forever.
package pretty

import (
	"strings"

	"github.com/vkramer/go-skimpy/internal/serror"
	"github.com/vkramer/go-skimpy/internal/value"
)

// Write renders v the way `display`/the REPL show a result. line and
// col are the source position blamed if a cycle is detected (callers typically
// have no better position to offer than the call site that produced v).
func Write(v value.Value, line, col int) (string, error) {
	var sb strings.Builder
	if err := write(&sb, v, line, col, map[*value.Pair]bool{}); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func write(sb *strings.Builder, v value.Value, line, col int, visited map[*value.Pair]bool) error {
	pair, ok := v.(*value.Pair)
	if !ok {
		sb.WriteString(v.String())
		return nil
	}
	return writePair(sb, pair, line, col, visited)
}

// writePair walks the spine of the list rooted at p. visited tracks
// pairs currently on the path from the root to here, not every pair
// ever seen, so shared (but acyclic) structure prints fine and only a
// genuine cycle back onto the current path is rejected.
func writePair(sb *strings.Builder, p *value.Pair, line, col int, visited map[*value.Pair]bool) error {
	sb.WriteByte('(')
	var spine []*value.Pair
	cur := value.Value(p)
	first := true
	for {
		pair, ok := cur.(*value.Pair)
		if !ok {
			break
		}
		if visited[pair] {
			for _, sp := range spine {
				delete(visited, sp)
			}
			return serror.New(line, col, "cannot print a cyclic structure")
		}
		visited[pair] = true
		spine = append(spine, pair)
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		if err := write(sb, pair.Car, line, col, visited); err != nil {
			for _, sp := range spine {
				delete(visited, sp)
			}
			return err
		}
		cur = pair.Cdr
	}
	switch t := cur.(type) {
	case value.EmptyValue:
		// proper list, nothing more to print
	default:
		sb.WriteString(" . ")
		sb.WriteString(t.String())
	}
	sb.WriteByte(')')
	for _, sp := range spine {
		delete(visited, sp)
	}
	return nil
}
