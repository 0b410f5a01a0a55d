// Package cst builds the concrete syntax tree: the raw, parenthesized
// token hierarchy produced by parsing a token stream. A node is either
// an atom (a single token) or an ordered sequence of child nodes with
// its own (line, column) and a parent back-link, used only to detect
// the program root during analysis.
package cst

import (
	"fmt"
	"strings"

	"github.com/vkramer/go-skimpy/internal/token"
)

// Node is either a leaf (an atom, Tok set) or an interior node (a
// sequence of Children). The tree is immutable once parsed; the
// analyzer caches translated forms alongside it rather than mutating
// it (see internal/form.Slot).
type Node struct {
	Tok      *token.Token // non-nil iff this node is an atom (leaf)
	Children []*Node
	Line     int
	Col      int
	Parent   *Node
}

// IsAtom reports whether n is a single token rather than a compound
// form.
func (n *Node) IsAtom() bool {
	return n.Tok != nil
}

// IsRoot reports whether n is the program root (no parent). Only the
// root's implicit top-level sequence is special-cased by the analyzer.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// Text returns the atom's lexeme. It panics if n is not an atom;
// callers must check IsAtom first, matching parse.get_text's contract
// in the reference implementation.
func (n *Node) Text() string {
	if !n.IsAtom() {
		panic("cst: Text called on a non-atom node")
	}
	return n.Tok.Text
}

// Child returns the child at index idx, supporting Python-style
// negative indices (-1 is the last child). ok is false if idx is out
// of range or n is an atom.
func (n *Node) Child(idx int) (*Node, bool) {
	if n.IsAtom() {
		return nil, false
	}
	if idx < 0 {
		idx = len(n.Children) + idx
	}
	if idx < 0 || idx >= len(n.Children) {
		return nil, false
	}
	return n.Children[idx], true
}

// Len returns the number of children, or 0 for an atom.
func (n *Node) Len() int {
	if n.IsAtom() {
		return 0
	}
	return len(n.Children)
}

// Slice returns the children in [start, end), end=-1 meaning "to the
// end". It returns nil for an atom.
func (n *Node) Slice(start, end int) []*Node {
	if n.IsAtom() {
		return nil
	}
	if end < 0 {
		end = len(n.Children) + end + 1
	}
	if start < 0 || start > len(n.Children) {
		return nil
	}
	if end > len(n.Children) {
		end = len(n.Children)
	}
	if start > end {
		return nil
	}
	return n.Children[start:end]
}

// Pretty renders the node back into parenthesized source text. For
// well-formed input this round-trips structurally (spec invariant:
// parse-unparse): re-scanning and re-building from Pretty's output
// yields a structurally equivalent tree.
func (n *Node) Pretty() string {
	if n.IsAtom() {
		if n.Tok.IsString() {
			return n.Tok.Text + `"`
		}
		return n.Tok.Text
	}
	if n.IsRoot() {
		// The program root is an implicit sequence, not a parenthesized
		// form: render its top-level forms one per line.
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = c.Pretty()
		}
		return strings.Join(parts, "\n")
	}
	if len(n.Children) == 0 {
		return "()"
	}
	var sb strings.Builder
	sb.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.Pretty())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (n *Node) String() string {
	if n.IsAtom() {
		return fmt.Sprintf("atom(%s)", n.Tok.Text)
	}
	return fmt.Sprintf("node(%d children)", len(n.Children))
}

// Builder assembles a tree from a flat token stream by tracking
// parenthesis nesting, mirroring parse.SkimpyTreeBuilder in the
// reference implementation.
type Builder struct {
	root *Node
	cur  *Node
}

// NewBuilder starts a fresh tree rooted at an anonymous top-level node.
func NewBuilder() *Builder {
	root := &Node{Line: 0, Col: 0}
	return &Builder{root: root, cur: root}
}

// Push opens a new interior node as a child of the current node and
// descends into it.
func (b *Builder) Push(tok token.Token) {
	child := &Node{Line: tok.Line, Col: tok.Col, Parent: b.cur}
	b.cur = child
}

// Pop closes the current interior node, attaching it to its parent and
// ascending back to the parent.
func (b *Builder) Pop() error {
	if b.cur.Parent == nil {
		return fmt.Errorf("unmatched right parenthesis")
	}
	done := b.cur
	b.cur = done.Parent
	b.cur.Children = append(b.cur.Children, done)
	return nil
}

// Append adds an atom to the current node.
func (b *Builder) Append(tok token.Token) {
	b.cur.Children = append(b.cur.Children, &Node{
		Tok:    &tok,
		Line:   tok.Line,
		Col:    tok.Col,
		Parent: b.cur,
	})
}

// Finish validates that every opened parenthesis was closed and
// returns the root node.
func (b *Builder) Finish() (*Node, error) {
	if b.cur != b.root {
		return nil, fmt.Errorf("unmatched left parenthesis at line %d col %d", b.cur.Line, b.cur.Col)
	}
	return b.root, nil
}

// Parse builds a CST from a flat token stream already produced by the
// lexer: the second half of parse.skimpy_scan's two-pass structure
// (scan, then build).
func Parse(tokens []token.Token) (*Node, error) {
	b := NewBuilder()
	for _, tok := range tokens {
		switch tok.Text {
		case "(":
			b.Push(tok)
		case ")":
			if err := b.Pop(); err != nil {
				return nil, fmt.Errorf("line %d col %d: %w", tok.Line, tok.Col, err)
			}
		default:
			if tok.IsString() && (len(tok.Text) < 2 || tok.Text[len(tok.Text)-1] != '"') {
				return nil, fmt.Errorf("line %d col %d: unmatched quotation", tok.Line, tok.Col)
			}
			if tok.IsString() {
				// Strip the trailing quote; the leading one is the
				// analyzer's string-literal tag (spec.md section 3).
				stripped := tok
				stripped.Text = tok.Text[:len(tok.Text)-1]
				b.Append(stripped)
				continue
			}
			b.Append(tok)
		}
	}
	return b.Finish()
}
