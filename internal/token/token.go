// Package token defines the lexeme type produced by the lexer and
// carried by every node of the concrete syntax tree.
package token

import "fmt"

// Token is a single lexeme together with its origin in the source text.
// Tokens are immutable once created.
type Token struct {
	Text string
	Line int
	Col  int
}

// New builds a Token at the given position.
func New(text string, line, col int) Token {
	return Token{Text: text, Line: line, Col: col}
}

// String renders the token as "text @ {line:col}", matching the
// reference implementation's debug representation.
func (t Token) String() string {
	return fmt.Sprintf("%s @ {%d:%d}", t.Text, t.Line, t.Col)
}

// IsNumber reports whether the token's text looks like a numeric
// literal: it begins with a digit. Skimpy does not support signed
// numeric literals at the lexical level (negative numbers are written
// via the `-` procedure).
func (t Token) IsNumber() bool {
	return t.Text != "" && t.Text[0] >= '0' && t.Text[0] <= '9'
}

// IsString reports whether the token is a quoted string literal: its
// text still carries the leading `"` tag stripped later by the
// analyzer.
func (t Token) IsString() bool {
	return t.Text != "" && t.Text[0] == '"'
}

// IsVarName reports whether the token can be used as a variable name:
// neither a number nor a string literal.
func (t Token) IsVarName() bool {
	return !t.IsNumber() && !t.IsString()
}
