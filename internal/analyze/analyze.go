// Package analyze translates the concrete syntax tree into the
// analyzed form trees internal/eval drives. Translation of any given
// node happens at most once and only when that node is first actually
// evaluated (internal/form.Slot), matching the reference
// implementation's lazily-populated subnode_values cache.
package analyze

import (
	"strconv"
	"strings"
	"sync"

	"github.com/vkramer/go-skimpy/internal/cst"
	"github.com/vkramer/go-skimpy/internal/form"
	"github.com/vkramer/go-skimpy/internal/serror"
	"github.com/vkramer/go-skimpy/internal/token"
	"github.com/vkramer/go-skimpy/internal/value"
)

// keyword special forms recognized by head token. Anything else with
// a compound head is an ordinary procedure application.
const (
	kwLambda = "lambda"
	kwDefine = "define"
	kwBegin  = "begin"
	kwIf     = "if"
	kwCond   = "cond"
	kwLet    = "let"
	kwOr     = "or"
	kwAnd    = "and"
	kwElse   = "else"
)

// Analyzer memoizes CST-node-to-form translation. The zero value is
// not usable; construct with New.
type Analyzer struct {
	mu    sync.Mutex
	slots map[*cst.Node]*form.Slot
}

// New returns an Analyzer with an empty translation cache.
func New() *Analyzer {
	return &Analyzer{slots: make(map[*cst.Node]*form.Slot)}
}

// Analyze returns the (possibly still-unresolved) analyzed form for
// node. The actual translation is deferred to the returned form.Slot's
// first Step call.
func (a *Analyzer) Analyze(node *cst.Node) value.Body {
	return a.slotFor(node)
}

func (a *Analyzer) slotFor(node *cst.Node) *form.Slot {
	a.mu.Lock()
	defer a.mu.Unlock()
	if s, ok := a.slots[node]; ok {
		return s
	}
	s := form.NewSlot(node, a.translate)
	a.slots[node] = s
	return s
}

// translate performs the actual one-time dispatch for node.
func (a *Analyzer) translate(node *cst.Node) (value.Body, error) {
	if node.IsRoot() {
		return a.translateSequence(node.Children)
	}
	if node.IsAtom() {
		return a.translateAtom(node)
	}
	if node.Len() == 0 {
		return &form.Literal{Val: value.Empty}, nil
	}

	head, _ := node.Child(0)
	if head.IsAtom() {
		switch strings.ToLower(head.Tok.Text) {
		case kwLambda:
			return a.translateLambda(node, "")
		case kwDefine:
			return a.translateDefine(node)
		case kwBegin:
			return a.translateSequence(node.Slice(1, -1))
		case kwIf:
			return a.translateIf(node)
		case kwCond:
			return a.translateCond(node)
		case kwLet:
			return a.translateLet(node)
		case kwOr:
			return a.translateQualifier(node, form.Or)
		case kwAnd:
			return a.translateQualifier(node, form.And)
		}
	}
	return a.translateApplication(node)
}

func (a *Analyzer) translateAtom(node *cst.Node) (value.Body, error) {
	tok := *node.Tok
	switch {
	case tok.IsNumber():
		n, err := parseNumber(tok.Text)
		if err != nil {
			return nil, serror.New(tok.Line, tok.Col, "malformed number: %s", tok.Text)
		}
		return &form.Literal{Val: value.Number(n)}, nil
	case tok.IsString():
		return &form.Literal{Val: value.String(tok.Text[1:])}, nil
	default:
		return &form.Variable{Name: strings.ToLower(tok.Text), Tok: tok}, nil
	}
}

func (a *Analyzer) translateSequence(children []*cst.Node) (value.Body, error) {
	forms := make([]value.Body, len(children))
	for i, c := range children {
		forms[i] = a.slotFor(c)
	}
	return &form.Sequence{Forms: forms}, nil
}

func (a *Analyzer) translateLambda(node *cst.Node, name string) (value.Body, error) {
	if node.Len() < 3 {
		return nil, malformed(node, "lambda")
	}
	paramsNode, _ := node.Child(1)
	params, err := paramNames(paramsNode)
	if err != nil {
		return nil, err
	}
	body, err := a.translateSequence(node.Slice(2, -1))
	if err != nil {
		return nil, err
	}
	return &form.Lambda{Name: name, Params: params, Body: body}, nil
}

func paramNames(node *cst.Node) ([]string, error) {
	if node.IsAtom() {
		return nil, malformed(node, "parameter list")
	}
	names := make([]string, node.Len())
	for i := 0; i < node.Len(); i++ {
		c, _ := node.Child(i)
		if !c.IsAtom() {
			return nil, malformed(c, "parameter name")
		}
		names[i] = strings.ToLower(c.Text())
	}
	return names, nil
}

// translateDefine handles both `(define name expr)` and the
// procedure-definition sugar `(define (name args...) body...)`, which
// desugars to `(define name (lambda (args...) body...))` with the
// lambda's Name set so its closure prints and traces under that name.
func (a *Analyzer) translateDefine(node *cst.Node) (value.Body, error) {
	if node.Len() < 2 {
		return nil, malformed(node, "define")
	}
	target, _ := node.Child(1)
	if target.IsAtom() {
		if node.Len() != 3 {
			return nil, malformed(node, "define")
		}
		valueForm := a.slotFor(nodeMustChild(node, 2))
		return &form.Define{Name: strings.ToLower(target.Text()), ValueForm: valueForm}, nil
	}

	// (define (name params...) body...)
	if target.Len() == 0 {
		return nil, malformed(node, "define")
	}
	nameNode, _ := target.Child(0)
	if !nameNode.IsAtom() {
		return nil, malformed(nameNode, "procedure name")
	}
	name := strings.ToLower(nameNode.Text())
	params, err := paramNames(&cst.Node{Children: target.Slice(1, -1)})
	if err != nil {
		return nil, err
	}
	body, err := a.translateSequence(node.Slice(2, -1))
	if err != nil {
		return nil, err
	}
	lam := &form.Lambda{Name: name, Params: params, Body: body}
	return &form.Define{Name: name, ValueForm: lam}, nil
}

func (a *Analyzer) translateIf(node *cst.Node) (value.Body, error) {
	if node.Len() < 3 || node.Len() > 4 {
		return nil, malformed(node, "if")
	}
	cond := a.slotFor(nodeMustChild(node, 1))
	then := a.slotFor(nodeMustChild(node, 2))
	var elseForm value.Body = &form.Literal{Val: value.None}
	if node.Len() == 4 {
		elseForm = a.slotFor(nodeMustChild(node, 3))
	}
	return &form.If{Cond: cond, Then: then, Else: elseForm}, nil
}

// translateCond reduces `(cond (test expr...) ... (else expr...))`
// into a chain of If forms, the final `else`-headed clause (if any)
// becoming the innermost alternative — ported from
// original_source/seval.py's analyze_cond.
func (a *Analyzer) translateCond(node *cst.Node) (value.Body, error) {
	clauses := node.Slice(1, -1)
	return a.translateCondClauses(clauses)
}

func (a *Analyzer) translateCondClauses(clauses []*cst.Node) (value.Body, error) {
	if len(clauses) == 0 {
		return &form.Literal{Val: value.None}, nil
	}
	clause := clauses[0]
	if clause.IsAtom() || clause.Len() < 1 {
		return nil, malformed(clause, "cond clause")
	}
	head, _ := clause.Child(0)
	if head.IsAtom() && strings.ToLower(head.Text()) == kwElse {
		return a.translateSequence(clause.Slice(1, -1))
	}
	cond := a.slotFor(head)
	then, err := a.translateSequence(clause.Slice(1, -1))
	if err != nil {
		return nil, err
	}
	rest, err := a.translateCondClauses(clauses[1:])
	if err != nil {
		return nil, err
	}
	return &form.If{Cond: cond, Then: then, Else: rest}, nil
}

func (a *Analyzer) translateQualifier(node *cst.Node, kind form.QualifierKind) (value.Body, error) {
	children := node.Slice(1, -1)
	forms := make([]value.Body, len(children))
	for i, c := range children {
		forms[i] = a.slotFor(c)
	}
	return &form.Qualifier{Kind: kind, Forms: forms}, nil
}

// translateLet desugars `(let ((x1 e1) (x2 e2) ...) body...)` into
// `((lambda (x1 x2 ...) body...) e1 e2 ...)`, exactly as
// original_source/seval.py's analyze_let.
func (a *Analyzer) translateLet(node *cst.Node) (value.Body, error) {
	if node.Len() < 3 {
		return nil, malformed(node, "let")
	}
	bindingsNode, _ := node.Child(1)
	if bindingsNode.IsAtom() {
		return nil, malformed(bindingsNode, "let bindings")
	}
	names := make([]string, bindingsNode.Len())
	operands := make([]value.Body, bindingsNode.Len())
	for i := 0; i < bindingsNode.Len(); i++ {
		pair, _ := bindingsNode.Child(i)
		if pair.IsAtom() || pair.Len() != 2 {
			return nil, malformed(pair, "let binding")
		}
		nameNode, _ := pair.Child(0)
		if !nameNode.IsAtom() {
			return nil, malformed(nameNode, "let binding name")
		}
		names[i] = strings.ToLower(nameNode.Text())
		operands[i] = a.slotFor(nodeMustChild(pair, 1))
	}
	body, err := a.translateSequence(node.Slice(2, -1))
	if err != nil {
		return nil, err
	}
	lam := &form.Lambda{Params: names, Body: body}
	return &form.Application{Operator: lam, Operands: operands, Tok: headToken(node)}, nil
}

func (a *Analyzer) translateApplication(node *cst.Node) (value.Body, error) {
	operator := a.slotFor(nodeMustChild(node, 0))
	operandNodes := node.Slice(1, -1)
	operands := make([]value.Body, len(operandNodes))
	for i, c := range operandNodes {
		operands[i] = a.slotFor(c)
	}
	return &form.Application{Operator: operator, Operands: operands, Tok: headToken(node)}, nil
}

func headToken(node *cst.Node) token.Token {
	head, _ := node.Child(0)
	if head != nil && head.IsAtom() {
		return *head.Tok
	}
	return token.New("", node.Line, node.Col)
}

func malformed(node *cst.Node, what string) error {
	return serror.New(node.Line, node.Col, "malformed %s", what)
}

func nodeMustChild(node *cst.Node, idx int) *cst.Node {
	c, _ := node.Child(idx)
	return c
}

func parseNumber(text string) (float64, error) {
	return strconv.ParseFloat(text, 64)
}
