package calc

import (
	"io"
	"strconv"
	"strings"
)

// Stmt = 'let' ident '=' Expr | Expr
// Expr = num | name | Call | Neg | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Call = funcname '(' Expr { ',' Expr } ')'
// Neg = '-' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Pow = Expr '^' Expr

// Stmt is a parsed statement that can be evaluated with an environment. A
// statement is either a single expression or a let binding.
type Stmt struct {
	// n is the root node of the statement's expression. For a let
	// statement, it is the right-hand side.
	n *node
	// let is the name bound by a let statement, or the empty string for an
	// expression statement.
	let string
	// names is the list of variable names used in the expression.
	names []string
}

// maxDepth is the maximum expression nesting depth the parser accepts.
// Parsing recurses per nesting level, so unbounded input depth would be
// unbounded goroutine stack.
const maxDepth = 512

// parsectx holds general data for parsing.
type parsectx struct {
	// names is the set of variable names that have been seen this parse.
	names map[string]bool
	// depth is the current expression nesting depth.
	depth int
}

// Parse parses a single statement so it can be evaluated with an
// environment. Parsing is atomic: any syntax error, including tokens
// trailing a complete statement, yields a nil Stmt.
func Parse(src io.RuneScanner) (*Stmt, error) {
	scan := lex(src)
	p := parsectx{
		names: make(map[string]bool),
	}
	var s Stmt
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokenLet {
		name, err := parselet(scan)
		if err != nil {
			return nil, err
		}
		s.let = name
	} else {
		scan.push(tok)
	}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, itShouldNotHaveEndedThisWay(scan.must())
	}
	if end := scan.must(); end.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(end)
	}
	s.n = n
	s.names = make([]string, 0, len(p.names))
	for k := range p.names {
		s.names = append(s.names, k)
	}
	sortstrs(s.names)
	return &s, nil
}

// ParseString is a shortcut to parse a statement from a string.
func ParseString(src string) (*Stmt, error) {
	return Parse(strings.NewReader(src))
}

// parselet parses the name and = of a let statement. The let token itself
// is already consumed.
func parselet(scan *lexer) (string, error) {
	tok, err := scan.next()
	if err != nil {
		return "", err
	}
	if tok.kind != tokenIdent {
		return "", &LetError{Col: tok.pos, Msg: "expected a variable name"}
	}
	if _, ok := builtins[tok.text]; ok {
		// Call targets resolve before variables, so a variable named after
		// a function could never be read back. Refuse to create it.
		return "", &LetError{Col: tok.pos, Msg: strconv.Quote(tok.text) + " is a function name"}
	}
	eq, err := scan.next()
	if err != nil {
		return "", err
	}
	if eq.kind != tokenAssign {
		return "", &LetError{Col: eq.pos, Msg: "expected = after " + strconv.Quote(tok.text)}
	}
	return tok.text, nil
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// parseterm parses a single term. If there is no error, then parseterm
// pushes the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an
// error in contexts where empty subexpressions are illegal.
func parseterm(scan *lexer, p *parsectx, until operator) (*node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		return nil, &DepthError{Col: scan.rune}
	}
	n, err := parselhs(scan, p, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenOp:
			// Binary operator.
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				end := scan.must()
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case tokenNum, tokenIdent, tokenOpen, tokenLet:
			// A complete term followed by anything that starts a new one is
			// a syntax error; there is no implicit multiplication.
			return nil, &TokenError{Col: tok.pos, Token: tok.text}
		case tokenClose, tokenSep, tokenEOF, tokenAssign:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("calc: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
func parselhs(scan *lexer, p *parsectx, until operator) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	var n *node
	switch tok.kind {
	case tokenNum:
		n = &node{kind: nodeNum, val: tok.val}
	case tokenIdent:
		fn, ok := builtins[tok.text]
		if ok {
			return parsecall(scan, p, fn, tok.text, tok.pos)
		}
		nxt, err := scan.next()
		if err != nil {
			return nil, err
		}
		if nxt.kind == tokenOpen {
			// An identifier followed by an argument list is always a call,
			// and only builtins are callable.
			return nil, &FuncError{Col: tok.pos, Func: tok.text}
		}
		scan.push(nxt)
		p.names[tok.text] = true
		n = &node{kind: nodeName, name: tok.text}
	case tokenOp:
		// Unary operator.
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			end := scan.must()
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = &node{kind: prec.op, left: rhs}
	case tokenOpen:
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			return nil, itShouldNotHaveEndedThisWay(end)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = rhs
	case tokenClose:
		// This might be the end of an empty argument list, so just let the
		// caller decide what to do.
		scan.push(tok)
		return nil, nil
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenAssign, tokenLet:
		return nil, &TokenError{Col: tok.pos, Token: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("calc: unknown token: " + tok.String())
	}
	return n, nil
}

// parsecall parses the parenthesized argument list of a call to fn, with
// the function name already consumed. pos is the position of the name.
func parsecall(scan *lexer, p *parsectx, fn builtin, name string, pos int) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenOpen {
		// Builtin names always denote calls; there is no variable to fall
		// back to.
		return nil, &CallError{Col: pos, Func: name, Len: 0, Want: fn.arity()}
	}
	args, err := parsearglist(scan, p)
	if err != nil {
		return nil, err
	}
	end := scan.must()
	if end.kind != tokenClose {
		panic("calc: arg list ended on " + end.String() + " instead of close paren")
	}
	if len(args) != fn.arity() {
		return nil, &CallError{Col: pos, Func: name, Len: len(args), Want: fn.arity()}
	}
	return &node{kind: nodeCall, name: name, fn: fn, args: args}, nil
}

// parsearglist parses a parenthesized list of zero or more args, leaving
// the close paren pushed for the caller.
func parsearglist(scan *lexer, p *parsectx) ([]*node, error) {
	var args []*node
	for {
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		switch end.kind {
		case tokenClose:
			scan.push(end)
			if rhs == nil {
				// No expression parsed. func() is allowed at this level so
				// that the arity check can report it, but func(a,) isn't.
				if len(args) != 0 {
					return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
				}
				return nil, nil
			}
			return append(args, rhs), nil
		case tokenSep:
			if rhs == nil {
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			args = append(args, rhs)
		case tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: "(", Right: ""}
		case tokenAssign:
			return nil, &TokenError{Col: end.pos, Token: end.text}
		default:
			panic("calc: arg list ended on non-end token " + end.String())
		}
	}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an
// unexpected token at the end of a subexpression.
func itShouldNotHaveEndedThisWay(tok lexToken) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open paren that was not closed.
		return &BracketError{Col: tok.pos, Left: "(", Right: ""}
	case tokenClose:
		return &BracketError{Col: tok.pos, Left: "", Right: tok.text}
	case tokenSep:
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenAssign, tokenLet:
		return &TokenError{Col: tok.pos, Token: tok.text}
	default:
		panic("calc: it really should not have ended this way: " + tok.String())
	}
}

// Assign reports the variable a let statement binds. For an expression
// statement, ok is false.
func (s *Stmt) Assign() (name string, ok bool) {
	return s.let, s.let != ""
}

// Vars returns the variable names read when evaluating the statement.
func (s *Stmt) Vars() []string {
	return append(([]string)(nil), s.names...)
}

// String creates a string representation of the parsed statement, with
// parentheses grouping each term.
func (s *Stmt) String() string {
	var b strings.Builder
	if s.let != "" {
		b.WriteString("let ")
		b.WriteString(s.let)
		b.WriteString(" = ")
	}
	s.n.fmt(&b)
	return b.String()
}

type operator struct {
	// prec is the precedence value. Lower is less binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such
// binary operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone. Unary minus binds
// tighter than the multiplicative operators and looser than ^, so -2^2 is
// -(2^2).
func unop(text string) operator {
	switch text {
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
