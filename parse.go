package bisect

import (
	"io"
	"strconv"
	"strings"
)

// Expr = num | name | Call | Neg | Plus | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Call = funcname '(' Expr { ',' Expr } ')'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Pow = Expr '^' Expr

// Expr is a parsed formula in the variable x. An Expr is immutable and safe
// for concurrent use.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// src is the formula text, if known.
	src string
}

// ParseFormula parses a formula such as "x^2 - 2" or "sin(x) - x/2". Names
// are case-insensitive. The only variable is x; pi and e are constants.
func ParseFormula(formula string) (*Expr, error) {
	e, err := Parse(strings.NewReader(formula))
	if err != nil {
		return nil, err
	}
	e.src = formula
	return e, nil
}

// Parse parses a formula read to EOF from src.
func Parse(src io.RuneScanner) (*Expr, error) {
	scan := lex(src)
	n, err := parseterm(scan, exprprec)
	if err != nil {
		return nil, err
	}
	switch tok := scan.must(); tok.kind {
	case tokenEOF:
	default:
		return nil, itShouldNotHaveEndedThisWay(tok)
	}
	if n == nil {
		// Only reachable when the input is a lone close bracket, which the
		// switch above reports.
		panic("bisect: empty parse without error")
	}
	return &Expr{n: n}, nil
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an error
// in contexts where empty subexpressions are illegal.
func parseterm(scan *lexer, until operator) (*node, error) {
	n, err := parselhs(scan, until)
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
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				end := scan.must()
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case tokenNum, tokenIdent, tokenOpen:
			// Terms must be joined by an operator.
			return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
		case tokenClose, tokenSep, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("bisect: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
func parselhs(scan *lexer, until operator) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	var n *node
	switch tok.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			// Out of range. Literals must be finite.
			return nil, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
		}
		n = &node{kind: nodeNum, num: v}
	case tokenIdent:
		next, err := scan.next()
		if err != nil {
			return nil, err
		}
		if next.kind == tokenOpen {
			return parsecall(scan, tok, next)
		}
		scan.push(next)
		return parsename(tok)
	case tokenOp:
		// unary operator
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			end := scan.must()
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = &node{kind: prec.op, left: rhs}
	case tokenOpen:
		rhs, err := parseterm(scan, exprprec)
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
		// Let the caller decide whether an empty subexpression is legal.
		scan.push(tok)
		return nil, nil
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("bisect: unknown token: " + tok.String())
	}
	return n, nil
}

// parsename resolves an identifier that is not followed by an argument list.
func parsename(tok lexToken) (*node, error) {
	if tok.text == variable {
		return &node{kind: nodeVar, name: tok.text}, nil
	}
	if v, ok := constants[tok.text]; ok {
		return &node{kind: nodeConst, num: v, name: tok.text}, nil
	}
	_, isfn := globalfuncs[tok.text]
	return nil, &NameError{Col: tok.pos, Name: tok.text, Func: isfn}
}

// parsecall parses the argument list of a call. name is the function name
// token and open is the open bracket following it.
func parsecall(scan *lexer, name, open lexToken) (*node, error) {
	fn, ok := globalfuncs[name.text]
	if !ok {
		return nil, &UnknownFunctionError{Col: name.pos, Name: name.text}
	}
	args, err := parsearglist(scan)
	if err != nil {
		return nil, err
	}
	if !fn.CanCall(len(args)) {
		return nil, &ArityError{Col: open.pos, Func: fn.String(), Want: fn.arity(), Len: len(args)}
	}
	if fn == fnPow {
		// pow(a, b) is the same expression as a^b.
		return &node{kind: nodePow, left: args[0], right: args[1]}, nil
	}
	return &node{kind: nodeCall, fn: fn, args: args}, nil
}

// parsearglist parses a bracketed list of zero or more args, consuming the
// closing bracket.
func parsearglist(scan *lexer) ([]*node, error) {
	var args []*node
	for {
		rhs, err := parseterm(scan, exprprec)
		if err != nil {
			// As a special case, reporting mismatched brackets is more helpful
			// than empty expression, if that's what we'd do here.
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: "("}
			}
			return nil, err
		}
		end := scan.must()
		switch end.kind {
		case tokenClose:
			if rhs == nil {
				// f() is an arity problem, but f(a,) is malformed.
				if len(args) != 0 {
					return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
				}
				return nil, nil
			}
			return append(args, rhs), nil
		case tokenSep:
			if rhs == nil {
				return nil, &SeparatorError{Col: end.pos, Sep: end.text}
			}
			args = append(args, rhs)
		case tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: "("}
		default:
			panic("bisect: parseterm ended on non-end token " + end.String())
		}
	}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression.
func itShouldNotHaveEndedThisWay(tok lexToken) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: "("}
	case tokenClose:
		// A close bracket at the end of the input has no partner.
		return &BracketError{Col: tok.pos, Right: tok.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		panic("bisect: it really should not have ended this way: " + tok.String())
	}
}

// String creates a fully parenthesized representation of the parsed
// expression in which every exponentiation is written as a call to pow.
// Parsing the result gives an identical expression.
func (e *Expr) String() string {
	return e.n.String()
}

// Source returns the formula text the expression was parsed from. If the
// expression was parsed from a RuneScanner, the result is e.String().
func (e *Expr) Source() string {
	if e.src == "" {
		return e.String()
	}
	return e.src
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
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

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
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
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodeNop}
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
