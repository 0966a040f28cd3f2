package bisect

import (
	"errors"
	"strconv"
)

var (
	// ErrSyntax is the error that every malformed-formula error unwraps to.
	ErrSyntax = errors.New("syntax error")
	// ErrUnknownFunction is the error that UnknownFunctionError unwraps to.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrArity is the error that ArityError unwraps to.
	ErrArity = errors.New("wrong number of arguments")
)

// OperatorError is an error indicating an operator token that is not
// understood by the parser. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "unknown "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

func (err *OperatorError) Unwrap() error {
	return ErrSyntax
}

// BracketError is an error indicating unbalanced parentheses in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the offending token.
	Col int
	// Left is the opening bracket, or the empty string if a close bracket has
	// no match.
	Left string
	// Right is the closing bracket, or the empty string if an open bracket is
	// never closed.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Unwrap() error {
	return ErrSyntax
}

// SeparatorError is an error indicating a comma outside a function argument
// list or a missing operator between terms. It implements InputError.
type SeparatorError struct {
	// Col is the position of the unexpected token.
	Col int
	// Sep is the unexpected token.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

func (err *SeparatorError) Unwrap() error {
	return ErrSyntax
}

// EmptyExpressionError is an error indicating an empty subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Unwrap() error {
	return ErrSyntax
}

// NameError is an error indicating an identifier that cannot stand alone:
// a name that is neither x nor a constant, or a function name without an
// argument list.
type NameError struct {
	// Col is the position of the name.
	Col int
	// Name is the identifier, lowercased.
	Name string
	// Func is whether Name is a function.
	Func bool
}

func (err *NameError) Error() string {
	if err.Func {
		return errpos(err.Col, "function "+err.Name+" requires a parenthesized argument list")
	}
	return errpos(err.Col, "undefined name "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

func (err *NameError) Unwrap() error {
	return ErrSyntax
}

// UnknownFunctionError is an error indicating a call of a name that is not a
// recognized function. It implements InputError.
type UnknownFunctionError struct {
	// Col is the position of the name.
	Col int
	// Name is the name that was called, lowercased.
	Name string
}

func (err *UnknownFunctionError) Error() string {
	return errpos(err.Col, "unknown function "+strconv.Quote(err.Name))
}

func (err *UnknownFunctionError) Pos() int {
	return err.Col
}

func (err *UnknownFunctionError) Unwrap() error {
	return ErrUnknownFunction
}

// ArityError is an error indicating a function call with the wrong number of
// arguments. It implements InputError.
type ArityError struct {
	// Col is the position of the call's argument list.
	Col int
	// Func is the function name that was called.
	Func string
	// Want describes the accepted argument counts, e.g. "1" or "1 or 2".
	Want string
	// Len is the number of arguments the call supplied.
	Len int
}

func (err *ArityError) Error() string {
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments (want "+err.Want+")")
}

func (err *ArityError) Pos() int {
	return err.Col
}

func (err *ArityError) Unwrap() error {
	return ErrArity
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// an invalid formula implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*UnknownFunctionError)(nil)
	_ InputError = (*ArityError)(nil)
	_ InputError = (*LexError)(nil)
)
