package calc

import "strconv"

// OperatorError is an error indicating an operator token that has no
// meaning in the position it appeared. It implements InputError.
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

// BracketError is an error indicating unbalanced parentheses in the input.
// It implements InputError.
type BracketError struct {
	// Col is the position at which the imbalance was noticed.
	Col int
	// Left is the opening parenthesis, or empty if a close parenthesis
	// appeared with no matching open.
	Left string
	// Right is the closing parenthesis, or empty if the input ended with an
	// open parenthesis unclosed.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close paren with no open paren")
	}
	return errpos(err.Col, "open paren with no close paren")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating a comma outside a function argument
// list. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// FuncError is an error indicating a call to a name that is not a builtin
// function. It implements InputError.
type FuncError struct {
	// Col is the position of the name.
	Col int
	// Func is the unknown name that was called.
	Func string
}

func (err *FuncError) Error() string {
	return errpos(err.Col, "unknown function "+strconv.Quote(err.Func))
}

func (err *FuncError) Pos() int {
	return err.Col
}

// CallError is an error indicating a function call with the wrong number of
// arguments. It implements InputError.
type CallError struct {
	// Col is the position of the call expression.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments the call supplied.
	Len int
	// Want is the number of arguments the function requires.
	Want int
}

func (err *CallError) Error() string {
	return errpos(err.Col, err.Func+" takes "+strconv.Itoa(err.Want)+" arguments, not "+strconv.Itoa(err.Len))
}

func (err *CallError) Pos() int {
	return err.Col
}

// TokenError is an error indicating a token that cannot appear where it
// did, including tokens trailing a complete statement. It implements
// InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Token is the text of the unexpected token.
	Token string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Token))
}

func (err *TokenError) Pos() int {
	return err.Col
}

// LetError is an error indicating a malformed let statement. It implements
// InputError.
type LetError struct {
	// Col is the position of the offending token.
	Col int
	// Msg describes what was wrong with the statement.
	Msg string
}

func (err *LetError) Error() string {
	return errpos(err.Col, "bad let statement: "+err.Msg)
}

func (err *LetError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty expression or
// subexpression. It implements InputError.
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

// DepthError is an error indicating that an expression nests more deeply
// than the parser allows. It implements InputError.
type DepthError struct {
	// Col is the position at which the limit was exceeded.
	Col int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "expression nests too deeply")
}

func (err *DepthError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting
// from invalid input implements InputError.
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
	_ InputError = (*FuncError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*LetError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*DepthError)(nil)
	_ InputError = (*LexError)(nil)
)
