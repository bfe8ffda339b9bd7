package calc

import (
	"math"
	"strconv"
)

// builtin identifies one of the functions the calculator understands. The
// set is closed; the evaluator dispatches over it exhaustively rather than
// through a registry, since it is small and fixed.
type builtin int8

const (
	builtinNone builtin = iota
	builtinSin
	builtinCos
	builtinTan
	builtinSqrt
	builtinExp
	builtinLn
	builtinLog
	builtinAbs
	builtinPrint
)

// builtins maps function names to their identifiers. The parser resolves
// call targets here; identifiers absent from this table are variables.
var builtins = map[string]builtin{
	"sin":   builtinSin,
	"cos":   builtinCos,
	"tan":   builtinTan,
	"sqrt":  builtinSqrt,
	"exp":   builtinExp,
	"ln":    builtinLn,
	"log":   builtinLog,
	"abs":   builtinAbs,
	"print": builtinPrint,
}

// arity returns the number of arguments fn requires. Every builtin is
// currently unary, but the parser asks through here so the rule stays in
// one place.
func (fn builtin) arity() int {
	return 1
}

// consts is the table of named constants. Lookups check session variables
// first, so a let statement shadows a constant without mutating this table.
var consts = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// DomainError is an error returned when a function or operator is applied
// to an argument outside its domain, e.g. sqrt of a negative number.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Func is a name identifying the function or operator.
	Func string
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}
