// Package calc implements the core of an interactive calculator over real
// numbers.
//
// A statement is a single line of input: either an expression, like
// "2 + 3 * x", or a binding, like "let x = 5". Parsing produces a Stmt,
// which is evaluated against an Env holding the variables bound so far in
// the session. The usual precedence rules apply, "^" is right-associative,
// and "-2^2" is -(2^2). A small fixed set of functions (sin, cos, tan,
// sqrt, exp, ln, log, abs, print) and the constants pi and e are built in.
//
// The read-eval-print loop itself lives in cmd/calc; this package only
// turns one line of text into one value or one error.
package calc
