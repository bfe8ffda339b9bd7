package calc

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Env is a session's variable environment. Variables bound by let
// statements live here for the lifetime of the session. An Env is owned by
// its session loop and is not safe to use concurrently.
type Env struct {
	vars map[string]float64
	out  io.Writer
}

// EnvOption is an option used when creating an environment.
type EnvOption interface {
	envOption(*Env)
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt map[string]float64
	outopt  struct{ w io.Writer }
)

func (o varopt) envOption(e *Env) { e.vars[o.name] = o.val }

func (o varsopt) envOption(e *Env) {
	for k, v := range o {
		e.vars[k] = v
	}
}

func (o outopt) envOption(e *Env) { e.out = o.w }

// SetVar sets the value of a variable in the environment.
func SetVar(name string, val float64) EnvOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the environment.
func SetVars(vars map[string]float64) EnvOption {
	return varsopt(vars)
}

// Output sets the sink that print writes to. The default is os.Stdout.
func Output(w io.Writer) EnvOption {
	return outopt{w}
}

// NewEnv creates a new session environment.
func NewEnv(opts ...EnvOption) *Env {
	e := Env{vars: make(map[string]float64), out: os.Stdout}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.envOption(&e)
	}
	return &e
}

// Clone creates a copy of an environment and applies options to it. The
// copy shares the output sink but not the variables.
func (e *Env) Clone(opts ...EnvOption) *Env {
	n := Env{vars: make(map[string]float64, len(e.vars)), out: e.out}
	for k, v := range e.vars {
		n.vars[k] = v
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.envOption(&n)
	}
	return &n
}

// Set sets the value of a variable. Returns e for chaining.
func (e *Env) Set(name string, val float64) *Env {
	e.vars[name] = val
	return e
}

// Lookup resolves a name: session variables first, then the constant
// table, so a let binding shadows pi or e for the rest of the session. ok
// is false if the name is bound in neither.
func (e *Env) Lookup(name string) (val float64, ok bool) {
	if v, ok := e.vars[name]; ok {
		return v, true
	}
	v, ok := consts[name]
	return v, ok
}

// Names returns the sorted names of the session's variables. Constants are
// not included.
func (e *Env) Names() []string {
	v := make([]string, 0, len(e.vars))
	for k := range e.vars {
		v = append(v, k)
	}
	sortstrs(v)
	return v
}

// Eval evaluates a statement. For a let statement, the right-hand side is
// evaluated first, then bound, and the bound value is the result; a failed
// evaluation binds nothing. Expression statements never modify the
// environment, although print writes to the environment's output sink.
func (e *Env) Eval(s *Stmt) (float64, error) {
	v, err := s.n.eval(e)
	if err != nil {
		return 0, err
	}
	if s.let != "" {
		e.vars[s.let] = v
	}
	return v, nil
}

// eval computes the node's value against an environment.
func (n *node) eval(e *Env) (float64, error) {
	switch n.kind {
	case nodeNum:
		return n.val, nil
	case nodeName:
		v, ok := e.Lookup(n.name)
		if !ok {
			return 0, &NameError{Name: n.name}
		}
		return v, nil
	case nodeCall:
		return n.call(e)
	case nodeNeg:
		v, err := n.left.eval(e)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case nodeAdd:
		l, r, err := n.operands(e)
		if err != nil {
			return 0, err
		}
		return l + r, nil
	case nodeSub:
		l, r, err := n.operands(e)
		if err != nil {
			return 0, err
		}
		return l - r, nil
	case nodeMul:
		l, r, err := n.operands(e)
		if err != nil {
			return 0, err
		}
		return l * r, nil
	case nodeDiv:
		l, r, err := n.operands(e)
		if err != nil {
			return 0, err
		}
		if r == 0 {
			return 0, &DivisionError{X: l}
		}
		return l / r, nil
	case nodePow:
		l, r, err := n.operands(e)
		if err != nil {
			return 0, err
		}
		// A negative base is fine with an integer exponent; a fractional
		// exponent has no real result.
		if l < 0 && r != math.Trunc(r) {
			return 0, &DomainError{X: l, Func: "^"}
		}
		return math.Pow(l, r), nil
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
}

// operands evaluates a binary node's operands, left before right.
func (n *node) operands(e *Env) (l, r float64, err error) {
	l, err = n.left.eval(e)
	if err != nil {
		return 0, 0, err
	}
	r, err = n.right.eval(e)
	if err != nil {
		return 0, 0, err
	}
	return l, r, nil
}

// call evaluates a builtin call node, arguments left to right. The parser
// checked arity, so the switch indexes args directly.
func (n *node) call(e *Env) (float64, error) {
	args := make([]float64, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(e)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	x := args[0]
	switch n.fn {
	case builtinSin:
		return math.Sin(x), nil
	case builtinCos:
		return math.Cos(x), nil
	case builtinTan:
		return math.Tan(x), nil
	case builtinSqrt:
		if x < 0 {
			return 0, &DomainError{X: x, Func: "sqrt"}
		}
		return math.Sqrt(x), nil
	case builtinExp:
		return math.Exp(x), nil
	case builtinLn:
		if x <= 0 {
			return 0, &DomainError{X: x, Func: "ln"}
		}
		return math.Log(x), nil
	case builtinLog:
		if x <= 0 {
			return 0, &DomainError{X: x, Func: "log"}
		}
		return math.Log10(x), nil
	case builtinAbs:
		return math.Abs(x), nil
	case builtinPrint:
		fmt.Fprintf(e.out, "=> %s\n", strconv.FormatFloat(x, 'g', -1, 64))
		return x, nil
	default:
		panic("calc: invalid builtin in call to " + n.name)
	}
}

// Eval is a shortcut to parse a statement and evaluate it in a fresh
// environment.
func Eval(src io.RuneScanner, opts ...EnvOption) (float64, error) {
	s, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return NewEnv(opts...).Eval(s)
}

// EvalString is a shortcut to parse and evaluate a string statement.
func EvalString(src string, opts ...EnvOption) (float64, error) {
	return Eval(strings.NewReader(src), opts...)
}

// NameError is an error from a lookup of a name that is bound neither in
// the environment nor in the constant table.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// DivisionError is an error from a division whose right operand is exactly
// zero. Division never yields an infinity or NaN.
type DivisionError struct {
	// X is the dividend.
	X float64
}

func (err *DivisionError) Error() string {
	return "division of " + strconv.FormatFloat(err.X, 'g', -1, 64) + " by zero"
}
