package calc_test

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxavvv/calc"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"num", "1", 1},
		{"real", "3.14", 3.14},
		{"sci", "1e3", 1000},
		{"frac", ".5 * 2", 1},
		{"neg", "-4", -4},
		{"add", "4+5+6", 15},
		{"sub", "4-5-6", -7},
		{"mul", "4*5*6", 120},
		{"div", "4/5/6", 4.0 / 5.0 / 6.0},
		{"prec", "2 + 3 * 4", 14},
		{"paren", "(2 + 3) * 4", 20},
		{"pow-right", "2 ^ 3 ^ 2", 512},
		{"neg-pow", "-2 ^ 2", -4},
		{"pow-neg-exp", "2 ^ -2", 0.25},
		{"neg-base-int-exp", "(-2) ^ 3", -8},
		{"pi", "pi", math.Pi},
		{"e", "e", math.E},
		{"sin", "sin(0)", 0},
		{"cos", "cos(0)", 1},
		{"tan", "tan(0)", 0},
		{"sqrt", "sqrt(9)", 3},
		{"exp", "exp(0)", 1},
		{"ln", "ln(1)", 0},
		{"log", "log(1000)", 3},
		{"abs", "abs(-3)", 3},
		{"call-arg-expr", "sqrt(2 * 8)", 4},
		{"sin-pi", "sin(pi / 2)", 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := calc.EvalString(c.src, calc.Output(io.Discard))
			require.NoError(t, err)
			assert.InDelta(t, c.want, got, 1e-12)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	t.Run("div-zero", func(t *testing.T) {
		_, err := calc.EvalString("5 / 0")
		var de *calc.DivisionError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, 5.0, de.X)
	})
	t.Run("div-zero-expr", func(t *testing.T) {
		_, err := calc.EvalString("1 / (2 - 2)")
		var de *calc.DivisionError
		require.ErrorAs(t, err, &de)
	})
	t.Run("sqrt-neg", func(t *testing.T) {
		_, err := calc.EvalString("sqrt(-1)")
		var de *calc.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "sqrt", de.Func)
	})
	t.Run("pow-neg-frac", func(t *testing.T) {
		_, err := calc.EvalString("(-1) ^ 0.5")
		var de *calc.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "^", de.Func)
	})
	t.Run("ln-zero", func(t *testing.T) {
		_, err := calc.EvalString("ln(0)")
		var de *calc.DomainError
		require.ErrorAs(t, err, &de)
	})
	t.Run("log-neg", func(t *testing.T) {
		_, err := calc.EvalString("log(-10)")
		var de *calc.DomainError
		require.ErrorAs(t, err, &de)
	})
	t.Run("undefined", func(t *testing.T) {
		_, err := calc.EvalString("y + 1")
		var ne *calc.NameError
		require.ErrorAs(t, err, &ne)
		assert.Equal(t, "y", ne.Name)
	})
}

func TestEvalOrder(t *testing.T) {
	// The left operand is evaluated before the right, so the division by
	// zero is reported rather than the undefined name to its right.
	_, err := calc.EvalString("1/0 + nope")
	var de *calc.DivisionError
	assert.ErrorAs(t, err, &de)
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	env := calc.NewEnv(calc.Output(&buf))

	s, err := calc.ParseString("print(2 + 2)")
	require.NoError(t, err)
	v, err := env.Eval(s)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v, "print passes its argument through")
	assert.Equal(t, "=> 4\n", buf.String())

	buf.Reset()
	s, err = calc.ParseString("print(3) * 2")
	require.NoError(t, err)
	v, err = env.Eval(s)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)
	assert.Equal(t, "=> 3\n", buf.String())

	// A failed argument prints nothing.
	buf.Reset()
	s, err = calc.ParseString("print(1/0)")
	require.NoError(t, err)
	_, err = env.Eval(s)
	assert.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestEvalWithVars(t *testing.T) {
	got, err := calc.EvalString("x ^ 2 + y", calc.SetVar("x", 3), calc.SetVar("y", 1))
	require.NoError(t, err)
	assert.Equal(t, 10.0, got)

	got, err = calc.EvalString("a * b", calc.SetVars(map[string]float64{"a": 6, "b": 7}))
	require.NoError(t, err)
	assert.Equal(t, 42.0, got)
}
