package calc_test

import (
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxavvv/calc"
)

// run evaluates one statement against env, failing the test on any error.
func run(t *testing.T, env *calc.Env, src string) float64 {
	t.Helper()
	s, err := calc.ParseString(src)
	require.NoError(t, err, "parsing %q", src)
	v, err := env.Eval(s)
	require.NoError(t, err, "evaluating %q", src)
	return v
}

func TestSession(t *testing.T) {
	env := calc.NewEnv(calc.Output(io.Discard))

	assert.Equal(t, 5.0, run(t, env, "let x = 5"), "let returns the bound value")
	assert.Equal(t, 10.0, run(t, env, "x * 2"))
	assert.Equal(t, 6.0, run(t, env, "let x = x + 1"), "reassignment reads the prior binding")
	assert.Equal(t, 6.0, run(t, env, "x"))
	assert.Equal(t, []string{"x"}, env.Names())
}

func TestSessionResilience(t *testing.T) {
	env := calc.NewEnv(calc.Output(io.Discard))
	run(t, env, "let x = 5")

	// A failing statement leaves the environment untouched.
	s, err := calc.ParseString("let x = y + 1")
	require.NoError(t, err)
	_, err = env.Eval(s)
	var ne *calc.NameError
	require.ErrorAs(t, err, &ne)

	v, ok := env.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, 5.0, v, "failed let must not rebind")
	assert.Equal(t, 10.0, run(t, env, "x * 2"), "session continues after an error")

	// A failed let of a new name binds nothing.
	s, err = calc.ParseString("let z = 1/0")
	require.NoError(t, err)
	_, err = env.Eval(s)
	require.Error(t, err)
	_, ok = env.Lookup("z")
	assert.False(t, ok)
}

func TestExpressionDoesNotBind(t *testing.T) {
	env := calc.NewEnv(calc.Output(io.Discard))
	run(t, env, "2 + 2")
	assert.Empty(t, env.Names())
}

func TestConstants(t *testing.T) {
	env := calc.NewEnv(calc.Output(io.Discard))
	assert.InDelta(t, 3.14159265358979, run(t, env, "pi"), 1e-14)
	assert.InDelta(t, math.E, run(t, env, "e"), 1e-14)
	assert.Empty(t, env.Names(), "constants are not session variables")
}

func TestShadowConstant(t *testing.T) {
	env := calc.NewEnv(calc.Output(io.Discard))
	assert.Equal(t, 3.0, run(t, env, "let pi = 3"))
	assert.Equal(t, 6.0, run(t, env, "pi * 2"), "lookup prefers the session binding")
	assert.Equal(t, []string{"pi"}, env.Names())

	// The constant table itself is untouched.
	fresh := calc.NewEnv()
	v, ok := fresh.Lookup("pi")
	require.True(t, ok)
	assert.Equal(t, math.Pi, v)
}

func TestEnvOptions(t *testing.T) {
	env := calc.NewEnv(calc.SetVar("x", 2), calc.SetVars(map[string]float64{"y": 3, "z": 4}))
	assert.Equal(t, []string{"x", "y", "z"}, env.Names())
	assert.Equal(t, 9.0, run(t, env, "x + y + z"))
}

func TestEnvClone(t *testing.T) {
	env := calc.NewEnv(calc.Output(io.Discard), calc.SetVar("x", 1))
	clone := env.Clone(calc.SetVar("y", 2))

	assert.Equal(t, 3.0, run(t, clone, "x + y"))
	_, ok := env.Lookup("y")
	assert.False(t, ok, "clone variables do not leak back")

	clone.Set("x", 100)
	v, _ := env.Lookup("x")
	assert.Equal(t, 1.0, v)
}

func TestSetChaining(t *testing.T) {
	env := calc.NewEnv(calc.Output(io.Discard)).Set("a", 1).Set("b", 2)
	assert.Equal(t, 3.0, run(t, env, "a + b"))
}
