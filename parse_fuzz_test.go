//go:build go1.18
// +build go1.18

package calc_test

import (
	"testing"

	"github.com/dxavvv/calc"
)

func FuzzParse(f *testing.F) {
	f.Add("let x = 5")
	f.Add("2 + 3 * 4")
	f.Add("sin(pi / 2)")
	f.Add("-2 ^ 2")
	f.Fuzz(func(t *testing.T, s string) {
		calc.ParseString(s)
	})
}
