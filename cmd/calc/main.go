package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dxavvv/calc"
)

var (
	verb  string
	given []string
	echo  bool
)

var errcolor = color.New(color.FgRed)

// dumper renders parse trees for --ast. The tree type keeps its internals
// unexported, so tell litter to show them.
var dumper = litter.Options{HidePrivateFields: false}

func main() {
	cmd := &cobra.Command{
		Use:   "calc [statement ...]",
		Short: "An interactive calculator over real numbers",
		Long: `Calc evaluates arithmetic statements: expressions like "2 + 3 * x" and
bindings like "let x = 5". With arguments, each argument is evaluated as
one statement and the session ends; without arguments, calc reads
statements from standard input one line at a time.`,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&verb, "fmt", "%g", "result formatting verb")
	cmd.Flags().StringArrayVar(&given, "given", nil, `"name=value" variable definition (any number of times)`)
	cmd.Flags().BoolVar(&echo, "ast", false, "dump parse trees before evaluating")
	if err := cmd.Execute(); err != nil {
		errcolor.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	env := calc.NewEnv(calc.Output(os.Stdout))
	for _, d := range given {
		nm, vl, ok := strings.Cut(d, "=")
		if !ok {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, d)
		}
		nm = strings.TrimSpace(nm)
		r, err := calc.EvalString(strings.TrimSpace(vl))
		if err != nil {
			return fmt.Errorf("setting %s: %w", nm, err)
		}
		env.Set(nm, r)
	}
	if len(args) > 0 {
		for _, arg := range args {
			if err := line(env, arg); err != nil {
				return err
			}
		}
		return nil
	}
	return repl(env)
}

// repl reads statements from stdin until EOF or a quit command. Statement
// errors are reported and the session continues; only I/O failures end it.
func repl(env *calc.Env) error {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		banner()
	}
	in := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print(">> ")
		}
		if !in.Scan() {
			if interactive {
				fmt.Println()
			}
			return in.Err()
		}
		src := strings.TrimSpace(in.Text())
		switch {
		case src == "":
			continue
		case strings.EqualFold(src, "quit"), strings.EqualFold(src, "exit"):
			return nil
		case src == "vars":
			vars(env, os.Stdout)
			continue
		}
		if err := line(env, src); err != nil {
			errcolor.Fprintln(os.Stderr, "Error:", err)
		}
	}
}

// line parses and evaluates one statement and prints its result.
func line(env *calc.Env, src string) error {
	s, err := calc.ParseString(src)
	if err != nil {
		return err
	}
	if echo {
		dumper.Dump(s)
	}
	v, err := env.Eval(s)
	if err != nil {
		return err
	}
	fmt.Printf(verb+"\n", v)
	return nil
}

// vars renders the session's variables and the builtin constants.
func vars(env *calc.Env, w io.Writer) {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"NAME", "VALUE"})
	seen := make(map[string]bool)
	for _, n := range env.Names() {
		seen[n] = true
		v, _ := env.Lookup(n)
		t.Append([]string{n, strconv.FormatFloat(v, 'g', -1, 64)})
	}
	for _, n := range []string{"e", "pi"} {
		if seen[n] {
			// Shadowed by a let binding, already listed.
			continue
		}
		v, _ := env.Lookup(n)
		t.Append([]string{n, strconv.FormatFloat(v, 'g', -1, 64)})
	}
	t.Render()
}

func banner() {
	fmt.Println("calc: an interactive calculator")
	fmt.Println("operators: + - * / ^    functions: sin cos tan sqrt exp ln log abs print")
	fmt.Println(`bind variables with "let x = 5"; "vars" lists bindings; "quit" exits`)
}
