// Package maincmd implements the lox command-line tool: a REPL, a
// file-execution mode, and three inspection subcommands used for debugging
// and golden-file tests.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "lox"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<command>] [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s                       Start an interactive REPL.
       %[1]s <path>                Execute the given script.
       %[1]s <command> <path>...   Run one inspection phase and print its result.
       %[1]s -h|--help
       %[1]s -v|--version

The <command> can be one of:
       tokenize                  Run the scanner and print the resulting
                                  tokens.
       parse                     Run the scanner and parser and print the
                                  resulting syntax tree.
       resolve                   Run the scanner, parser and resolver and
                                  print the syntax tree annotated with
                                  variable resolution distances.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
`, binName)
)

// errUsage signals a malformed invocation (the ≥2-positional-argument case
// that isn't a known inspection command): Main reports it with exit code 65,
// the same code used for every other static error, rather than mainer's
// generic InvalidArgs code.
var errUsage = errors.New("usage error")

// Cmd is driven by github.com/mna/mainer: SetArgs/SetFlags are called by
// mainer.Parser before Validate, and Main dispatches to whichever mode
// Validate selected.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	args  []string
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string)      { c.args = args }
func (c *Cmd) SetFlags(_ map[string]bool) {}

// Validate picks the run mode from the positional arguments, per the CLI's
// three-mode contract: zero arguments selects the REPL, a single argument is
// a script path, and a leading inspection-command name dispatches to that
// phase with the remaining arguments as script paths. Anything else is a
// usage error.
func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		c.cmdFn = c.REPL
		return nil
	}

	if cmdFn := buildCmds(c)[c.args[0]]; cmdFn != nil {
		rest := c.args[1:]
		if len(rest) == 0 {
			return fmt.Errorf("%s: at least one file must be provided", c.args[0])
		}
		c.cmdFn = cmdFn
		c.args = rest
		return nil
	}

	if len(c.args) == 1 {
		c.cmdFn = c.Run
		return nil
	}

	return errUsage
}

// Main parses args, validates them, and runs whichever mode was selected.
// Exit codes follow the interpreter's own convention: 0 on success, 65 on
// any static error (scan, parse, resolve) or on too many positional
// arguments, 70 on a runtime error. Other invalid arguments (an unknown
// flag, an inspection command without a file) exit with mainer.InvalidArgs.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(stdio.Stderr, shortUsage)
			return mainer.ExitCode(65)
		}
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args); err != nil {
		return exitCodeFor(err)
	}
	return mainer.Success
}

// buildCmds mirrors the exported, reflect-discovered inspection commands:
// any Cmd method matching the (context.Context, mainer.Stdio, []string)
// error shape is registered under its lowercased name.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
