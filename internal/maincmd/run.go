package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/interp"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/resolver"
	"github.com/mna/lox/lang/scanner"
)

// exitCodeFor classifies a pipeline error per the CLI's exit-code contract:
// any static error (scan, parse, resolve, or a malformed invocation) is 65,
// a runtime error is 70.
func exitCodeFor(err error) mainer.ExitCode {
	var rerr *interp.RuntimeError
	if errors.As(err, &rerr) {
		return mainer.ExitCode(70)
	}
	return mainer.ExitCode(65)
}

// Run executes a single script file: the CLI's one-argument mode.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return RunFile(ctx, stdio, args[0])
}

// RunFile reads path as UTF-8 source and runs it to completion, reporting
// any scan, parse, resolve, or runtime error to stdio.Stderr in the process.
func RunFile(_ context.Context, stdio mainer.Stdio, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	stmts, err := compile(path, src)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	table, err := resolver.Resolve(path, stmts)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	in := interp.New(stdio.Stdout, table)
	if err := in.Interpret(stmts); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	return nil
}

// compile runs the scanner and parser phases shared by every mode.
func compile(filename string, src []byte) ([]ast.Stmt, error) {
	toks, err := scanner.Scan(filename, src)
	if err != nil {
		return nil, err
	}
	return parser.Parse(filename, toks)
}
