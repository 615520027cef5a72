package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/lox/lang/ast"
)

// Parse runs the scanner and parser phases and prints the resulting
// statements in Lisp-style parenthesized form, one per line, for each file
// in args.
func (c *Cmd) Parse(_ context.Context, stdio mainer.Stdio, args []string) error {
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}

		stmts, err := compile(path, src)
		for _, s := range stmts {
			fmt.Fprintln(stdio.Stdout, ast.Print(s))
		}
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
	}
	return nil
}
