package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/lox/lang/scanner"
)

// Tokenize runs the scanner phase only and prints the resulting tokens, one
// per line, for each file in args.
func (c *Cmd) Tokenize(_ context.Context, stdio mainer.Stdio, args []string) error {
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}

		toks, err := scanner.Scan(path, src)
		for _, tok := range toks {
			fmt.Fprintf(stdio.Stdout, "%d: %s", tok.Line, tok)
			if tok.Literal != nil {
				fmt.Fprintf(stdio.Stdout, " %v", tok.Literal)
			}
			fmt.Fprintln(stdio.Stdout)
		}
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
	}
	return nil
}
