package maincmd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/mna/lox/lang/interp"
	"github.com/mna/lox/lang/resolver"
)

const replPrompt = ">>> "

// REPL is the CLI's zero-argument mode: it prompts, reads a line, compiles
// and runs it, and prints any diagnostic — without ever exiting on error,
// per the CLI's contract that the REPL resets its error state between
// lines. An empty line terminates the session.
func (c *Cmd) REPL(_ context.Context, stdio mainer.Stdio, _ []string) error {
	in := interp.New(stdio.Stdout, nil)
	scan := bufio.NewScanner(stdio.Stdin)

	for {
		fmt.Fprint(stdio.Stdout, replPrompt)
		if !scan.Scan() {
			return scan.Err()
		}
		line := scan.Text()
		if line == "" {
			return nil
		}

		stmts, err := compile("<stdin>", []byte(line))
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			continue
		}

		table, err := resolver.Resolve("<stdin>", stmts)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			continue
		}

		// each line resolves against the same running interpreter but a fresh
		// distance table, since each line is its own top-level compilation unit.
		in.SetTable(table)
		if err := in.Interpret(stmts); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
		}
	}
}
