package parser_test

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/lox/internal/filetest"
	"github.com/mna/lox/internal/maincmd"
	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/scanner"
)

var testUpdateParserTests = flag.Bool("test.update-parser-tests", false, "If set, replace expected parser test results with actual results.")

func mustParse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	toks, err := scanner.Scan("t.lox", []byte(src))
	require.NoError(t, err)
	stmts, err := parser.Parse("t.lox", toks)
	require.NoError(t, err)
	return stmts
}

func TestPrecedence(t *testing.T) {
	stmts := mustParse(t, "print 1 + 2 * 3;")
	require.Len(t, stmts, 1)
	assert.Equal(t, "(print (+ 1 (* 2 3)))", ast.Print(stmts[0]))
}

func TestGroupingOverridesPrecedence(t *testing.T) {
	stmts := mustParse(t, "print (1 + 2) * 3;")
	require.Len(t, stmts, 1)
	assert.Equal(t, "(print (* (group (+ 1 2)) 3))", ast.Print(stmts[0]))
}

func TestForDesugarsToWhile(t *testing.T) {
	stmts := mustParse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.Len(t, stmts, 1)
	block, ok := stmts[0].(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, block.Stmts, 2)
	_, ok = block.Stmts[0].(*ast.VarStmt)
	assert.True(t, ok)
	whileStmt, ok := block.Stmts[1].(*ast.WhileStmt)
	require.True(t, ok)
	bodyBlock, ok := whileStmt.Body.(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, bodyBlock.Stmts, 2)
}

func TestForWithOmittedClausesDesugars(t *testing.T) {
	stmts := mustParse(t, "for (;;) print 1;")
	require.Len(t, stmts, 1)
	whileStmt, ok := stmts[0].(*ast.WhileStmt)
	require.True(t, ok)
	lit, ok := whileStmt.Cond.(*ast.LiteralExpr)
	require.True(t, ok)
	assert.Equal(t, true, lit.Value)
	// no increment: the inner block still wraps the body, just with a single
	// statement.
	bodyBlock, ok := whileStmt.Body.(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, bodyBlock.Stmts, 1)
	_, isPrint := bodyBlock.Stmts[0].(*ast.PrintStmt)
	assert.True(t, isPrint)
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	stmts := mustParse(t, "a = b = 3;")
	require.Len(t, stmts, 1)
	es, ok := stmts[0].(*ast.ExpressionStmt)
	require.True(t, ok)
	outer, ok := es.Expr.(*ast.AssignExpr)
	require.True(t, ok)
	assert.Equal(t, "a", outer.Name.Lexeme)
	inner, ok := outer.Value.(*ast.AssignExpr)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Name.Lexeme)
}

func TestInvalidAssignmentTargetIsNonFatal(t *testing.T) {
	toks, err := scanner.Scan("t.lox", []byte("1 = 2; print 3;"))
	require.NoError(t, err)
	stmts, err := parser.Parse("t.lox", toks)
	require.Error(t, err)
	// parsing continues past the bad assignment target and still yields both
	// statements.
	require.Len(t, stmts, 2)
}

func TestFunctionDeclaration(t *testing.T) {
	stmts := mustParse(t, "fun add(a, b) { return a + b; }")
	require.Len(t, stmts, 1)
	fn, ok := stmts[0].(*ast.FunctionStmt)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name.Lexeme)
	assert.Len(t, fn.Params, 2)
	require.Len(t, fn.Body, 1)
	_, ok = fn.Body[0].(*ast.ReturnStmt)
	assert.True(t, ok)
}

func TestMissingSemicolonReportsErrorAndSynchronizes(t *testing.T) {
	toks, err := scanner.Scan("t.lox", []byte("var a = 1\nprint a;"))
	require.NoError(t, err)
	_, err = parser.Parse("t.lox", toks)
	require.Error(t, err)
}

func TestMultipleErrorsAreAllReported(t *testing.T) {
	toks, err := scanner.Scan("t.lox", []byte("var ;\nvar ;\nvar ;"))
	require.NoError(t, err)
	_, err = parser.Parse("t.lox", toks)
	require.Error(t, err)
	list, ok := err.(parser.ErrorList)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(list), 3)
}

func TestClassDeclarationIsRejected(t *testing.T) {
	toks, err := scanner.Scan("t.lox", []byte("class Foo {}"))
	require.NoError(t, err)
	_, err = parser.Parse("t.lox", toks)
	require.Error(t, err)
}

// TestParserGolden exercises the parser through the CLI's own parse
// subcommand and compares its AST dump against a golden file per source,
// the same round-trip the `parse` command gives a human running it by hand.
func TestParserGolden(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")
	c := maincmd.Cmd{}

	for _, fi := range filetest.SourceFiles(t, srcDir, ".lox") {
		t.Run(fi.Name(), func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

			_ = c.Parse(context.Background(), stdio, []string{filepath.Join(srcDir, fi.Name())})
			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateParserTests)
			assert.Empty(t, ebuf.String())
		})
	}
}
