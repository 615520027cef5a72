package interp_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/lox/lang/interp"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/resolver"
	"github.com/mna/lox/lang/scanner"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()

	toks, err := scanner.Scan("test.lox", []byte(src))
	require.NoError(t, err)

	stmts, err := parser.Parse("test.lox", toks)
	require.NoError(t, err)

	table, err := resolver.Resolve("test.lox", stmts)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	in := interp.New(&buf, table)
	err = in.Interpret(stmts)
	return buf.String(), err
}

func TestArithmeticPrecedence(t *testing.T) {
	out, err := run(t, `print -1 + 2 * 3 - (4 / 2);`)
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestClosureCapturesMutableOuterVariable(t *testing.T) {
	out, err := run(t, `
		fun makeCounter() {
			var count = 0;
			fun inc() {
				count = count + 1;
				print count;
			}
			return inc;
		}
		var counter = makeCounter();
		counter();
		counter();
		counter();
	`)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestResolverFreezesBindingAtDeclarationSite(t *testing.T) {
	out, err := run(t, `
		var a = "global";
		{
			fun show() { print a; }
			show();
			var a = "block";
			show();
		}
	`)
	require.NoError(t, err)
	assert.Equal(t, "global\nglobal\n", out)
}

func TestReadInOwnInitializerIsStaticError(t *testing.T) {
	_, err := run(t, `
		var a = "outer";
		{
			var a = a;
		}
	`)
	require.Error(t, err)
}

func TestReturnUnwindsThroughNestedBlocks(t *testing.T) {
	out, err := run(t, `
		fun find() {
			{
				{
					return "found";
				}
				print "unreachable";
			}
			print "also unreachable";
		}
		print find();
	`)
	require.NoError(t, err)
	assert.Equal(t, "found\n", out)
}

func TestRuntimeTypeErrorAbortsRemainingStatements(t *testing.T) {
	out, err := run(t, `
		print "before";
		print "not a number" - 1;
		print "after";
	`)
	require.Error(t, err)
	assert.Equal(t, "before\n", out)

	rerr, ok := err.(*interp.RuntimeError)
	require.True(t, ok)
	assert.Contains(t, rerr.Error(), "Operand must be a number.")
}

func TestStringConcatenation(t *testing.T) {
	out, err := run(t, `print "foo" + "bar";`)
	require.NoError(t, err)
	assert.Equal(t, "foobar\n", out)
}

func TestLogicalShortCircuit(t *testing.T) {
	out, err := run(t, `
		fun loud(v) { print v; return v; }
		print false and loud("and-rhs");
		print true or loud("or-rhs");
	`)
	require.NoError(t, err)
	assert.Equal(t, "false\ntrue\n", out)
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, `print nope;`)
	require.Error(t, err)
	_, ok := err.(*interp.RuntimeError)
	assert.True(t, ok)
}

func TestFunctionArityMismatch(t *testing.T) {
	_, err := run(t, `
		fun f(a, b) { return a + b; }
		f(1);
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected 2 arguments but got 1.")
}

func TestClockNativeIsCallableWithNoArgs(t *testing.T) {
	out, err := run(t, `print clock() >= 0;`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

// TestLogicalOperatorsReturnOperandValues checks the law that `and`/`or`
// yield one of their operand values verbatim rather than a coerced boolean.
func TestLogicalOperatorsReturnOperandValues(t *testing.T) {
	out, err := run(t, `
		print nil or "hi";
		print 1 and 2;
	`)
	require.NoError(t, err)
	assert.Equal(t, "hi\n2\n", out)
}

func TestArithmeticIdempotence(t *testing.T) {
	out, err := run(t, `
		var x = 7;
		print x;
		x = x + 0;
		print x;
	`)
	require.NoError(t, err)
	assert.Equal(t, "7\n7\n", out)
}
