package maincmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/lox/internal/maincmd"
)

func stdio() (mainer.Stdio, *bytes.Buffer, *bytes.Buffer) {
	var out, errb bytes.Buffer
	return mainer.Stdio{Stdin: bytes.NewReader(nil), Stdout: &out, Stderr: &errb}, &out, &errb
}

func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.lox")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

// argv mimics os.Args: mainer.Parser expects the program name at index 0.
func argv(rest ...string) []string {
	return append([]string{"lox"}, rest...)
}

func TestRunFileSuccess(t *testing.T) {
	path := writeScript(t, `print 1 + 2;`)
	io, out, _ := stdio()

	c := maincmd.Cmd{}
	code := c.Main(argv(path), io)
	assert.Equal(t, mainer.ExitCode(0), code)
	assert.Equal(t, "3\n", out.String())
}

func TestRunFileStaticError(t *testing.T) {
	path := writeScript(t, `print ;`)
	io, _, errOut := stdio()

	c := maincmd.Cmd{}
	code := c.Main(argv(path), io)
	assert.Equal(t, mainer.ExitCode(65), code)
	assert.NotEmpty(t, errOut.String())
}

func TestRunFileRuntimeError(t *testing.T) {
	path := writeScript(t, `print "a" - 1;`)
	io, out, errOut := stdio()

	c := maincmd.Cmd{}
	code := c.Main(argv(path), io)
	assert.Equal(t, mainer.ExitCode(70), code)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Operand must be a number.")
}

func TestTooManyArgumentsIsUsageError(t *testing.T) {
	io, _, errOut := stdio()

	c := maincmd.Cmd{}
	code := c.Main(argv("a.lox", "b.lox"), io)
	assert.Equal(t, mainer.ExitCode(65), code)
	assert.NotEmpty(t, errOut.String())
}

func TestTokenizeSubcommand(t *testing.T) {
	path := writeScript(t, `var x = 1;`)
	io, out, _ := stdio()

	c := maincmd.Cmd{}
	code := c.Main(argv("tokenize", path), io)
	assert.Equal(t, mainer.ExitCode(0), code)
	assert.Contains(t, out.String(), "var var")
}
