package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mna/lox/lang/token"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "+", token.PLUS.String())
	assert.Equal(t, "while", token.WHILE.String())
	assert.Equal(t, "end of file", token.EOF.String())
}

func TestKeywords(t *testing.T) {
	k, ok := token.Keywords["while"]
	assert.True(t, ok)
	assert.Equal(t, token.WHILE, k)

	_, ok = token.Keywords["notakeyword"]
	assert.False(t, ok)
}

func TestTokenString(t *testing.T) {
	tok := token.Token{Kind: token.IDENT, Lexeme: "n", Line: 3}
	assert.Equal(t, "identifier n", tok.String())
}
