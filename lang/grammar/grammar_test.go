package grammar

import (
	"os"
	"testing"

	"golang.org/x/exp/ebnf"
)

func TestEBNF(t *testing.T) {
	f, err := os.Open("lox.ebnf")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	g, err := ebnf.Parse("lox.ebnf", f)
	if err != nil {
		t.Fatal(err)
	}
	if err := ebnf.Verify(g, "Program"); err != nil {
		t.Fatal(err)
	}
}
