package grammar

import (
	"strings"
	"testing"

	"github.com/nihei9/minigo/grammar/symbol"
)

func genTestProductions(t *testing.T, src string) []*Production {
	t.Helper()

	prods, err := ReadProductions(strings.NewReader(strings.TrimSpace(src)), "test")
	if err != nil {
		t.Fatalf("failed to read productions: %v", err)
	}
	return prods
}

func genTestSymbol(t *testing.T, name string) symbol.Symbol {
	t.Helper()

	sym, ok := symbol.ToSymbol(name)
	if !ok {
		t.Fatalf("symbol was not found: %v", name)
	}
	return sym
}
