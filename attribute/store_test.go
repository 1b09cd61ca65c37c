package attribute

import (
	"errors"
	"testing"

	"github.com/nihei9/minigo/grammar/symbol"
	"github.com/nihei9/minigo/types"
)

func TestStore(t *testing.T) {
	s := NewStore()

	outer, err := s.NewFrame(symbol.AddExprTail)
	if err != nil {
		t.Fatal(err)
	}
	outer.TypeDim = types.Scalar(types.Int)
	ident, err := s.NewFrame(symbol.Ident)
	if err != nil {
		t.Fatal(err)
	}
	inner, err := s.NewFrame(symbol.AddExprTail)
	if err != nil {
		t.Fatal(err)
	}

	f, err := s.Attributes(symbol.AddExprTail, 0)
	if err != nil {
		t.Fatal(err)
	}
	if f != inner {
		t.Fatalf("depth 0 must be the most recent occurrence")
	}
	f, err = s.Attributes(symbol.AddExprTail, 1)
	if err != nil {
		t.Fatal(err)
	}
	if f != outer {
		t.Fatalf("depth 1 must be the enclosing occurrence")
	}
	_, err = s.Attributes(symbol.AddExprTail, 2)
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("reading beneath the bottom frame must fail; got: %v", err)
	}

	f, err = s.Attributes(symbol.Ident, 0)
	if err != nil {
		t.Fatal(err)
	}
	if f != ident {
		t.Fatalf("symbols must not share a stack")
	}

	inner.CopyFrom(outer)
	if inner.Symbol() != symbol.AddExprTail || !inner.TypeDim.IsScalar(types.Int) {
		t.Fatalf("unexpected frame after copy: %+v", inner)
	}

	err = s.ReleaseFrame(outer)
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("releasing a frame out of order must fail; got: %v", err)
	}
	for _, f := range []*Frame{inner, ident, outer} {
		err := s.ReleaseFrame(f)
		if err != nil {
			t.Fatal(err)
		}
	}
	if s.Created() != 3 || s.Released() != 3 || s.Live() != 0 {
		t.Fatalf("unexpected counters; created: %v, released: %v", s.Created(), s.Released())
	}
	err = s.ReleaseFrame(outer)
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("releasing a frame twice must fail; got: %v", err)
	}
}
