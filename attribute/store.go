package attribute

import (
	"errors"
	"fmt"

	"github.com/nihei9/minigo/grammar/symbol"
)

var ErrInternal = errors.New("internal error")

// Store keeps one stack of frames per grammar symbol. Frames can only be
// created and released through it, which keeps the two balanced.
type Store struct {
	stacks   [symbol.Count][]*Frame
	created  int
	released int
}

func NewStore() *Store {
	return &Store{}
}

// NewFrame pushes a default frame for sym.
func (s *Store) NewFrame(sym symbol.Symbol) (*Frame, error) {
	if !sym.IsValid() {
		return nil, fmt.Errorf("%w: cannot create a frame for an invalid symbol: %v", ErrInternal, sym)
	}
	f := &Frame{
		sym: sym,
	}
	s.stacks[sym] = append(s.stacks[sym], f)
	s.created++
	return f, nil
}

// ReleaseFrame pops f. f must be the most recent frame of its symbol.
func (s *Store) ReleaseFrame(f *Frame) error {
	stack := s.stacks[f.sym]
	if len(stack) == 0 {
		return fmt.Errorf("%w: no frame to release: %v", ErrInternal, f.sym)
	}
	if stack[len(stack)-1] != f {
		return fmt.Errorf("%w: frames of %v are released out of order", ErrInternal, f.sym)
	}
	stack[len(stack)-1] = nil
	s.stacks[f.sym] = stack[:len(stack)-1]
	s.released++
	return nil
}

// Attributes returns the frame depth positions below the most recent frame of
// sym. Depth 0 is the current occurrence; depth 1 is the enclosing occurrence
// of the same symbol.
func (s *Store) Attributes(sym symbol.Symbol, depth int) (*Frame, error) {
	if !sym.IsValid() {
		return nil, fmt.Errorf("%w: invalid symbol: %v", ErrInternal, sym)
	}
	stack := s.stacks[sym]
	if depth < 0 || depth >= len(stack) {
		return nil, fmt.Errorf("%w: no frame of %v at depth %v (%v frames)", ErrInternal, sym, depth, len(stack))
	}
	return stack[len(stack)-1-depth], nil
}

func (s *Store) Created() int {
	return s.created
}

func (s *Store) Released() int {
	return s.released
}

// Live returns the number of frames not yet released.
func (s *Store) Live() int {
	return s.created - s.released
}
