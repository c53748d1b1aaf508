package nfa

import (
	"testing"

	"github.com/coregx/lexgen/catalogue"
	"github.com/coregx/lexgen/internal/sparse"
)

// simulate runs the ε-NFA over input with subset simulation and returns
// the kind at the point the automaton gets stuck plus the number of
// bytes consumed. It is an independent oracle for the compiled DFA path:
// the kind of a subset is that of its smallest-id terminal member.
func simulate(n *NFA, input string) (catalogue.TokenKind, int) {
	cur := sparse.NewSet(n.Len())
	next := sparse.NewSet(n.Len())
	n.AddEpsilonClosure(cur, n.Start())

	consumed := 0
	for i := 0; i < len(input); i++ {
		next.Clear()
		for _, v := range cur.Values() {
			for _, e := range n.State(StateID(v)).Edges() {
				if !e.IsEpsilon() && e.Symbol == Symbol(input[i]) {
					n.AddEpsilonClosure(next, e.Target)
				}
			}
		}
		if next.Len() == 0 {
			break
		}
		cur, next = next, cur
		consumed++
	}

	kind := catalogue.Unknown
	best := InvalidState
	for _, v := range cur.Values() {
		s := n.State(StateID(v))
		if s.IsTerminal() && s.ID() < best {
			best = s.ID()
			kind = s.Kind()
		}
	}
	return kind, consumed
}

// TestBuilder_RawString verifies the literal chain shape: one state per
// byte, no ε indirection, final state terminal.
func TestBuilder_RawString(t *testing.T) {
	b := NewBuilder()
	if err := b.AddRawString("for", 7); err != nil {
		t.Fatalf("AddRawString: %v", err)
	}
	n := b.Build()

	// Q0 + entry + one state per byte.
	if got, want := n.Len(), 5; got != want {
		t.Fatalf("state count = %d, want %d", got, want)
	}

	q0 := n.State(n.Start())
	if len(q0.Edges()) != 1 || !q0.Edges()[0].IsEpsilon() {
		t.Fatalf("Q0 edges = %+v, want single ε splice", q0.Edges())
	}

	cur := q0.Edges()[0].Target
	for _, want := range []byte("for") {
		s := n.State(cur)
		if len(s.Edges()) != 1 {
			t.Fatalf("state %d has %d edges, want 1", cur, len(s.Edges()))
		}
		e := s.Edges()[0]
		if e.Symbol != Symbol(want) {
			t.Fatalf("state %d edge symbol = %d, want %q", cur, e.Symbol, want)
		}
		cur = e.Target
	}
	if got := n.State(cur).Kind(); got != 7 {
		t.Fatalf("final state kind = %d, want 7", got)
	}
}

// TestBuilder_RawStringEmpty rejects the empty literal, which would mark
// the start state terminal.
func TestBuilder_RawStringEmpty(t *testing.T) {
	b := NewBuilder()
	err := b.AddRawString("", 1)
	if err == nil {
		t.Fatal("expected error for empty literal")
	}
}

// TestBuilder_PriorityOrder verifies that addition order is reflected in
// state ids: the first pattern's terminal has the smaller id.
func TestBuilder_PriorityOrder(t *testing.T) {
	b := NewBuilder()
	if err := b.AddRawString("a", 5); err != nil {
		t.Fatal(err)
	}
	if err := b.AddRawString("a", 6); err != nil {
		t.Fatal(err)
	}
	n := b.Build()

	kind, consumed := simulate(n, "a")
	if kind != 5 || consumed != 1 {
		t.Fatalf("simulate = (%d, %d), want (5, 1): earlier declaration must win", kind, consumed)
	}
}

// TestEpsilonClosure checks the closure walk over the small automaton
// compiled from "a*", which has an ε-chain and a loop.
func TestEpsilonClosure(t *testing.T) {
	b := NewBuilder()
	if err := b.AddRegex("a*", 3); err != nil {
		t.Fatal(err)
	}
	n := b.Build()

	closure := n.EpsilonClosure(n.Start())
	// The closure of Q0 must contain Q0, the star entry and exit.
	if len(closure) < 3 {
		t.Fatalf("closure of Q0 = %v, want at least Q0 plus star entry/exit", closure)
	}
	seen := map[StateID]bool{}
	for _, id := range closure {
		if seen[id] {
			t.Fatalf("closure contains duplicate id %d", id)
		}
		seen[id] = true
	}
	if !seen[n.Start()] {
		t.Fatal("closure of Q0 does not contain Q0")
	}
}
