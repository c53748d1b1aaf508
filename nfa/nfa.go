// Package nfa builds ε-NFAs from token declarations.
//
// The automaton is a flat arena of states addressed by StateID; edges hold
// ids, never pointers, so the whole graph moves by value and loops from
// the * and + quantifiers cannot form reference cycles. State 0 is always
// the global start state Q0. Token priority is encoded structurally: the
// relative order in which fragments are added to the builder is the
// relative order of their state ids, and subset construction resolves
// overlapping terminals by the smallest id.
package nfa

import (
	"fmt"

	"github.com/coregx/lexgen/catalogue"
	"github.com/coregx/lexgen/internal/conv"
)

// StateID uniquely identifies a state within one automaton arena.
type StateID uint32

// InvalidState represents an invalid/uninitialized state id.
const InvalidState StateID = 0xFFFFFFFF

// Symbol is an input symbol: a byte value in [0, 255] or Epsilon.
type Symbol int16

// Epsilon is the empty-string symbol. ε-edges consume no input.
const Epsilon Symbol = -1

// Edge is a transition to another state in the same arena.
type Edge struct {
	Symbol Symbol
	Target StateID
}

// IsEpsilon reports whether the edge consumes no input.
func (e Edge) IsEpsilon() bool {
	return e.Symbol == Epsilon
}

// State is a single automaton state. A state with a kind other than
// catalogue.Unknown is terminal: reaching it completes a token of that
// kind. Edges are kept in creation order; duplicate symbols are allowed
// while the automaton is nondeterministic.
type State struct {
	id    StateID
	kind  catalogue.TokenKind
	edges []Edge
}

// ID returns the state's unique identifier.
func (s *State) ID() StateID {
	return s.id
}

// Kind returns the token kind completed at this state.
// catalogue.Unknown marks a non-terminal state.
func (s *State) Kind() catalogue.TokenKind {
	return s.kind
}

// IsTerminal reports whether reaching this state completes a token.
func (s *State) IsTerminal() bool {
	return s.kind != catalogue.Unknown
}

// Edges returns the state's outgoing edges in creation order.
func (s *State) Edges() []Edge {
	return s.edges
}

// NFA is an ε-NFA over bytes. The arena exclusively owns all states;
// transformations (subset construction, minimisation) consume an NFA and
// return a fresh automaton.
type NFA struct {
	states []State
	start  StateID
	isDFA  bool
}

// newNFA creates an automaton containing only the start state Q0.
func newNFA() *NFA {
	n := &NFA{start: 0}
	n.newState(catalogue.Unknown)
	return n
}

// newState appends a fresh state to the arena and returns its id.
func (n *NFA) newState(kind catalogue.TokenKind) StateID {
	id := StateID(conv.IntToUint32(len(n.states)))
	n.states = append(n.states, State{id: id, kind: kind})
	return id
}

// connect adds an edge from -> to labelled with symbol.
func (n *NFA) connect(from, to StateID, symbol Symbol) {
	s := &n.states[from]
	s.edges = append(s.edges, Edge{Symbol: symbol, Target: to})
}

// Start returns the id of the start state Q0.
func (n *NFA) Start() StateID {
	return n.start
}

// State returns the state with the given id, or nil for an invalid id.
func (n *NFA) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// Len returns the number of states in the arena.
func (n *NFA) Len() int {
	return len(n.states)
}

// IsDFA reports whether the automaton satisfies the DFA invariants:
// no ε-edges and at most one edge per (state, symbol).
func (n *NFA) IsDFA() bool {
	return n.isDFA
}

// String returns a short human-readable summary.
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, start: %d, dfa: %v}", len(n.states), n.start, n.isDFA)
}
