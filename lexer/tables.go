// Package lexer implements the runtime longest-match scanner.
//
// The scanner is driven entirely by two pure lookup functions and two
// constants produced by the generator: the transition function δ(state,
// byte), the kind function κ(state), the start state and the invalid
// sentinel. It performs no Unicode decoding at runtime; multi-byte
// sequences were lowered to byte chains when the tables were built.
package lexer

import (
	"github.com/coregx/lexgen/catalogue"
)

// Tables is the scanner's view of a compiled automaton. Generated source
// files satisfy it with their DFA_delta/DFA_getKind functions; the dfa
// package adapts an in-memory automaton for tests and the runtime tool.
//
// Tables are immutable; any number of concurrent scanners may share one
// value as long as each owns its buffer and position.
type Tables struct {
	// Start is the DFA start state.
	Start uint32

	// Invalid is the trap sentinel: the state count itself.
	Invalid uint32

	// Delta returns δ(state, b), or Invalid when no transition exists.
	Delta func(state uint32, b byte) uint32

	// Kind returns κ(state); catalogue.Unknown marks a non-terminal.
	Kind func(state uint32) catalogue.TokenKind
}
