// Package dfa converts ε-NFAs into deterministic automata and minimises
// them.
//
// A DFA here is a dense structure: one 256-cell transition row per state
// plus a kind vector. Absent transitions hold the invalid sentinel, whose
// value is the state count itself, so the emitted tables can use it
// directly as the trap marker.
package dfa

import (
	"fmt"

	"github.com/coregx/lexgen/catalogue"
	"github.com/coregx/lexgen/internal/conv"
)

// StateID identifies a DFA state. The value len(states) is the invalid
// sentinel ("no transition").
type StateID uint32

// alphabetSize is the input alphabet: all byte values. The DFA is byte
// oriented; multi-byte UTF-8 sequences were already lowered to byte
// chains during NFA construction.
const alphabetSize = 256

// row is one state's outgoing transitions, indexed by input byte.
type row [alphabetSize]StateID

// DFA is a deterministic finite automaton with token-kind labelling.
type DFA struct {
	start StateID
	kinds []catalogue.TokenKind
	trans []row
}

// newDFA creates an automaton with no states. States are added with
// addState before use.
func newDFA() *DFA {
	return &DFA{}
}

// addState appends a state with the given kind and a zeroed row. The
// caller fills every cell of the row, writing placeholder for absent
// transitions; seal later rewrites those to the final invalid sentinel.
func (d *DFA) addState(kind catalogue.TokenKind) StateID {
	id := StateID(conv.IntToUint32(len(d.kinds)))
	d.kinds = append(d.kinds, kind)
	d.trans = append(d.trans, row{})
	return id
}

// seal rewrites placeholder cells to the invalid sentinel once the state
// count is final. During construction absent transitions are marked with
// nfa-style InvalidState (0xFFFFFFFF); the emitted representation wants
// len(states) instead.
func (d *DFA) seal() {
	inv := d.Invalid()
	for i := range d.trans {
		for b := 0; b < alphabetSize; b++ {
			if d.trans[i][b] == placeholder {
				d.trans[i][b] = inv
			}
		}
	}
}

// placeholder marks an absent transition while the state count is still
// growing.
const placeholder StateID = 0xFFFFFFFF

// Start returns the start state id.
func (d *DFA) Start() StateID {
	return d.start
}

// Invalid returns the trap sentinel: the state count itself.
func (d *DFA) Invalid() StateID {
	return StateID(len(d.kinds))
}

// Len returns the number of states.
func (d *DFA) Len() int {
	return len(d.kinds)
}

// Kind returns the token kind completed at state id, or catalogue.Unknown
// for the invalid sentinel.
func (d *DFA) Kind(id StateID) catalogue.TokenKind {
	if int(id) >= len(d.kinds) {
		return catalogue.Unknown
	}
	return d.kinds[id]
}

// Delta is the transition function δ(state, byte). The invalid sentinel
// maps to itself, so a scanner may iterate without re-checking.
func (d *DFA) Delta(id StateID, b byte) StateID {
	if int(id) >= len(d.trans) {
		return d.Invalid()
	}
	return d.trans[id][b]
}

// Kinds returns the kind table indexed by state id.
func (d *DFA) Kinds() []catalogue.TokenKind {
	return d.kinds
}

// String returns a short human-readable summary.
func (d *DFA) String() string {
	return fmt.Sprintf("DFA{states: %d, start: %d}", len(d.kinds), d.start)
}
