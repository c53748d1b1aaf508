package dfa

import (
	"github.com/coregx/lexgen/catalogue"
	"github.com/coregx/lexgen/lexer"
)

// Tables adapts the in-memory automaton to the scanner's table view.
// The returned value consults this DFA directly; it is byte-for-byte the
// same δ/κ the emitter serialises, which lets tests and the runtime tool
// lex without a code generation step.
func (d *DFA) Tables() lexer.Tables {
	return lexer.Tables{
		Start:   uint32(d.start),
		Invalid: uint32(d.Invalid()),
		Delta: func(state uint32, b byte) uint32 {
			return uint32(d.Delta(StateID(state), b))
		},
		Kind: func(state uint32) catalogue.TokenKind {
			return d.Kind(StateID(state))
		},
	}
}
