package lexer

import (
	"github.com/coregx/lexgen/catalogue"
)

// Token is one lexed token: a kind plus its span in the source buffer.
type Token struct {
	// Kind is the token's catalogue kind.
	Kind catalogue.TokenKind

	// Spelling is the token's source text. It aliases the input buffer.
	// The EOF token has an empty spelling.
	Spelling []byte

	// Offset is the byte offset of the token in the buffer, after any
	// BOM adjustment.
	Offset int
}

// Is reports whether the token has the given kind.
func (t Token) Is(kind catalogue.TokenKind) bool {
	return t.Kind == kind
}

// IsOneOf reports whether the token has any of the given kinds.
func (t Token) IsOneOf(kinds ...catalogue.TokenKind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}
