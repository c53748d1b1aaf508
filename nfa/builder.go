package nfa

import (
	"github.com/coregx/lexgen/catalogue"
)

// Builder assembles the union ε-NFA for a token catalogue. Each added
// pattern becomes an independent fragment whose entry is spliced under Q0
// with an ε-edge. Addition order is preserved in state ids and is the
// sole source of token priority.
type Builder struct {
	n *NFA
}

// NewBuilder creates a builder holding a fresh arena with only Q0.
func NewBuilder() *Builder {
	return &Builder{n: newNFA()}
}

// AddRawString adds a literal token: one state per byte of s, no ε
// indirection, with the final state marked with kind. Metacharacters in s
// are not interpreted.
func (b *Builder) AddRawString(s string, kind catalogue.TokenKind) error {
	if s == "" {
		return &SyntaxError{Pattern: s, Err: ErrEmptyPattern}
	}
	entry := b.n.newState(catalogue.Unknown)
	cur := entry
	for i := 0; i < len(s); i++ {
		next := b.n.newState(catalogue.Unknown)
		b.n.connect(cur, next, Symbol(s[i]))
		cur = next
	}
	b.n.states[cur].kind = kind
	b.n.connect(b.n.start, entry, Epsilon)
	return nil
}

// AddRegex compiles expr with the restricted regex dialect and splices the
// resulting fragment under Q0. The fragment's exit state is marked with
// kind.
func (b *Builder) AddRegex(expr string, kind catalogue.TokenKind) error {
	c := &compiler{n: b.n, src: expr}
	frag, err := c.compile()
	if err != nil {
		return err
	}
	b.n.states[frag.exit].kind = kind
	b.n.connect(b.n.start, frag.entry, Epsilon)
	return nil
}

// Build returns the assembled ε-NFA. The builder must not be used after
// Build.
func (b *Builder) Build() *NFA {
	n := b.n
	b.n = nil
	return n
}
