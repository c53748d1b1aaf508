// Package catalogue defines the token catalogue that drives DFA generation.
//
// A catalogue is an ordered list of token declarations. Each declaration
// binds a token kind name to either a literal string or a restricted
// regular expression. Declaration order is significant: when two patterns
// match the same longest prefix, the kind declared earlier wins. This is
// how keywords beat identifiers.
package catalogue

import (
	"errors"
	"fmt"

	"github.com/coregx/lexgen/internal/conv"
)

// TokenKind identifies a kind of token. Kinds are dense small integers so
// the emitted kind table can use 16-bit cells.
type TokenKind uint16

// Reserved kinds. Unknown marks non-terminal DFA states and is never a
// real token. EOF is matched by the NUL terminator of the input buffer.
// Gap and Comment are skipped by the scanner's Lex loop.
const (
	Unknown TokenKind = iota
	EOF
	Gap
	Comment

	// NumReservedKinds is the first id available to user declarations.
	NumReservedKinds
)

var reservedNames = map[string]TokenKind{
	"unknown": Unknown,
	"eof":     EOF,
	"gap":     Gap,
	"comment": Comment,
}

// Common catalogue errors.
var (
	// ErrEmptyName indicates a declaration without a name.
	ErrEmptyName = errors.New("token declaration has no name")

	// ErrDuplicateName indicates the same kind name declared twice.
	ErrDuplicateName = errors.New("duplicate token name")

	// ErrBadPattern indicates a declaration with both or neither of
	// literal and regex.
	ErrBadPattern = errors.New("token declaration needs exactly one of literal or regex")

	// ErrReservedName indicates a declaration of a kind that cannot
	// carry a user pattern (unknown, eof).
	ErrReservedName = errors.New("token name is reserved")
)

// Entry is a single token declaration. Exactly one of Literal and Regex is
// set. Literal patterns match their bytes verbatim; Regex patterns use the
// restricted dialect implemented by the nfa package.
type Entry struct {
	Name    string `yaml:"name"`
	Literal string `yaml:"literal,omitempty"`
	Regex   string `yaml:"regex,omitempty"`

	// Kind is assigned by the catalogue when the entry is added.
	Kind TokenKind `yaml:"-"`
}

// IsLiteral reports whether the entry is a raw literal declaration.
func (e *Entry) IsLiteral() bool {
	return e.Regex == ""
}

// Catalogue is an ordered set of token declarations plus the kind-name
// table. The zero value is not usable; call New.
type Catalogue struct {
	entries []Entry
	names   []string            // kind id -> name
	byName  map[string]TokenKind
}

// New creates an empty catalogue with the reserved kinds registered.
func New() *Catalogue {
	c := &Catalogue{
		names:  make([]string, NumReservedKinds),
		byName: make(map[string]TokenKind, 8),
	}
	for name, kind := range reservedNames {
		c.names[kind] = name
		c.byName[name] = kind
	}
	return c
}

// Add appends a declaration. The entry's kind is the reserved id when the
// name is "gap" or "comment", otherwise the next free id.
func (c *Catalogue) Add(e Entry) error {
	if e.Name == "" {
		return ErrEmptyName
	}
	if (e.Literal == "") == (e.Regex == "") {
		return fmt.Errorf("%w: %q", ErrBadPattern, e.Name)
	}
	if e.Name == "unknown" || e.Name == "eof" {
		return fmt.Errorf("%w: %q", ErrReservedName, e.Name)
	}

	if kind, ok := c.byName[e.Name]; ok {
		if kind == Gap || kind == Comment {
			// Reserved skip kinds may be bound to a pattern once.
			for _, prev := range c.entries {
				if prev.Kind == kind {
					return fmt.Errorf("%w: %q", ErrDuplicateName, e.Name)
				}
			}
			e.Kind = kind
			c.entries = append(c.entries, e)
			return nil
		}
		return fmt.Errorf("%w: %q", ErrDuplicateName, e.Name)
	}

	e.Kind = TokenKind(conv.IntToUint16(len(c.names)))
	c.names = append(c.names, e.Name)
	c.byName[e.Name] = e.Kind
	c.entries = append(c.entries, e)
	return nil
}

// Entries returns the declarations in declaration order.
func (c *Catalogue) Entries() []Entry {
	return c.entries
}

// NumKinds returns the number of kinds, reserved kinds included.
func (c *Catalogue) NumKinds() int {
	return len(c.names)
}

// KindName returns the name of a kind, or "" for an out-of-range id.
func (c *Catalogue) KindName(kind TokenKind) string {
	if int(kind) >= len(c.names) {
		return ""
	}
	return c.names[kind]
}

// KindNames returns the kind-name table indexed by kind id.
func (c *Catalogue) KindNames() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Lookup returns the kind bound to name.
func (c *Catalogue) Lookup(name string) (TokenKind, bool) {
	kind, ok := c.byName[name]
	return kind, ok
}
