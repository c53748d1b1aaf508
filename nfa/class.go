package nfa

import (
	"unicode/utf8"

	"github.com/coregx/lexgen/catalogue"
)

const numCodePoints = utf8.MaxRune + 1

// runeSet is a bitset over the whole code point space [0, U+10FFFF].
// Character classes are materialised here before being lowered to UTF-8
// byte chains.
type runeSet struct {
	words [numCodePoints / 64]uint64
}

func (rs *runeSet) add(cp rune) {
	rs.words[cp>>6] |= 1 << (uint(cp) & 63)
}

func (rs *runeSet) addRange(lo, hi rune) {
	for cp := lo; cp <= hi; cp++ {
		rs.add(cp)
	}
}

// negate flips the set over the full code point space.
func (rs *runeSet) negate() {
	for i := range rs.words {
		rs.words[i] = ^rs.words[i]
	}
}

// forEach visits the members in ascending order. Surrogates are never
// visited: they have no UTF-8 encoding, so no byte chain can exist for
// them regardless of how they entered the set.
func (rs *runeSet) forEach(f func(cp rune)) {
	for wi, w := range rs.words {
		if w == 0 {
			continue
		}
		base := rune(wi << 6)
		for bit := 0; bit < 64; bit++ {
			if w&(1<<uint(bit)) == 0 {
				continue
			}
			cp := base + rune(bit)
			if isSurrogate(cp) {
				continue
			}
			f(cp)
		}
	}
}

// parseClass parses "[" "^"? class-item* "]" and lowers the selected code
// points to byte chains between one shared entry and exit.
//
// An empty class body is permitted only in the negated form "[^]", which
// selects every code point. Ranges require lo ≤ hi, where both endpoints
// are single (possibly escaped) code points.
func (c *compiler) parseClass() (subAutomaton, error) {
	c.pos++ // consume '['
	negate := false
	if c.pos < len(c.src) && c.src[c.pos] == '^' {
		negate = true
		c.pos++
	}

	set := &runeSet{}
	empty := true
	for {
		if c.pos >= len(c.src) {
			return subAutomaton{}, c.errorAt(ErrUnterminatedClass)
		}
		if c.src[c.pos] == ']' {
			if empty && !negate {
				return subAutomaton{}, c.errorAt(ErrUnterminatedClass)
			}
			c.pos++
			break
		}
		lo, err := c.readCodePoint()
		if err != nil {
			return subAutomaton{}, err
		}
		// A '-' is a range operator only between two items; trailing
		// "a-]" keeps the '-' literal.
		if c.pos+1 < len(c.src) && c.src[c.pos] == '-' && c.src[c.pos+1] != ']' {
			c.pos++
			hi, err := c.readCodePoint()
			if err != nil {
				return subAutomaton{}, err
			}
			if lo > hi {
				return subAutomaton{}, c.errorAt(ErrBadRange)
			}
			set.addRange(lo, hi)
		} else {
			set.add(lo)
		}
		empty = false
	}

	if negate {
		set.negate()
	}

	entry := c.n.newState(catalogue.Unknown)
	exit := c.n.newState(catalogue.Unknown)
	intern := map[string]StateID{}
	set.forEach(func(cp rune) {
		c.addClassRune(cp, entry, exit, intern)
	})
	return subAutomaton{entry, exit}, nil
}

// addClassRune attaches one code point's UTF-8 chain between the class's
// shared entry and exit. Interior states are interned by byte prefix,
// (b₁) then (b₁,b₂) then (b₁,b₂,b₃), so a class covering the whole plane
// shares its continuation states instead of growing one chain per code
// point. Single-byte code points connect entry to exit directly.
//
// TODO: intern continuation states by remaining byte range as well; a
// full negated class currently keeps one state per distinct multi-byte
// prefix, which inflates the minimiser's pair matrix.
func (c *compiler) addClassRune(cp rune, entry, exit StateID, intern map[string]StateID) {
	var buf [4]byte
	nb := utf8.EncodeRune(buf[:], cp)
	cur := entry
	for i := 0; i < nb; i++ {
		if i == nb-1 {
			c.n.connect(cur, exit, Symbol(buf[i]))
			return
		}
		key := string(buf[:i+1])
		next, ok := intern[key]
		if !ok {
			next = c.n.newState(catalogue.Unknown)
			intern[key] = next
			c.n.connect(cur, next, Symbol(buf[i]))
		}
		cur = next
	}
}
