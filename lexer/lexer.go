package lexer

import (
	"bytes"
	"fmt"

	"github.com/coregx/lexgen/catalogue"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// UnexpectedByteError reports the byte on which the current token's walk
// failed when the last state reached before it is not terminal (for
// example, a byte with no path from the start state). It is fatal; the
// scanner has no recovery mode.
type UnexpectedByteError struct {
	Byte   byte
	Offset int
}

// Error implements the error interface.
func (e *UnexpectedByteError) Error() string {
	return fmt.Sprintf("unexpected symbol 0x%02X at offset %d", e.Byte, e.Offset)
}

// Lexer scans one buffer by longest match. Every read at or past the end
// of the buffer yields the null byte, which realises the contract that
// the buffer is null-terminated: the DFA's EOF token matches that byte
// and concludes scanning cleanly.
type Lexer struct {
	tables Tables
	buf    []byte
	pos    int
	done   bool

	retainComments bool
}

// Option configures a Lexer.
type Option func(*Lexer)

// RetainComments makes Lex emit comment tokens instead of skipping them.
func RetainComments() Option {
	return func(l *Lexer) { l.retainComments = true }
}

// New creates a scanner over buf. A UTF-8 byte order mark at the start of
// the buffer is consumed here and never produces a token.
func New(tables Tables, buf []byte, opts ...Option) *Lexer {
	l := &Lexer{tables: tables, buf: buf}
	if bytes.HasPrefix(buf, utf8BOM) {
		l.pos = len(utf8BOM)
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// byteAt reads the buffer with the null-termination contract: positions
// at or past the end read as 0.
func (l *Lexer) byteAt(i int) byte {
	if i >= len(l.buf) {
		return 0
	}
	return l.buf[i]
}

// Next lexes one token, including gap and comment tokens. Once the EOF
// token has been emitted every further call returns EOF again.
//
// The loop reads each byte at most twice: once to advance and once as
// the mismatch that terminates the token. The byte that failed remains
// unconsumed and starts the next token.
func (l *Lexer) Next() (Token, error) {
	if l.done {
		return Token{Kind: catalogue.EOF, Offset: l.pos}, nil
	}

	tokStart := l.pos
	ptr := l.pos
	prev := l.tables.Start
	cur := l.tables.Start
	for {
		prev = cur
		cur = l.tables.Delta(cur, l.byteAt(ptr))
		ptr++
		if cur == l.tables.Invalid {
			break
		}
	}
	ptr-- // the byte that failed remains unconsumed

	kind := l.tables.Kind(prev)
	if kind == catalogue.Unknown {
		// The last state before the failing byte is not terminal. A
		// terminal state passed earlier in the walk is not revisited.
		return Token{}, &UnexpectedByteError{Byte: l.byteAt(ptr), Offset: ptr}
	}

	spellEnd := ptr
	if spellEnd > len(l.buf) {
		spellEnd = len(l.buf)
	}
	tok := Token{Kind: kind, Spelling: l.buf[tokStart:spellEnd], Offset: tokStart}
	l.pos = ptr
	if kind == catalogue.EOF {
		l.done = true
		l.pos = len(l.buf)
	}
	return tok, nil
}

// Lex returns the next significant token: gap tokens are always skipped
// and comment tokens are skipped unless the lexer retains them.
func (l *Lexer) Lex() (Token, error) {
	for {
		tok, err := l.Next()
		if err != nil {
			return Token{}, err
		}
		if tok.Kind == catalogue.Gap {
			continue
		}
		if tok.Kind == catalogue.Comment && !l.retainComments {
			continue
		}
		return tok, nil
	}
}
