package lexer_test

import (
	"errors"
	"testing"

	"github.com/coregx/lexgen"
	"github.com/coregx/lexgen/catalogue"
	"github.com/coregx/lexgen/lexer"
)

// buildTables compiles a catalogue to in-memory tables.
func buildTables(t *testing.T, entries []catalogue.Entry) (lexer.Tables, *catalogue.Catalogue) {
	t.Helper()
	cat := catalogue.New()
	for _, e := range entries {
		if err := cat.Add(e); err != nil {
			t.Fatalf("catalogue: %v", err)
		}
	}
	d, _, err := lexgen.Compile(cat, lexgen.DefaultOptions().Minimize)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return d.Tables(), cat
}

var langEntries = []catalogue.Entry{
	{Name: "kw_for", Literal: "for"},
	{Name: "kw_free", Literal: "free"},
	{Name: "identifier", Regex: "[a-zA-Z_][a-zA-Z_0-9]*"},
	{Name: "number", Regex: "[0-9]+"},
	{Name: "plus", Literal: "+"},
	{Name: "comment", Regex: "#[\\u0020-\\u007E]*"},
	{Name: "gap", Regex: "[ \\t\\n]+"},
}

// kindNames lexes the buffer with Lex and returns the kind names up to
// and including eof.
func kindNames(t *testing.T, tables lexer.Tables, cat *catalogue.Catalogue, input string, opts ...lexer.Option) []string {
	t.Helper()
	l := lexer.New(tables, []byte(input), opts...)
	var names []string
	for {
		tok, err := l.Lex()
		if err != nil {
			t.Fatalf("lex %q: %v", input, err)
		}
		names = append(names, cat.KindName(tok.Kind))
		if tok.Is(catalogue.EOF) {
			return names
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestLex_Scenarios covers the canonical keyword/identifier/number
// interactions end to end.
func TestLex_Scenarios(t *testing.T) {
	tables, cat := buildTables(t, langEntries)

	tests := []struct {
		input string
		want  []string
	}{
		{"for x", []string{"kw_for", "identifier", "eof"}},
		{"forx", []string{"identifier", "eof"}}, // longest match beats the keyword
		{"free", []string{"kw_free", "eof"}},
		{"fo", []string{"identifier", "eof"}},
		{"12+34", []string{"number", "plus", "number", "eof"}},
		{"", []string{"eof"}},
		{"for for", []string{"kw_for", "kw_for", "eof"}},
		{"x1+2y", []string{"identifier", "plus", "number", "identifier", "eof"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := kindNames(t, tables, cat, tt.input)
			if !equalStrings(got, tt.want) {
				t.Errorf("kinds = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestNext_RawStream: Next reports gaps too, and the concatenated
// spellings round-trip to the input.
func TestNext_RawStream(t *testing.T) {
	tables, _ := buildTables(t, langEntries)
	input := "for x\t12+free # trailing\n"
	l := lexer.New(tables, []byte(input))

	var rebuilt []byte
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if tok.Is(catalogue.EOF) {
			break
		}
		rebuilt = append(rebuilt, tok.Spelling...)
	}
	if string(rebuilt) != input {
		t.Fatalf("round trip = %q, want %q", rebuilt, input)
	}
}

// TestNext_EmitsGaps: the raw token loop reports whitespace tokens that
// Lex would skip.
func TestNext_EmitsGaps(t *testing.T) {
	tables, cat := buildTables(t, langEntries)
	l := lexer.New(tables, []byte("for x"))

	var names []string
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatal(err)
		}
		names = append(names, cat.KindName(tok.Kind))
		if tok.Is(catalogue.EOF) {
			break
		}
	}
	want := []string{"kw_for", "gap", "identifier", "eof"}
	if !equalStrings(names, want) {
		t.Fatalf("kinds = %v, want %v", names, want)
	}
}

// TestLex_Comments: comments are skipped by default and retained on
// request; gaps are always skipped.
func TestLex_Comments(t *testing.T) {
	tables, cat := buildTables(t, langEntries)
	input := "x # note\ny"

	got := kindNames(t, tables, cat, input)
	want := []string{"identifier", "identifier", "eof"}
	if !equalStrings(got, want) {
		t.Errorf("default: %v, want %v", got, want)
	}

	got = kindNames(t, tables, cat, input, lexer.RetainComments())
	want = []string{"identifier", "comment", "identifier", "eof"}
	if !equalStrings(got, want) {
		t.Errorf("retained: %v, want %v", got, want)
	}
}

// TestLex_BOM: a UTF-8 BOM is consumed silently and never becomes a
// token, including in an otherwise empty buffer.
func TestLex_BOM(t *testing.T) {
	tables, cat := buildTables(t, langEntries)

	got := kindNames(t, tables, cat, "\xEF\xBB\xBFfor")
	if !equalStrings(got, []string{"kw_for", "eof"}) {
		t.Errorf("BOM+for: %v", got)
	}

	got = kindNames(t, tables, cat, "\xEF\xBB\xBF")
	if !equalStrings(got, []string{"eof"}) {
		t.Errorf("BOM only: %v", got)
	}
}

// TestLex_EOFSticky: after eof, every further call yields eof again.
func TestLex_EOFSticky(t *testing.T) {
	tables, _ := buildTables(t, langEntries)
	l := lexer.New(tables, []byte("x"))

	for i := 0; i < 2; i++ {
		if _, err := l.Lex(); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 3; i++ {
		tok, err := l.Lex()
		if err != nil {
			t.Fatal(err)
		}
		if !tok.Is(catalogue.EOF) {
			t.Fatalf("call %d after eof: kind %d", i, tok.Kind)
		}
	}
}

// TestLex_UnexpectedByte: a byte with no transition from the start state
// is a fatal scan error identifying the byte and offset.
func TestLex_UnexpectedByte(t *testing.T) {
	tables, _ := buildTables(t, langEntries)
	l := lexer.New(tables, []byte("for @"))

	if _, err := l.Lex(); err != nil {
		t.Fatalf("first token: %v", err)
	}
	_, err := l.Lex()
	if err == nil {
		t.Fatal("expected an unexpected-symbol error")
	}
	var ub *lexer.UnexpectedByteError
	if !errors.As(err, &ub) {
		t.Fatalf("error type = %T", err)
	}
	if ub.Byte != '@' || ub.Offset != 4 {
		t.Fatalf("error = %+v, want byte '@' at offset 4", ub)
	}
}

// TestLex_MultiByteToken: a class over U+00C0..U+024F lexes
// ÄÖ (bytes C3 84 C3 96) as one four-byte token.
func TestLex_MultiByteToken(t *testing.T) {
	tables, cat := buildTables(t, []catalogue.Entry{
		{Name: "ident", Regex: "[\\u00C0-\\u024F]+"},
	})
	l := lexer.New(tables, []byte("\xC3\x84\xC3\x96"))

	tok, err := l.Lex()
	if err != nil {
		t.Fatal(err)
	}
	if cat.KindName(tok.Kind) != "ident" || len(tok.Spelling) != 4 {
		t.Fatalf("token = %s %q", cat.KindName(tok.Kind), tok.Spelling)
	}
	tok, err = l.Lex()
	if err != nil {
		t.Fatal(err)
	}
	if !tok.Is(catalogue.EOF) {
		t.Fatalf("second token kind %d, want eof", tok.Kind)
	}
}

// TestLex_InteriorNul: the NUL byte always reads as end of input, so a
// buffer with an embedded NUL stops there.
func TestLex_InteriorNul(t *testing.T) {
	tables, cat := buildTables(t, langEntries)
	got := kindNames(t, tables, cat, "for\x00free")
	if !equalStrings(got, []string{"kw_for", "eof"}) {
		t.Errorf("kinds = %v", got)
	}
}

// BenchmarkLex measures the raw scan loop over a synthetic source.
func BenchmarkLex(b *testing.B) {
	cat := catalogue.New()
	for _, e := range langEntries {
		if err := cat.Add(e); err != nil {
			b.Fatal(err)
		}
	}
	d, _, err := lexgen.Compile(cat, lexgen.DefaultOptions().Minimize)
	if err != nil {
		b.Fatal(err)
	}
	tables := d.Tables()

	var src []byte
	for i := 0; i < 200; i++ {
		src = append(src, "for x1 12 + free # trailing\n"...)
	}

	b.ResetTimer()
	b.SetBytes(int64(len(src)))
	for i := 0; i < b.N; i++ {
		l := lexer.New(tables, src)
		for {
			tok, err := l.Lex()
			if err != nil {
				b.Fatal(err)
			}
			if tok.Is(catalogue.EOF) {
				break
			}
		}
	}
}

// TestLex_TokenSpans: offsets and spellings alias the buffer correctly.
func TestLex_TokenSpans(t *testing.T) {
	tables, _ := buildTables(t, langEntries)
	buf := []byte("for x12")
	l := lexer.New(tables, buf)

	tok, err := l.Lex()
	if err != nil {
		t.Fatal(err)
	}
	if tok.Offset != 0 || string(tok.Spelling) != "for" {
		t.Fatalf("first token = %+v", tok)
	}
	tok, err = l.Lex()
	if err != nil {
		t.Fatal(err)
	}
	if tok.Offset != 4 || string(tok.Spelling) != "x12" {
		t.Fatalf("second token = %+v", tok)
	}
}
