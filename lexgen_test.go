package lexgen_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/coregx/lexgen"
	"github.com/coregx/lexgen/catalogue"
	"github.com/coregx/lexgen/dfa"
	"github.com/coregx/lexgen/emit"
)

func testCatalogue(t *testing.T) *catalogue.Catalogue {
	t.Helper()
	c, err := catalogue.Parse([]byte(`tokens:
  - name: kw_for
    literal: for
  - name: identifier
    regex: "[a-zA-Z_][a-zA-Z_0-9]*"
  - name: number
    regex: "[0-9]+"
  - name: plus
    literal: "+"
  - name: gap
    regex: "[ \t]+"
`))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// TestGenerate_Deterministic: two runs over the same catalogue produce
// byte-identical artefacts.
func TestGenerate_Deterministic(t *testing.T) {
	cat := testCatalogue(t)
	opts := lexgen.DefaultOptions()

	out1, stats1, err := lexgen.Generate(cat, opts)
	if err != nil {
		t.Fatal(err)
	}
	out2, stats2, err := lexgen.Generate(cat, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out1, out2) {
		t.Fatal("emitted artefacts differ between runs")
	}
	if stats1 != stats2 {
		t.Fatalf("stats differ: %+v vs %+v", stats1, stats2)
	}
}

// TestGenerate_Stats: the pipeline reports plausible, shrinking state
// counts.
func TestGenerate_Stats(t *testing.T) {
	_, stats, err := lexgen.Generate(testCatalogue(t), lexgen.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if stats.NFAStates == 0 || stats.DFAStates == 0 || stats.MinDFAStates == 0 {
		t.Fatalf("zero state count in %+v", stats)
	}
	if stats.MinDFAStates > stats.DFAStates {
		t.Fatalf("minimisation grew the automaton: %+v", stats)
	}
	if stats.DFAStates > stats.NFAStates {
		t.Fatalf("subset construction exceeded the NFA: %+v", stats)
	}
}

// TestGenerate_MinimisationConfigsAgree: O2/O4 emit identical artefacts;
// table and switch mode differ only in the δ rendering.
func TestGenerate_MinimisationConfigsAgree(t *testing.T) {
	cat := testCatalogue(t)

	o2 := lexgen.DefaultOptions()
	o2.Minimize.Algorithm = dfa.AlgoO2
	o4 := lexgen.DefaultOptions()
	o4.Minimize.Algorithm = dfa.AlgoO4

	out2, _, err := lexgen.Generate(cat, o2)
	if err != nil {
		t.Fatal(err)
	}
	out4, _, err := lexgen.Generate(cat, o4)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out2, out4) {
		t.Fatal("O2 and O4 emitted different artefacts")
	}

	sw := lexgen.DefaultOptions()
	sw.Emit.Mode = emit.ModeSwitch
	outSw, _, err := lexgen.Generate(cat, sw)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(out2, outSw) {
		t.Fatal("table and switch artefacts are unexpectedly identical")
	}
}

// TestCompile_RejectsEmptyMatch: a nullable pattern would admit empty
// tokens and loop the scanner; the pipeline refuses it.
func TestCompile_RejectsEmptyMatch(t *testing.T) {
	c := catalogue.New()
	if err := c.Add(catalogue.Entry{Name: "identifier", Regex: "[a-z]*"}); err != nil {
		t.Fatal(err)
	}
	_, _, err := lexgen.Compile(c, lexgen.DefaultOptions().Minimize)
	if !errors.Is(err, lexgen.ErrEmptyMatch) {
		t.Fatalf("error = %v, want ErrEmptyMatch", err)
	}
}

// TestCompile_BadRegexNamesToken: a syntax error is attributed to the
// declaration that carries it.
func TestCompile_BadRegexNamesToken(t *testing.T) {
	c := catalogue.New()
	if err := c.Add(catalogue.Entry{Name: "broken", Regex: "(a"}); err != nil {
		t.Fatal(err)
	}
	_, _, err := lexgen.Compile(c, lexgen.DefaultOptions().Minimize)
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := err.Error(); !bytes.Contains([]byte(got), []byte("broken")) {
		t.Fatalf("error %q does not name the token", got)
	}
}
