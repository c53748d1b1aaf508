// Package lexgen generates deterministic longest-match lexers from
// declarative token catalogues.
//
// The pipeline is offline and purely functional:
//
//	catalogue → ε-NFA → subset-construction DFA → minimised DFA → Go source
//
// Each stage consumes its input and returns a fresh automaton; given the
// same catalogue the produced tables are byte-identical across runs. The
// lexer package consumes the resulting tables at runtime.
package lexgen

import (
	"errors"
	"fmt"

	"github.com/coregx/lexgen/catalogue"
	"github.com/coregx/lexgen/dfa"
	"github.com/coregx/lexgen/emit"
	"github.com/coregx/lexgen/nfa"
)

// ErrEmptyMatch indicates a catalogue whose patterns admit a zero-length
// token (the DFA start state is terminal). Such a lexer would loop
// emitting empty tokens, so the pipeline rejects it.
var ErrEmptyMatch = errors.New("catalogue admits an empty token")

// Options configures a generation run.
type Options struct {
	Emit     emit.Config
	Minimize dfa.MinimizeConfig
}

// DefaultOptions returns the options used when no flags override them.
func DefaultOptions() Options {
	return Options{
		Emit:     emit.DefaultConfig(),
		Minimize: dfa.DefaultMinimizeConfig(),
	}
}

// Stats reports the state counts of the three automata a run produces.
type Stats struct {
	NFAStates    int
	DFAStates    int
	MinDFAStates int
}

// BuildNFA assembles the union ε-NFA for a catalogue. The EOF token, a
// literal null byte matching the buffer terminator, is registered first;
// user declarations follow in catalogue order, which fixes their
// relative priority.
func BuildNFA(cat *catalogue.Catalogue) (*nfa.NFA, error) {
	b := nfa.NewBuilder()
	if err := b.AddRawString("\x00", catalogue.EOF); err != nil {
		return nil, err
	}
	for _, e := range cat.Entries() {
		var err error
		if e.IsLiteral() {
			err = b.AddRawString(e.Literal, e.Kind)
		} else {
			err = b.AddRegex(e.Regex, e.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("token %q: %w", e.Name, err)
		}
	}
	return b.Build(), nil
}

// Compile builds the minimised DFA for a catalogue.
func Compile(cat *catalogue.Catalogue, cfg dfa.MinimizeConfig) (*dfa.DFA, Stats, error) {
	n, err := BuildNFA(cat)
	if err != nil {
		return nil, Stats{}, err
	}
	stats := Stats{NFAStates: n.Len()}

	d := dfa.FromNFA(n)
	stats.DFAStates = d.Len()
	if d.Kind(d.Start()) != catalogue.Unknown {
		return nil, stats, ErrEmptyMatch
	}

	min := dfa.Minimize(d, cfg)
	stats.MinDFAStates = min.Len()
	return min, stats, nil
}

// Generate runs the whole pipeline and returns the emitted source.
func Generate(cat *catalogue.Catalogue, opts Options) ([]byte, Stats, error) {
	min, stats, err := Compile(cat, opts.Minimize)
	if err != nil {
		return nil, stats, err
	}
	out, err := emit.Emit(min, opts.Emit)
	if err != nil {
		return nil, stats, err
	}
	return out, stats, nil
}
