// Package emit serialises a DFA as compilable Go source.
//
// The artefact is a single file holding two constants and two pure
// functions: DFA_StartStateID, DFA_InvalidStateID, DFA_delta(state, byte)
// and DFA_getKind(state). Two emission modes exist, a dense lookup table
// and nested switches, and both serialise exactly the same δ function.
package emit

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/projectdiscovery/fasttemplate"

	"github.com/coregx/lexgen/dfa"
)

// Mode selects the δ serialisation.
type Mode int

const (
	// ModeTable emits a static [|S|][256] array of the smallest unsigned
	// cell type that holds |S|; δ is a double index.
	ModeTable Mode = iota

	// ModeSwitch emits nested switches with one case per present
	// transition. Larger source, often faster after compiler
	// optimisation.
	ModeSwitch
)

// MaxStates is the largest emittable state count. The compact formats
// assume state ids (and the invalid sentinel |S|) fit in 16 bits.
const MaxStates = math.MaxUint16

// ErrTooManyStates indicates the DFA exceeds MaxStates.
var ErrTooManyStates = errors.New("state count exceeds 65535")

// Config configures emission.
type Config struct {
	Mode Mode

	// Package is the package clause of the generated file.
	Package string
}

// DefaultConfig returns the generator's default emission configuration.
func DefaultConfig() Config {
	return Config{Mode: ModeTable, Package: "lexer"}
}

const fileSkeleton = `// Code generated by lexgen. DO NOT EDIT.

package {{package}}

// DFA_StartStateID is the start state of the automaton.
const DFA_StartStateID uint32 = {{start}}

// DFA_InvalidStateID is the trap sentinel: the state count. No valid
// state carries this id; δ returns it when no transition exists.
const DFA_InvalidStateID uint32 = {{invalid}}

{{delta}}
{{kind}}`

// Emit renders the DFA according to cfg. Nothing is written to disk; see
// WriteFile for the atomic file variant.
func Emit(d *dfa.DFA, cfg Config) ([]byte, error) {
	if d.Len() > MaxStates {
		return nil, fmt.Errorf("%w: %d states", ErrTooManyStates, d.Len())
	}
	if cfg.Package == "" {
		cfg.Package = "lexer"
	}

	var delta string
	switch cfg.Mode {
	case ModeSwitch:
		delta = renderSwitchDelta(d)
	default:
		delta = renderTableDelta(d)
	}

	out := fasttemplate.ExecuteStringStd(fileSkeleton, "{{", "}}", map[string]interface{}{
		"package": cfg.Package,
		"start":   fmt.Sprintf("%d", d.Start()),
		"invalid": fmt.Sprintf("%d", d.Invalid()),
		"delta":   delta,
		"kind":    renderKind(d),
	})
	return []byte(out), nil
}

// cellType returns the smallest unsigned Go type holding max.
func cellType(max int) string {
	switch {
	case max <= math.MaxUint8:
		return "uint8"
	case max <= math.MaxUint16:
		return "uint16"
	default:
		return "uint32"
	}
}

// renderTableDelta emits the dense transition matrix and an indexing
// DFA_delta.
func renderTableDelta(d *dfa.DFA) string {
	var b strings.Builder
	n := d.Len()
	cell := cellType(int(d.Invalid()))

	fmt.Fprintf(&b, "var dfaTable = [%d][256]%s{\n", n, cell)
	for s := 0; s < n; s++ {
		b.WriteString("\t{")
		for by := 0; by < 256; by++ {
			if by > 0 {
				if by%16 == 0 {
					b.WriteString(",\n\t\t")
				} else {
					b.WriteString(", ")
				}
			}
			fmt.Fprintf(&b, "%d", d.Delta(dfa.StateID(s), byte(by)))
		}
		b.WriteString("},\n")
	}
	b.WriteString("}\n\n")

	b.WriteString("// DFA_delta is the transition function δ(state, byte).\n")
	b.WriteString("func DFA_delta(state uint32, b byte) uint32 {\n")
	b.WriteString("\tif state >= DFA_InvalidStateID {\n")
	b.WriteString("\t\treturn DFA_InvalidStateID\n")
	b.WriteString("\t}\n")
	b.WriteString("\treturn uint32(dfaTable[state][b])\n")
	b.WriteString("}\n")
	return b.String()
}

// renderSwitchDelta emits DFA_delta as nested switches over state and
// byte. Only present transitions produce cases; everything else falls
// through to the sentinel.
func renderSwitchDelta(d *dfa.DFA) string {
	var b strings.Builder
	n := d.Len()
	inv := d.Invalid()

	b.WriteString("// DFA_delta is the transition function δ(state, byte).\n")
	b.WriteString("func DFA_delta(state uint32, b byte) uint32 {\n")
	b.WriteString("\tswitch state {\n")
	for s := 0; s < n; s++ {
		var cases strings.Builder
		for by := 0; by < 256; by++ {
			t := d.Delta(dfa.StateID(s), byte(by))
			if t == inv {
				continue
			}
			fmt.Fprintf(&cases, "\t\tcase 0x%02X:\n\t\t\treturn %d\n", by, t)
		}
		if cases.Len() == 0 {
			continue
		}
		fmt.Fprintf(&b, "\tcase %d:\n\t\tswitch b {\n", s)
		b.WriteString(cases.String())
		b.WriteString("\t\t}\n")
	}
	b.WriteString("\t}\n")
	b.WriteString("\treturn DFA_InvalidStateID\n")
	b.WriteString("}\n")
	return b.String()
}

// renderKind emits the kind table and DFA_getKind. Kind cells are 16-bit
// regardless of table size; the invalid sentinel maps to kind 0.
func renderKind(d *dfa.DFA) string {
	var b strings.Builder
	n := d.Len()

	fmt.Fprintf(&b, "var dfaKinds = [%d]uint16{", n)
	for s := 0; s < n; s++ {
		if s > 0 {
			if s%16 == 0 {
				b.WriteString(",\n\t")
			} else {
				b.WriteString(", ")
			}
		}
		fmt.Fprintf(&b, "%d", d.Kind(dfa.StateID(s)))
	}
	b.WriteString("}\n\n")

	b.WriteString("// DFA_getKind returns κ(state): the kind of token completed at\n")
	b.WriteString("// state, or 0 (unknown) for non-terminal states and the sentinel.\n")
	b.WriteString("func DFA_getKind(state uint32) uint16 {\n")
	b.WriteString("\tif state >= DFA_InvalidStateID {\n")
	b.WriteString("\t\treturn 0\n")
	b.WriteString("\t}\n")
	b.WriteString("\treturn dfaKinds[state]\n")
	b.WriteString("}\n")
	return b.String()
}
