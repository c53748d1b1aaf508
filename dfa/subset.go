package dfa

import (
	"encoding/binary"
	"sort"

	"github.com/coregx/lexgen/catalogue"
	"github.com/coregx/lexgen/internal/sparse"
	"github.com/coregx/lexgen/nfa"
)

// FromNFA converts an ε-NFA into a DFA by subset construction.
//
// Each DFA state corresponds to an ε-closed set of NFA states,
// canonicalised as a sorted id vector and memoised, so identical sets map
// to the same DFA state. When a set contains several terminal NFA states
// the DFA state's kind is taken from the member with the smallest id;
// ids follow declaration order, so the earliest-declared token wins.
// This is what makes keywords beat identifiers on equal-length matches.
//
// The construction is worklist driven and fully deterministic: symbols
// are scanned in ascending byte order and subsets are numbered in
// discovery order.
func FromNFA(n *nfa.NFA) *DFA {
	d := newDFA()

	closure := sparse.NewSet(n.Len())
	n.AddEpsilonClosure(closure, n.Start())
	startSet := canonical(closure)

	type pending struct {
		id  StateID
		set []nfa.StateID
	}

	memo := map[string]StateID{}
	startID := d.addState(subsetKind(n, startSet))
	memo[setKey(startSet)] = startID
	d.start = startID
	worklist := []pending{{startID, startSet}}

	// Per-symbol move sets, rebuilt for every subset.
	var moves [alphabetSize][]nfa.StateID

	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]

		for b := range moves {
			moves[b] = moves[b][:0]
		}
		for _, id := range cur.set {
			for _, e := range n.State(id).Edges() {
				if !e.IsEpsilon() {
					moves[e.Symbol] = append(moves[e.Symbol], e.Target)
				}
			}
		}

		// Index d.trans afresh per cell: addState may grow the arena
		// and move it while this state's row is being filled.
		for b := 0; b < alphabetSize; b++ {
			if len(moves[b]) == 0 {
				d.trans[cur.id][b] = placeholder
				continue
			}
			closure.Clear()
			for _, t := range moves[b] {
				n.AddEpsilonClosure(closure, t)
			}
			next := canonical(closure)
			key := setKey(next)
			nextID, ok := memo[key]
			if !ok {
				nextID = d.addState(subsetKind(n, next))
				memo[key] = nextID
				worklist = append(worklist, pending{nextID, next})
			}
			d.trans[cur.id][b] = nextID
		}
	}

	d.seal()
	return d
}

// canonical copies the set's members into a freshly sorted id vector.
func canonical(set *sparse.Set) []nfa.StateID {
	out := make([]nfa.StateID, 0, set.Len())
	for _, v := range set.Values() {
		out = append(out, nfa.StateID(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// setKey encodes a canonical id vector as a map key.
func setKey(set []nfa.StateID) string {
	buf := make([]byte, 4*len(set))
	for i, id := range set {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(id))
	}
	return string(buf)
}

// subsetKind resolves the kind of a subset: the kind of the terminal
// member with the smallest state id, or Unknown if none is terminal.
func subsetKind(n *nfa.NFA, set []nfa.StateID) catalogue.TokenKind {
	for _, id := range set { // set is sorted ascending
		if s := n.State(id); s.IsTerminal() {
			return s.Kind()
		}
	}
	return catalogue.Unknown
}
