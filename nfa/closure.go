package nfa

import (
	"github.com/coregx/lexgen/internal/sparse"
)

// AddEpsilonClosure inserts into set every state reachable from seed by
// zero or more ε-edges. The walk uses an explicit stack so closure depth
// is independent of goroutine stack limits. The set must be sized for
// this automaton's arena.
func (n *NFA) AddEpsilonClosure(set *sparse.Set, seed StateID) {
	if !set.Insert(uint32(seed)) {
		return
	}
	stack := []StateID{seed}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range n.states[id].edges {
			if e.IsEpsilon() && set.Insert(uint32(e.Target)) {
				stack = append(stack, e.Target)
			}
		}
	}
}

// EpsilonClosure returns the ε-closure of seed as state ids in insertion
// order. Callers needing a canonical form sort the result.
func (n *NFA) EpsilonClosure(seed StateID) []StateID {
	set := sparse.NewSet(len(n.states))
	n.AddEpsilonClosure(set, seed)
	out := make([]StateID, 0, set.Len())
	for _, v := range set.Values() {
		out = append(out, StateID(v))
	}
	return out
}
