package dfa

import (
	"github.com/coregx/lexgen/catalogue"
)

// Algorithm selects the minimisation strategy. Both produce identical
// partitions; they trade memory for time differently.
type Algorithm int

const (
	// AlgoO2 propagates distinguishability backwards over the reverse
	// transition relation with a worklist. Worst-case O(N²) pair work
	// but it materialises the reverse relation.
	AlgoO2 Algorithm = iota

	// AlgoO4 re-scans undistinguished pairs until a fixed point. Slower
	// on large automata, no extra memory beyond the matrix.
	AlgoO4
)

// MinimizeConfig configures DFA minimisation.
type MinimizeConfig struct {
	Algorithm Algorithm

	// UnifyKinds also merges terminal states whose kinds differ when
	// they are otherwise equivalent. Do not enable it for catalogues
	// that rely on keywords being distinguished from identifiers.
	UnifyKinds bool
}

// DefaultMinimizeConfig returns the configuration used by the generator
// when no flags override it.
func DefaultMinimizeConfig() MinimizeConfig {
	return MinimizeConfig{Algorithm: AlgoO2}
}

// pairMatrix is an upper-triangular boolean matrix over state pairs,
// stored as bit rows. Entry (i, j) with i < j records that states i and j
// are provably non-equivalent.
type pairMatrix struct {
	n    int
	rows [][]uint64
}

func newPairMatrix(n int) *pairMatrix {
	words := (n + 63) / 64
	rows := make([][]uint64, n)
	backing := make([]uint64, n*words)
	for i := range rows {
		rows[i] = backing[i*words : (i+1)*words]
	}
	return &pairMatrix{n: n, rows: rows}
}

func (m *pairMatrix) set(i, j StateID) bool {
	if i == j {
		return false
	}
	if i > j {
		i, j = j, i
	}
	w, b := j>>6, j&63
	if m.rows[i][w]&(1<<b) != 0 {
		return false
	}
	m.rows[i][w] |= 1 << b
	return true
}

func (m *pairMatrix) get(i, j StateID) bool {
	if i == j {
		return false
	}
	if i > j {
		i, j = j, i
	}
	return m.rows[i][j>>6]&(1<<(j&63)) != 0
}

// Minimize produces an equivalent automaton with the minimal number of
// states, preserving the token-kind labelling (unless cfg.UnifyKinds).
//
// The algorithm is partition refinement over a distinguishability matrix
// augmented with a virtual dead state that stands for absent transitions.
// Equivalence classes are enumerated by ascending representative id and
// class edges are rebuilt per symbol from any member that carries the
// symbol, so the output is canonical and Minimize is idempotent.
func Minimize(d *DFA, cfg MinimizeConfig) *DFA {
	n := d.Len()
	dead := StateID(n) // == d.Invalid(); the virtual dead state
	matrix := newPairMatrix(n + 1)

	// Initialisation: a terminal and a non-terminal are distinguishable;
	// two terminals with different kinds are distinguishable unless
	// kinds are being unified; everything real is distinguishable from
	// the dead state.
	var seeds []pair
	for i := StateID(0); i < dead; i++ {
		for j := i + 1; j < dead; j++ {
			ti, tj := d.kinds[i] != catalogue.Unknown, d.kinds[j] != catalogue.Unknown
			distinct := ti != tj
			if !distinct && ti && !cfg.UnifyKinds {
				distinct = d.kinds[i] != d.kinds[j]
			}
			if distinct && matrix.set(i, j) {
				seeds = append(seeds, pair{i, j})
			}
		}
		if matrix.set(i, dead) {
			seeds = append(seeds, pair{i, dead})
		}
	}

	switch cfg.Algorithm {
	case AlgoO4:
		refineFixpoint(d, matrix, dead)
	default:
		refineWorklist(d, matrix, dead, seeds)
	}

	return collapse(d, matrix, dead)
}

type pair struct {
	i, j StateID
}

// target resolves δ(s, b) with the dead state standing in for absent
// transitions and for the dead state itself.
func target(d *DFA, dead, s StateID, b int) StateID {
	if s == dead {
		return dead
	}
	t := d.trans[s][b]
	if t >= dead {
		return dead
	}
	return t
}

// refineFixpoint repeatedly scans undistinguished pairs and marks any
// pair whose successors on some byte are already distinguished. The scan
// includes pairs with the dead state so differing transition presence is
// caught.
func refineFixpoint(d *DFA, matrix *pairMatrix, dead StateID) {
	for changed := true; changed; {
		changed = false
		for i := StateID(0); i <= dead; i++ {
			for j := i + 1; j <= dead; j++ {
				if matrix.get(i, j) {
					continue
				}
				for b := 0; b < alphabetSize; b++ {
					if matrix.get(target(d, dead, i, b), target(d, dead, j, b)) {
						matrix.set(i, j)
						changed = true
						break
					}
				}
			}
		}
	}
}

// refineWorklist propagates distinguishability backwards: whenever a pair
// (i, j) is known distinguished, every predecessor pair (p, q) with
// δ(p, b) = i and δ(q, b) = j becomes distinguished too. The worklist is
// seeded with every initially-distinguished pair, including the (i, dead)
// pairs, so states differing only in transition presence are separated.
func refineWorklist(d *DFA, matrix *pairMatrix, dead StateID, seeds []pair) {
	// Reverse transition relation: rev[b][t] lists the states s with
	// δ(s, b) = t. The dead state's predecessors on b are the states
	// lacking a transition on b, plus dead itself.
	rev := make([][][]StateID, alphabetSize)
	for b := 0; b < alphabetSize; b++ {
		rev[b] = make([][]StateID, int(dead)+1)
		for s := StateID(0); s <= dead; s++ {
			t := target(d, dead, s, b)
			rev[b][t] = append(rev[b][t], s)
		}
	}

	worklist := seeds
	for len(worklist) > 0 {
		p := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for b := 0; b < alphabetSize; b++ {
			for _, src1 := range rev[b][p.i] {
				for _, src2 := range rev[b][p.j] {
					if matrix.set(src1, src2) {
						worklist = append(worklist, pair{src1, src2})
					}
				}
			}
		}
	}
}

// collapse builds the minimised automaton from the matrix. States are
// scanned by ascending id; each state joins the class of the smallest
// undistinguished earlier state or founds a new class. Class edges are
// the deduplicated union of the members' outgoing symbols: for every
// byte the first member carrying it supplies the target, and all members
// of a class necessarily agree on the target's class.
func collapse(d *DFA, matrix *pairMatrix, dead StateID) *DFA {
	n := d.Len()
	out := newDFA()

	classOf := make([]StateID, n)
	var members [][]StateID
	for i := 0; i < n; i++ {
		id := StateID(i)
		joined := false
		for _, earlier := range members {
			rep := earlier[0]
			if !matrix.get(rep, id) {
				classOf[id] = classOf[rep]
				members[classOf[rep]] = append(members[classOf[rep]], id)
				joined = true
				break
			}
		}
		if joined {
			continue
		}
		classOf[id] = out.addState(d.kinds[id])
		members = append(members, []StateID{id})
	}

	// Under unify-kinds a class may hold terminals of several kinds; the
	// founding (smallest-id) member decides, which keeps the result
	// deterministic. Without unify-kinds all terminal members share a
	// kind by initialisation.

	for class, ms := range members {
		trans := &out.trans[class]
		for b := 0; b < alphabetSize; b++ {
			cell := placeholder
			for _, m := range ms {
				if t := d.trans[m][b]; t < dead {
					cell = classOf[t]
					break
				}
			}
			trans[b] = cell
		}
	}

	out.start = classOf[d.start]
	out.seal()
	return out
}
