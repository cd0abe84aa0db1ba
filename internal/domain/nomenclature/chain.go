package nomenclature

import (
	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/domain/molecule"
)

// ─────────────────────────────────────────────────────────────────────────────
// Longest-chain search
// ─────────────────────────────────────────────────────────────────────────────

// longestChains enumerates every simple carbon path of maximal length by
// exhaustive depth-first search from each carbon.  Neighbor order follows
// bond insertion order, so the result is deterministic for a given graph.
func longestChains(g molecule.MoleculeGraph) [][]molecule.AtomID {
	var best [][]molecule.AtomID
	bestLen := 0

	var dfs func(path []molecule.AtomID, visited map[molecule.AtomID]bool)
	dfs = func(path []molecule.AtomID, visited map[molecule.AtomID]bool) {
		tip := path[len(path)-1]
		extended := false
		for _, nb := range g.CarbonNeighbors(tip) {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			dfs(append(path, nb), visited)
			visited[nb] = false
			extended = true
		}
		if extended {
			return
		}
		if len(path) > bestLen {
			bestLen = len(path)
			best = best[:0]
		}
		if len(path) == bestLen {
			best = append(best, append([]molecule.AtomID(nil), path...))
		}
	}

	for _, id := range g.AtomIDs() {
		atom, _ := g.Atom(id)
		if atom.Element != molecule.Carbon {
			continue
		}
		dfs([]molecule.AtomID{id}, map[molecule.AtomID]bool{id: true})
	}
	return best
}

// pickChain selects among maximal chains, preferring the first one that
// carries the principal functional-group carbon.
func pickChain(chains [][]molecule.AtomID, principal molecule.AtomID) []molecule.AtomID {
	if len(chains) == 0 {
		return nil
	}
	if principal != "" {
		for _, c := range chains {
			for _, id := range c {
				if id == principal {
					return c
				}
			}
		}
	}
	return chains[0]
}

// ─────────────────────────────────────────────────────────────────────────────
// Numbering orientations
// ─────────────────────────────────────────────────────────────────────────────

// orientationScore ranks one candidate numbering of a parent chain or ring.
// Fields compare in order: principal-group locant, unsaturation locant sum,
// substituent locant sum.
type orientationScore struct {
	principal int
	unsat     int
	subst     int
}

func (s orientationScore) less(o orientationScore) bool {
	if s.principal != o.principal {
		return s.principal < o.principal
	}
	if s.unsat != o.unsat {
		return s.unsat < o.unsat
	}
	return s.subst < o.subst
}

// chainOrientations returns the two directional numberings of a chain.
func chainOrientations(chain []molecule.AtomID) [][]molecule.AtomID {
	rev := make([]molecule.AtomID, len(chain))
	for i, id := range chain {
		rev[len(chain)-1-i] = id
	}
	return [][]molecule.AtomID{chain, rev}
}

// ringOrientations returns every rotation of the ring in both directions.
func ringOrientations(ring []molecule.AtomID) [][]molecule.AtomID {
	n := len(ring)
	out := make([][]molecule.AtomID, 0, 2*n)
	for start := 0; start < n; start++ {
		fwd := make([]molecule.AtomID, n)
		bwd := make([]molecule.AtomID, n)
		for i := 0; i < n; i++ {
			fwd[i] = ring[(start+i)%n]
			bwd[i] = ring[(start-i+2*n)%n]
		}
		out = append(out, fwd, bwd)
	}
	return out
}

// bestOrientation scores every candidate numbering and returns the winner
// with its analysis.  The first candidate wins ties, which keeps numbering
// stable across runs.
func bestOrientation(g molecule.MoleculeGraph, candidates [][]molecule.AtomID, isRing bool, principal molecule.AtomID, skip map[molecule.AtomID]bool) ([]molecule.AtomID, parentAnalysis) {
	var winner []molecule.AtomID
	var winning parentAnalysis
	var best orientationScore
	for i, seq := range candidates {
		pa := analyzeParent(g, seq, isRing, skip)
		score := orientationScore{unsat: pa.unsatSum(), subst: pa.substSum()}
		if principal != "" {
			for pos, id := range seq {
				if id == principal {
					score.principal = pos + 1
					break
				}
			}
		}
		if i == 0 || score.less(best) {
			best = score
			winner = seq
			winning = pa
		}
	}
	return winner, winning
}

// ─────────────────────────────────────────────────────────────────────────────
// Parent analysis
// ─────────────────────────────────────────────────────────────────────────────

// substituent is one named branch or halogen with its locant.
type substituent struct {
	name   string
	locant int
}

// parentAnalysis holds everything the assembler needs about a numbered
// parent: its substituents and the locants of double and triple bonds.
type parentAnalysis struct {
	subs []substituent
	enes []int
	ynes []int
}

func (p parentAnalysis) unsatSum() int {
	sum := 0
	for _, l := range p.enes {
		sum += l
	}
	for _, l := range p.ynes {
		sum += l
	}
	return sum
}

func (p parentAnalysis) substSum() int {
	sum := 0
	for _, s := range p.subs {
		sum += s.locant
	}
	return sum
}

// halogenPrefixes maps halogen elements to their substituent prefixes.
var halogenPrefixes = map[molecule.Element]string{
	molecule.Fluorine: "fluoro",
	molecule.Chlorine: "chloro",
	molecule.Bromine:  "bromo",
	molecule.Iodine:   "iodo",
}

// analyzeParent walks a numbered parent sequence collecting substituents and
// unsaturation locants.  Atoms in skip (the principal group's own atoms) are
// never reported as substituents; heteroatoms other than halogens carry no
// prefix and are ignored.
func analyzeParent(g molecule.MoleculeGraph, seq []molecule.AtomID, isRing bool, skip map[molecule.AtomID]bool) parentAnalysis {
	inSeq := make(map[molecule.AtomID]bool, len(seq))
	for _, id := range seq {
		inSeq[id] = true
	}

	var pa parentAnalysis
	for i, id := range seq {
		locant := i + 1
		for _, nb := range g.Neighbors(id) {
			if inSeq[nb] || skip[nb] {
				continue
			}
			other, _ := g.Atom(nb)
			switch {
			case other.Element == molecule.Carbon:
				if name, ok := branchName(g, nb, inSeq); ok {
					pa.subs = append(pa.subs, substituent{name: name, locant: locant})
				}
			case other.Element.IsHalogen():
				pa.subs = append(pa.subs, substituent{name: halogenPrefixes[other.Element], locant: locant})
			}
		}
	}

	bonds := len(seq) - 1
	if isRing {
		bonds = len(seq)
	}
	for i := 0; i < bonds; i++ {
		a, b := seq[i], seq[(i+1)%len(seq)]
		bond, ok := g.FindBond(a, b)
		if !ok || bond.IsAromatic() {
			continue
		}
		// The closure bond of a ring spans locants n and 1; its locant is 1.
		locant := i + 1
		if isRing && i == len(seq)-1 {
			locant = 1
		}
		switch bond.Order {
		case 2:
			pa.enes = append(pa.enes, locant)
		case 3:
			pa.ynes = append(pa.ynes, locant)
		}
	}
	return pa
}

// branchName sizes a carbon branch by depth-first count and maps it to an
// alkyl prefix.
func branchName(g molecule.MoleculeGraph, root molecule.AtomID, excluded map[molecule.AtomID]bool) (string, bool) {
	visited := map[molecule.AtomID]bool{root: true}
	stack := []molecule.AtomID{root}
	size := 0
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		size++
		for _, nb := range g.CarbonNeighbors(cur) {
			if visited[nb] || excluded[nb] {
				continue
			}
			visited[nb] = true
			stack = append(stack, nb)
		}
	}
	if size < 1 || size > len(chainStems) {
		return "", false
	}
	return chainStems[size-1] + "yl", true
}
