// Package notation linearizes molecule graphs into SMILES strings.  The
// writer is deterministic for a given graph but makes no canonicalization
// guarantee: two graphs describing the same molecule may serialize
// differently depending on construction order.
package notation

import (
	"strconv"
	"strings"

	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/domain/molecule"
	"github.com/Kitarpshakya/Reaction-hub-sub000/pkg/errors"
)

// organicSubset lists the elements writable without brackets.
var organicSubset = map[molecule.Element]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true,
	"S": true, "F": true, "Cl": true, "Br": true, "I": true,
}

// Generate serializes the graph to SMILES.  Traversal starts from a terminal
// carbon when one exists, any carbon otherwise, and the first atom as a last
// resort.  Callers holding only a formula can use ByFormula instead.
func Generate(g molecule.MoleculeGraph) (string, error) {
	start, ok := pickStart(g)
	if !ok {
		return "", errors.New(errors.ErrCodeNotationFailed, "cannot serialize an empty molecule")
	}

	w := newWriter(g)
	w.classifyRings(start)
	w.emit(start, "")

	// Disconnected fragments cannot happen through the mutation surface, but
	// a hand-built graph could carry one; refuse rather than emit a partial
	// string.
	if len(w.visited) != g.NumAtoms() {
		return "", errors.New(errors.ErrCodeNotationFailed,
			"molecule is not a single connected structure")
	}
	return w.sb.String(), nil
}

// pickStart chooses the traversal root.
func pickStart(g molecule.MoleculeGraph) (molecule.AtomID, bool) {
	ids := g.AtomIDs()
	if len(ids) == 0 {
		return "", false
	}
	var firstCarbon molecule.AtomID
	for _, id := range ids {
		atom, _ := g.Atom(id)
		if atom.Element != molecule.Carbon {
			continue
		}
		if firstCarbon == "" {
			firstCarbon = id
		}
		if g.IsTerminal(id) {
			return id, true
		}
	}
	if firstCarbon != "" {
		return firstCarbon, true
	}
	return ids[0], true
}

// ─────────────────────────────────────────────────────────────────────────────
// Writer
// ─────────────────────────────────────────────────────────────────────────────

type writer struct {
	g       molecule.MoleculeGraph
	visited map[molecule.AtomID]bool
	// closures lists the ring-closure digits to print at each atom, with the
	// bond glyph that precedes the digit at the closing end.
	closures map[molecule.AtomID][]closure
	ringBond map[molecule.BondID]bool
	sb       strings.Builder
}

type closure struct {
	digit  int
	prefix string
}

func newWriter(g molecule.MoleculeGraph) *writer {
	return &writer{
		g:        g,
		visited:  make(map[molecule.AtomID]bool),
		closures: make(map[molecule.AtomID][]closure),
		ringBond: make(map[molecule.BondID]bool),
	}
}

// classifyRings walks the graph in emission order and assigns ring-closure
// digits to back edges, first seen first, starting at 1.  The emission pass
// repeats the identical traversal, so each digit surfaces exactly twice: bare
// at the ancestor and prefixed with its bond glyph at the closing atom.
func (w *writer) classifyRings(start molecule.AtomID) {
	seen := make(map[molecule.AtomID]bool)
	next := 1

	var dfs func(id, parent molecule.AtomID)
	dfs = func(id, parent molecule.AtomID) {
		seen[id] = true
		for _, bond := range w.g.IncidentBonds(id) {
			nb, _ := bond.Other(id)
			if nb == parent || w.ringBond[bond.ID] {
				continue
			}
			if seen[nb] {
				w.ringBond[bond.ID] = true
				w.closures[nb] = append(w.closures[nb], closure{digit: next})
				w.closures[id] = append(w.closures[id], closure{digit: next, prefix: bondGlyph(bond)})
				next++
				continue
			}
			dfs(nb, id)
		}
	}
	dfs(start, "")
}

// emit writes one atom, its ring-closure digits, and its subtrees.  Every
// child but the last is wrapped in parentheses.
func (w *writer) emit(id molecule.AtomID, bondPrefix string) {
	w.visited[id] = true
	w.sb.WriteString(bondPrefix)
	w.sb.WriteString(w.atomSymbol(id))
	for _, c := range w.closures[id] {
		w.sb.WriteString(c.prefix)
		w.sb.WriteString(ringDigit(c.digit))
	}

	type edge struct {
		to   molecule.AtomID
		bond molecule.Bond
	}
	var children []edge
	for _, bond := range w.g.IncidentBonds(id) {
		nb, _ := bond.Other(id)
		if w.visited[nb] || w.ringBond[bond.ID] {
			continue
		}
		children = append(children, edge{to: nb, bond: bond})
	}
	for i, ch := range children {
		if i < len(children)-1 {
			w.sb.WriteString("(")
			w.emit(ch.to, bondGlyph(ch.bond))
			w.sb.WriteString(")")
			continue
		}
		w.emit(ch.to, bondGlyph(ch.bond))
	}
}

// atomSymbol renders one atom: lowercase inside an aromatic system, plain
// for the organic subset, bracketed otherwise.
func (w *writer) atomSymbol(id molecule.AtomID) string {
	atom, _ := w.g.Atom(id)
	symbol := string(atom.Element)
	if w.g.HasAromaticBond(id) {
		return strings.ToLower(symbol)
	}
	if !organicSubset[atom.Element] {
		return "[" + symbol + "]"
	}
	return symbol
}

func bondGlyph(b molecule.Bond) string {
	if b.IsAromatic() {
		return ""
	}
	switch b.Order {
	case 2:
		return "="
	case 3:
		return "#"
	}
	return ""
}

// ringDigit renders a ring-closure number, switching to the %nn form past 9.
func ringDigit(d int) string {
	if d > 9 {
		return "%" + strconv.Itoa(d)
	}
	return strconv.Itoa(d)
}

// ─────────────────────────────────────────────────────────────────────────────
// Formula fallback
// ─────────────────────────────────────────────────────────────────────────────

// formulaTable maps a handful of well-known molecular formulas straight to a
// SMILES string, for callers that hold a formula but no graph.
var formulaTable = map[string]string{
	"CH4":    "C",
	"C2H6":   "CC",
	"C3H8":   "CCC",
	"C4H10":  "CCCC",
	"C2H4":   "C=C",
	"C2H2":   "C#C",
	"C2H6O":  "CCO",
	"C2H4O2": "CC(=O)O",
	"C6H6":   "c1ccccc1",
	"C6H12":  "C1CCCCC1",
	"C6H14":  "CCCCCC",
}

// ByFormula looks a molecular formula up in the fixed table.
func ByFormula(formula string) (string, error) {
	if s, ok := formulaTable[formula]; ok {
		return s, nil
	}
	return "", errors.Newf(errors.ErrCodeFormulaUnknown, "no known SMILES for formula %q", formula)
}
