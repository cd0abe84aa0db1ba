package molecule

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// Molecular formula
// ─────────────────────────────────────────────────────────────────────────────

// ElementCounts tallies every element in the graph, including the implicit
// hydrogens, keyed by symbol.
func ElementCounts(g MoleculeGraph) map[Element]int {
	counts := make(map[Element]int)
	for _, atom := range g.Atoms() {
		counts[atom.Element]++
		if atom.ImplicitH > 0 {
			counts[Hydrogen] += atom.ImplicitH
		}
	}
	return counts
}

// Formula renders the molecular formula in Hill order: carbon first, hydrogen
// second, remaining elements alphabetical by symbol.  When no carbon is
// present every element, hydrogen included, sorts alphabetically.  Counts
// above 1 are rendered as plain digits; see FormulaSubscript for the display
// form.
func Formula(g MoleculeGraph) string {
	counts := ElementCounts(g)
	if len(counts) == 0 {
		return ""
	}

	var order []Element
	rest := make([]Element, 0, len(counts))
	if counts[Carbon] > 0 {
		order = append(order, Carbon)
		if counts[Hydrogen] > 0 {
			order = append(order, Hydrogen)
		}
		for el := range counts {
			if el != Carbon && el != Hydrogen {
				rest = append(rest, el)
			}
		}
	} else {
		for el := range counts {
			rest = append(rest, el)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	order = append(order, rest...)

	var sb strings.Builder
	for _, el := range order {
		sb.WriteString(string(el))
		if n := counts[el]; n > 1 {
			sb.WriteString(strconv.Itoa(n))
		}
	}
	return sb.String()
}

// subscriptDigits maps ASCII digits to their Unicode subscript forms.
var subscriptDigits = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
	'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
}

// FormulaSubscript renders the Hill-order formula with Unicode subscript
// digits, the form shown in the editor ("C₂H₆O").
func FormulaSubscript(g MoleculeGraph) string {
	plain := Formula(g)
	var sb strings.Builder
	for _, r := range plain {
		if sub, ok := subscriptDigits[r]; ok {
			sb.WriteRune(sub)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// Molecular weight
// ─────────────────────────────────────────────────────────────────────────────

// MolecularWeight sums the standard atomic weights of all explicit atoms and
// implicit hydrogens, rounded to 3 decimal places.
func MolecularWeight(g MoleculeGraph) float64 {
	var w float64
	for el, n := range ElementCounts(g) {
		w += AtomicWeight(el) * float64(n)
	}
	return math.Round(w*1000) / 1000
}

// ─────────────────────────────────────────────────────────────────────────────
// Degree of unsaturation
// ─────────────────────────────────────────────────────────────────────────────

// UnsaturationDegree computes the classic degree of unsaturation
// (2C + 2 + N − H − X) / 2, floored at zero.  X counts halogen atoms.
func UnsaturationDegree(g MoleculeGraph) int {
	if g.NumAtoms() == 0 {
		return 0
	}
	counts := ElementCounts(g)
	halogens := 0
	for el, n := range counts {
		if el.IsHalogen() {
			halogens += n
		}
	}
	d := 2*counts[Carbon] + 2 + counts[Nitrogen] - counts[Hydrogen] - halogens
	if d < 0 {
		return 0
	}
	return d / 2
}
