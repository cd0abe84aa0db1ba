package molecule

import (
	"github.com/Kitarpshakya/Reaction-hub-sub000/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Element — closed organic-chemistry element set
// ─────────────────────────────────────────────────────────────────────────────

// Element is the symbol of an explicit (non-hydrogen) atom supported by the
// engine.  Hydrogen is never stored as a graph node; it exists only as the
// implicit-hydrogen count on each AtomNode.
type Element string

const (
	Carbon     Element = "C"
	Oxygen     Element = "O"
	Nitrogen   Element = "N"
	Sulfur     Element = "S"
	Phosphorus Element = "P"
	Fluorine   Element = "F"
	Chlorine   Element = "Cl"
	Bromine    Element = "Br"
	Iodine     Element = "I"
)

// Hydrogen is used in formula and weight computation only; it is not a valid
// element for an explicit graph node.
const Hydrogen Element = "H"

// supportedElements is the closed set accepted for explicit atoms.
var supportedElements = map[Element]bool{
	Carbon: true, Oxygen: true, Nitrogen: true, Sulfur: true,
	Phosphorus: true, Fluorine: true, Chlorine: true, Bromine: true, Iodine: true,
}

// IsSupported reports whether e may appear as an explicit atom in a graph.
func (e Element) IsSupported() bool {
	return supportedElements[e]
}

// elementNames maps symbols to the English names used in user-facing messages.
var elementNames = map[Element]string{
	Carbon: "Carbon", Oxygen: "Oxygen", Nitrogen: "Nitrogen", Sulfur: "Sulfur",
	Phosphorus: "Phosphorus", Fluorine: "Fluorine", Chlorine: "Chlorine",
	Bromine: "Bromine", Iodine: "Iodine", Hydrogen: "Hydrogen",
}

// Name returns the English element name ("C" → "Carbon").  Unknown symbols
// are returned verbatim.
func (e Element) Name() string {
	if n, ok := elementNames[e]; ok {
		return n
	}
	return string(e)
}

// IsHalogen reports whether e is one of F, Cl, Br, I.
func (e Element) IsHalogen() bool {
	switch e {
	case Fluorine, Chlorine, Bromine, Iodine:
		return true
	}
	return false
}

// CheckElement returns a typed error when e is outside the supported set.
func CheckElement(e Element) error {
	if !e.IsSupported() {
		return errors.Newf(errors.ErrCodeUnknownElement, "unsupported element %q", string(e))
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Valence tables
// ─────────────────────────────────────────────────────────────────────────────

// maxValenceTable holds the absolute cap on total bond order per element.
// Exceeding the cap is a hard error everywhere in the engine.
var maxValenceTable = map[Element]int{
	Carbon:     4,
	Nitrogen:   5,
	Oxygen:     2,
	Sulfur:     6,
	Phosphorus: 5,
	Fluorine:   1,
	Chlorine:   1,
	Bromine:    1,
	Iodine:     1,
}

// typicalValenceTable holds the normal (non-expanded) valence per element.
// Implicit hydrogens fill up to this value, and totals above it (but below
// the cap) produce expanded-valence warnings for N, S, and P.
var typicalValenceTable = map[Element]int{
	Carbon:     4,
	Nitrogen:   3,
	Oxygen:     2,
	Sulfur:     2,
	Phosphorus: 3,
	Fluorine:   1,
	Chlorine:   1,
	Bromine:    1,
	Iodine:     1,
}

// MaxValence returns the absolute bond-order cap for the element, or 0 for
// unsupported elements.
func MaxValence(e Element) int {
	return maxValenceTable[e]
}

// TypicalValence returns the normal valence used for implicit-hydrogen
// filling and expanded-valence warnings.
func TypicalValence(e Element) int {
	return typicalValenceTable[e]
}

// ─────────────────────────────────────────────────────────────────────────────
// Standard atomic weights
// ─────────────────────────────────────────────────────────────────────────────

// atomicWeights holds IUPAC 2021 conventional atomic weights in g/mol.
var atomicWeights = map[Element]float64{
	Hydrogen:   1.008,
	Carbon:     12.011,
	Nitrogen:   14.007,
	Oxygen:     15.999,
	Sulfur:     32.06,
	Phosphorus: 30.974,
	Fluorine:   18.998,
	Chlorine:   35.45,
	Bromine:    79.904,
	Iodine:     126.904,
}

// AtomicWeight returns the standard atomic weight of e in g/mol, or 0 for
// unsupported elements.
func AtomicWeight(e Element) float64 {
	return atomicWeights[e]
}

// ─────────────────────────────────────────────────────────────────────────────
// Hybridization
// ─────────────────────────────────────────────────────────────────────────────

// Hybridization classifies an atom by the highest bond order it carries:
// sp for a triple bond, sp2 for a double or aromatic bond, sp3 otherwise.
type Hybridization string

const (
	SP  Hybridization = "sp"
	SP2 Hybridization = "sp2"
	SP3 Hybridization = "sp3"
)
