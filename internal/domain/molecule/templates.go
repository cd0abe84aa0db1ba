package molecule

import (
	"github.com/Kitarpshakya/Reaction-hub-sub000/pkg/errors"
)

// Template seed graphs used by the "start from template" flow and by tests.
// All builders return fully recomputed graphs.

// atomSpacing is the canvas distance between consecutive chain atoms.
const atomSpacing = 50.0

// EmptyGraph returns a graph with no atoms.
func EmptyGraph() MoleculeGraph {
	return NewGraph()
}

// SingleCarbon returns a methane seed: one carbon, no bonds.
func SingleCarbon() MoleculeGraph {
	g, _ := AlkaneChain(1)
	return g
}

// AlkaneChain builds a straight-chain alkane of n carbons (1 ≤ n ≤ 20).
func AlkaneChain(n int) (MoleculeGraph, error) {
	if n < 1 || n > 20 {
		return MoleculeGraph{}, errors.Newf(errors.CodeInvalidParam,
			"alkane chain length must be between 1 and 20, got %d", n)
	}
	g := NewGraph()
	ids := make([]AtomID, n)
	for i := 0; i < n; i++ {
		ids[i] = NewAtomID()
		_ = g.AddAtom(AtomNode{
			ID:      ids[i],
			Element: Carbon,
			X:       float64(i) * atomSpacing,
		})
	}
	for i := 1; i < n; i++ {
		_ = g.AddBond(Bond{
			ID: NewBondID(), A: ids[i-1], B: ids[i],
			Order: 1, Category: CategorySigma,
		})
	}
	g.Recompute()
	return g, nil
}

// BenzeneRing builds a six-carbon aromatic ring.
func BenzeneRing() MoleculeGraph {
	g := NewGraph()
	ids := make([]AtomID, 6)
	for i := 0; i < 6; i++ {
		ids[i] = NewAtomID()
		_ = g.AddAtom(AtomNode{
			ID:      ids[i],
			Element: Carbon,
			X:       float64(i) * atomSpacing,
		})
	}
	for i := 0; i < 6; i++ {
		_ = g.AddBond(Bond{
			ID: NewBondID(), A: ids[i], B: ids[(i+1)%6],
			Order: 1, Category: CategoryAromatic,
		})
	}
	g.Recompute()
	return g
}

// Ethanol builds the C–C–O chain of ethanol.
func Ethanol() MoleculeGraph {
	g := NewGraph()
	c1, c2, o := NewAtomID(), NewAtomID(), NewAtomID()
	_ = g.AddAtom(AtomNode{ID: c1, Element: Carbon})
	_ = g.AddAtom(AtomNode{ID: c2, Element: Carbon, X: atomSpacing})
	_ = g.AddAtom(AtomNode{ID: o, Element: Oxygen, X: 2 * atomSpacing})
	_ = g.AddBond(Bond{ID: NewBondID(), A: c1, B: c2, Order: 1, Category: CategorySigma})
	_ = g.AddBond(Bond{ID: NewBondID(), A: c2, B: o, Order: 1, Category: CategorySigma})
	g.Recompute()
	return g
}

// AceticAcid builds CH3–C(=O)–OH.
func AceticAcid() MoleculeGraph {
	g := NewGraph()
	c1, c2, o1, o2 := NewAtomID(), NewAtomID(), NewAtomID(), NewAtomID()
	_ = g.AddAtom(AtomNode{ID: c1, Element: Carbon})
	_ = g.AddAtom(AtomNode{ID: c2, Element: Carbon, X: atomSpacing})
	_ = g.AddAtom(AtomNode{ID: o1, Element: Oxygen, X: atomSpacing, Y: -atomSpacing})
	_ = g.AddAtom(AtomNode{ID: o2, Element: Oxygen, X: 2 * atomSpacing})
	_ = g.AddBond(Bond{ID: NewBondID(), A: c1, B: c2, Order: 1, Category: CategorySigma})
	_ = g.AddBond(Bond{ID: NewBondID(), A: c2, B: o1, Order: 2, Category: CategoryPi})
	_ = g.AddBond(Bond{ID: NewBondID(), A: c2, B: o2, Order: 1, Category: CategorySigma})
	g.Recompute()
	return g
}

// Ethene builds C=C.
func Ethene() MoleculeGraph {
	g := NewGraph()
	c1, c2 := NewAtomID(), NewAtomID()
	_ = g.AddAtom(AtomNode{ID: c1, Element: Carbon})
	_ = g.AddAtom(AtomNode{ID: c2, Element: Carbon, X: atomSpacing})
	_ = g.AddBond(Bond{ID: NewBondID(), A: c1, B: c2, Order: 2, Category: CategoryPi})
	g.Recompute()
	return g
}

// Acetylene builds C≡C.
func Acetylene() MoleculeGraph {
	g := NewGraph()
	c1, c2 := NewAtomID(), NewAtomID()
	_ = g.AddAtom(AtomNode{ID: c1, Element: Carbon})
	_ = g.AddAtom(AtomNode{ID: c2, Element: Carbon, X: atomSpacing})
	_ = g.AddBond(Bond{ID: NewBondID(), A: c1, B: c2, Order: 3, Category: CategoryPi})
	g.Recompute()
	return g
}

// Isobutane builds a central carbon with three methyl branches.
func Isobutane() MoleculeGraph {
	g := NewGraph()
	center := NewAtomID()
	_ = g.AddAtom(AtomNode{ID: center, Element: Carbon})
	for i := 0; i < 3; i++ {
		m := NewAtomID()
		_ = g.AddAtom(AtomNode{ID: m, Element: Carbon, X: float64(i+1) * atomSpacing})
		_ = g.AddBond(Bond{ID: NewBondID(), A: center, B: m, Order: 1, Category: CategorySigma})
	}
	g.Recompute()
	return g
}

// TemplateByName resolves the named template used by the CLI and the editor's
// seed menu.  Supported names: empty, methane, ethane, propane, butane,
// pentane, hexane, heptane, octane, ethene, acetylene, isobutane, benzene,
// ethanol, acetic-acid.
func TemplateByName(name string) (MoleculeGraph, error) {
	alkanes := map[string]int{
		"methane": 1, "ethane": 2, "propane": 3, "butane": 4,
		"pentane": 5, "hexane": 6, "heptane": 7, "octane": 8,
	}
	if n, ok := alkanes[name]; ok {
		return AlkaneChain(n)
	}
	switch name {
	case "empty":
		return EmptyGraph(), nil
	case "ethene":
		return Ethene(), nil
	case "acetylene":
		return Acetylene(), nil
	case "isobutane":
		return Isobutane(), nil
	case "benzene":
		return BenzeneRing(), nil
	case "ethanol":
		return Ethanol(), nil
	case "acetic-acid":
		return AceticAcid(), nil
	}
	return MoleculeGraph{}, errors.NotFound("unknown template").WithDetail("name=" + name)
}
