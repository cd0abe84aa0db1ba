package molecule

import (
	"github.com/Kitarpshakya/Reaction-hub-sub000/pkg/errors"
	"github.com/Kitarpshakya/Reaction-hub-sub000/pkg/types/chem"
)

// ─────────────────────────────────────────────────────────────────────────────
// Storage codec
// ─────────────────────────────────────────────────────────────────────────────

// storedKindFor collapses the engine's (order, category) pair into the closed
// bond enum of the storage schema.
func storedKindFor(b Bond) chem.StoredBondKind {
	if b.IsAromatic() {
		return chem.BondAromatic
	}
	switch b.Order {
	case 2:
		return chem.BondDouble
	case 3:
		return chem.BondTriple
	}
	return chem.BondSingle
}

// orderFor expands a stored bond kind back into the engine pair.
func orderFor(k chem.StoredBondKind) (order int, category BondCategory) {
	switch k {
	case chem.BondDouble:
		return 2, CategoryPi
	case chem.BondTriple:
		return 3, CategoryPi
	case chem.BondAromatic:
		return 1, CategoryAromatic
	}
	return 1, CategorySigma
}

// ToDocument converts a graph into its stored form.  Atom and bond ordering
// follows insertion order so that a save/load round trip preserves traversal
// determinism.  Derived display fields (Formula, SMILES, Name) are left for
// the caller to fill.
func ToDocument(g MoleculeGraph) chem.MoleculeDocument {
	doc := chem.MoleculeDocument{
		Atoms: make([]chem.StoredAtom, 0, g.NumAtoms()),
		Bonds: make([]chem.StoredBond, 0, g.NumBonds()),
	}
	for _, atom := range g.Atoms() {
		doc.Atoms = append(doc.Atoms, chem.StoredAtom{
			ID:            string(atom.ID),
			Element:       string(atom.Element),
			X:             atom.X,
			Y:             atom.Y,
			Hybridization: string(atom.Hybridization),
		})
	}
	for _, bond := range g.Bonds() {
		doc.Bonds = append(doc.Bonds, chem.StoredBond{
			ID:   string(bond.ID),
			A:    string(bond.A),
			B:    string(bond.B),
			Kind: storedKindFor(bond),
		})
	}
	return doc
}

// FromDocument rebuilds a graph from its stored form.  The stored document
// carries no implicit-hydrogen counts, so derived attributes are recomputed
// before the graph is returned; stored hybridization strings are ignored in
// favor of the recomputed values.
func FromDocument(doc chem.MoleculeDocument) (MoleculeGraph, error) {
	g := NewGraph()
	for _, a := range doc.Atoms {
		node := AtomNode{
			ID:      AtomID(a.ID),
			Element: Element(a.Element),
			X:       a.X,
			Y:       a.Y,
		}
		if err := g.AddAtom(node); err != nil {
			return MoleculeGraph{}, errors.Wrap(err, errors.ErrCodeDocumentInvalid,
				"document contains an invalid atom")
		}
	}
	for _, b := range doc.Bonds {
		if !b.Kind.IsValid() {
			return MoleculeGraph{}, errors.Newf(errors.ErrCodeDocumentInvalid,
				"document contains unknown bond kind %q", string(b.Kind))
		}
		order, category := orderFor(b.Kind)
		bond := Bond{
			ID:       BondID(b.ID),
			A:        AtomID(b.A),
			B:        AtomID(b.B),
			Order:    order,
			Category: category,
		}
		if err := g.AddBond(bond); err != nil {
			return MoleculeGraph{}, errors.Wrap(err, errors.ErrCodeDocumentInvalid,
				"document contains an invalid bond")
		}
	}
	g.Recompute()
	return g, nil
}
