package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kitarpshakya/Reaction-hub-sub000/pkg/errors"
	"github.com/Kitarpshakya/Reaction-hub-sub000/pkg/types/chem"
)

func TestDocumentRoundTrip(t *testing.T) {
	orig := AceticAcid()
	doc := ToDocument(orig)
	require.Len(t, doc.Atoms, 4)
	require.Len(t, doc.Bonds, 3)

	back, err := FromDocument(doc)
	require.NoError(t, err)

	assert.Equal(t, Formula(orig), Formula(back))
	assert.Equal(t, orig.AtomIDs(), back.AtomIDs())
	for _, id := range orig.AtomIDs() {
		a, _ := orig.Atom(id)
		b, _ := back.Atom(id)
		assert.Equal(t, a.ImplicitH, b.ImplicitH, "implicit H for %s", id)
		assert.Equal(t, a.Hybridization, b.Hybridization, "hybridization for %s", id)
	}
}

func TestDocumentRoundTrip_Aromatic(t *testing.T) {
	doc := ToDocument(BenzeneRing())
	for _, b := range doc.Bonds {
		assert.Equal(t, chem.BondAromatic, b.Kind)
	}

	back, err := FromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, "C6H6", Formula(back))
	for _, id := range back.AtomIDs() {
		atom, _ := back.Atom(id)
		assert.Equal(t, 1, atom.ImplicitH)
	}
}

func TestToDocument_BondKinds(t *testing.T) {
	assert.Equal(t, chem.BondDouble, ToDocument(Ethene()).Bonds[0].Kind)
	assert.Equal(t, chem.BondTriple, ToDocument(Acetylene()).Bonds[0].Kind)
	assert.Equal(t, chem.BondSingle, ToDocument(Ethanol()).Bonds[0].Kind)
}

func TestFromDocument_RejectsBadInput(t *testing.T) {
	doc := chem.MoleculeDocument{
		Atoms: []chem.StoredAtom{{ID: "a1", Element: "Xx"}},
	}
	_, err := FromDocument(doc)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDocumentInvalid))

	doc = chem.MoleculeDocument{
		Atoms: []chem.StoredAtom{{ID: "a1", Element: "C"}, {ID: "a2", Element: "C"}},
		Bonds: []chem.StoredBond{{ID: "b1", A: "a1", B: "a2", Kind: "quadruple"}},
	}
	_, err = FromDocument(doc)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDocumentInvalid))
}
