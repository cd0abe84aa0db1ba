package nomenclature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/domain/molecule"
	"github.com/Kitarpshakya/Reaction-hub-sub000/pkg/errors"
)

// addAtom and addBond cut the noise out of hand-built test molecules.
func addAtom(t *testing.T, g *molecule.MoleculeGraph, el molecule.Element, x, y float64) molecule.AtomID {
	t.Helper()
	id := molecule.NewAtomID()
	require.NoError(t, g.AddAtom(molecule.AtomNode{ID: id, Element: el, X: x, Y: y}))
	return id
}

func addBond(t *testing.T, g *molecule.MoleculeGraph, a, b molecule.AtomID, order int) {
	t.Helper()
	require.NoError(t, g.AddBond(molecule.Bond{
		ID: molecule.NewBondID(), A: a, B: b,
		Order: order, Category: molecule.CategoryForOrder(order),
	}))
}

func mustName(t *testing.T, g molecule.MoleculeGraph) string {
	t.Helper()
	name, err := Name(g)
	require.NoError(t, err)
	return name
}

func TestName_Alkanes(t *testing.T) {
	for n, want := range map[int]string{
		1: "methane", 2: "ethane", 4: "butane", 7: "heptane", 20: "icosane",
	} {
		g, err := molecule.AlkaneChain(n)
		require.NoError(t, err)
		assert.Equal(t, want, mustName(t, g), "chain length %d", n)
	}
}

func TestName_BranchedAlkane(t *testing.T) {
	assert.Equal(t, "2-methylpropane", mustName(t, molecule.Isobutane()))
}

func TestName_DimethylButane(t *testing.T) {
	// 2,2-dimethylbutane: two methyls on the same chain carbon.
	g, err := molecule.AlkaneChain(4)
	require.NoError(t, err)
	c2 := g.AtomIDs()[1]
	for i := 0; i < 2; i++ {
		m := addAtom(t, &g, molecule.Carbon, 50, float64(50+50*i))
		addBond(t, &g, c2, m, 1)
	}
	g.Recompute()

	assert.Equal(t, "2,2-dimethylbutane", mustName(t, g))
}

func TestName_Haloalkane(t *testing.T) {
	// Chlorine on the second carbon of butane numbers from the nearer end.
	g, err := molecule.AlkaneChain(4)
	require.NoError(t, err)
	cl := addAtom(t, &g, molecule.Chlorine, 100, 50)
	addBond(t, &g, g.AtomIDs()[2], cl, 1)
	g.Recompute()

	assert.Equal(t, "2-chlorobutane", mustName(t, g))
}

func TestName_Alkenes(t *testing.T) {
	assert.Equal(t, "ethene", mustName(t, molecule.Ethene()))
	assert.Equal(t, "ethyne", mustName(t, molecule.Acetylene()))

	// But-1-ene: the double bond takes the lower locant from either end.
	g, err := molecule.AlkaneChain(4)
	require.NoError(t, err)
	require.NoError(t, g.SetBondOrder(g.Bonds()[2].ID, 2, molecule.CategoryPi))
	g.Recompute()

	assert.Equal(t, "but-1-ene", mustName(t, g))
}

func TestName_Diene(t *testing.T) {
	// Penta-1,4-diene.
	g, err := molecule.AlkaneChain(5)
	require.NoError(t, err)
	bonds := g.Bonds()
	require.NoError(t, g.SetBondOrder(bonds[0].ID, 2, molecule.CategoryPi))
	require.NoError(t, g.SetBondOrder(bonds[3].ID, 2, molecule.CategoryPi))
	g.Recompute()

	assert.Equal(t, "penta-1,4-diene", mustName(t, g))
}

func TestName_Alcohols(t *testing.T) {
	assert.Equal(t, "ethanol", mustName(t, molecule.Ethanol()))

	// Terminal hydroxyl on butane: lowest-locant numbering must win no
	// matter which end the hydroxyl was built on.
	for _, end := range []int{0, 3} {
		g, err := molecule.AlkaneChain(4)
		require.NoError(t, err)
		o := addAtom(t, &g, molecule.Oxygen, 0, 50)
		addBond(t, &g, g.AtomIDs()[end], o, 1)
		g.Recompute()

		assert.Equal(t, "butan-1-ol", mustName(t, g), "hydroxyl on chain end %d", end)
	}
}

func TestName_KetoneAndAldehyde(t *testing.T) {
	// Propan-2-one.
	g, err := molecule.AlkaneChain(3)
	require.NoError(t, err)
	o := addAtom(t, &g, molecule.Oxygen, 50, 50)
	addBond(t, &g, g.AtomIDs()[1], o, 2)
	g.Recompute()
	assert.Equal(t, "propan-2-one", mustName(t, g))

	// Propanal.
	g2, err := molecule.AlkaneChain(3)
	require.NoError(t, err)
	o2 := addAtom(t, &g2, molecule.Oxygen, 100, 50)
	addBond(t, &g2, g2.AtomIDs()[2], o2, 2)
	g2.Recompute()
	assert.Equal(t, "propanal", mustName(t, g2))
}

func TestName_CarboxylicAcid(t *testing.T) {
	assert.Equal(t, "ethanoic acid", mustName(t, molecule.AceticAcid()))
}

func TestName_AcidOutranksAlcohol(t *testing.T) {
	// A chain carrying both a hydroxyl and a carboxyl keeps only the acid
	// suffix; the hydroxyl vanishes from the name.
	g, err := molecule.AlkaneChain(3)
	require.NoError(t, err)
	ids := g.AtomIDs()
	od := addAtom(t, &g, molecule.Oxygen, 100, -50)
	oh := addAtom(t, &g, molecule.Oxygen, 150, 0)
	addBond(t, &g, ids[2], od, 2)
	addBond(t, &g, ids[2], oh, 1)
	ho := addAtom(t, &g, molecule.Oxygen, 0, 50)
	addBond(t, &g, ids[0], ho, 1)
	g.Recompute()

	assert.Equal(t, "propanoic acid", mustName(t, g))
}

func TestName_Carbocycles(t *testing.T) {
	hexane, err := molecule.AlkaneChain(6)
	require.NoError(t, err)
	ids := hexane.AtomIDs()
	addBond(t, &hexane, ids[0], ids[5], 1)
	hexane.Recompute()
	assert.Equal(t, "cyclohexane", mustName(t, hexane))

	require.NoError(t, hexane.SetBondOrder(hexane.Bonds()[0].ID, 2, molecule.CategoryPi))
	hexane.Recompute()
	assert.Equal(t, "cyclohexene", mustName(t, hexane))
}

func TestName_Cyclohexanol(t *testing.T) {
	g, err := molecule.AlkaneChain(6)
	require.NoError(t, err)
	ids := g.AtomIDs()
	addBond(t, &g, ids[0], ids[5], 1)
	o := addAtom(t, &g, molecule.Oxygen, 0, 50)
	addBond(t, &g, ids[2], o, 1)
	g.Recompute()

	assert.Equal(t, "cyclohexan-1-ol", mustName(t, g))
}

func TestName_Benzene(t *testing.T) {
	assert.Equal(t, "benzene", mustName(t, molecule.BenzeneRing()))
}

func TestName_Toluene(t *testing.T) {
	g := molecule.BenzeneRing()
	m := addAtom(t, &g, molecule.Carbon, 100, 100)
	addBond(t, &g, g.AtomIDs()[0], m, 1)
	g.Recompute()

	assert.Equal(t, "methylbenzene", mustName(t, g))
}

func TestName_Chlorobenzene(t *testing.T) {
	g := molecule.BenzeneRing()
	cl := addAtom(t, &g, molecule.Chlorine, 100, 100)
	addBond(t, &g, g.AtomIDs()[0], cl, 1)
	g.Recompute()

	assert.Equal(t, "chlorobenzene", mustName(t, g))
}

func TestName_OrthoXylene(t *testing.T) {
	g := molecule.BenzeneRing()
	ids := g.AtomIDs()
	for i := 0; i < 2; i++ {
		m := addAtom(t, &g, molecule.Carbon, float64(100+50*i), 100)
		addBond(t, &g, ids[i], m, 1)
	}
	g.Recompute()

	assert.Equal(t, "1,2-dimethylbenzene", mustName(t, g))
}

func TestName_Phenol(t *testing.T) {
	g := molecule.BenzeneRing()
	o := addAtom(t, &g, molecule.Oxygen, 100, 100)
	addBond(t, &g, g.AtomIDs()[0], o, 1)
	g.Recompute()

	assert.Equal(t, "phenol", mustName(t, g))

	// 2-methylphenol: the hydroxyl carbon anchors locant 1.
	m := addAtom(t, &g, molecule.Carbon, 150, 100)
	addBond(t, &g, g.AtomIDs()[1], m, 1)
	g.Recompute()
	assert.Equal(t, "2-methylphenol", mustName(t, g))
}

func TestName_BenzoicAcid(t *testing.T) {
	g := molecule.BenzeneRing()
	c := addAtom(t, &g, molecule.Carbon, 100, 100)
	od := addAtom(t, &g, molecule.Oxygen, 150, 100)
	oh := addAtom(t, &g, molecule.Oxygen, 100, 150)
	addBond(t, &g, g.AtomIDs()[0], c, 1)
	addBond(t, &g, c, od, 2)
	addBond(t, &g, c, oh, 1)
	g.Recompute()

	assert.Equal(t, "benzoic acid", mustName(t, g))
}

func TestName_Failures(t *testing.T) {
	_, err := Name(molecule.EmptyGraph())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNamingFailed))

	g := molecule.NewGraph()
	addAtom(t, &g, molecule.Oxygen, 0, 0)
	_, err = Name(g)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNamingFailed))
}
