package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/application/compound"
	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/domain/molecule"
)

func itoa(n int) string { return strconv.Itoa(n) }

// atomView is one atom in a graph listing. Index is the positional handle
// edit operations accept in place of the opaque atom id.
type atomView struct {
	Index     int    `json:"index"`
	ID        string `json:"id"`
	Element   string `json:"element"`
	ImplicitH int    `json:"implicit_h"`
	Degree    int    `json:"degree"`
}

// moleculeView is the PrintResult payload for commands that show a molecule.
type moleculeView struct {
	Name        string               `json:"name,omitempty"`
	Description compound.Description `json:"description"`
	AtomCount   int                  `json:"atom_count"`
	BondCount   int                  `json:"bond_count"`
	Atoms       []atomView           `json:"atoms,omitempty"`
}

func descriptionView(name string, g molecule.MoleculeGraph, desc compound.Description) moleculeView {
	view := moleculeView{
		Name:        name,
		Description: desc,
		AtomCount:   g.NumAtoms(),
		BondCount:   g.NumBonds(),
	}
	for i, id := range g.AtomIDs() {
		atom, ok := g.Atom(id)
		if !ok {
			continue
		}
		view.Atoms = append(view.Atoms, atomView{
			Index:     i,
			ID:        string(id),
			Element:   string(atom.Element),
			ImplicitH: atom.ImplicitH,
			Degree:    len(g.Neighbors(id)),
		})
	}
	return view
}

func (v moleculeView) String() string {
	var sb strings.Builder
	if v.Name != "" {
		fmt.Fprintf(&sb, "Molecule:     %s\n", v.Name)
	}
	fmt.Fprintf(&sb, "Formula:      %s (%s)\n", v.Description.Formula, v.Description.FormulaSubscript)
	fmt.Fprintf(&sb, "Weight:       %.3f g/mol\n", v.Description.MolecularWeight)
	fmt.Fprintf(&sb, "Unsaturation: %d\n", v.Description.UnsaturationDegree)

	if v.Description.Name != "" {
		fmt.Fprintf(&sb, "IUPAC name:   %s\n", v.Description.Name)
	} else if v.Description.NameError != "" {
		fmt.Fprintf(&sb, "IUPAC name:   (unavailable: %s)\n", v.Description.NameError)
	}
	if v.Description.SMILES != "" {
		fmt.Fprintf(&sb, "SMILES:       %s\n", v.Description.SMILES)
	} else if v.Description.SMILESError != "" {
		fmt.Fprintf(&sb, "SMILES:       (unavailable: %s)\n", v.Description.SMILESError)
	}

	if len(v.Description.FunctionalGroups) > 0 {
		kinds := make([]string, 0, len(v.Description.FunctionalGroups))
		for _, fg := range v.Description.FunctionalGroups {
			kinds = append(kinds, fg.Kind)
		}
		fmt.Fprintf(&sb, "Groups:       %s\n", strings.Join(kinds, ", "))
	}

	report := v.Description.Validation
	if report.Valid {
		sb.WriteString("Validation:   ok\n")
	} else {
		fmt.Fprintf(&sb, "Validation:   %d error(s)\n", len(report.Errors))
		for _, e := range report.Errors {
			fmt.Fprintf(&sb, "  - %s\n", e)
		}
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(&sb, "  warning: %s\n", w)
	}

	if len(v.Atoms) > 0 {
		fmt.Fprintf(&sb, "Atoms (%d):\n", v.AtomCount)
		for _, a := range v.Atoms {
			fmt.Fprintf(&sb, "  [%d] %-2s  H=%d  degree=%d\n", a.Index, a.Element, a.ImplicitH, a.Degree)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
