// Package mutation implements the validated structural edit operations of the
// molecule engine.  Every operation follows the same contract: validate
// preconditions against the current graph, build the candidate on a clone,
// recompute implicit hydrogens and hybridization, run the final valence and
// connectivity validation, and either return the new graph value or a failure
// with a specific reason.  The caller's graph is never touched; no partial
// edit can escape.
package mutation

import (
	stderrors "errors"
	"strings"

	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/domain/molecule"
	"github.com/Kitarpshakya/Reaction-hub-sub000/pkg/errors"
)

// chainSpacing is the canvas offset applied to freshly placed atoms.  Layout
// only; carries no chemical meaning.
const chainSpacing = 50.0

// ─────────────────────────────────────────────────────────────────────────────
// Result
// ─────────────────────────────────────────────────────────────────────────────

// Result is the outcome of a structural edit: a success carrying the new,
// fully re-derived graph, or a failure carrying the reason.
type Result struct {
	Graph molecule.MoleculeGraph
	Err   error
}

// Ok reports whether the edit succeeded.
func (r Result) Ok() bool { return r.Err == nil }

// Reason returns the human-readable failure reason, or "" on success.
func (r Result) Reason() string {
	if r.Err == nil {
		return ""
	}
	var ae *errors.AppError
	if stderrors.As(r.Err, &ae) {
		return ae.Message
	}
	return r.Err.Error()
}

// Outcome wraps an operation's return pair into a Result.
func Outcome(g molecule.MoleculeGraph, err error) Result {
	if err != nil {
		return Result{Err: err}
	}
	return Result{Graph: g}
}

// ─────────────────────────────────────────────────────────────────────────────
// Chain operations
// ─────────────────────────────────────────────────────────────────────────────

// ExtendChain adds one carbon bonded by a single bond to the target atom.
// The target must be terminal or near-terminal (at most one carbon neighbor);
// extension from internal atoms is redirected to BranchCarbon.
func ExtendChain(g molecule.MoleculeGraph, target molecule.AtomID) (molecule.MoleculeGraph, error) {
	atom, ok := g.Atom(target)
	if !ok {
		return g, atomNotFound(target)
	}
	if len(g.CarbonNeighbors(target)) > 1 {
		return g, errors.New(errors.ErrCodeUseBranchInstead,
			"Cannot extend the chain from an internal atom; use branching instead")
	}
	if err := precheckValence(g, target, 1); err != nil {
		return g, err
	}

	// Continue the existing chain direction when the target has a neighbor;
	// otherwise step along the x axis.
	x, y := atom.X+chainSpacing, atom.Y
	if nbs := g.Neighbors(target); len(nbs) > 0 {
		if prev, ok := g.Atom(nbs[0]); ok {
			x = atom.X + (atom.X - prev.X)
			y = atom.Y + (atom.Y - prev.Y)
		}
	}

	next := g.Clone()
	carbon := molecule.AtomNode{ID: molecule.NewAtomID(), Element: molecule.Carbon, X: x, Y: y}
	if err := next.AddAtom(carbon); err != nil {
		return g, err
	}
	if err := next.AddBond(molecule.Bond{
		ID: molecule.NewBondID(), A: target, B: carbon.ID,
		Order: 1, Category: molecule.CategorySigma,
	}); err != nil {
		return g, err
	}
	return finalize(g, next)
}

// ShortenChain removes a true terminal atom (at most one bond) and its bond.
func ShortenChain(g molecule.MoleculeGraph, target molecule.AtomID) (molecule.MoleculeGraph, error) {
	if _, ok := g.Atom(target); !ok {
		return g, atomNotFound(target)
	}
	if len(g.IncidentBonds(target)) > 1 {
		return g, errors.New(errors.ErrCodeNotTerminal,
			"Only terminal atoms can be removed from the chain")
	}
	next := g.Clone()
	if err := next.RemoveAtom(target); err != nil {
		return g, err
	}
	return finalize(g, next)
}

// BranchCarbon adds a carbon via a single bond to any atom with valence
// remaining, terminal or internal.
func BranchCarbon(g molecule.MoleculeGraph, target molecule.AtomID) (molecule.MoleculeGraph, error) {
	atom, ok := g.Atom(target)
	if !ok {
		return g, atomNotFound(target)
	}
	if err := precheckValence(g, target, 1); err != nil {
		return g, err
	}
	next := g.Clone()
	carbon := molecule.AtomNode{
		ID: molecule.NewAtomID(), Element: molecule.Carbon,
		X: atom.X, Y: atom.Y + chainSpacing,
	}
	if err := next.AddAtom(carbon); err != nil {
		return g, err
	}
	if err := next.AddBond(molecule.Bond{
		ID: molecule.NewBondID(), A: target, B: carbon.ID,
		Order: 1, Category: molecule.CategorySigma,
	}); err != nil {
		return g, err
	}
	return finalize(g, next)
}

// Cyclize adds a single bond between two atoms that are already connected by
// some existing path, closing a chain into a ring.  It never joins unrelated
// fragments.
func Cyclize(g molecule.MoleculeGraph, a, b molecule.AtomID) (molecule.MoleculeGraph, error) {
	if _, ok := g.Atom(a); !ok {
		return g, atomNotFound(a)
	}
	if _, ok := g.Atom(b); !ok {
		return g, atomNotFound(b)
	}
	if a == b {
		return g, errors.New(errors.ErrCodeSelfBond, "cannot bond an atom to itself")
	}
	if _, exists := g.FindBond(a, b); exists {
		return g, errors.New(errors.ErrCodeBondExists,
			"A bond already exists between these atoms")
	}
	if !g.PathExists(a, b) {
		return g, errors.New(errors.ErrCodeNotSameChain,
			"Nodes must be part of same chain to cyclize")
	}
	if err := g.CanAddBond(a, b, 1); err != nil {
		return g, err
	}
	next := g.Clone()
	if err := next.AddBond(molecule.Bond{
		ID: molecule.NewBondID(), A: a, B: b,
		Order: 1, Category: molecule.CategorySigma,
	}); err != nil {
		return g, err
	}
	return finalize(g, next)
}

// ─────────────────────────────────────────────────────────────────────────────
// Bond order operations
// ─────────────────────────────────────────────────────────────────────────────

// ChangeBondOrder sets the bond between a and b to newOrder, updating the
// category to pi above order 1 and sigma at order 1.  Aromatic bonds are
// rejected outright.
func ChangeBondOrder(g molecule.MoleculeGraph, a, b molecule.AtomID, newOrder int) (molecule.MoleculeGraph, error) {
	bond, ok := g.FindBond(a, b)
	if !ok {
		return g, errors.New(errors.ErrCodeBondNotFound, "No bond exists between these atoms")
	}
	if bond.IsAromatic() {
		return g, errors.New(errors.ErrCodeAromaticImmutable, "Cannot modify aromatic bonds")
	}
	if newOrder < 1 || newOrder > 3 {
		return g, errors.Newf(errors.ErrCodeInvalidBondOrder,
			"bond order must be 1, 2, or 3, got %d", newOrder)
	}
	delta := newOrder - bond.Order
	if delta > 0 {
		for _, id := range []molecule.AtomID{a, b} {
			if err := precheckValence(g, id, delta); err != nil {
				return g, err
			}
		}
	}
	next := g.Clone()
	if err := next.SetBondOrder(bond.ID, newOrder, molecule.CategoryForOrder(newOrder)); err != nil {
		return g, err
	}
	return finalize(g, next)
}

// UnsaturateBond raises the bond order between a and b by one step.
func UnsaturateBond(g molecule.MoleculeGraph, a, b molecule.AtomID) (molecule.MoleculeGraph, error) {
	bond, ok := g.FindBond(a, b)
	if !ok {
		return g, errors.New(errors.ErrCodeBondNotFound, "No bond exists between these atoms")
	}
	if bond.IsAromatic() {
		return g, errors.New(errors.ErrCodeAromaticImmutable, "Cannot modify aromatic bonds")
	}
	if bond.Order >= 3 {
		return g, errors.New(errors.ErrCodeInvalidBondOrder, "Bond is already a triple bond")
	}
	return ChangeBondOrder(g, a, b, bond.Order+1)
}

// SaturateBond lowers the bond order between a and b by one step.
func SaturateBond(g molecule.MoleculeGraph, a, b molecule.AtomID) (molecule.MoleculeGraph, error) {
	bond, ok := g.FindBond(a, b)
	if !ok {
		return g, errors.New(errors.ErrCodeBondNotFound, "No bond exists between these atoms")
	}
	if bond.IsAromatic() {
		return g, errors.New(errors.ErrCodeAromaticImmutable, "Cannot modify aromatic bonds")
	}
	if bond.Order <= 1 {
		return g, errors.New(errors.ErrCodeInvalidBondOrder, "Bond is already a single bond")
	}
	return ChangeBondOrder(g, a, b, bond.Order-1)
}

// ─────────────────────────────────────────────────────────────────────────────
// Substituents
// ─────────────────────────────────────────────────────────────────────────────

// SubstituentKind enumerates the small fixed fragments that can be attached
// to a carbon.
type SubstituentKind string

const (
	SubstituentHydroxyl SubstituentKind = "hydroxyl"
	SubstituentCarbonyl SubstituentKind = "carbonyl"
	SubstituentAmino    SubstituentKind = "amino"
	SubstituentNitro    SubstituentKind = "nitro"
	SubstituentFluoro   SubstituentKind = "fluoro"
	SubstituentChloro   SubstituentKind = "chloro"
	SubstituentBromo    SubstituentKind = "bromo"
	SubstituentIodo     SubstituentKind = "iodo"
)

// halogenFor maps halogen substituent kinds to their element.
var halogenFor = map[SubstituentKind]molecule.Element{
	SubstituentFluoro: molecule.Fluorine,
	SubstituentChloro: molecule.Chlorine,
	SubstituentBromo:  molecule.Bromine,
	SubstituentIodo:   molecule.Iodine,
}

// AttachSubstituent attaches the fragment for kind to the host carbon.  Each
// variant checks the host has enough remaining valence for the bond order(s)
// being added before any atom is committed.
func AttachSubstituent(g molecule.MoleculeGraph, carbon molecule.AtomID, kind SubstituentKind) (molecule.MoleculeGraph, error) {
	host, ok := g.Atom(carbon)
	if !ok {
		return g, atomNotFound(carbon)
	}
	if host.Element != molecule.Carbon {
		return g, errors.New(errors.ErrCodeSubstituentInvalid,
			"Substituents can only be attached to carbon atoms")
	}

	switch kind {
	case SubstituentHydroxyl:
		return attachSingle(g, host, molecule.Oxygen, 1)
	case SubstituentCarbonyl:
		return attachSingle(g, host, molecule.Oxygen, 2)
	case SubstituentAmino:
		return attachSingle(g, host, molecule.Nitrogen, 1)
	case SubstituentNitro:
		return attachNitro(g, host)
	case SubstituentFluoro, SubstituentChloro, SubstituentBromo, SubstituentIodo:
		return attachSingle(g, host, halogenFor[kind], 1)
	default:
		return g, errors.New(errors.ErrCodeSubstituentInvalid, "unknown substituent kind").
			WithDetail("kind=" + string(kind))
	}
}

// attachSingle adds one heteroatom bonded to the host at the given order.
func attachSingle(g molecule.MoleculeGraph, host molecule.AtomNode, el molecule.Element, order int) (molecule.MoleculeGraph, error) {
	if err := precheckValence(g, host.ID, order); err != nil {
		return g, err
	}
	next := g.Clone()
	hetero := molecule.AtomNode{
		ID: molecule.NewAtomID(), Element: el,
		X: host.X, Y: host.Y - chainSpacing,
	}
	if err := next.AddAtom(hetero); err != nil {
		return g, err
	}
	if err := next.AddBond(molecule.Bond{
		ID: molecule.NewBondID(), A: host.ID, B: hetero.ID,
		Order: order, Category: molecule.CategoryForOrder(order),
	}); err != nil {
		return g, err
	}
	return finalize(g, next)
}

// attachNitro adds the 3-atom –NO2 fragment: N single-bonded to the host,
// double-bonded to one oxygen and single-bonded to another.
func attachNitro(g molecule.MoleculeGraph, host molecule.AtomNode) (molecule.MoleculeGraph, error) {
	if err := precheckValence(g, host.ID, 1); err != nil {
		return g, err
	}
	next := g.Clone()
	n := molecule.AtomNode{ID: molecule.NewAtomID(), Element: molecule.Nitrogen, X: host.X, Y: host.Y - chainSpacing}
	o1 := molecule.AtomNode{ID: molecule.NewAtomID(), Element: molecule.Oxygen, X: host.X - chainSpacing, Y: host.Y - 2*chainSpacing}
	o2 := molecule.AtomNode{ID: molecule.NewAtomID(), Element: molecule.Oxygen, X: host.X + chainSpacing, Y: host.Y - 2*chainSpacing}
	for _, a := range []molecule.AtomNode{n, o1, o2} {
		if err := next.AddAtom(a); err != nil {
			return g, err
		}
	}
	bonds := []molecule.Bond{
		{ID: molecule.NewBondID(), A: host.ID, B: n.ID, Order: 1, Category: molecule.CategorySigma},
		{ID: molecule.NewBondID(), A: n.ID, B: o1.ID, Order: 2, Category: molecule.CategoryPi},
		{ID: molecule.NewBondID(), A: n.ID, B: o2.ID, Order: 1, Category: molecule.CategorySigma},
	}
	for _, b := range bonds {
		if err := next.AddBond(b); err != nil {
			return g, err
		}
	}
	return finalize(g, next)
}

// RemoveSubstituent removes a terminal non-carbon atom.  A nitrogen that
// anchors a nitro pattern (bonded to exactly two oxygens) is removed
// atomically with both oxygens.  Carbon removal is redirected to ShortenChain.
func RemoveSubstituent(g molecule.MoleculeGraph, hetero molecule.AtomID) (molecule.MoleculeGraph, error) {
	atom, ok := g.Atom(hetero)
	if !ok {
		return g, atomNotFound(hetero)
	}
	if atom.Element == molecule.Carbon {
		return g, errors.New(errors.ErrCodeUseShortenInstead,
			"Carbon atoms must be removed with the shorten-chain operation")
	}

	if atom.Element == molecule.Nitrogen {
		var oxygens []molecule.AtomID
		for _, nb := range g.Neighbors(hetero) {
			if other, _ := g.Atom(nb); other.Element == molecule.Oxygen {
				oxygens = append(oxygens, nb)
			}
		}
		if len(oxygens) == 2 {
			next := g.Clone()
			for _, o := range oxygens {
				if err := next.RemoveAtom(o); err != nil {
					return g, err
				}
			}
			if err := next.RemoveAtom(hetero); err != nil {
				return g, err
			}
			return finalize(g, next)
		}
	}

	if len(g.IncidentBonds(hetero)) > 1 {
		return g, errors.New(errors.ErrCodeHeteroatomMultiBond,
			"Cannot remove an atom that has more than one bond")
	}
	next := g.Clone()
	if err := next.RemoveAtom(hetero); err != nil {
		return g, err
	}
	return finalize(g, next)
}

// ─────────────────────────────────────────────────────────────────────────────
// Shared steps
// ─────────────────────────────────────────────────────────────────────────────

// precheckValence rejects an edit that would push the atom past its element's
// maximum valence, with the user-facing reason.
func precheckValence(g molecule.MoleculeGraph, id molecule.AtomID, delta int) error {
	atom, ok := g.Atom(id)
	if !ok {
		return atomNotFound(id)
	}
	if g.TotalBondOrder(id)+delta > molecule.MaxValence(atom.Element) {
		return errors.Newf(errors.ErrCodeValenceExceeded,
			"%s atom already has maximum bonds", atom.Element.Name())
	}
	return nil
}

// finalize recomputes derived attributes on the candidate and runs the final
// validation.  On any hard error the original graph is returned untouched.
func finalize(orig molecule.MoleculeGraph, next molecule.MoleculeGraph) (molecule.MoleculeGraph, error) {
	next.Recompute()
	report := molecule.Validate(next)
	if !report.Valid {
		return orig, errors.New(errors.ErrCodeValidation,
			strings.Join(report.Errors, "; "))
	}
	return next, nil
}

func atomNotFound(id molecule.AtomID) error {
	return errors.New(errors.ErrCodeAtomNotFound, "atom not found in graph").
		WithDetail("id=" + string(id))
}
