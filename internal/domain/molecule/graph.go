// Package molecule provides the core graph model for the organic-molecule
// engine: explicit atoms, bonds, valence rules, and the pure structural
// queries and derivations everything else is built on.
//
// MoleculeGraph is a value: every mutation elsewhere in the engine operates
// on a Clone and returns the new value, so a previous graph always remains
// valid and inspectable (undo/reset is just keeping the old value).  The
// low-level mutators in this file are the raw layer used by the mutation
// engine, the template library, and the persistence codec; application code
// edits graphs exclusively through the mutation engine.
package molecule

import (
	"github.com/google/uuid"

	"github.com/Kitarpshakya/Reaction-hub-sub000/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Identities
// ─────────────────────────────────────────────────────────────────────────────

// AtomID is the opaque identity of an atom, stable across mutations.
type AtomID string

// BondID is the opaque identity of a bond.
type BondID string

// NewAtomID returns a fresh unique atom identity.
func NewAtomID() AtomID { return AtomID(uuid.NewString()) }

// NewBondID returns a fresh unique bond identity.
func NewBondID() BondID { return BondID(uuid.NewString()) }

// ─────────────────────────────────────────────────────────────────────────────
// Bond
// ─────────────────────────────────────────────────────────────────────────────

// BondCategory classifies a bond's electronic character.
type BondCategory string

const (
	CategorySigma    BondCategory = "sigma"
	CategoryPi       BondCategory = "pi"
	CategoryAromatic BondCategory = "aromatic"
)

// StereoMark is a placeholder for future stereo bonds.  The engine never
// assigns or reads it; it round-trips through the persistence layer untouched.
type StereoMark string

// StereoNone is the default stereo marker.
const StereoNone StereoMark = ""

// Bond is an undirected edge between two atom identities.  Aromatic bonds
// carry Order 1 plus a shared π order accounted per-atom (see TotalBondOrder)
// and are immutable once assigned.
type Bond struct {
	ID       BondID
	A, B     AtomID
	Order    int
	Category BondCategory
	Stereo   StereoMark
}

// Touches reports whether id is one of the bond's endpoints.
func (b Bond) Touches(id AtomID) bool { return b.A == id || b.B == id }

// Other returns the endpoint opposite to id.  The second return is false
// when id is not an endpoint of the bond.
func (b Bond) Other(id AtomID) (AtomID, bool) {
	switch id {
	case b.A:
		return b.B, true
	case b.B:
		return b.A, true
	}
	return "", false
}

// IsAromatic reports whether the bond belongs to an aromatic system.
func (b Bond) IsAromatic() bool { return b.Category == CategoryAromatic }

// CategoryForOrder returns the bond category implied by a plain (non-aromatic)
// bond order: sigma for 1, pi for 2 and 3.
func CategoryForOrder(order int) BondCategory {
	if order > 1 {
		return CategoryPi
	}
	return CategorySigma
}

// ─────────────────────────────────────────────────────────────────────────────
// AtomNode
// ─────────────────────────────────────────────────────────────────────────────

// AtomNode is one explicit (non-hydrogen) atom.  X and Y are layout-only
// canvas coordinates with no chemical meaning.  ImplicitH and Hybridization
// are derived and recomputed after every edge change; they must never be
// authored directly.
type AtomNode struct {
	ID            AtomID
	Element       Element
	X, Y          float64
	ImplicitH     int
	Hybridization Hybridization
}

// ─────────────────────────────────────────────────────────────────────────────
// MoleculeGraph
// ─────────────────────────────────────────────────────────────────────────────

// MoleculeGraph is an undirected graph of AtomNodes and Bonds.  Atom and bond
// listings preserve insertion order so that every derivation (formula, name,
// SMILES) is deterministic for a given construction sequence.
type MoleculeGraph struct {
	atoms     map[AtomID]AtomNode
	bonds     map[BondID]Bond
	atomOrder []AtomID
	bondOrder []BondID
	adj       map[AtomID][]BondID
}

// NewGraph returns an empty molecule graph.
func NewGraph() MoleculeGraph {
	return MoleculeGraph{
		atoms: make(map[AtomID]AtomNode),
		bonds: make(map[BondID]Bond),
		adj:   make(map[AtomID][]BondID),
	}
}

// Clone returns a deep copy of the graph.  Mutating the copy never affects
// the receiver.
func (g MoleculeGraph) Clone() MoleculeGraph {
	c := MoleculeGraph{
		atoms:     make(map[AtomID]AtomNode, len(g.atoms)),
		bonds:     make(map[BondID]Bond, len(g.bonds)),
		atomOrder: append([]AtomID(nil), g.atomOrder...),
		bondOrder: append([]BondID(nil), g.bondOrder...),
		adj:       make(map[AtomID][]BondID, len(g.adj)),
	}
	for id, a := range g.atoms {
		c.atoms[id] = a
	}
	for id, b := range g.bonds {
		c.bonds[id] = b
	}
	for id, bonds := range g.adj {
		c.adj[id] = append([]BondID(nil), bonds...)
	}
	return c
}

// ─────────────────────────────────────────────────────────────────────────────
// Queries
// ─────────────────────────────────────────────────────────────────────────────

// NumAtoms returns the number of explicit atoms.
func (g MoleculeGraph) NumAtoms() int { return len(g.atomOrder) }

// NumBonds returns the number of bonds.
func (g MoleculeGraph) NumBonds() int { return len(g.bondOrder) }

// Atom returns the atom with the given identity.
func (g MoleculeGraph) Atom(id AtomID) (AtomNode, bool) {
	a, ok := g.atoms[id]
	return a, ok
}

// HasAtom reports whether the identity exists in the graph.
func (g MoleculeGraph) HasAtom(id AtomID) bool {
	_, ok := g.atoms[id]
	return ok
}

// Atoms returns all atoms in insertion order.
func (g MoleculeGraph) Atoms() []AtomNode {
	out := make([]AtomNode, 0, len(g.atomOrder))
	for _, id := range g.atomOrder {
		out = append(out, g.atoms[id])
	}
	return out
}

// AtomIDs returns all atom identities in insertion order.
func (g MoleculeGraph) AtomIDs() []AtomID {
	return append([]AtomID(nil), g.atomOrder...)
}

// Bonds returns all bonds in insertion order.
func (g MoleculeGraph) Bonds() []Bond {
	out := make([]Bond, 0, len(g.bondOrder))
	for _, id := range g.bondOrder {
		out = append(out, g.bonds[id])
	}
	return out
}

// BondByID returns the bond with the given identity.
func (g MoleculeGraph) BondByID(id BondID) (Bond, bool) {
	b, ok := g.bonds[id]
	return b, ok
}

// IncidentBonds returns the bonds touching the atom, in insertion order.
func (g MoleculeGraph) IncidentBonds(id AtomID) []Bond {
	bids := g.adj[id]
	out := make([]Bond, 0, len(bids))
	for _, bid := range bids {
		out = append(out, g.bonds[bid])
	}
	return out
}

// Neighbors returns the atoms directly bonded to id, in bond insertion order.
func (g MoleculeGraph) Neighbors(id AtomID) []AtomID {
	bids := g.adj[id]
	out := make([]AtomID, 0, len(bids))
	for _, bid := range bids {
		if other, ok := g.bonds[bid].Other(id); ok {
			out = append(out, other)
		}
	}
	return out
}

// CarbonNeighbors returns the subset of Neighbors that are carbon atoms.
func (g MoleculeGraph) CarbonNeighbors(id AtomID) []AtomID {
	var out []AtomID
	for _, nb := range g.Neighbors(id) {
		if g.atoms[nb].Element == Carbon {
			out = append(out, nb)
		}
	}
	return out
}

// IsTerminal reports whether the atom has at most one neighbor.
func (g MoleculeGraph) IsTerminal(id AtomID) bool {
	return len(g.adj[id]) <= 1
}

// FindBond returns the bond between a and b, if any.
func (g MoleculeGraph) FindBond(a, b AtomID) (Bond, bool) {
	for _, bid := range g.adj[a] {
		bond := g.bonds[bid]
		if bond.Touches(b) {
			return bond, true
		}
	}
	return Bond{}, false
}

// HasAromaticBond reports whether any bond at the atom is aromatic.
func (g MoleculeGraph) HasAromaticBond(id AtomID) bool {
	for _, bid := range g.adj[id] {
		if g.bonds[bid].IsAromatic() {
			return true
		}
	}
	return false
}

// TotalBondOrder returns the sum of bond orders at the atom.  An atom inside
// an aromatic system carries one extra shared π order, so a benzene carbon
// with two aromatic bonds counts as 3 and fills to exactly one implicit
// hydrogen.
func (g MoleculeGraph) TotalBondOrder(id AtomID) int {
	total := 0
	aromatic := false
	for _, bid := range g.adj[id] {
		b := g.bonds[bid]
		total += b.Order
		if b.IsAromatic() {
			aromatic = true
		}
	}
	if aromatic {
		total++
	}
	return total
}

// CanAddBond reports whether a new bond of the given order between a and b
// would keep both endpoints within their maximum valence.  A nil return means
// the bond is admissible; otherwise the error carries the specific reason.
func (g MoleculeGraph) CanAddBond(a, b AtomID, order int) error {
	if order < 1 || order > 3 {
		return errors.Newf(errors.ErrCodeInvalidBondOrder, "bond order must be 1, 2, or 3, got %d", order)
	}
	if a == b {
		return errors.New(errors.ErrCodeSelfBond, "cannot bond an atom to itself")
	}
	for _, id := range []AtomID{a, b} {
		atom, ok := g.atoms[id]
		if !ok {
			return errors.New(errors.ErrCodeAtomNotFound, "atom not found in graph").
				WithDetail("id=" + string(id))
		}
		if g.TotalBondOrder(id)+order > MaxValence(atom.Element) {
			return errors.Newf(errors.ErrCodeValenceExceeded,
				"%s atom already has maximum bonds", atom.Element.Name())
		}
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Connectivity and ring queries
// ─────────────────────────────────────────────────────────────────────────────

// Connected reports whether the graph forms a single connected component.
// Empty and single-atom graphs are connected by definition.
func (g MoleculeGraph) Connected() bool {
	if len(g.atomOrder) <= 1 {
		return true
	}
	seen := make(map[AtomID]bool, len(g.atomOrder))
	stack := []AtomID{g.atomOrder[0]}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		for _, nb := range g.Neighbors(cur) {
			if !seen[nb] {
				stack = append(stack, nb)
			}
		}
	}
	return len(seen) == len(g.atomOrder)
}

// PathExists reports whether some bond path connects a and b.
func (g MoleculeGraph) PathExists(a, b AtomID) bool {
	if !g.HasAtom(a) || !g.HasAtom(b) {
		return false
	}
	if a == b {
		return true
	}
	seen := map[AtomID]bool{a: true}
	stack := []AtomID{a}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, nb := range g.Neighbors(cur) {
			if nb == b {
				return true
			}
			if !seen[nb] {
				seen[nb] = true
				stack = append(stack, nb)
			}
		}
	}
	return false
}

// Rings returns the fundamental cycles of the graph, each as its atoms in
// path order around the ring.  Depth-first search with a visited set
// guarantees termination; one ring is reported per DFS back edge, which is
// exact for the single simple rings the engine supports.
func (g MoleculeGraph) Rings() [][]AtomID {
	var rings [][]AtomID
	visited := make(map[AtomID]bool, len(g.atomOrder))
	parent := make(map[AtomID]AtomID)
	depth := make(map[AtomID]int)

	var dfs func(id AtomID)
	dfs = func(id AtomID) {
		visited[id] = true
		for _, nb := range g.Neighbors(id) {
			if nb == parent[id] {
				continue
			}
			if !visited[nb] {
				parent[nb] = id
				depth[nb] = depth[id] + 1
				dfs(nb)
				continue
			}
			if depth[nb] < depth[id] {
				// Back edge: collect the parent chain from id up to nb.
				cycle := []AtomID{nb}
				for cur := id; cur != nb; cur = parent[cur] {
					cycle = append(cycle, cur)
				}
				rings = append(rings, cycle)
			}
		}
	}

	for _, id := range g.atomOrder {
		if !visited[id] {
			depth[id] = 0
			dfs(id)
		}
	}
	return rings
}

// ─────────────────────────────────────────────────────────────────────────────
// Raw mutators (callers outside this package operate on a Clone)
// ─────────────────────────────────────────────────────────────────────────────

// AddAtom inserts an explicit atom.  The element must be in the supported set
// and the identity must be unused.
func (g *MoleculeGraph) AddAtom(node AtomNode) error {
	if err := CheckElement(node.Element); err != nil {
		return err
	}
	if node.ID == "" {
		return errors.InvalidParam("atom identity must not be empty")
	}
	if _, exists := g.atoms[node.ID]; exists {
		return errors.InvalidState("atom identity already present").WithDetail("id=" + string(node.ID))
	}
	g.atoms[node.ID] = node
	g.atomOrder = append(g.atomOrder, node.ID)
	return nil
}

// AddBond inserts a bond between two existing atoms.  Self-loops, duplicate
// atom pairs, invalid orders, and valence-cap violations are rejected.
// Aromatic bonds must be inserted with Order 1 and CategoryAromatic.
func (g *MoleculeGraph) AddBond(bond Bond) error {
	if bond.ID == "" {
		return errors.InvalidParam("bond identity must not be empty")
	}
	if _, exists := g.bonds[bond.ID]; exists {
		return errors.InvalidState("bond identity already present").WithDetail("id=" + string(bond.ID))
	}
	if _, dup := g.FindBond(bond.A, bond.B); dup {
		return errors.New(errors.ErrCodeBondExists, "a bond already exists between these atoms")
	}
	if err := g.CanAddBond(bond.A, bond.B, bond.Order); err != nil {
		return err
	}
	g.bonds[bond.ID] = bond
	g.bondOrder = append(g.bondOrder, bond.ID)
	g.adj[bond.A] = append(g.adj[bond.A], bond.ID)
	g.adj[bond.B] = append(g.adj[bond.B], bond.ID)
	return nil
}

// RemoveBond deletes the bond with the given identity.
func (g *MoleculeGraph) RemoveBond(id BondID) error {
	bond, ok := g.bonds[id]
	if !ok {
		return errors.New(errors.ErrCodeBondNotFound, "bond not found in graph").WithDetail("id=" + string(id))
	}
	delete(g.bonds, id)
	g.bondOrder = removeBondID(g.bondOrder, id)
	g.adj[bond.A] = removeBondID(g.adj[bond.A], id)
	g.adj[bond.B] = removeBondID(g.adj[bond.B], id)
	return nil
}

// RemoveAtom deletes the atom and every bond touching it.
func (g *MoleculeGraph) RemoveAtom(id AtomID) error {
	if _, ok := g.atoms[id]; !ok {
		return errors.New(errors.ErrCodeAtomNotFound, "atom not found in graph").WithDetail("id=" + string(id))
	}
	for _, bid := range append([]BondID(nil), g.adj[id]...) {
		_ = g.RemoveBond(bid)
	}
	delete(g.atoms, id)
	delete(g.adj, id)
	for i, aid := range g.atomOrder {
		if aid == id {
			g.atomOrder = append(g.atomOrder[:i], g.atomOrder[i+1:]...)
			break
		}
	}
	return nil
}

// SetBondOrder changes a bond's order and category.  Aromatic bonds are
// immutable; the caller-facing guard lives in the mutation engine, but the
// raw layer enforces it as well so no path can corrupt an aromatic system.
func (g *MoleculeGraph) SetBondOrder(id BondID, order int, category BondCategory) error {
	bond, ok := g.bonds[id]
	if !ok {
		return errors.New(errors.ErrCodeBondNotFound, "bond not found in graph").WithDetail("id=" + string(id))
	}
	if bond.IsAromatic() || category == CategoryAromatic {
		return errors.New(errors.ErrCodeAromaticImmutable, "Cannot modify aromatic bonds")
	}
	if order < 1 || order > 3 {
		return errors.Newf(errors.ErrCodeInvalidBondOrder, "bond order must be 1, 2, or 3, got %d", order)
	}
	bond.Order = order
	bond.Category = category
	g.bonds[id] = bond
	return nil
}

// MoveAtom updates the layout position of an atom.  Positions carry no
// chemical meaning and trigger no recompute.
func (g *MoleculeGraph) MoveAtom(id AtomID, x, y float64) error {
	atom, ok := g.atoms[id]
	if !ok {
		return errors.New(errors.ErrCodeAtomNotFound, "atom not found in graph").WithDetail("id=" + string(id))
	}
	atom.X, atom.Y = x, y
	g.atoms[id] = atom
	return nil
}

func removeBondID(s []BondID, id BondID) []BondID {
	for i, v := range s {
		if v == id {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// ─────────────────────────────────────────────────────────────────────────────
// Derived-attribute recompute
// ─────────────────────────────────────────────────────────────────────────────

// RecomputeImplicitHydrogens refreshes the implicit-hydrogen count of every
// atom from its current bond set: unused typical valence, floored at zero.
func (g *MoleculeGraph) RecomputeImplicitHydrogens() {
	for _, id := range g.atomOrder {
		atom := g.atoms[id]
		h := TypicalValence(atom.Element) - g.TotalBondOrder(id)
		if h < 0 {
			h = 0
		}
		atom.ImplicitH = h
		g.atoms[id] = atom
	}
}

// RecomputeHybridization refreshes every atom's hybridization: sp when a
// triple bond is present, sp2 for a double or aromatic bond, sp3 otherwise.
func (g *MoleculeGraph) RecomputeHybridization() {
	for _, id := range g.atomOrder {
		atom := g.atoms[id]
		hyb := SP3
		for _, b := range g.IncidentBonds(id) {
			switch {
			case b.Order == 3:
				hyb = SP
			case (b.Order == 2 || b.IsAromatic()) && hyb != SP:
				hyb = SP2
			}
		}
		atom.Hybridization = hyb
		g.atoms[id] = atom
	}
}

// Recompute refreshes all derived atom attributes.  It must run after every
// edge change so counts never drift from the bond set.
func (g *MoleculeGraph) Recompute() {
	g.RecomputeImplicitHydrogens()
	g.RecomputeHybridization()
}
