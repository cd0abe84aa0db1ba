// Package chem defines the storage and transport data types for molecule
// documents.  No domain logic lives here — only plain data types that are
// safe to import from any layer without creating circular dependencies.
//
// The stored form differs from the engine's graph model on purpose: bonds are
// represented by a closed string enum (single/double/triple/aromatic) rather
// than the engine's (order, category) pair, and atoms carry a 3D position and
// a hybridization string but no implicit-hydrogen count.  The persistence
// layer owns the translation in both directions; after loading, the engine's
// hydrogen/hybridization recompute must run before the graph is used.
package chem

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// StoredBondKind — closed bond enum of the storage schema
// ─────────────────────────────────────────────────────────────────────────────

// StoredBondKind is the bond representation used by the storage schema.
type StoredBondKind string

const (
	BondSingle   StoredBondKind = "single"
	BondDouble   StoredBondKind = "double"
	BondTriple   StoredBondKind = "triple"
	BondAromatic StoredBondKind = "aromatic"
)

// IsValid reports whether k is one of the four stored bond kinds.
func (k StoredBondKind) IsValid() bool {
	switch k {
	case BondSingle, BondDouble, BondTriple, BondAromatic:
		return true
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Stored atom / bond / document
// ─────────────────────────────────────────────────────────────────────────────

// StoredAtom is one explicit atom in the stored document.
type StoredAtom struct {
	ID            string  `json:"id"`
	Element       string  `json:"element"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Z             float64 `json:"z"`
	Hybridization string  `json:"hybridization,omitempty"`
}

// StoredBond is one edge in the stored document.  The endpoint pair is
// unordered; readers must not assume A < B in any sense.
type StoredBond struct {
	ID   string         `json:"id"`
	A    string         `json:"a"`
	B    string         `json:"b"`
	Kind StoredBondKind `json:"kind"`
}

// MoleculeDocument is the persisted form of an edited molecule.  Derived
// display values (formula, name, SMILES) are stored as a convenience for
// listings; they are recomputed from the graph on load and never trusted.
type MoleculeDocument struct {
	ID        string       `json:"id"`
	Name      string       `json:"name,omitempty"`
	Formula   string       `json:"formula,omitempty"`
	SMILES    string       `json:"smiles,omitempty"`
	Atoms     []StoredAtom `json:"atoms"`
	Bonds     []StoredBond `json:"bonds"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// MoleculeSummary is one row of a molecule listing, built from stored display
// values without deserializing the full document.
type MoleculeSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Formula   string    `json:"formula"`
	SMILES    string    `json:"smiles"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ─────────────────────────────────────────────────────────────────────────────
// MutationOutcome — transport form of a mutation result
// ─────────────────────────────────────────────────────────────────────────────

// MutationOutcome is the caller-facing outcome of a structural edit request.
// On failure, Reason carries the specific human-readable message.
type MutationOutcome struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
	Code    string `json:"code,omitempty"`
}
