package molecule

import "fmt"

// ValidationReport is the outcome of Validate.  Errors are hard violations
// that must block a mutation; Warnings are advisories (expanded valence,
// ring strain) that never block success.
type ValidationReport struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Validate checks per-atom valence caps and single-component connectivity,
// and collects soft advisories for expanded valence on N/S/P and for
// strained or oversized rings.
func Validate(g MoleculeGraph) ValidationReport {
	report := ValidationReport{Valid: true}

	for _, atom := range g.Atoms() {
		total := g.TotalBondOrder(atom.ID)
		maxV := MaxValence(atom.Element)
		typical := TypicalValence(atom.Element)

		if total > maxV {
			report.Errors = append(report.Errors, fmt.Sprintf(
				"%s atom exceeds maximum valence: total bond order %d > %d",
				atom.Element.Name(), total, maxV))
			continue
		}
		if total > typical {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"%s atom at expanded valence: total bond order %d (typical %d)",
				atom.Element.Name(), total, typical))
		}
	}

	if !g.Connected() {
		report.Errors = append(report.Errors,
			"molecule must remain a single connected structure")
	}

	for _, ring := range g.Rings() {
		switch n := len(ring); {
		case n == 3:
			report.Warnings = append(report.Warnings,
				"3-membered ring: high ring strain")
		case n == 4:
			report.Warnings = append(report.Warnings,
				"4-membered ring: significant ring strain")
		case n > 8:
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"%d-membered ring: large rings are uncommon", n))
		}
	}

	report.Valid = len(report.Errors) == 0
	return report
}
