// Package nomenclature generates IUPAC-style names from molecule graphs.
// Classification runs over three mutually exclusive structural classes in
// order: benzene derivatives, plain carbocycles, then acyclic chains named
// from their longest carbon backbone.  The generator promotes exactly one
// functional group, the highest-priority one found, to the parent suffix;
// lower-priority groups are left out of the name rather than rewritten as
// prefixes.
package nomenclature

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/domain/molecule"
	"github.com/Kitarpshakya/Reaction-hub-sub000/pkg/errors"
)

// chainStems are the parent-length stems for one through twenty carbons.
var chainStems = []string{
	"meth", "eth", "prop", "but", "pent",
	"hex", "hept", "oct", "non", "dec",
	"undec", "dodec", "tridec", "tetradec", "pentadec",
	"hexadec", "heptadec", "octadec", "nonadec", "icos",
}

// multiplierPrefixes render repeated substituents or unsaturation sites.
var multiplierPrefixes = []string{
	"", "", "di", "tri", "tetra", "penta", "hexa", "hepta", "octa", "nona", "deca",
}

func multiplier(n int) string {
	if n < len(multiplierPrefixes) {
		return multiplierPrefixes[n]
	}
	return "poly"
}

// ─────────────────────────────────────────────────────────────────────────────
// Entry point
// ─────────────────────────────────────────────────────────────────────────────

// Name computes the IUPAC-style name of the molecule.
func Name(g molecule.MoleculeGraph) (string, error) {
	if g.NumAtoms() == 0 {
		return "", errors.New(errors.ErrCodeNamingFailed, "cannot name an empty molecule")
	}
	carbons := 0
	for _, atom := range g.Atoms() {
		if atom.Element == molecule.Carbon {
			carbons++
		}
	}
	if carbons == 0 {
		return "", errors.New(errors.ErrCodeNamingFailed, "no carbon skeleton to name")
	}

	groups := molecule.DetectFunctionalGroups(g)
	principal := principalGroup(groups)

	if ring, ok := aromaticSixRing(g); ok {
		return nameBenzeneDerivative(g, ring, groups)
	}
	if hasAromatic(g) {
		return "", errors.New(errors.ErrCodeNamingFailed,
			"aromatic systems other than a six-carbon ring are not supported")
	}
	if ring, found, hetero := carbonRing(g); found {
		return nameParent(g, ring, true, principal)
	} else if hetero {
		return "", errors.New(errors.ErrCodeNamingFailed, "heterocycles are not supported")
	}

	chains := longestChains(g)
	if len(chains) == 0 {
		return "", errors.New(errors.ErrCodeNamingFailed, "no carbon chain found")
	}
	var principalAtom molecule.AtomID
	if principal != nil {
		principalAtom = principal.Attachment
	}
	return nameParent(g, pickChain(chains, principalAtom), false, principal)
}

// principalGroup returns the detected group with the highest suffix priority,
// or nil when nothing suffix-worthy is present.  The first group wins ties,
// matching detection order.
func principalGroup(groups []molecule.DetectedFunctionalGroup) *molecule.DetectedFunctionalGroup {
	best := -1
	var winner *molecule.DetectedFunctionalGroup
	for i := range groups {
		if p := molecule.SuffixPriority(groups[i].Kind); p > 0 && p > best {
			best = p
			winner = &groups[i]
		}
	}
	return winner
}

// ─────────────────────────────────────────────────────────────────────────────
// Structural classification
// ─────────────────────────────────────────────────────────────────────────────

func hasAromatic(g molecule.MoleculeGraph) bool {
	for _, b := range g.Bonds() {
		if b.IsAromatic() {
			return true
		}
	}
	return false
}

// aromaticSixRing finds a ring of exactly six carbons whose ring bonds are
// all aromatic.
func aromaticSixRing(g molecule.MoleculeGraph) ([]molecule.AtomID, bool) {
	for _, ring := range g.Rings() {
		if len(ring) != 6 {
			continue
		}
		ok := true
		for i, id := range ring {
			atom, _ := g.Atom(id)
			if atom.Element != molecule.Carbon {
				ok = false
				break
			}
			bond, found := g.FindBond(id, ring[(i+1)%len(ring)])
			if !found || !bond.IsAromatic() {
				ok = false
				break
			}
		}
		if ok {
			return ring, true
		}
	}
	return nil, false
}

// carbonRing finds the first all-carbon non-aromatic ring.  hetero reports
// whether a ring exists but contains a non-carbon member.
func carbonRing(g molecule.MoleculeGraph) (ring []molecule.AtomID, found, hetero bool) {
	for _, r := range g.Rings() {
		allCarbon := true
		for _, id := range r {
			atom, _ := g.Atom(id)
			if atom.Element != molecule.Carbon {
				allCarbon = false
				break
			}
		}
		if allCarbon {
			return r, true, false
		}
		hetero = true
	}
	return nil, false, hetero
}

// ─────────────────────────────────────────────────────────────────────────────
// Chain and carbocycle naming
// ─────────────────────────────────────────────────────────────────────────────

// nameParent numbers the parent sequence, collects substituents and
// unsaturation under the winning orientation, and splices the name together.
func nameParent(g molecule.MoleculeGraph, parent []molecule.AtomID, isRing bool, principal *molecule.DetectedFunctionalGroup) (string, error) {
	if len(parent) > len(chainStems) {
		return "", errors.Newf(errors.ErrCodeChainTooLong,
			"carbon chains longer than %d are not supported", len(chainStems))
	}

	inParent := make(map[molecule.AtomID]bool, len(parent))
	for _, id := range parent {
		inParent[id] = true
	}

	// The principal group contributes the suffix only when its bearing carbon
	// sits on the parent; either way its member atoms never re-surface as
	// substituent prefixes.
	skip := make(map[molecule.AtomID]bool)
	var principalAtom molecule.AtomID
	kind := molecule.GroupKind("")
	if principal != nil {
		for _, a := range principal.Atoms {
			skip[a] = true
		}
		if inParent[principal.Attachment] {
			principalAtom = principal.Attachment
			kind = principal.Kind
		}
	}

	candidates := chainOrientations(parent)
	if isRing {
		candidates = ringOrientations(parent)
	}
	seq, pa := bestOrientation(g, candidates, isRing, principalAtom, skip)

	locant := 0
	if principalAtom != "" {
		for i, id := range seq {
			if id == principalAtom {
				locant = i + 1
				break
			}
		}
	}

	name := assemblePrefixes(pa.subs) + parentSuffix(len(seq), isRing, kind, locant, pa.enes, pa.ynes)
	return name, nil
}

// parentSuffix splices the functional-group or hydrocarbon ending onto the
// length stem.
func parentSuffix(n int, cyclo bool, kind molecule.GroupKind, locant int, enes, ynes []int) string {
	stem := chainStems[n-1]
	if cyclo {
		stem = "cyclo" + stem
	}
	switch kind {
	case molecule.GroupCarboxylicAcid:
		return stem + "anoic acid"
	case molecule.GroupAldehyde:
		return stem + "anal"
	case molecule.GroupKetone:
		return fmt.Sprintf("%san-%d-one", stem, locant)
	case molecule.GroupAlcohol:
		if !cyclo && n <= 2 {
			return stem + "anol"
		}
		return fmt.Sprintf("%san-%d-ol", stem, locant)
	}
	return stem + hydrocarbonEnding(n, cyclo, enes, ynes)
}

// hydrocarbonEnding renders -ane/-ene/-yne with locants and multiplying
// prefixes.  Locants are omitted where the position is unambiguous (chains of
// three or fewer carbons, or a ring bond already numbered 1).
func hydrocarbonEnding(n int, cyclo bool, enes, ynes []int) string {
	if len(enes) == 0 && len(ynes) == 0 {
		return "ane"
	}

	if len(enes)+len(ynes) == 1 {
		tag, locant := "ene", 0
		if len(ynes) == 1 {
			tag, locant = "yne", ynes[0]
		} else {
			locant = enes[0]
		}
		if (!cyclo && n <= 3) || (cyclo && locant == 1) {
			return tag
		}
		return fmt.Sprintf("-%d-%s", locant, tag)
	}

	var sb strings.Builder
	if len(enes) > 1 || (len(enes) == 0 && len(ynes) > 1) {
		sb.WriteString("a")
	}
	if len(enes) > 0 {
		sb.WriteString("-" + joinLocants(enes) + "-" + multiplier(len(enes)) + "en")
	}
	if len(ynes) > 0 {
		sb.WriteString("-" + joinLocants(ynes) + "-" + multiplier(len(ynes)) + "yn")
	}
	sb.WriteString("e")
	return sb.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// Benzene derivatives
// ─────────────────────────────────────────────────────────────────────────────

// nameBenzeneDerivative names a six-carbon aromatic ring.  A carboxylic acid
// whose carboxyl carbon hangs off the ring yields "benzoic acid"; a hydroxyl
// directly on a ring carbon yields "phenol"; everything else is a substituted
// "benzene".
func nameBenzeneDerivative(g molecule.MoleculeGraph, ring []molecule.AtomID, groups []molecule.DetectedFunctionalGroup) (string, error) {
	ringSet := make(map[molecule.AtomID]bool, len(ring))
	for _, id := range ring {
		ringSet[id] = true
	}

	parent := "benzene"
	var principalAtom molecule.AtomID
	skip := make(map[molecule.AtomID]bool)

	for i := range groups {
		if groups[i].Kind != molecule.GroupCarboxylicAcid {
			continue
		}
		for _, nb := range g.Neighbors(groups[i].Attachment) {
			if ringSet[nb] {
				parent = "benzoic acid"
				principalAtom = nb
				for _, a := range groups[i].Atoms {
					skip[a] = true
				}
				break
			}
		}
		if principalAtom != "" {
			break
		}
	}
	if principalAtom == "" {
		for i := range groups {
			if groups[i].Kind == molecule.GroupAlcohol && ringSet[groups[i].Attachment] {
				parent = "phenol"
				principalAtom = groups[i].Attachment
				for _, a := range groups[i].Atoms {
					skip[a] = true
				}
				break
			}
		}
	}

	_, pa := bestOrientation(g, ringOrientations(ring), true, principalAtom, skip)

	if len(pa.subs) == 0 {
		return parent, nil
	}
	// A lone substituent on unsubstituted benzene needs no locant.
	if parent == "benzene" && len(pa.subs) == 1 {
		return pa.subs[0].name + parent, nil
	}
	return assemblePrefixes(pa.subs) + parent, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Prefix assembly
// ─────────────────────────────────────────────────────────────────────────────

// assemblePrefixes groups substituents by name, orders names alphabetically,
// and renders each with sorted locants and a multiplying prefix.
func assemblePrefixes(subs []substituent) string {
	if len(subs) == 0 {
		return ""
	}
	byName := make(map[string][]int)
	for _, s := range subs {
		byName[s.name] = append(byName[s.name], s.locant)
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	units := make([]string, 0, len(names))
	for _, name := range names {
		locants := byName[name]
		sort.Ints(locants)
		units = append(units, joinLocants(locants)+"-"+multiplier(len(locants))+name)
	}
	return strings.Join(units, "-")
}

func joinLocants(ls []int) string {
	parts := make([]string, len(ls))
	for i, l := range ls {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, ",")
}
