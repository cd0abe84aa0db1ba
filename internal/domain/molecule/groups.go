package molecule

// GroupKind tags a detected functional-group pattern.
type GroupKind string

const (
	GroupCarboxylicAcid GroupKind = "carboxylic-acid"
	GroupEster          GroupKind = "ester"
	GroupAmide          GroupKind = "amide"
	GroupAldehyde       GroupKind = "aldehyde"
	GroupKetone         GroupKind = "ketone"
	GroupAlcohol        GroupKind = "alcohol"
	GroupEther          GroupKind = "ether"
	GroupAmine          GroupKind = "amine"
	GroupNitrile        GroupKind = "nitrile"
	GroupNitro          GroupKind = "nitro"
	GroupAlkylHalide    GroupKind = "alkyl-halide"
)

// DetectedFunctionalGroup is a transient, recomputed-on-demand match.  It is
// never stored in the graph.  Atoms holds the node identities forming the
// pattern; Attachment is the skeleton atom the group hangs from (the carbonyl
// carbon for C=O patterns, the bearing carbon for halides and nitro, the
// oxygen for ethers, the nitrogen for amines).
type DetectedFunctionalGroup struct {
	Kind       GroupKind
	Atoms      []AtomID
	Attachment AtomID
}

// suffixPriority orders the groups that can claim the IUPAC parent suffix.
// Higher wins.  Groups absent from the map never take a suffix.
var suffixPriority = map[GroupKind]int{
	GroupCarboxylicAcid: 5,
	GroupAldehyde:       4,
	GroupKetone:         3,
	GroupAlcohol:        2,
}

// SuffixPriority returns the suffix rank of the group kind (0 when the kind
// never takes a suffix).
func SuffixPriority(k GroupKind) int {
	return suffixPriority[k]
}

// DetectFunctionalGroups pattern-matches fixed neighbor/bond-order signatures
// at every atom.  Once a carbon is claimed by a higher-priority carbonyl
// pattern (carboxylic acid > ester > amide > aldehyde/ketone) it is excluded
// from the generic carbonyl classes so no group is double-reported.
func DetectFunctionalGroups(g MoleculeGraph) []DetectedFunctionalGroup {
	var groups []DetectedFunctionalGroup

	claimedCarbonyl := make(map[AtomID]bool) // carbons already classified
	seenOxygen := make(map[AtomID]bool)      // alcohols/ethers, one per O
	seenNitrogen := make(map[AtomID]bool)    // amines/nitro, one per N

	for _, atom := range g.Atoms() {
		switch atom.Element {
		case Carbon:
			groups = append(groups, matchCarbonyl(g, atom, claimedCarbonyl)...)
		case Nitrogen:
			if seenNitrogen[atom.ID] {
				continue
			}
			if grp, ok := matchNitro(g, atom); ok {
				seenNitrogen[atom.ID] = true
				groups = append(groups, grp)
			}
		}
	}

	// Second pass: single-bonded heteroatom patterns.  Running after the
	// carbonyl pass lets the claimed set suppress the O of a carboxylic acid
	// from re-matching as an alcohol.
	for _, atom := range g.Atoms() {
		if atom.Element != Carbon {
			continue
		}
		for _, bond := range g.IncidentBonds(atom.ID) {
			nb, _ := bond.Other(atom.ID)
			other, _ := g.Atom(nb)

			switch {
			case other.Element == Oxygen && bond.Order == 1 && !seenOxygen[nb] && !oxygenClaimed(g, nb, claimedCarbonyl):
				seenOxygen[nb] = true
				if other.ImplicitH > 0 {
					groups = append(groups, DetectedFunctionalGroup{
						Kind:       GroupAlcohol,
						Atoms:      []AtomID{atom.ID, nb},
						Attachment: atom.ID,
					})
				} else if cs := g.CarbonNeighbors(nb); len(cs) == 2 {
					groups = append(groups, DetectedFunctionalGroup{
						Kind:       GroupEther,
						Atoms:      []AtomID{cs[0], nb, cs[1]},
						Attachment: nb,
					})
				}

			case other.Element == Nitrogen && bond.Order == 1 && !seenNitrogen[nb] && !claimedCarbonyl[nb]:
				if other.ImplicitH > 0 {
					seenNitrogen[nb] = true
					groups = append(groups, DetectedFunctionalGroup{
						Kind:       GroupAmine,
						Atoms:      []AtomID{atom.ID, nb},
						Attachment: nb,
					})
				}

			case other.Element == Nitrogen && bond.Order == 3:
				groups = append(groups, DetectedFunctionalGroup{
					Kind:       GroupNitrile,
					Atoms:      []AtomID{atom.ID, nb},
					Attachment: atom.ID,
				})

			case other.Element.IsHalogen():
				groups = append(groups, DetectedFunctionalGroup{
					Kind:       GroupAlkylHalide,
					Atoms:      []AtomID{atom.ID, nb},
					Attachment: atom.ID,
				})
			}
		}
	}

	return groups
}

// matchCarbonyl classifies a carbon carrying a C=O against the carbonyl
// family in priority order.  At most one group is reported per carbon.
func matchCarbonyl(g MoleculeGraph, atom AtomNode, claimed map[AtomID]bool) []DetectedFunctionalGroup {
	var doubleO []AtomID
	var singleOH []AtomID // single-bonded O carrying implicit H
	var singleOC []AtomID // single-bonded O bridging to another carbon
	var singleN []AtomID

	for _, bond := range g.IncidentBonds(atom.ID) {
		nb, _ := bond.Other(atom.ID)
		other, _ := g.Atom(nb)
		switch {
		case other.Element == Oxygen && bond.Order == 2:
			doubleO = append(doubleO, nb)
		case other.Element == Oxygen && bond.Order == 1:
			if other.ImplicitH > 0 {
				singleOH = append(singleOH, nb)
			} else if len(g.CarbonNeighbors(nb)) == 2 {
				singleOC = append(singleOC, nb)
			}
		case other.Element == Nitrogen && bond.Order == 1:
			singleN = append(singleN, nb)
		}
	}

	if len(doubleO) == 0 {
		return nil
	}
	claimed[atom.ID] = true
	for _, o := range doubleO {
		claimed[o] = true
	}

	switch {
	case len(singleOH) > 0:
		claimed[singleOH[0]] = true
		return []DetectedFunctionalGroup{{
			Kind:       GroupCarboxylicAcid,
			Atoms:      []AtomID{atom.ID, doubleO[0], singleOH[0]},
			Attachment: atom.ID,
		}}
	case len(singleOC) > 0:
		claimed[singleOC[0]] = true
		return []DetectedFunctionalGroup{{
			Kind:       GroupEster,
			Atoms:      []AtomID{atom.ID, doubleO[0], singleOC[0]},
			Attachment: atom.ID,
		}}
	case len(singleN) > 0:
		claimed[singleN[0]] = true
		return []DetectedFunctionalGroup{{
			Kind:       GroupAmide,
			Atoms:      []AtomID{atom.ID, doubleO[0], singleN[0]},
			Attachment: atom.ID,
		}}
	case len(g.CarbonNeighbors(atom.ID)) <= 1:
		return []DetectedFunctionalGroup{{
			Kind:       GroupAldehyde,
			Atoms:      []AtomID{atom.ID, doubleO[0]},
			Attachment: atom.ID,
		}}
	default:
		return []DetectedFunctionalGroup{{
			Kind:       GroupKetone,
			Atoms:      []AtomID{atom.ID, doubleO[0]},
			Attachment: atom.ID,
		}}
	}
}

// matchNitro matches a nitrogen bonded to exactly two oxygens.
func matchNitro(g MoleculeGraph, atom AtomNode) (DetectedFunctionalGroup, bool) {
	var oxygens []AtomID
	var carbon AtomID
	for _, nb := range g.Neighbors(atom.ID) {
		other, _ := g.Atom(nb)
		switch other.Element {
		case Oxygen:
			oxygens = append(oxygens, nb)
		case Carbon:
			carbon = nb
		}
	}
	if len(oxygens) != 2 {
		return DetectedFunctionalGroup{}, false
	}
	attachment := atom.ID
	if carbon != "" {
		attachment = carbon
	}
	return DetectedFunctionalGroup{
		Kind:       GroupNitro,
		Atoms:      []AtomID{atom.ID, oxygens[0], oxygens[1]},
		Attachment: attachment,
	}, true
}

// oxygenClaimed reports whether the oxygen already belongs to a carbonyl-family
// pattern (the OH of an acid, the bridging O of an ester).
func oxygenClaimed(g MoleculeGraph, o AtomID, claimed map[AtomID]bool) bool {
	if claimed[o] {
		return true
	}
	for _, nb := range g.Neighbors(o) {
		if claimed[nb] {
			return true
		}
	}
	return false
}
