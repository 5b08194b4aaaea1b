// Package match pairs target markers with reference markers by identifier
// or by position, and classifies the strand relationship between each
// matched pair.
package match

import (
	"github.com/biostrand/gtconform/internal/marker"
	"github.com/biostrand/gtconform/internal/phase"
)

// Strand classifies the strand relationship between a reference marker and
// a target marker by allele-set containment, allowing for a strand switch
// in the target. It returns Identical if the target's alleles are a subset
// of the reference's as given, Opposite if only the complemented target
// alleles are a subset, Unknown if both hold, and Inconsistent if neither
// does.
func Strand(ref, targ *marker.Marker) phase.Phase {
	refAlleles := ref.AlleleSet()
	sameConsistent := containsAll(refAlleles, targ.AlleleSet())
	oppConsistent := containsAll(refAlleles, targ.FlipStrand().AlleleSet())
	switch {
	case sameConsistent && oppConsistent:
		return phase.Unknown
	case sameConsistent:
		return phase.Identical
	case oppConsistent:
		return phase.Opposite
	default:
		return phase.Inconsistent
	}
}

func containsAll(set map[string]struct{}, subset map[string]struct{}) bool {
	for a := range subset {
		if _, ok := set[a]; !ok {
			return false
		}
	}
	return true
}

// Lookup returns the candidate reference markers for a target marker.
type Lookup interface {
	Candidates(targ *marker.Marker) []*marker.Marker
}

// IDLookup matches a target marker to reference markers sharing one of its
// identifiers. A target carrying several identifiers that resolve to
// distinct reference markers yields that many candidates, deliberately
// without deduplication: the same reference marker reached through two of
// the target's identifiers is returned twice, so that the matcher treats it
// as an ambiguous (MULTIPLE_REF_MATCHES) match rather than a clean one.
type IDLookup struct {
	ref *marker.Index
}

// NewIDLookup builds an identifier-based Lookup over ref.
func NewIDLookup(ref *marker.Index) IDLookup {
	return IDLookup{ref: ref}
}

// Candidates implements Lookup.
func (l IDLookup) Candidates(targ *marker.Marker) []*marker.Marker {
	var matches []*marker.Marker
	for _, id := range targ.IDs {
		if id == "" || id == "." {
			continue
		}
		if m := l.ref.ByID(id); m != nil {
			matches = append(matches, m)
		}
	}
	return matches
}

// PosLookup matches a target marker to every reference marker at the same
// position.
type PosLookup struct {
	ref *marker.Index
}

// NewPosLookup builds a position-based Lookup over ref.
func NewPosLookup(ref *marker.Index) PosLookup {
	return PosLookup{ref: ref}
}

// Candidates implements Lookup.
func (l PosLookup) Candidates(targ *marker.Marker) []*marker.Marker {
	return l.ref.ByPos(targ.Pos)
}
