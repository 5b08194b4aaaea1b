package match

import (
	"github.com/biostrand/gtconform/internal/marker"
	"github.com/biostrand/gtconform/internal/phase"
)

// Pair is a target marker matched to its reference marker, together with
// the strand relationship between them.
type Pair struct {
	RefMarker  *marker.Marker
	TargMarker *marker.Marker
	Strand     phase.Phase
}

// RejectReason names why a target marker was not carried forward into the
// matched pair list.
type RejectReason string

const (
	// NotInReference means no candidate reference marker had an
	// allele-consistent strand relationship with the target.
	NotInReference RejectReason = "NOT_IN_REFERENCE"
	// MultipleRefMatches means more than one candidate reference marker
	// was allele-consistent with the target.
	MultipleRefMatches RejectReason = "MULTIPLE_REF_MATCHES"
	// DuplicateMarker means the matched reference marker was already
	// consumed by an earlier target marker.
	DuplicateMarker RejectReason = "DUPLICATE_MARKER"
	// MarkerOutOfOrder means the matched reference marker precedes, in
	// reference read order, the reference marker matched by an earlier
	// target marker.
	MarkerOutOfOrder RejectReason = "MARKER_OUT_OF_ORDER"
)

// Rejection records a target marker that Match dropped, and why.
type Rejection struct {
	TargMarker *marker.Marker
	Reason     RejectReason
}

// Match walks targets in file order, resolving each to at most one
// reference marker via lookup and Strand, and enforces that the resulting
// reference markers are visited in strictly increasing reference order: a target
// resolving to an already-consumed reference marker, or to one preceding
// it, is rejected rather than paired.
//
// ref must be the Index that lookup resolves candidates against, so that
// IndexOf reports each candidate's true position in reference read order.
func Match(ref *marker.Index, targets []*marker.Marker, lookup Lookup) ([]Pair, []Rejection) {
	var pairs []Pair
	var rejections []Rejection
	prevRefIndex := -1
	for _, targMarker := range targets {
		candidates := lookup.Candidates(targMarker)
		consistent, strands := consistentMarkers(candidates, targMarker)
		switch {
		case len(consistent) == 0:
			rejections = append(rejections, Rejection{TargMarker: targMarker, Reason: NotInReference})
		case len(consistent) > 1:
			rejections = append(rejections, Rejection{TargMarker: targMarker, Reason: MultipleRefMatches})
		default:
			refMarker := consistent[0]
			refIndex := ref.IndexOf(refMarker)
			switch {
			case refIndex == prevRefIndex:
				rejections = append(rejections, Rejection{TargMarker: targMarker, Reason: DuplicateMarker})
			case refIndex < prevRefIndex:
				rejections = append(rejections, Rejection{TargMarker: targMarker, Reason: MarkerOutOfOrder})
			default:
				pairs = append(pairs, Pair{RefMarker: refMarker, TargMarker: targMarker, Strand: strands[0]})
				prevRefIndex = refIndex
			}
		}
	}
	return pairs, rejections
}

func consistentMarkers(candidates []*marker.Marker, targMarker *marker.Marker) ([]*marker.Marker, []phase.Phase) {
	var markers []*marker.Marker
	var strands []phase.Phase
	for _, refMarker := range candidates {
		if s := Strand(refMarker, targMarker); s != phase.Inconsistent {
			markers = append(markers, refMarker)
			strands = append(strands, s)
		}
	}
	return markers, strands
}
