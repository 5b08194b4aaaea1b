package engine

import (
	"fmt"

	"github.com/biostrand/gtconform/internal/marker"
	"github.com/biostrand/gtconform/internal/match"
	"github.com/biostrand/gtconform/internal/vcfio"
)

// readMarkers streams every marker at path within interval, discarding
// genotype data: the matching pass only needs each record's site
// identity, never its per-sample calls. registry interns each record's
// chromosome string so that every Marker sharing a chromosome across both
// the matching and streaming passes holds the same backing string.
func readMarkers(path string, interval *vcfio.ChromInterval, registry *vcfio.ChromRegistry) ([]*marker.Marker, error) {
	r, err := vcfio.NewReader(path, vcfio.Options{ChromInterval: interval, Registry: registry})
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var markers []*marker.Marker
	for {
		m, _, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if m == nil {
			break
		}
		markers = append(markers, m)
	}
	return markers, nil
}

// matchedMarkers runs the full ref-vs-target marker matching pass,
// entirely independent of the genotype data the second, streaming pass
// will read. Mirrors MatchedMarkers.java's constructor, which the teacher
// algorithm also runs as a distinct pre-pass before any genotype record is
// touched.
func matchedMarkers(p Params, interval *vcfio.ChromInterval, registry *vcfio.ChromRegistry) (targOrder []*marker.Marker, pairs []match.Pair, rejections []match.Rejection, err error) {
	refMarkers, err := readMarkers(p.Ref, interval, registry)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reading reference markers: %w", err)
	}
	targMarkers, err := readMarkers(p.Gt, interval, registry)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reading target markers: %w", err)
	}

	refIndex, err := marker.NewIndex(refMarkers)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reference markers: %w", err)
	}

	var lookup match.Lookup
	if p.MatchID {
		lookup = match.NewIDLookup(refIndex)
	} else {
		lookup = match.NewPosLookup(refIndex)
	}

	pairs, rejections = match.Match(refIndex, targMarkers, lookup)
	return targMarkers, pairs, rejections, nil
}
