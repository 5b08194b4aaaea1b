package marker

import "fmt"

// Index is an immutable, order-preserving view over every Marker read from
// one VCF file: by-position lookup, by-identifier lookup, and the index of
// a given Marker in read order (used by the matcher to detect duplicate or
// out-of-order reference matches).
type Index struct {
	markers  []*Marker
	byID     map[string]*Marker
	byPos    map[int][]*Marker
	position map[*Marker]int
}

// NewIndex builds an Index over markers in the order given. It returns an
// error if any identifier is carried by more than one marker.
func NewIndex(markers []*Marker) (*Index, error) {
	idx := &Index{
		markers:  markers,
		byID:     make(map[string]*Marker, len(markers)),
		byPos:    make(map[int][]*Marker, len(markers)),
		position: make(map[*Marker]int, len(markers)),
	}
	for i, m := range markers {
		idx.position[m] = i
		idx.byPos[m.Pos] = append(idx.byPos[m.Pos], m)
		for _, id := range m.IDs {
			if id == "" || id == "." {
				continue
			}
			if existing, ok := idx.byID[id]; ok {
				return nil, fmt.Errorf("duplicate marker identifier %q (at %s:%d and %s:%d)",
					id, existing.Chrom, existing.Pos, m.Chrom, m.Pos)
			}
			idx.byID[id] = m
		}
	}
	return idx, nil
}

// Markers returns the ordered marker list.
func (idx *Index) Markers() []*Marker {
	return idx.markers
}

// ByID returns the marker carrying the given identifier, or nil.
func (idx *Index) ByID(id string) *Marker {
	return idx.byID[id]
}

// ByPos returns every marker at the given position, in read order.
func (idx *Index) ByPos(pos int) []*Marker {
	return idx.byPos[pos]
}

// IndexOf returns m's position in read order.
func (idx *Index) IndexOf(m *Marker) int {
	return idx.position[m]
}
