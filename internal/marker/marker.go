// Package marker models a genomic variant site: chromosome, position,
// identifiers, and allele list, independent of any per-sample genotype
// data.
package marker

import (
	"errors"
	"fmt"
)

var complement = map[string]string{
	"A": "T",
	"C": "G",
	"G": "C",
	"T": "A",
}

// Marker is an immutable genomic variant site. Allele index 0 is always the
// reference allele.
type Marker struct {
	Chrom   string
	Pos     int
	IDs     []string
	Alleles []string
	End     int // -1 if no end annotation
}

// New constructs a Marker, enforcing the data model's invariants: at least
// two alleles, and no empty allele symbol.
func New(chrom string, pos int, ids []string, alleles []string, end int) (*Marker, error) {
	if len(alleles) < 2 {
		return nil, fmt.Errorf("marker at %s:%d has fewer than 2 alleles", chrom, pos)
	}
	for _, a := range alleles {
		if a == "" {
			return nil, errors.New("marker allele symbol is empty")
		}
	}
	return &Marker{Chrom: chrom, Pos: pos, IDs: ids, Alleles: alleles, End: end}, nil
}

// NAlleles returns the number of alleles.
func (m *Marker) NAlleles() int {
	return len(m.Alleles)
}

// IsComplementable reports whether every allele is either a single base in
// {A,C,G,T} or a purely symbolic allele (e.g. "<DEL>"), the precondition
// for FlipStrand.
func (m *Marker) IsComplementable() bool {
	for _, a := range m.Alleles {
		if _, ok := complement[a]; ok {
			continue
		}
		if len(a) < 3 || a[0] != '<' || a[len(a)-1] != '>' {
			return false
		}
	}
	return true
}

// FlipStrand returns a new Marker whose single-base alleles are replaced by
// their Watson-Crick complement; symbolic (non-single-base) alleles are
// left unchanged. Allele indices still correspond pointwise to m's.
func (m *Marker) FlipStrand() *Marker {
	flipped := make([]string, len(m.Alleles))
	for i, a := range m.Alleles {
		if c, ok := complement[a]; ok {
			flipped[i] = c
		} else {
			flipped[i] = a
		}
	}
	return &Marker{Chrom: m.Chrom, Pos: m.Pos, IDs: m.IDs, Alleles: flipped, End: m.End}
}

// AlleleSet returns the distinct allele symbols as a set.
func (m *Marker) AlleleSet() map[string]struct{} {
	set := make(map[string]struct{}, len(m.Alleles))
	for _, a := range m.Alleles {
		set[a] = struct{}{}
	}
	return set
}

// Equal reports whether m and other name the same variant site: same
// chromosome, position, and allele list. Identifiers are not compared,
// since a record re-read from a second pass over the same file may carry
// the same site under an equivalent but differently-ordered ID list.
func (m *Marker) Equal(other *Marker) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	if m.Chrom != other.Chrom || m.Pos != other.Pos || len(m.Alleles) != len(other.Alleles) {
		return false
	}
	for i, a := range m.Alleles {
		if other.Alleles[i] != a {
			return false
		}
	}
	return true
}

// String renders the marker's first five VCF columns, CHROM through ALT,
// matching the per-variant log and VCF output conventions.
func (m *Marker) String() string {
	id := "."
	if len(m.IDs) > 0 {
		id = m.IDs[0]
		for _, other := range m.IDs[1:] {
			id += ";" + other
		}
	}
	alt := ""
	for i, a := range m.Alleles[1:] {
		if i > 0 {
			alt += ","
		}
		alt += a
	}
	return fmt.Sprintf("%s\t%d\t%s\t%s\t%s", m.Chrom, m.Pos, id, m.Alleles[0], alt)
}
