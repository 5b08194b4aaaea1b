package genotype

import (
	"errors"

	"github.com/biostrand/gtconform/internal/marker"
)

// ErrInconsistentData is returned when a target record's alleles cannot be
// mapped onto the reference marker's allele list, or when a strand flip is
// requested on a marker with no single-base allele to flip.
var ErrInconsistentData = errors.New("inconsistent-data")

// Dose maps a target record's genotypes onto a reference marker's allele
// numbering and tabulates, per sample, the dose of a chosen reference
// allele, and, per reference allele, the total observed haplotype count.
type Dose struct {
	RefMarker  *marker.Marker
	RefAllele  int
	alleleMap  []int // target allele index -> reference allele index
	dose       []int // per filtered-sample dose of RefAllele, -1 if missing
	counts     []int // per reference allele index, total haplotype count
	unfiltered *Record
}

// NewDose builds a Dose view of filtTarg (and, for VCF emission, the
// corresponding unfiltTarg) against refMarker's refAllele, optionally
// strand-flipping the target alleles first.
//
// filtTarg and unfiltTarg must describe the same marker; that marker's
// alleles (after flipping, if flip is true) must be a subset of
// refMarker's alleles.
func NewDose(refMarker *marker.Marker, refAllele int, filtTarg, unfiltTarg *Record, flip bool) (*Dose, error) {
	if !filtTarg.Marker.Equal(unfiltTarg.Marker) {
		return nil, ErrInconsistentData
	}
	if refAllele < 0 || refAllele >= refMarker.NAlleles() {
		return nil, errors.New("reference allele index out of range")
	}

	targMarker := filtTarg.Marker
	if flip {
		flipped := targMarker.FlipStrand()
		sameAsBefore := true
		for i, a := range flipped.Alleles {
			if a != targMarker.Alleles[i] {
				sameAsBefore = false
				break
			}
		}
		if sameAsBefore {
			return nil, ErrInconsistentData
		}
		targMarker = flipped
	}

	alleleMap, ok := buildAlleleMap(targMarker, refMarker)
	if !ok {
		return nil, ErrInconsistentData
	}
	targAllele := indexOf(alleleMap, refAllele)
	if targAllele < 0 {
		return nil, ErrInconsistentData
	}

	return &Dose{
		RefMarker:  refMarker,
		RefAllele:  refAllele,
		alleleMap:  alleleMap,
		dose:       doseOf(filtTarg, targAllele),
		counts:     mappedCounts(filtTarg, alleleMap),
		unfiltered: unfiltTarg,
	}, nil
}

func buildAlleleMap(domain, codomain *marker.Marker) ([]int, bool) {
	index := make(map[string]int, codomain.NAlleles())
	for i, a := range codomain.Alleles {
		index[a] = i
	}
	out := make([]int, domain.NAlleles())
	for i, a := range domain.Alleles {
		j, ok := index[a]
		if !ok {
			return nil, false
		}
		out[i] = j
	}
	return out, true
}

func indexOf(xs []int, v int) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return -1
}

func doseOf(rec *Record, targAllele int) []int {
	d := make([]int, rec.NSamples())
	for i := range d {
		a1, a2 := rec.Allele1(i), rec.Allele2(i)
		if a1 == MissingAllele || a2 == MissingAllele {
			d[i] = -1
			continue
		}
		n := 0
		if a1 == targAllele {
			n++
		}
		if a2 == targAllele {
			n++
		}
		d[i] = n
	}
	return d
}

func mappedCounts(rec *Record, alleleMap []int) []int {
	max := 0
	for _, v := range alleleMap {
		if v > max {
			max = v
		}
	}
	counts := make([]int, max+1)
	for j := 0; j < rec.NHaps(); j++ {
		a := rec.HapAllele(j)
		if a >= 0 {
			counts[alleleMap[a]]++
		}
	}
	return counts
}

// NSamples returns the number of filtered samples.
func (d *Dose) NSamples() int {
	return len(d.dose)
}

// DoseAt returns the dose of RefAllele for filtered sample i, or -1 if
// missing.
func (d *Dose) DoseAt(i int) int {
	return d.dose[i]
}

// Count returns the total haplotype count mapped to reference allele
// index a.
func (d *Dose) Count(a int) int {
	if a < 0 || a >= len(d.counts) {
		return 0
	}
	return d.counts[a]
}

// NNonmissingAlleles is the sum of Count over every reference allele.
func (d *Dose) NNonmissingAlleles() int {
	total := 0
	for _, c := range d.counts {
		total += c
	}
	return total
}

// AlleleMap returns the target-allele-index -> reference-allele-index
// mapping used to render this view's genotypes in reference numbering.
func (d *Dose) AlleleMap() []int {
	return d.alleleMap
}

// Unfiltered returns the unfiltered record backing this view, for VCF
// emission.
func (d *Dose) Unfiltered() *Record {
	return d.unfiltered
}
