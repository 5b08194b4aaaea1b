// Package genotype holds per-sample genotype records and the statistics
// derived from them: allele-dose tabulation, allele-frequency concordance,
// and dosage correlation.
package genotype

import (
	"fmt"

	"github.com/biostrand/gtconform/internal/marker"
)

// MissingAllele is the sentinel haplotype value for a missing call.
const MissingAllele = -1

// Record is an immutable per-sample genotype record for one marker: for
// each sample, two haplotype allele indices (or MissingAllele) and a
// phased/unphased flag.
type Record struct {
	Marker     *marker.Marker
	Haplotypes [][2]int
	Phased     []bool
}

// NewRecord constructs a Record, validating that haplotypes and phased
// flags describe the same number of samples.
func NewRecord(m *marker.Marker, haplotypes [][2]int, phased []bool) (*Record, error) {
	if len(haplotypes) != len(phased) {
		return nil, fmt.Errorf("record for %s:%d: %d haplotype pairs but %d phased flags",
			m.Chrom, m.Pos, len(haplotypes), len(phased))
	}
	return &Record{Marker: m, Haplotypes: haplotypes, Phased: phased}, nil
}

// NSamples returns the number of samples in the record.
func (r *Record) NSamples() int {
	return len(r.Haplotypes)
}

// Allele1 returns the first haplotype's allele index for sample i, or
// MissingAllele.
func (r *Record) Allele1(i int) int {
	return r.Haplotypes[i][0]
}

// Allele2 returns the second haplotype's allele index for sample i, or
// MissingAllele.
func (r *Record) Allele2(i int) int {
	return r.Haplotypes[i][1]
}

// IsPhased reports whether sample i's genotype is phased.
func (r *Record) IsPhased(i int) bool {
	return r.Phased[i]
}

// NHaps returns the total number of haplotype slots, 2*NSamples.
func (r *Record) NHaps() int {
	return 2 * len(r.Haplotypes)
}

// HapAllele returns the allele index of the j-th haplotype slot (0-indexed
// over all 2*NSamples slots), or MissingAllele.
func (r *Record) HapAllele(j int) int {
	pair := r.Haplotypes[j/2]
	return pair[j%2]
}
