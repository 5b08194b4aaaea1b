package genotype

import (
	"math"

	"github.com/biostrand/gtconform/internal/phase"
)

// AbsZ returns the absolute value of the two-proportion z-statistic
// testing equal frequency of allele 0 (the reference allele) between two
// Dose views. A nil view, or a view with zero non-missing alleles, makes
// the comparison maximally distant (+Inf): the freqPhase decision then
// reliably favors whichever orientation is actually present.
func AbsZ(x, y *Dose) float64 {
	if x == nil || y == nil {
		return math.Inf(1)
	}
	xCnt, yCnt := x.Count(0), y.Count(0)
	nx, ny := x.NNonmissingAlleles(), y.NNonmissingAlleles()
	if nx == 0 || ny == 0 {
		return math.Inf(1)
	}
	if total := xCnt + yCnt; total == 0 || total == nx+ny {
		return 0
	}
	px := float64(xCnt) / float64(nx)
	py := float64(yCnt) / float64(ny)
	p := float64(xCnt+yCnt) / float64(nx+ny)
	variance := (1/float64(nx) + 1/float64(ny)) * p * (1 - p)
	return math.Abs(px-py) / math.Sqrt(variance)
}

// Freq returns the frequency of allele in d, or NaN if d is nil or has no
// non-missing alleles.
func Freq(d *Dose, allele int) float64 {
	if d == nil {
		return math.NaN()
	}
	den := d.NNonmissingAlleles()
	if den == 0 {
		return math.NaN()
	}
	return float64(d.Count(allele)) / float64(den)
}

// FreqPhase derives a phase verdict from the absolute z-statistics of the
// unflipped and flipped target orientations against the reference. delta
// is the minimum separation required to favor one orientation over the
// other (spec default 4.0).
func FreqPhase(absZ, flippedAbsZ, delta float64) phase.Phase {
	switch {
	case flippedAbsZ >= absZ+delta:
		return phase.Identical
	case absZ >= flippedAbsZ+delta:
		return phase.Opposite
	default:
		return phase.Unknown
	}
}
