package genotype

import "gonum.org/v1/gonum/stat"

// Correlation returns the Pearson correlation of x and y's per-sample dose
// arrays, restricted to samples where both are non-missing. It returns 0
// if fewer than one informative sample remains or either dose array is
// constant over the informative samples. A nil view also yields 0,
// matching the conventions used when the corresponding Dose view was
// suppressed because the strand orientation it would represent is ruled
// out by the allele-symbol comparison.
//
// x and y must have the same sample count; a mismatch reflects two dose
// views drawn from different cohorts and is a programming error, not a
// data error, so it panics rather than returning an error value.
func Correlation(x, y *Dose) float64 {
	if x == nil || y == nil {
		return 0
	}
	if len(x.dose) != len(y.dose) {
		panic("genotype: correlation of dose arrays with different sample counts")
	}

	var cnt, sumX, sumY, sumXX, sumXY, sumYY int64
	xs := make([]float64, 0, len(x.dose))
	ys := make([]float64, 0, len(y.dose))
	for i := range x.dose {
		vx, vy := x.dose[i], y.dose[i]
		if vx < 0 || vy < 0 {
			continue
		}
		cnt++
		sumX += int64(vx)
		sumY += int64(vy)
		sumXX += int64(vx) * int64(vx)
		sumXY += int64(vx) * int64(vy)
		sumYY += int64(vy) * int64(vy)
		xs = append(xs, float64(vx))
		ys = append(ys, float64(vy))
	}
	if cnt == 0 {
		return 0
	}
	if cnt*sumXX == sumX*sumX || cnt*sumYY == sumY*sumY {
		return 0
	}
	return stat.Correlation(xs, ys, nil)
}
