// Package window holds the sliding-window comparison engine that fuses
// allele-symbol, allele-frequency, and dosage-correlation evidence into a
// single strand verdict per matched marker pair.
package window

import (
	"github.com/biostrand/gtconform/internal/genotype"
	"github.com/biostrand/gtconform/internal/marker"
	"github.com/biostrand/gtconform/internal/phase"
)

// Slot holds the reference and target genotype data for one matched
// marker pair, and the allele-dose views derived from them. TargDose is
// built only when AllelePhase is Unknown or Identical; FlippedTargDose only
// when AllelePhase is Unknown or Opposite — the orientations ruled out by
// the allele-symbol comparison are never scored.
type Slot struct {
	RefMarker  *marker.Marker
	RefRecord  *genotype.Record
	FiltTarg   *genotype.Record
	UnfiltTarg *genotype.Record

	AllelePhase phase.Phase

	RefDose         *genotype.Dose
	TargDose        *genotype.Dose
	FlippedTargDose *genotype.Dose
}

// NewSlot builds a Slot for a matched marker pair, constructing the
// allele-dose views that AllelePhase leaves plausible.
func NewSlot(refMarker *marker.Marker, refRec, filtTarg, unfiltTarg *genotype.Record, allelePhase phase.Phase) (*Slot, error) {
	refDose, err := genotype.NewDose(refMarker, 0, refRec, refRec, false)
	if err != nil {
		return nil, err
	}

	var targDose, flippedDose *genotype.Dose
	if allelePhase == phase.Unknown || allelePhase == phase.Identical {
		targDose, err = genotype.NewDose(refMarker, 0, filtTarg, unfiltTarg, false)
		if err != nil {
			return nil, err
		}
	}
	if allelePhase == phase.Unknown || allelePhase == phase.Opposite {
		flippedDose, err = genotype.NewDose(refMarker, 0, filtTarg, unfiltTarg, true)
		if err != nil {
			return nil, err
		}
	}

	return &Slot{
		RefMarker:       refMarker,
		RefRecord:       refRec,
		FiltTarg:        filtTarg,
		UnfiltTarg:      unfiltTarg,
		AllelePhase:     allelePhase,
		RefDose:         refDose,
		TargDose:        targDose,
		FlippedTargDose: flippedDose,
	}, nil
}

// AbsZ is the absolute z-statistic for equal reference-allele frequency
// between the reference and the unflipped target.
func (s *Slot) AbsZ() float64 {
	return genotype.AbsZ(s.RefDose, s.TargDose)
}

// FlippedAbsZ is the absolute z-statistic for equal reference-allele
// frequency between the reference and the strand-flipped target.
func (s *Slot) FlippedAbsZ() float64 {
	return genotype.AbsZ(s.RefDose, s.FlippedTargDose)
}

// RefFreq is the reference allele's frequency in the reference data.
func (s *Slot) RefFreq() float64 {
	return genotype.Freq(s.RefDose, 0)
}

// TargetFreq is the reference allele's frequency in the unflipped target
// data.
func (s *Slot) TargetFreq() float64 {
	return genotype.Freq(s.TargDose, 0)
}

// RefCor returns the correlation of reference-allele dosage between x and
// y's reference samples.
func RefCor(x, y *Slot) float64 {
	return genotype.Correlation(x.RefDose, y.RefDose)
}

// TargetCor returns the correlation of reference-allele dosage between x
// and y's target samples, using each slot's flipped or unflipped dose view
// as directed by flipX and flipY.
func TargetCor(x *Slot, flipX bool, y *Slot, flipY bool) float64 {
	xd := x.TargDose
	if flipX {
		xd = x.FlippedTargDose
	}
	yd := y.TargDose
	if flipY {
		yd = y.FlippedTargDose
	}
	return genotype.Correlation(xd, yd)
}
