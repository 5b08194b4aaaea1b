package window

import (
	"math"

	"github.com/biostrand/gtconform/internal/genotype"
	"github.com/biostrand/gtconform/internal/phase"
)

// Options carries the engine's tunable constants, normally sourced from the
// default values below or overridden by a config store. The engine never
// reads configuration itself; every tunable arrives through this struct.
type Options struct {
	WindowOverlap         int
	FreqZDelta            float64
	CorrCoeffHighFreq     float64
	CorrCoeffLowFreq      float64
	FreqBandLow           float64
	FreqBandHigh          float64
	MaxInconsistentStrand int
	MinStrandDiff         int
}

// DefaultOptions returns the engine's built-in tunable values.
func DefaultOptions() Options {
	return Options{
		WindowOverlap:         100,
		FreqZDelta:            4.0,
		CorrCoeffHighFreq:     5.0,
		CorrCoeffLowFreq:      7.0,
		FreqBandLow:           0.3,
		FreqBandHigh:          0.7,
		MaxInconsistentStrand: 1,
		MinStrandDiff:         2,
	}
}

// Retired is a Slot that has left the retained window, together with its
// final evidence triple.
type Retired struct {
	Slot        *Slot
	AllelePhase phase.Phase
	FreqPhase   phase.Phase
	CorPhase    phase.Phase
}

// Engine retains a sliding window of matched-marker Slots and refreshes
// their correlation-based phase evidence as the window advances. It holds
// no I/O of its own: slots are supplied by the caller through Advance, and
// retired slots are returned for the caller to log and emit.
type Engine struct {
	opts Options

	window      []*Slot
	allelePhase []phase.Phase
	freqPhase   []phase.Phase
	corPhase    []phase.Phase
}

// NewEngine builds an empty Engine with the given options.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Advance retires the non-overlapping prefix of the current window, then
// pulls new slots from next until the window again holds 2*WindowOverlap
// slots or next reports exhaustion (its second return value false), and
// recomputes correlation phase evidence across the refreshed window.
func (e *Engine) Advance(next func() (*Slot, bool)) []Retired {
	overlap := e.opts.WindowOverlap
	if overlap > len(e.window) {
		overlap = len(e.window)
	}
	overlapStart := len(e.window) - overlap
	retired := e.snapshot(0, overlapStart)

	newWindowSize := 2 * e.opts.WindowOverlap
	newWindow := append([]*Slot{}, e.window[overlapStart:]...)
	newAllele := append([]phase.Phase{}, e.allelePhase[overlapStart:]...)
	newFreq := append([]phase.Phase{}, e.freqPhase[overlapStart:]...)
	newCor := append([]phase.Phase{}, e.corPhase[overlapStart:]...)

	for len(newWindow) < newWindowSize {
		slot, ok := next()
		if !ok {
			break
		}
		newWindow = append(newWindow, slot)
		newAllele = append(newAllele, slot.AllelePhase)
		newFreq = append(newFreq, genotype.FreqPhase(slot.AbsZ(), slot.FlippedAbsZ(), e.opts.FreqZDelta))
		newCor = append(newCor, phase.Unknown)
	}

	e.window = newWindow
	e.allelePhase = newAllele
	e.freqPhase = newFreq
	e.corPhase = newCor
	e.updateCorPhase()

	return retired
}

// Flush retires every slot still held in the window. Call once the input
// supplying Advance is exhausted.
func (e *Engine) Flush() []Retired {
	retired := e.snapshot(0, len(e.window))
	e.window = nil
	e.allelePhase = nil
	e.freqPhase = nil
	e.corPhase = nil
	return retired
}

func (e *Engine) snapshot(start, end int) []Retired {
	out := make([]Retired, 0, end-start)
	for j := start; j < end; j++ {
		out = append(out, Retired{
			Slot:        e.window[j],
			AllelePhase: e.allelePhase[j],
			FreqPhase:   e.freqPhase[j],
			CorPhase:    e.corPhase[j],
		})
	}
	return out
}

type corCounts struct {
	same, opp, informative int
}

func (e *Engine) updateCorPhase() {
	counts := make([]corCounts, len(e.window))
	for j := range e.window {
		counts[j] = e.corCountsAt(j)
	}
	for j, cc := range counts {
		newPhase := e.strandFromCorCounts(cc)
		if newPhase == phase.Inconsistent {
			e.corPhase[j] = phase.Inconsistent
			continue
		}
		switch e.corPhase[j] {
		case phase.Unknown:
			e.corPhase[j] = newPhase
		case phase.Identical:
			if newPhase == phase.Opposite {
				e.corPhase[j] = phase.Inconsistent
			}
		case phase.Opposite:
			if newPhase == phase.Identical {
				e.corPhase[j] = phase.Inconsistent
			}
		}
	}
}

// corCountsAt tallies, among every other slot in the window that itself
// carries informative frequency evidence consistent with its own allele
// evidence, how many agree with or contradict the focus slot's reference
// correlation sign.
func (e *Engine) corCountsAt(index int) corCounts {
	focus := e.window[index]
	minAbsRefCor := minAbsCor(focus.RefFreq(), focus.RefRecord.NSamples(), e.opts)
	minAbsTargetCor := minAbsCor(focus.TargetFreq(), focus.FiltTarg.NSamples(), e.opts)

	var cc corCounts
	for j, anchor := range e.window {
		if j == index {
			continue
		}
		fp := e.freqPhase[j]
		if fp != phase.Identical && fp != phase.Opposite {
			continue
		}
		ap := e.allelePhase[j]
		if ap != fp && ap != phase.Unknown {
			continue
		}

		refCor := RefCor(focus, anchor)
		if math.Abs(refCor) <= minAbsRefCor {
			continue
		}
		cc.informative++

		flipAnchor := fp == phase.Opposite
		cor := TargetCor(focus, false, anchor, flipAnchor)
		fCor := TargetCor(focus, true, anchor, flipAnchor)
		switch {
		case refCor < -minAbsRefCor:
			if cor < -minAbsTargetCor {
				cc.same++
			}
			if fCor < -minAbsTargetCor {
				cc.opp++
			}
		case refCor > minAbsRefCor:
			if cor > minAbsTargetCor {
				cc.same++
			}
			if fCor > minAbsTargetCor {
				cc.opp++
			}
		}
	}
	return cc
}

// minAbsCor is the minimum absolute correlation treated as informative,
// approximating the sampling standard deviation of the correlation
// coefficient under the null of no correlation: 1/sqrt(n-1), scaled up for
// markers outside the high-heterozygosity frequency band where the
// approximation is less reliable.
func minAbsCor(freq float64, nSamples int, opts Options) float64 {
	stdDev := 1.0 / math.Sqrt(float64(nSamples-1))
	if freq > opts.FreqBandLow && freq < opts.FreqBandHigh {
		return opts.CorrCoeffHighFreq * stdDev
	}
	return opts.CorrCoeffLowFreq * stdDev
}

func (e *Engine) strandFromCorCounts(cc corCounts) phase.Phase {
	max := e.opts.MaxInconsistentStrand
	min := e.opts.MinStrandDiff
	switch {
	case cc.opp <= max && (cc.same-cc.opp) >= min:
		return phase.Identical
	case cc.same <= max && (cc.opp-cc.same) >= min:
		return phase.Opposite
	case cc.same > max && cc.opp > max:
		return phase.Inconsistent
	default:
		return phase.Unknown
	}
}

// FinalPhase fuses the three evidence phases into the verdict emitted for
// a marker. Frequency and correlation evidence are merged first; the
// result is then cross-checked against the allele-symbol evidence, which
// can only corroborate or invalidate it, never override it outright.
func FinalPhase(allelePhase, freqPhase, corPhase phase.Phase) phase.Phase {
	freqCorPhase := phase.Merge(freqPhase, corPhase)
	switch freqCorPhase {
	case phase.Identical:
		if allelePhase == phase.Identical || allelePhase == phase.Unknown {
			return phase.Identical
		}
		return phase.Inconsistent
	case phase.Opposite:
		if allelePhase == phase.Opposite || allelePhase == phase.Unknown {
			return phase.Opposite
		}
		return phase.Inconsistent
	case phase.Unknown:
		return phase.Unknown
	default:
		return phase.Inconsistent
	}
}
