// Package engine orchestrates one reconciliation run: the upfront marker
// matching pass, the streaming three-reader genotype pass through the
// sliding-window fusion engine, and the conformed VCF and verdict log it
// produces. It holds no state across runs and never reads a config file
// itself; every tunable constant arrives through the options the caller
// resolved.
package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/biostrand/gtconform/internal/emit"
	"github.com/biostrand/gtconform/internal/genotype"
	"github.com/biostrand/gtconform/internal/marker"
	"github.com/biostrand/gtconform/internal/match"
	"github.com/biostrand/gtconform/internal/phase"
	"github.com/biostrand/gtconform/internal/vcfio"
	"github.com/biostrand/gtconform/internal/window"
)

// sourceVersion is emitted in the conformed VCF's ##source line.
const sourceVersion = "gtconform"

type orderedEntry struct {
	pair     *match.Pair
	rejected *match.Rejection
}

// Run executes one reconciliation. It returns a non-nil error for every
// fatal condition (spec §7 categories 1, 2, and 4: configuration, input
// integrity, resource); semantic per-variant rejections (category 3) are
// logged and never surface as an error.
func Run(p Params, opts window.Options, minNSamples int, log *zap.Logger) error {
	if err := checkNoPathCollision(p); err != nil {
		return err
	}

	interval, err := vcfio.ParseChromInterval(p.Chrom)
	if err != nil {
		return fmt.Errorf("chrom=%s: %w", p.Chrom, err)
	}

	registry := vcfio.NewChromRegistry()

	log.Info("matching target markers against reference",
		zap.String("ref", p.Ref), zap.String("gt", p.Gt), zap.String("chrom", p.Chrom))
	targOrder, pairs, rejections, err := matchedMarkers(p, interval, registry)
	if err != nil {
		return err
	}
	log.Info("marker matching complete", zap.Int("matched", len(pairs)), zap.Int("rejected", len(rejections)))
	ordered := orderEntries(targOrder, pairs, rejections)

	var excluded map[string]struct{}
	if p.ExcludeSamples != "" {
		excluded, err = vcfio.LoadExcludedSamples(p.ExcludeSamples)
		if err != nil {
			return fmt.Errorf("excludesamples=%s: %w", p.ExcludeSamples, err)
		}
	}

	refIt, err := vcfio.NewReader(p.Ref, vcfio.Options{ChromInterval: interval, Registry: registry})
	if err != nil {
		return fmt.Errorf("opening ref=%s: %w", p.Ref, err)
	}
	defer refIt.Close()
	filtTargIt, err := vcfio.NewReader(p.Gt, vcfio.Options{ChromInterval: interval, Excluded: excluded, Registry: registry})
	if err != nil {
		return fmt.Errorf("opening gt=%s (filtered pass): %w", p.Gt, err)
	}
	defer filtTargIt.Close()
	unfiltTargIt, err := vcfio.NewReader(p.Gt, vcfio.Options{ChromInterval: interval, Registry: registry})
	if err != nil {
		return fmt.Errorf("opening gt=%s (unfiltered pass): %w", p.Gt, err)
	}
	defer unfiltTargIt.Close()

	if minNSamples > 0 && len(unfiltTargIt.SampleNames()) < minNSamples {
		log.Warn("target sample count is below the advisory floor; frequency and correlation evidence may be unreliable",
			zap.Int("nSamples", len(unfiltTargIt.SampleNames())), zap.Int("floor", minNSamples))
	}

	logFile, err := createFile(p.Out + ".log")
	if err != nil {
		return err
	}
	defer logFile.Close()
	vLog := emit.NewLogger(logFile)
	if err := vLog.WriteHeader(); err != nil {
		return fmt.Errorf("writing %s.log header: %w", p.Out, err)
	}

	vcfFile, err := vcfio.CreateGzipFile(p.Out + ".vcf.gz")
	if err != nil {
		return fmt.Errorf("creating %s.vcf.gz: %w", p.Out, err)
	}
	defer vcfFile.Close()
	vcfWriter := emit.NewVCFWriter(vcfFile)
	if err := vcfWriter.WriteHeader(unfiltTargIt.SampleNames(), sourceVersion); err != nil {
		return fmt.Errorf("writing %s.vcf.gz header: %w", p.Out, err)
	}

	cursor := 0
	var pullErr error
	next := func() (*window.Slot, bool) {
		for cursor < len(ordered) {
			entry := ordered[cursor]
			cursor++
			if entry.rejected != nil {
				if err := vLog.WriteRejected(entry.rejected.TargMarker, string(entry.rejected.Reason)); err != nil {
					pullErr = fmt.Errorf("writing log: %w", err)
					return nil, false
				}
				continue
			}
			slot, err := nextConformSlot(refIt, filtTargIt, unfiltTargIt, entry.pair)
			if err != nil {
				pullErr = err
				return nil, false
			}
			return slot, true
		}
		return nil, false
	}

	eng := window.NewEngine(opts)
	nMatched, nPass := 0, 0
	emitBatch := func(batch []window.Retired) error {
		for _, r := range batch {
			merged := r.AllelePhase
			if p.Strict || r.AllelePhase == phase.Unknown {
				merged = window.FinalPhase(r.AllelePhase, r.FreqPhase, r.CorPhase)
			}
			if err := vLog.WriteMatched(r.Slot.FiltTarg.Marker, r.AllelePhase, r.FreqPhase, r.CorPhase, merged); err != nil {
				return fmt.Errorf("writing log: %w", err)
			}
			nMatched++
			switch merged {
			case phase.Identical:
				if err := vcfWriter.WriteRecord(r.Slot.TargDose); err != nil {
					return fmt.Errorf("writing vcf record: %w", err)
				}
				nPass++
			case phase.Opposite:
				if err := vcfWriter.WriteRecord(r.Slot.FlippedTargDose); err != nil {
					return fmt.Errorf("writing vcf record: %w", err)
				}
				nPass++
			}
		}
		return nil
	}

	for cursor < len(ordered) {
		retired := eng.Advance(next)
		if pullErr != nil {
			return pullErr
		}
		if err := emitBatch(retired); err != nil {
			return err
		}
	}
	if err := emitBatch(eng.Flush()); err != nil {
		return err
	}

	if err := vLog.Flush(); err != nil {
		return fmt.Errorf("flushing %s.log: %w", p.Out, err)
	}
	if err := vcfWriter.Flush(); err != nil {
		return fmt.Errorf("flushing %s.vcf.gz: %w", p.Out, err)
	}
	log.Info("reconciliation complete", zap.Int("scored", nMatched), zap.Int("written", nPass))
	return nil
}

func orderEntries(targOrder []*marker.Marker, pairs []match.Pair, rejections []match.Rejection) []orderedEntry {
	pairByTarg := make(map[*marker.Marker]*match.Pair, len(pairs))
	for i := range pairs {
		pairByTarg[pairs[i].TargMarker] = &pairs[i]
	}
	rejByTarg := make(map[*marker.Marker]*match.Rejection, len(rejections))
	for i := range rejections {
		rejByTarg[rejections[i].TargMarker] = &rejections[i]
	}

	ordered := make([]orderedEntry, 0, len(targOrder))
	for _, m := range targOrder {
		switch {
		case pairByTarg[m] != nil:
			ordered = append(ordered, orderedEntry{pair: pairByTarg[m]})
		case rejByTarg[m] != nil:
			ordered = append(ordered, orderedEntry{rejected: rejByTarg[m]})
		}
	}
	return ordered
}

// nextConformSlot reads the reference and both target views' next records
// matching pair's markers, scanning each reader forward past any record
// the matching pass already rejected.
func nextConformSlot(refIt, filtTargIt, unfiltTargIt *vcfio.Reader, pair *match.Pair) (*window.Slot, error) {
	refRec, err := readRec(refIt, pair.RefMarker)
	if err != nil {
		return nil, err
	}
	filtRec, err := readRec(filtTargIt, pair.TargMarker)
	if err != nil {
		return nil, err
	}
	unfiltRec, err := readRec(unfiltTargIt, pair.TargMarker)
	if err != nil {
		return nil, err
	}
	return window.NewSlot(pair.RefMarker, refRec, filtRec, unfiltRec, pair.Strand)
}

// readRec advances r past any record other than want, returning want's
// genotype record. Reaching EOF first means the input file changed
// between the matching pass and this streaming pass.
func readRec(r *vcfio.Reader, want *marker.Marker) (*genotype.Record, error) {
	for {
		m, rec, err := r.Next()
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, fmt.Errorf("input VCF file changed since it was matched: expected marker at %s:%d not found", want.Chrom, want.Pos)
		}
		if m.Equal(want) {
			return rec, nil
		}
	}
}

func createFile(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, nil
}

func checkNoPathCollision(p Params) error {
	inputs := []string{p.Ref, p.Gt}
	outputs := []string{p.Out + ".vcf.gz", p.Out + ".log"}
	for _, in := range inputs {
		inAbs, err := filepath.Abs(in)
		if err != nil {
			continue
		}
		for _, out := range outputs {
			outAbs, err := filepath.Abs(out)
			if err != nil {
				continue
			}
			if inAbs == outAbs {
				return fmt.Errorf("output path %s collides with input %s", out, in)
			}
		}
	}
	return nil
}
