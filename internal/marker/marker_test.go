package marker

import (
	"reflect"
	"testing"
)

func mustNew(t *testing.T, chrom string, pos int, alleles []string) *Marker {
	t.Helper()
	m, err := New(chrom, pos, nil, alleles, -1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestFlipStrandComplementsSingleBaseAllelesOnly(t *testing.T) {
	m := mustNew(t, "1", 100, []string{"A", "G"})
	flipped := m.FlipStrand()
	if !reflect.DeepEqual(flipped.Alleles, []string{"T", "C"}) {
		t.Errorf("FlipStrand() = %v, want [T C]", flipped.Alleles)
	}
}

func TestFlipStrandLeavesSymbolicAllelesUnchanged(t *testing.T) {
	m := mustNew(t, "1", 100, []string{"A", "<DEL>"})
	flipped := m.FlipStrand()
	if !reflect.DeepEqual(flipped.Alleles, []string{"T", "<DEL>"}) {
		t.Errorf("FlipStrand() = %v, want [T <DEL>]", flipped.Alleles)
	}
}

func TestFlipStrandTwiceRestoresOriginalAlleles(t *testing.T) {
	m := mustNew(t, "1", 100, []string{"A", "G"})
	roundTrip := m.FlipStrand().FlipStrand()
	if !reflect.DeepEqual(roundTrip.Alleles, m.Alleles) {
		t.Errorf("double FlipStrand() = %v, want %v", roundTrip.Alleles, m.Alleles)
	}
}

func TestNewRejectsFewerThanTwoAlleles(t *testing.T) {
	if _, err := New("1", 1, nil, []string{"A"}, -1); err == nil {
		t.Error("New with a single allele should fail")
	}
}

func TestNewRejectsEmptyAllele(t *testing.T) {
	if _, err := New("1", 1, nil, []string{"A", ""}, -1); err == nil {
		t.Error("New with an empty allele symbol should fail")
	}
}
