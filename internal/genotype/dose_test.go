package genotype

import (
	"testing"

	"github.com/biostrand/gtconform/internal/marker"
)

func newMarker(t *testing.T, alleles []string) *marker.Marker {
	t.Helper()
	m, err := marker.New("1", 1000, nil, alleles, -1)
	if err != nil {
		t.Fatalf("marker.New: %v", err)
	}
	return m
}

func homRecord(t *testing.T, m *marker.Marker, allele int, n int) *Record {
	t.Helper()
	haps := make([][2]int, n)
	phased := make([]bool, n)
	for i := range haps {
		haps[i] = [2]int{allele, allele}
	}
	rec, err := NewRecord(m, haps, phased)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	return rec
}

func TestDoseIdentityMapping(t *testing.T) {
	m := newMarker(t, []string{"A", "G"})
	rec := homRecord(t, m, 1, 20)

	d, err := NewDose(m, 0, rec, rec, false)
	if err != nil {
		t.Fatalf("NewDose: %v", err)
	}
	for i := 0; i < 20; i++ {
		if got := d.DoseAt(i); got != 0 {
			t.Errorf("DoseAt(%d) = %d, want 0 (no copies of reference allele)", i, got)
		}
	}
	if got := d.Count(1); got != 40 {
		t.Errorf("Count(1) = %d, want 40", got)
	}
	if got := d.NNonmissingAlleles(); got != 40 {
		t.Errorf("NNonmissingAlleles() = %d, want 40", got)
	}
}

func TestDoseFlipRejectsMarkerWithNoSingleBaseAllele(t *testing.T) {
	m := newMarker(t, []string{"<DEL>", "<INS>"})
	rec := homRecord(t, m, 0, 5)

	if _, err := NewDose(m, 0, rec, rec, true); err != ErrInconsistentData {
		t.Errorf("NewDose with flip on symbolic alleles: err = %v, want ErrInconsistentData", err)
	}
}

func TestDoseFlipMapsComplementedAlleles(t *testing.T) {
	ref := newMarker(t, []string{"A", "G"})
	targ := newMarker(t, []string{"T", "C"})
	rec := homRecord(t, targ, 0, 4) // homozygous T, which is A's complement

	d, err := NewDose(ref, 0, rec, rec, true)
	if err != nil {
		t.Fatalf("NewDose: %v", err)
	}
	for i := 0; i < 4; i++ {
		if got := d.DoseAt(i); got != 2 {
			t.Errorf("DoseAt(%d) = %d, want 2 (T maps to reference allele A)", i, got)
		}
	}
}

func TestDoseMissingHaplotype(t *testing.T) {
	m := newMarker(t, []string{"A", "G"})
	haps := [][2]int{{0, MissingAllele}, {1, 1}}
	rec, err := NewRecord(m, haps, []bool{false, true})
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	d, err := NewDose(m, 0, rec, rec, false)
	if err != nil {
		t.Fatalf("NewDose: %v", err)
	}
	if got := d.DoseAt(0); got != -1 {
		t.Errorf("DoseAt(0) = %d, want -1 (missing haplotype)", got)
	}
	if got := d.DoseAt(1); got != 0 {
		t.Errorf("DoseAt(1) = %d, want 0", got)
	}
	if got := d.NNonmissingAlleles(); got != 2 {
		t.Errorf("NNonmissingAlleles() = %d, want 2", got)
	}
}
