package vcfio

import (
	"path/filepath"
	"testing"

	"github.com/biostrand/gtconform/internal/emit"
	"github.com/biostrand/gtconform/internal/genotype"
	"github.com/biostrand/gtconform/internal/marker"
)

func TestGzipWriterRoundTripsThroughReader(t *testing.T) {
	m, err := marker.New("3", 42, []string{"rs9"}, []string{"A", "G"}, -1)
	if err != nil {
		t.Fatalf("marker.New: %v", err)
	}
	haps := [][2]int{{0, 1}, {1, 1}}
	rec, err := genotype.NewRecord(m, haps, []bool{true, false})
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	dose, err := genotype.NewDose(m, 0, rec, rec, false)
	if err != nil {
		t.Fatalf("NewDose: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.vcf.gz")
	gz, err := CreateGzipFile(path)
	if err != nil {
		t.Fatalf("CreateGzipFile: %v", err)
	}
	vw := emit.NewVCFWriter(gz)
	if err := vw.WriteHeader([]string{"A", "B"}, "gtconform-test"); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if err := vw.WriteRecord(dose); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}
	if err := vw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := NewReader(path, Options{})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Close()

	gotMarker, gotRec, err := r.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if gotMarker == nil {
		t.Fatal("Next returned nil marker")
	}
	if gotMarker.Chrom != m.Chrom || gotMarker.Pos != m.Pos || gotMarker.Alleles[0] != "A" || gotMarker.Alleles[1] != "G" {
		t.Errorf("round-tripped marker = %+v, want chrom/pos/alleles matching %+v", gotMarker, m)
	}
	if gotRec.Allele1(0) != 0 || gotRec.Allele2(0) != 1 || !gotRec.IsPhased(0) {
		t.Errorf("round-tripped sample0 = %d/%d phased=%v", gotRec.Allele1(0), gotRec.Allele2(0), gotRec.IsPhased(0))
	}
	if gotRec.Allele1(1) != 1 || gotRec.Allele2(1) != 1 {
		t.Errorf("round-tripped sample1 = %d/%d", gotRec.Allele1(1), gotRec.Allele2(1))
	}
}
