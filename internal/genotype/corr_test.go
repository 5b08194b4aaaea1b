package genotype

import "testing"

func TestCorrelationNilViewIsZero(t *testing.T) {
	m := newMarker(t, []string{"A", "G"})
	rec := homRecord(t, m, 0, 10)
	d, err := NewDose(m, 0, rec, rec, false)
	if err != nil {
		t.Fatalf("NewDose: %v", err)
	}
	if got := Correlation(d, nil); got != 0 {
		t.Errorf("Correlation(d, nil) = %v, want 0", got)
	}
	if got := Correlation(nil, d); got != 0 {
		t.Errorf("Correlation(nil, d) = %v, want 0", got)
	}
}

func TestCorrelationConstantDoseIsZero(t *testing.T) {
	m := newMarker(t, []string{"A", "G"})
	recConstant := homRecord(t, m, 0, 12)
	dConstant, err := NewDose(m, 0, recConstant, recConstant, false)
	if err != nil {
		t.Fatalf("NewDose: %v", err)
	}

	haps := make([][2]int, 12)
	phased := make([]bool, 12)
	for i := range haps {
		if i%3 == 0 {
			haps[i] = [2]int{1, 1}
		} else {
			haps[i] = [2]int{0, 0}
		}
	}
	recVarying, err := NewRecord(m, haps, phased)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	dVarying, err := NewDose(m, 0, recVarying, recVarying, false)
	if err != nil {
		t.Fatalf("NewDose: %v", err)
	}

	if got := Correlation(dConstant, dVarying); got != 0 {
		t.Errorf("Correlation(constant, varying) = %v, want 0 (degenerate guard on constant X)", got)
	}
	if got := Correlation(dVarying, dConstant); got != 0 {
		t.Errorf("Correlation(varying, constant) = %v, want 0 (degenerate guard on constant Y)", got)
	}
}

func TestCorrelationPerfectPositive(t *testing.T) {
	m := newMarker(t, []string{"A", "G"})
	haps := make([][2]int, 10)
	phased := make([]bool, 10)
	for i := range haps {
		if i%2 == 0 {
			haps[i] = [2]int{1, 1}
		} else {
			haps[i] = [2]int{0, 0}
		}
	}
	rec, err := NewRecord(m, haps, phased)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	d, err := NewDose(m, 0, rec, rec, false)
	if err != nil {
		t.Fatalf("NewDose: %v", err)
	}

	if got := Correlation(d, d); got < 0.999 {
		t.Errorf("Correlation(d, d) = %v, want ~1.0", got)
	}
}

func TestCorrelationIgnoresMissingSamples(t *testing.T) {
	m := newMarker(t, []string{"A", "G"})
	haps := make([][2]int, 10)
	phased := make([]bool, 10)
	for i := range haps {
		if i%2 == 0 {
			haps[i] = [2]int{1, 1}
		} else {
			haps[i] = [2]int{0, 0}
		}
	}
	haps[0] = [2]int{0, MissingAllele}
	rec, err := NewRecord(m, haps, phased)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	d, err := NewDose(m, 0, rec, rec, false)
	if err != nil {
		t.Fatalf("NewDose: %v", err)
	}

	if got := Correlation(d, d); got < 0.999 {
		t.Errorf("Correlation(d, d) with one missing sample = %v, want ~1.0", got)
	}
}

func TestCorrelationMismatchedLengthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Correlation with mismatched sample counts did not panic")
		}
	}()
	m := newMarker(t, []string{"A", "G"})
	recSmall := homRecord(t, m, 0, 5)
	recBig := homRecord(t, m, 0, 6)
	dSmall, err := NewDose(m, 0, recSmall, recSmall, false)
	if err != nil {
		t.Fatalf("NewDose: %v", err)
	}
	dBig, err := NewDose(m, 0, recBig, recBig, false)
	if err != nil {
		t.Fatalf("NewDose: %v", err)
	}
	Correlation(dSmall, dBig)
}
