package mdct

import (
	"math"
	"testing"
)

func TestNew_ValidSizes(t *testing.T) {
	for _, n := range []int{64, 256, 512} {
		m, err := New(n)
		if err != nil {
			t.Fatalf("New(%d) returned error: %v", n, err)
		}
		if m.N != n {
			t.Errorf("N = %d, want %d", m.N, n)
		}
		if m.N2 != n/2 {
			t.Errorf("N2 = %d, want %d", m.N2, n/2)
		}
	}
}

func TestNew_RejectsInvalidSizes(t *testing.T) {
	for _, n := range []int{0, -4, 3, 6, 100} {
		if _, err := New(n); err == nil {
			t.Errorf("New(%d) = nil error, want error", n)
		}
	}
}

func TestForwardInverse_DCOffset(t *testing.T) {
	m, err := New(64)
	if err != nil {
		t.Fatal(err)
	}

	x := make([]float64, 64)
	for i := range x {
		x[i] = 1.0
	}

	spec := make([]float64, 32)
	m.Forward(x, spec)

	back := make([]float64, 64)
	m.Inverse(spec, back)

	// A constant input concentrates energy in a handful of low bins;
	// the round trip should not blow up or flatten to zero.
	var energyIn, energyOut float64
	for _, v := range x {
		energyIn += v * v
	}
	for _, v := range back {
		energyOut += v * v
	}
	if energyOut == 0 {
		t.Fatal("inverse transform produced all-zero output for nonzero input")
	}
	if math.IsNaN(energyOut) || math.IsInf(energyOut, 0) {
		t.Fatalf("inverse transform produced non-finite output: %v", energyOut)
	}
}

func TestForward_Linearity(t *testing.T) {
	m, err := New(64)
	if err != nil {
		t.Fatal(err)
	}

	a := make([]float64, 64)
	b := make([]float64, 64)
	for i := range a {
		a[i] = math.Sin(float64(i))
		b[i] = math.Cos(float64(i) * 0.5)
	}
	sum := make([]float64, 64)
	for i := range sum {
		sum[i] = a[i] + b[i]
	}

	specA := make([]float64, 32)
	specB := make([]float64, 32)
	specSum := make([]float64, 32)
	m.Forward(a, specA)
	m.Forward(b, specB)
	m.Forward(sum, specSum)

	for k := range specSum {
		want := specA[k] + specB[k]
		if math.Abs(specSum[k]-want) > 1e-6 {
			t.Fatalf("linearity violated at k=%d: got %v want %v", k, specSum[k], want)
		}
	}
}
