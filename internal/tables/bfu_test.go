package tables

import "testing"

func TestBFUSizesSumTo512(t *testing.T) {
	sum := 0
	for i := 0; i < NumBFU; i++ {
		size, err := BFUSize(i)
		if err != nil {
			t.Fatalf("BFUSize(%d): %v", i, err)
		}
		sum += size
	}
	if sum != 512 {
		t.Errorf("sum of BFU sizes = %d, want 512", sum)
	}
}

func TestBFUSizesFromAllowedSet(t *testing.T) {
	allowed := map[int]bool{4: true, 6: true, 7: true, 8: true, 9: true, 10: true, 12: true, 20: true}
	for i := 0; i < NumBFU; i++ {
		size, _ := BFUSize(i)
		if !allowed[size] {
			t.Errorf("BFU %d has disallowed size %d", i, size)
		}
	}
}

func TestBandBoundaries(t *testing.T) {
	cases := []struct {
		i    int
		want Band
	}{
		{0, BandLow}, {19, BandLow},
		{20, BandMid}, {35, BandMid},
		{36, BandHigh}, {51, BandHigh},
	}
	for _, c := range cases {
		got, err := BFUBand(c.i)
		if err != nil {
			t.Fatalf("BFUBand(%d): %v", c.i, err)
		}
		if got != c.want {
			t.Errorf("BFUBand(%d) = %v, want %v", c.i, got, c.want)
		}
	}
}

func TestBandOffsetsAlignToBandBoundaries(t *testing.T) {
	start, _ := BFUStartLong(20)
	if start != 128 {
		t.Errorf("BFU 20 (first mid BFU) starts at %d, want 128", start)
	}
	start, _ = BFUStartLong(36)
	if start != 256 {
		t.Errorf("BFU 36 (first high BFU) starts at %d, want 256", start)
	}
}

func TestInvalidBFUIndex(t *testing.T) {
	if _, err := BFUSize(-1); err != ErrInvalidBFUIndex {
		t.Errorf("BFUSize(-1) error = %v, want ErrInvalidBFUIndex", err)
	}
	if _, err := BFUSize(NumBFU); err != ErrInvalidBFUIndex {
		t.Errorf("BFUSize(NumBFU) error = %v, want ErrInvalidBFUIndex", err)
	}
}

func TestNBfuIndex(t *testing.T) {
	for idx, count := range ActiveBFUCounts {
		got, ok := NBfuIndex(count)
		if !ok || got != idx {
			t.Errorf("NBfuIndex(%d) = (%d, %v), want (%d, true)", count, got, ok, idx)
		}
	}
	if _, ok := NBfuIndex(21); ok {
		t.Error("NBfuIndex(21) = ok, want not ok")
	}
}
