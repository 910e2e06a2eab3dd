package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(5), NewRNG(5)
	for i := 0; i < 64; i++ {
		if a.Bool() != b.Bool() {
			t.Fatalf("draw %d differs between identical seeds", i)
		}
	}
}

func TestFillSparse(t *testing.T) {
	buf := make([]uint8, 4096)
	FillSparse(NewRNG(1).Source(), buf, 8)

	ones := 0
	for _, v := range buf {
		if v > 1 {
			t.Fatalf("FillSparse wrote value %d", v)
		}
		if v == 1 {
			ones++
		}
	}
	// Expectation is 512; allow a generous band.
	if ones < 384 || ones > 640 {
		t.Fatalf("FillSparse set %d cells of 4096 at odds 8", ones)
	}

	// A dirty buffer is fully overwritten.
	for i := range buf {
		buf[i] = 9
	}
	FillSparse(NewRNG(2).Source(), buf, 2)
	for i, v := range buf {
		if v > 1 {
			t.Fatalf("stale value %d survived at index %d", v, i)
		}
	}
}
