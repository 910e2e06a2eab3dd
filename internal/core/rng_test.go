package core

import "testing"

func TestRNGDeterministicPerSeed(t *testing.T) {
	a, b := NewRNG(3).Source(), NewRNG(3).Source()
	for i := 0; i < 64; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("draw %d differs between identical seeds", i)
		}
	}
}

func TestFillProb(t *testing.T) {
	buf := make([]uint8, 4096)
	FillProb(NewRNG(1).Source(), buf, 0.3)

	alive := 0
	for _, v := range buf {
		if v != CellDead && v != CellAlive {
			t.Fatalf("FillProb wrote value %d", v)
		}
		if v == CellAlive {
			alive++
		}
	}
	// Expectation is 1229; allow a generous band.
	if alive < 1000 || alive > 1460 {
		t.Fatalf("FillProb set %d of 4096 cells at p=0.3", alive)
	}
}

func TestFillProbLeavesExistingCells(t *testing.T) {
	buf := make([]uint8, 256)
	for i := range buf {
		buf[i] = CellDying
	}
	FillProb(NewRNG(2).Source(), buf, 0.3)
	for i, v := range buf {
		if v != CellDying && v != CellAlive {
			t.Fatalf("cell %d = %d, want dying or alive", i, v)
		}
	}
}
