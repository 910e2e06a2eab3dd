package core

import "testing"

func TestFixedStepFirstCallTicks(t *testing.T) {
	fs := NewFixedStep(10)
	if !fs.ShouldStep() {
		t.Fatal("first call after construction did not tick")
	}
}

func TestFixedStepResetPrimesNextTick(t *testing.T) {
	fs := NewFixedStep(1)
	fs.ShouldStep()
	// At 1 TPS the second immediate call cannot have accumulated a full
	// step on its own.
	if fs.ShouldStep() {
		t.Fatal("ticked twice with no elapsed time")
	}
	fs.Reset()
	if !fs.ShouldStep() {
		t.Fatal("call after Reset did not tick")
	}
}

func TestFixedStepDefaultsBadTPS(t *testing.T) {
	fs := NewFixedStep(0)
	if fs.step <= 0 {
		t.Fatal("non-positive TPS left a non-positive step")
	}
	fs.SetTPS(-5)
	if fs.step <= 0 {
		t.Fatal("SetTPS(-5) left a non-positive step")
	}
}
