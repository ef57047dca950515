package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(7), NewRNG(7)
	for i := 0; i < 100; i++ {
		if x, y := a.IntN(1000), b.IntN(1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
	if a.Draws() != 100 || a.Seed() != 7 {
		t.Fatalf("draws=%d seed=%d", a.Draws(), a.Seed())
	}
	c := NewRNG(8)
	same := true
	for i := 0; i < 20; i++ {
		if a.IntN(1000) != c.IntN(1000) {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds produced identical streams")
	}
}

func TestRNGIntNRange(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 1000; i++ {
		if v := r.IntN(3); v < 0 || v >= 3 {
			t.Fatalf("IntN(3) = %d", v)
		}
	}
}
