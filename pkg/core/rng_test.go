package core

import "testing"

func TestRNGIsDeterministic(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 100; i++ {
		if a.IntN(1000) != b.IntN(1000) {
			t.Fatal("same seed produced different sequences")
		}
	}
}

func TestRNGRanges(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 500; i++ {
		if v := r.Range(5, 10); v < 5 || v >= 10 {
			t.Fatalf("Range(5,10) = %d", v)
		}
	}
	if r.Range(7, 7) != 7 || r.Range(9, 3) != 9 {
		t.Fatal("degenerate range should return lo")
	}
	if r.IntN(0) != 0 || r.IntN(-3) != 0 {
		t.Fatal("IntN on an empty range should return 0")
	}
}

func TestRNGChanceSaturates(t *testing.T) {
	r := NewRNG(5)
	for i := 0; i < 100; i++ {
		if r.Chance(0) || r.Chance(-1) {
			t.Fatal("zero chance fired")
		}
		if !r.Chance(1) || !r.Chance(2) {
			t.Fatal("certain chance missed")
		}
		if r.Ratio(1, 0) {
			t.Fatal("ratio with zero denominator fired")
		}
		if !r.Ratio(3, 3) {
			t.Fatal("ratio 3/3 missed")
		}
	}
}

func TestRNGShuffleKeepsElements(t *testing.T) {
	r := NewRNG(9)
	xs := []int{0, 1, 2, 3, 4, 5}
	r.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
	seen := map[int]bool{}
	for _, x := range xs {
		seen[x] = true
	}
	if len(seen) != 6 {
		t.Fatalf("shuffle lost elements: %v", xs)
	}
}
