package stats

import (
	"context"
	"math"
	"testing"

	"github.com/primewatch/primewatch/pkg/prime"
)

func TestSummarizePrimesTo30(t *testing.T) {
	s, err := Summarize(context.Background(), prime.Sieve(30))
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if s.Count != 10 {
		t.Errorf("Count = %d, want 10", s.Count)
	}
	if s.LargestGap != 6 || s.LargestGapAt != 23 {
		t.Errorf("largest gap = %d at %d, want 6 at 23", s.LargestGap, s.LargestGapAt)
	}
	if s.TwinPairs != 4 {
		t.Errorf("TwinPairs = %d, want 4", s.TwinPairs)
	}
	if math.Abs(s.MeanGap-3.0) > 1e-9 {
		t.Errorf("MeanGap = %v, want 3.0", s.MeanGap)
	}
	if math.Abs(s.StddevGap-math.Sqrt(2.5)) > 1e-9 {
		t.Errorf("StddevGap = %v, want sqrt(2.5)", s.StddevGap)
	}
}

func TestSummarizeDegenerateInputs(t *testing.T) {
	ctx := context.Background()

	s, err := Summarize(ctx, nil)
	if err != nil {
		t.Fatalf("Summarize(nil) failed: %v", err)
	}
	if s.Count != 0 || s.LargestGap != 0 {
		t.Errorf("Summarize(nil) = %+v, want zero summary", s)
	}

	s, err = Summarize(ctx, []int{2})
	if err != nil {
		t.Fatalf("Summarize single prime failed: %v", err)
	}
	if s.Count != 1 || s.TwinPairs != 0 {
		t.Errorf("Summarize([2]) = %+v", s)
	}

	// Two primes: one gap, stddev undefined and reported as 0.
	s, err = Summarize(ctx, []int{3, 5})
	if err != nil {
		t.Fatalf("Summarize two primes failed: %v", err)
	}
	if s.TwinPairs != 1 || s.MeanGap != 2 || s.StddevGap != 0 {
		t.Errorf("Summarize([3 5]) = %+v", s)
	}
}

func TestSummarizeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Summarize(ctx, prime.Sieve(1_000)); err == nil {
		t.Fatal("Summarize ignored a cancelled context")
	}
}
