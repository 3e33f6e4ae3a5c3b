// Package stats computes a post-completion summary of a prime search result.
// It runs after the worker's CompleteMsg, off the UI thread, so large results
// never stall rendering.
package stats

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/primewatch/primewatch/pkg/metrics"
)

// Summary describes the shape of a completed search result.
type Summary struct {
	Count int

	// LargestGap is the widest distance between consecutive primes;
	// LargestGapAt is the lower prime of that pair.
	LargestGap   int
	LargestGapAt int

	// TwinPairs counts consecutive primes exactly 2 apart.
	TwinPairs int

	// MeanGap and StddevGap describe the gap distribution.
	MeanGap   float64
	StddevGap float64
}

// Summarize computes the summary for an ascending prime sequence. The ctx is
// checked between the two computation halves so an abandoned result does not
// burn cycles.
func Summarize(ctx context.Context, primes []int) (Summary, error) {
	defer metrics.Timer(metrics.StatsCompute)()

	s := Summary{Count: len(primes)}
	if len(primes) < 2 {
		return s, ctx.Err()
	}

	gaps := make([]float64, len(primes)-1)
	for i := 1; i < len(primes); i++ {
		gaps[i-1] = float64(primes[i] - primes[i-1])
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := 1; i < len(primes); i++ {
			gap := primes[i] - primes[i-1]
			if gap > s.LargestGap {
				s.LargestGap = gap
				s.LargestGapAt = primes[i-1]
			}
			if gap == 2 {
				s.TwinPairs++
			}
		}
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.MeanGap = stat.Mean(gaps, nil)
		if len(gaps) > 1 {
			s.StddevGap = stat.StdDev(gaps, nil)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return s, nil
}
