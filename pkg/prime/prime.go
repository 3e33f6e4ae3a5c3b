// Package prime provides the primality test the search worker runs and the
// reference sieve used to cross-check its output.
package prime

// IsPrime reports whether n is prime using trial division up to √n.
// Deliberately unoptimized (O(√n) per candidate): the search worker exists to
// demonstrate keeping a UI responsive during long aggregate work, not to
// enumerate primes quickly.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n < 4 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	for d := 3; d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// Sieve returns all primes <= limit in ascending order using the sieve of
// Eratosthenes. It serves as the trusted oracle for the trial-division path.
func Sieve(limit int) []int {
	if limit < 2 {
		return nil
	}

	composite := make([]bool, limit+1)
	primes := make([]int, 0, estimateCount(limit))
	for p := 2; p <= limit; p++ {
		if composite[p] {
			continue
		}
		primes = append(primes, p)
		for m := p * p; m <= limit; m += p {
			composite[m] = true
		}
	}
	return primes
}

// estimateCount returns a capacity hint roughly tracking π(limit).
func estimateCount(limit int) int {
	switch {
	case limit < 10:
		return 4
	case limit < 1000:
		return limit / 4
	default:
		return limit / 10
	}
}
