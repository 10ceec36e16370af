// Package permute enumerates partial permutations: every ordered selection
// of k distinct indices drawn from [0, n).
//
// A partial permutation of shape (n, k) is an injective mapping from k
// touch slots to n finger slots. Enumeration order is lexicographic and
// identical for Generate, All and the memoized Cache, so callers that pick
// the first best candidate get deterministic results whichever form they
// use.
//
// Preconditions (0 <= k <= n) are the caller's responsibility; violating
// them is a programming error and panics.
package permute

import (
	"fmt"
	"iter"
	"slices"
)

// Shape identifies an enumeration problem: k slots chosen from n indices.
type Shape struct {
	N int
	K int
}

// String implements fmt.Stringer.
func (s Shape) String() string {
	return fmt.Sprintf("%d;%d", s.N, s.K)
}

func checkShape(n, k int) {
	if n < 0 || k < 0 || k > n {
		panic(fmt.Sprintf("permute: invalid shape n=%d k=%d (need 0 <= k <= n)", n, k))
	}
}

// Count returns the number of partial permutations of shape (n, k),
// n!/(n-k)!. It panics if the shape is invalid.
func Count(n, k int) int {
	checkShape(n, k)
	c := 1
	for i := 0; i < k; i++ {
		c *= n - i
	}
	return c
}

// Generate returns every partial permutation of shape (n, k).
// k == 0 yields a single empty sequence. It panics if the shape is invalid.
//
// The result is freshly allocated; use a Cache to share it between calls.
func Generate(n, k int) [][]int {
	checkShape(n, k)

	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}

	results := make([][]int, 0, Count(n, k))
	return extend(results, make([]int, 0, k), remaining, k)
}

// extend grows partial by every index in remaining, in pool order, and
// appends a copy of each completed permutation to results.
func extend(results [][]int, partial, remaining []int, k int) [][]int {
	if len(partial) == k {
		return append(results, slices.Clone(partial))
	}

	for i, idx := range remaining {
		rest := make([]int, 0, len(remaining)-1)
		rest = append(rest, remaining[:i]...)
		rest = append(rest, remaining[i+1:]...)
		results = extend(results, append(partial, idx), rest, k)
	}
	return results
}

// All returns an iterator over the partial permutations of shape (n, k),
// produced lazily in the same order as Generate.
//
// The yielded slice is reused between iterations: copy it to retain it.
// It panics if the shape is invalid.
func All(n, k int) iter.Seq[[]int] {
	checkShape(n, k)

	return func(yield func([]int) bool) {
		perm := make([]int, k)
		used := make([]bool, n)

		var walk func(depth int) bool
		walk = func(depth int) bool {
			if depth == k {
				return yield(perm)
			}
			for idx := 0; idx < n; idx++ {
				if used[idx] {
					continue
				}
				used[idx] = true
				perm[depth] = idx
				ok := walk(depth + 1)
				used[idx] = false
				if !ok {
					return false
				}
			}
			return true
		}
		walk(0)
	}
}
