package fingerpaint

import (
	"context"
	"iter"
	"log/slog"
	"math"
	"slices"

	"github.com/gogpu/fingerpaint/permute"
)

// Resolver decides which tracked finger each newly observed touch belongs
// to. It picks the injective assignment of touches to fingers with the
// smallest total Manhattan distance, by exhaustive search over every
// candidate assignment.
//
// The search costs fingers!/(fingers-touches)! candidate evaluations. That
// is fine for the handful of contacts a touch screen reports and
// intentionally not meant for more.
//
// A Resolver is safe for concurrent use.
type Resolver struct {
	cache *permute.Cache
	lazy  bool
}

// NewResolver creates a resolver with the given options.
func NewResolver(opts ...ResolverOption) *Resolver {
	o := defaultResolverOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		o.cache = permute.Shared()
	}
	return &Resolver{cache: o.cache, lazy: o.lazy}
}

// Cache returns the permutation cache the resolver uses.
func (r *Resolver) Cache() *permute.Cache {
	return r.cache
}

// Resolve returns, for each touch, the index of the finger it corresponds
// to. The result has len(touches) distinct entries in [0, len(fingers)).
//
// Among assignments of equal total distance the first one in enumeration
// order wins, so Resolve is deterministic.
//
// It returns a *PreconditionError if there are more touches than fingers.
func (r *Resolver) Resolve(fingers, touches []Position) ([]int, error) {
	if len(touches) > len(fingers) {
		return nil, &PreconditionError{Op: "resolve", Touches: len(touches), Fingers: len(fingers)}
	}

	matrix := DistanceMatrix(fingers, touches)

	var (
		best     = make([]int, 0, len(touches))
		bestCost = math.Inf(1)
		found    bool
	)
	for candidate := range r.candidates(len(fingers), len(touches)) {
		cost := Cost(matrix, candidate)
		// NaN never compares less; seed with the first candidate.
		if !found || cost < bestCost {
			bestCost = cost
			best = append(best[:0], candidate...)
			found = true
		}
	}

	if log := Logger(); log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("fingerpaint: resolved touches",
			"fingers", len(fingers),
			"touches", len(touches),
			"assignment", best,
			"cost", bestCost)
	}

	return best, nil
}

func (r *Resolver) candidates(n, k int) iter.Seq[[]int] {
	if r.lazy {
		return permute.All(n, k)
	}
	return slices.Values(r.cache.Get(n, k))
}

// DistanceMatrix returns the Manhattan distance between every touch (rows)
// and every finger (columns).
func DistanceMatrix(fingers, touches []Position) [][]float64 {
	matrix := make([][]float64, len(touches))
	for t, touch := range touches {
		row := make([]float64, len(fingers))
		for f, finger := range fingers {
			row[f] = finger.Manhattan(touch)
		}
		matrix[t] = row
	}
	return matrix
}

// Cost returns the total distance of an assignment: the sum over touch
// indices t of matrix[t][assignment[t]].
func Cost(matrix [][]float64, assignment []int) float64 {
	var sum float64
	for t, f := range assignment {
		sum += matrix[t][f]
	}
	return sum
}
