package fingerpaint

import "github.com/gogpu/fingerpaint/permute"

// ResolverOption configures a Resolver during creation.
//
// Example:
//
//	// Default: process-wide permutation cache
//	r := fingerpaint.NewResolver()
//
//	// Private cache, e.g. for tests that inspect cache statistics
//	r := fingerpaint.NewResolver(fingerpaint.WithPermutationCache(permute.NewCache()))
type ResolverOption func(*resolverOptions)

type resolverOptions struct {
	cache *permute.Cache
	lazy  bool
}

func defaultResolverOptions() resolverOptions {
	return resolverOptions{
		cache: nil, // Will be set to permute.Shared() if nil
	}
}

// WithPermutationCache sets the cache the resolver draws candidate
// assignments from. Passing nil selects the process-wide cache.
func WithPermutationCache(c *permute.Cache) ResolverOption {
	return func(o *resolverOptions) {
		o.cache = c
	}
}

// WithLazyPermutations makes the resolver enumerate candidates on the fly
// with permute.All instead of materializing them in a cache.
// Candidate order, and therefore tie-breaking, is unchanged.
func WithLazyPermutations() ResolverOption {
	return func(o *resolverOptions) {
		o.lazy = true
	}
}

// TrackerOption configures a Tracker during creation.
//
// Example:
//
//	canvas := render.NewCanvas(512, 512)
//	t := fingerpaint.NewTracker(fingerpaint.WithSurface(canvas))
type TrackerOption func(*trackerOptions)

type trackerOptions struct {
	surface  Surface
	resolver *Resolver
}

func defaultTrackerOptions() trackerOptions {
	return trackerOptions{
		surface:  NopSurface{},
		resolver: nil, // Will be set to NewResolver() if nil
	}
}

// WithSurface sets the surface that receives markers and stroke segments.
// A nil surface discards drawing calls.
func WithSurface(s Surface) TrackerOption {
	return func(o *trackerOptions) {
		if s == nil {
			s = NopSurface{}
		}
		o.surface = s
	}
}

// WithResolver sets the correspondence resolver. Resolvers are stateless
// apart from their cache and may be shared between trackers.
func WithResolver(r *Resolver) TrackerOption {
	return func(o *trackerOptions) {
		o.resolver = r
	}
}
