package permute

import (
	"sync"

	"github.com/gogpu/fingerpaint/cache"
)

// Cache memoizes Generate by shape.
//
// Entries are never evicted. The key space is bounded by the number of
// simultaneous contacts a touch device reports (typically 10 or fewer), so
// the table stays small for the lifetime of the process.
//
// Cache is safe for concurrent use. Lookups of cached shapes only take read
// locks and never wait for another shape being generated. The first request
// for a shape generates it once; concurrent requests for the same shape wait
// for that result.
type Cache struct {
	table *cache.Sharded[Shape, [][]int]

	hookMu    sync.RWMutex
	onCompute func(Shape)
}

// NewCache creates an empty permutation cache.
func NewCache() *Cache {
	return &Cache{
		table: cache.NewSharded[Shape, [][]int](hashShape),
	}
}

func hashShape(s Shape) uint64 {
	return cache.PairHasher(s.N, s.K)
}

var (
	sharedOnce  sync.Once
	sharedCache *Cache
)

// Shared returns the process-wide cache used by default.
func Shared() *Cache {
	sharedOnce.Do(func() {
		sharedCache = NewCache()
	})
	return sharedCache
}

// Get returns every partial permutation of shape (n, k), computing it on
// first use. The returned slices are shared with every other caller and
// must not be modified. It panics if the shape is invalid.
func (c *Cache) Get(n, k int) [][]int {
	checkShape(n, k)
	return c.table.GetOrCompute(Shape{N: n, K: k}, c.compute)
}

func (c *Cache) compute(s Shape) [][]int {
	c.hookMu.RLock()
	hook := c.onCompute
	c.hookMu.RUnlock()
	if hook != nil {
		hook(s)
	}
	return Generate(s.N, s.K)
}

// OnCompute registers fn to be called every time the cache generates a
// shape it has not seen before. Pass nil to remove the hook.
//
// fn runs outside the cache locks and may use the cache, except to Get the
// shape being generated.
func (c *Cache) OnCompute(fn func(Shape)) {
	c.hookMu.Lock()
	c.onCompute = fn
	c.hookMu.Unlock()
}

// Len returns the number of cached shapes.
func (c *Cache) Len() int {
	return c.table.Len()
}

// Shapes returns the cached shapes in no particular order.
func (c *Cache) Shapes() []Shape {
	return c.table.Keys()
}

// Stats returns lookup statistics. Computed counts generator invocations.
func (c *Cache) Stats() cache.Stats {
	return c.table.Stats()
}
