package regioncache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

const defaultFetchTimeout = 10 * time.Second

var ErrEmptyRegion = errors.New("region is required")

// Fetcher retrieves the raw hospital records for a region.
type Fetcher interface {
	FetchRegion(ctx context.Context, region string) ([]RawLocation, error)
}

// Listener receives the outcome of a region selection. Exactly one of the
// two methods is called per delivered selection; superseded selections are
// never delivered.
type Listener struct {
	OnLocations func(region string, locations []Location)
	OnError     func(region string, err error)
}

type inflight struct {
	region string
	gen    uint64
	cancel context.CancelFunc
}

// Cache resolves a region key to its hospital list, fetching at most once
// per region. Selecting a new region while a fetch for a different one is
// still running cancels the old fetch, and a late result for a superseded
// selection is dropped without being cached or delivered.
type Cache struct {
	fetcher  Fetcher
	listener Listener
	timeout  time.Duration

	mu      sync.Mutex
	gen     uint64
	current string
	entries map[string][]Location
	pending *inflight
}

func New(fetcher Fetcher, listener Listener) *Cache {
	return NewWithTimeout(fetcher, listener, defaultFetchTimeout)
}

func NewWithTimeout(fetcher Fetcher, listener Listener, timeout time.Duration) *Cache {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Cache{
		fetcher:  fetcher,
		listener: listener,
		timeout:  timeout,
		entries:  make(map[string][]Location),
	}
}

// Cached returns the resolved list for a region, if any.
func (c *Cache) Cached(region string) ([]Location, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	locs, ok := c.entries[strings.TrimSpace(region)]
	return locs, ok
}

// SelectRegion makes region the current selection. A cached region is
// delivered immediately without a network call. Otherwise a fetch starts,
// cancelling any fetch still running for a previous selection; re-selecting
// the region already being fetched is a no-op. Fetch errors are delivered
// once and leave the cache unpopulated, so re-selecting the region retries.
func (c *Cache) SelectRegion(region string) {
	region = strings.TrimSpace(region)
	if region == "" {
		c.deliverError(region, ErrEmptyRegion)
		return
	}

	c.mu.Lock()
	c.current = region

	if locs, ok := c.entries[region]; ok {
		// Resolving a cached region also obsoletes whatever is in flight.
		if c.pending != nil {
			c.pending.cancel()
			c.pending = nil
		}
		c.gen++
		c.mu.Unlock()
		c.deliverLocations(region, locs)
		return
	}

	if c.pending != nil {
		if c.pending.region == region {
			c.mu.Unlock()
			return
		}
		c.pending.cancel()
	}

	c.gen++
	gen := c.gen
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	c.pending = &inflight{region: region, gen: gen, cancel: cancel}
	c.mu.Unlock()

	go c.fetch(ctx, cancel, region, gen)
}

func (c *Cache) fetch(ctx context.Context, cancel context.CancelFunc, region string, gen uint64) {
	defer cancel()

	raw, err := c.fetcher.FetchRegion(ctx, region)

	c.mu.Lock()
	// Identity check: only the newest selection may touch visible state.
	fresh := c.pending != nil && c.pending.gen == gen && c.current == region
	if fresh {
		c.pending = nil
	}

	var locs []Location
	if fresh && err == nil {
		locs = Normalize(region, raw)
		c.entries[region] = locs
	}
	c.mu.Unlock()

	if !fresh {
		return
	}
	if err != nil {
		// A cancelled fetch was superseded; never surface it.
		if errors.Is(err, context.Canceled) {
			return
		}
		c.deliverError(region, err)
		return
	}
	c.deliverLocations(region, locs)
}

func (c *Cache) deliverLocations(region string, locs []Location) {
	if c.listener.OnLocations != nil {
		c.listener.OnLocations(region, locs)
	}
}

func (c *Cache) deliverError(region string, err error) {
	if c.listener.OnError != nil {
		c.listener.OnError(region, err)
	}
}
