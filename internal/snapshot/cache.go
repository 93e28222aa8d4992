package snapshot

import (
	"context"
	"fmt"
	"sync"

	"github.com/rnwolfe/mates/internal/calendar"
	"github.com/rnwolfe/mates/internal/reading"
	"github.com/rnwolfe/mates/internal/streak"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cache memoizes snapshots by key. Concurrent requests for the same key share
// one load. It is safe for concurrent use.
type Cache struct {
	loader *Loader

	mu      sync.Mutex
	entries map[Key]*Snapshot
	// gen is bumped on invalidation so loads that started earlier are not
	// stored over fresher data.
	gen    map[Scope]uint64
	flight singleflight.Group
}

// NewCache returns an empty cache backed by loader.
func NewCache(loader *Loader) *Cache {
	return &Cache{
		loader:  loader,
		entries: make(map[Key]*Snapshot),
		gen:     make(map[Scope]uint64),
	}
}

// Get returns the snapshot for a scope and zero-based month index.
func (c *Cache) Get(ctx context.Context, scope Scope, year, monthIndex int) (*Snapshot, error) {
	return c.get(ctx, KeyFor(scope, year, monthIndex))
}

// ForDay returns the snapshot of the month containing d.
func (c *Cache) ForDay(ctx context.Context, scope Scope, d calendar.Day) (*Snapshot, error) {
	return c.get(ctx, KeyForDay(scope, d))
}

func (c *Cache) get(ctx context.Context, key Key) (*Snapshot, error) {
	log := c.loader.logger()

	c.mu.Lock()
	if s, ok := c.entries[key]; ok {
		c.mu.Unlock()
		log.Debug("snapshot cache hit", zap.Stringer("key", key))
		return s, nil
	}
	gen := c.gen[key.Scope]
	c.mu.Unlock()

	log.Debug("snapshot cache miss", zap.Stringer("key", key))
	// A load begun before an invalidation must not be shared with callers
	// that arrive after it.
	v, err, _ := c.flight.Do(fmt.Sprintf("%s#%d", key, gen), func() (any, error) {
		return c.loader.Load(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	s := v.(*Snapshot)

	c.mu.Lock()
	if c.gen[key.Scope] == gen {
		c.entries[key] = s
	}
	c.mu.Unlock()
	return s, nil
}

// Invalidate drops every cached month of scope.
func (c *Cache) Invalidate(scope Scope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen[scope]++
	for k := range c.entries {
		if k.Scope == scope {
			delete(c.entries, k)
		}
	}
}

// Len returns the number of cached snapshots.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// PostReading stores r and drops every cached scope that includes its user.
func (c *Cache) PostReading(ctx context.Context, r reading.NewReading) (streak.ReadingEvent, error) {
	e, err := c.loader.Source.PostReading(ctx, r)
	if err != nil {
		return streak.ReadingEvent{}, err
	}

	c.mu.Lock()
	scopes := map[Scope]bool{SoloScope(r.UserID): true}
	for k, s := range c.entries {
		if _, ok := s.Mate(r.UserID); ok {
			scopes[k.Scope] = true
		}
	}
	c.mu.Unlock()

	for scope := range scopes {
		c.Invalidate(scope)
	}
	c.loader.logger().Debug("reading posted",
		zap.String("id", e.ID), zap.String("user", e.UserID), zap.Int("scopes_invalidated", len(scopes)))
	return e, nil
}
