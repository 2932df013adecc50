// Package pricing holds the versioned service-pricing catalog. Readers
// always observe a complete immutable snapshot; updates swap the whole
// table atomically.
package pricing

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// Sentinel errors.
var (
	ErrEntryNotFound = errors.New("pricing entry not found")
	ErrInvalidEntry  = errors.New("invalid pricing entry")
)

// Part is a commonly replaced part and its unit price.
type Part struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// PriceRange is a sanity band for a service's total, not a hard constraint.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Entry is the base pricing for one service type.
type Entry struct {
	ServiceType    string     `json:"service_type"`
	LaborRate      float64    `json:"labor_rate"` // per hour
	EstimatedHours float64    `json:"estimated_hours"`
	CommonParts    []Part     `json:"common_parts"`
	PriceRange     PriceRange `json:"price_range"`
}

// Validate checks the entry invariants.
func (e Entry) Validate() error {
	if e.ServiceType == "" {
		return fmt.Errorf("%w: empty service type", ErrInvalidEntry)
	}
	if e.EstimatedHours <= 0 {
		return fmt.Errorf("%w: estimated hours must be positive", ErrInvalidEntry)
	}
	if e.LaborRate <= 0 {
		return fmt.Errorf("%w: labor rate must be positive", ErrInvalidEntry)
	}
	if e.PriceRange.Min > e.PriceRange.Max {
		return fmt.Errorf("%w: price range min exceeds max", ErrInvalidEntry)
	}
	return nil
}

// Snapshot is one immutable version of the whole table.
type Snapshot struct {
	Version int64
	entries map[string]Entry
}

// Get returns the entry for a service type.
func (s *Snapshot) Get(serviceType string) (Entry, bool) {
	e, ok := s.entries[serviceType]
	return e, ok
}

// All returns every entry sorted by service type.
func (s *Snapshot) All() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ServiceType < out[j].ServiceType })
	return out
}

// Len returns the number of entries.
func (s *Snapshot) Len() int { return len(s.entries) }

// Catalog is the mutable holder of the current snapshot. Concurrent
// readers and a writer never observe a half-updated table: Set and
// ResetToDefaults copy the map and swap it wholesale.
type Catalog struct {
	mu      sync.Mutex // serializes writers
	current atomic.Pointer[Snapshot]
	version atomic.Int64
}

// NewCatalog creates a catalog initialized with the default table.
func NewCatalog() *Catalog {
	return NewCatalogWith(Defaults())
}

// NewCatalogWith creates a catalog initialized with the given entries.
// The map is not retained.
func NewCatalogWith(entries map[string]Entry) *Catalog {
	c := &Catalog{}
	copied := make(map[string]Entry, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	c.swap(copied)
	return c
}

func (c *Catalog) swap(entries map[string]Entry) {
	snap := &Snapshot{
		Version: c.version.Add(1),
		entries: entries,
	}
	c.current.Store(snap)
}

// Snapshot returns the current immutable snapshot.
func (c *Catalog) Snapshot() *Snapshot {
	return c.current.Load()
}

// Get returns the entry for a service type from the current snapshot.
func (c *Catalog) Get(serviceType string) (Entry, error) {
	if e, ok := c.Snapshot().Get(serviceType); ok {
		return e, nil
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, serviceType)
}

// Set validates entry and installs a new snapshot containing it.
func (c *Catalog) Set(serviceType string, e Entry) error {
	e.ServiceType = serviceType
	if err := e.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.Snapshot()
	next := make(map[string]Entry, old.Len()+1)
	for _, cur := range old.All() {
		next[cur.ServiceType] = cur
	}
	next[serviceType] = e
	c.swap(next)
	return nil
}

// ResetToDefaults replaces the whole table with the reference defaults.
// Idempotent: applying it twice yields the same table as applying it once.
func (c *Catalog) ResetToDefaults() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.swap(Defaults())
}
