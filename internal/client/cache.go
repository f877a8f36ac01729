package client

import (
	"sync"

	"github.com/mitrajit-55/password-manager/internal/vault"
)

// Cache is the in-memory, ordered mirror of the record collection. It is
// loaded once at startup and afterwards mutated only by the coordinator,
// and only after the store has confirmed the matching durable effect.
type Cache struct {
	mu      sync.RWMutex
	records []vault.Record
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Load replaces the cache contents with a fresh snapshot.
func (c *Cache) Load(records []vault.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records[:0:0], records...)
}

// Records returns a copy of the cached records in order.
func (c *Cache) Records() []vault.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]vault.Record, len(c.records))
	copy(out, c.records)
	return out
}

// Len reports the number of cached records.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Get looks up a record by id.
func (c *Cache) Get(id string) (vault.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.records {
		if r.ID == id {
			return r, true
		}
	}
	return vault.Record{}, false
}

func (c *Cache) append(rec vault.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, rec)
}

// replace swaps the fields of the entry with the given id, preserving its
// position and identity. When the id is not cached the record is appended
// instead (the local variant drops the entry when edit mode begins).
func (c *Cache) replace(rec vault.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.records {
		if c.records[i].ID == rec.ID {
			c.records[i] = rec
			return
		}
	}
	c.records = append(c.records, rec)
}

func (c *Cache) remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.records {
		if c.records[i].ID == id {
			c.records = append(c.records[:i], c.records[i+1:]...)
			return
		}
	}
}
