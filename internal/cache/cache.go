package cache

import (
	"fmt"
	"time"
)

// DefaultTTL is how long a cached upstream payload is considered fresh.
const DefaultTTL = 24 * time.Hour

// LocationKey returns the canonical cache key for a coordinate pair.
// Coordinates are rounded to 2 decimal places so nearby points share
// one cache cell.
func LocationKey(lat, lon float64) string {
	return fmt.Sprintf("%.2f_%.2f", lat, lon)
}

// Entry holds a cached upstream payload together with its expiry metadata.
type Entry struct {
	LocationKey string
	Latitude    float64
	Longitude   float64
	Payload     []byte // canonical JSON from the upstream client
	CachedAt    time.Time
	ExpiresAt   time.Time
}

// NewEntry builds an Entry for the given coordinates and payload.
// ExpiresAt is always computed here as CachedAt + ttl; there is no
// deferred defaulting at store time.
func NewEntry(lat, lon float64, payload []byte, ttl time.Duration) Entry {
	now := time.Now().UTC()
	return Entry{
		LocationKey: LocationKey(lat, lon),
		Latitude:    lat,
		Longitude:   lon,
		Payload:     payload,
		CachedAt:    now,
		ExpiresAt:   now.Add(ttl),
	}
}

// IsExpired reports whether the entry is past its expiry at the given time.
func (e Entry) IsExpired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Store is the contract the in-memory store (and any future persistent
// store) must satisfy. Get lazily evicts expired entries; GetStale returns
// entries of any age and never evicts, so expired data stays available as a
// fallback when an upstream API is down.
type Store interface {
	Get(key string) (Entry, bool)
	GetStale(key string) (Entry, bool)
	Put(entry Entry)
}
