package memory

import (
	"errors"
	"sync"
	"time"
	"unicode"
)

// ErrInvalidKey is returned for empty, overlong or whitespace-containing keys.
var ErrInvalidKey = errors.New("cache: invalid key")

// Store is a thread-safe in-memory map with per-entry TTL expiration and
// optional LRU eviction. Expired entries are never returned and are swept by
// a background goroutine until Close is called.
type Store[V any] struct {
	// data stores the cache entries
	data map[string]*entry[V]

	// mu protects concurrent access to data
	mu sync.Mutex

	// config holds the store configuration
	config Config

	// cleanupTicker controls the background cleanup interval
	cleanupTicker *time.Ticker

	// stopCleanup is used to signal cleanup goroutine to stop
	stopCleanup chan struct{}

	// wg waits for cleanup goroutine to finish
	wg sync.WaitGroup

	closeOnce sync.Once
}

type entry[V any] struct {
	value      V
	expiresAt  time.Time
	accessedAt time.Time
}

// Config holds configuration for a Store.
type Config struct {
	// Name identifies the store in logs and stats
	Name string

	// MaxSize is the maximum number of entries (0 = unlimited)
	MaxSize int

	// DefaultTTL is the time-to-live used by Set
	DefaultTTL time.Duration

	// CleanupInterval is how often to sweep expired entries
	CleanupInterval time.Duration
}

// New creates a store and starts its background cleanup.
func New[V any](config Config) *Store[V] {
	if config.Name == "" {
		config.Name = "memory"
	}
	if config.DefaultTTL == 0 {
		config.DefaultTTL = 5 * time.Minute
	}
	if config.CleanupInterval == 0 {
		config.CleanupInterval = time.Minute
	}

	s := &Store[V]{
		data:          make(map[string]*entry[V]),
		config:        config,
		stopCleanup:   make(chan struct{}),
		cleanupTicker: time.NewTicker(config.CleanupInterval),
	}

	s.wg.Add(1)
	go s.cleanup()

	return s
}

// Get returns the value stored under key. The second result is false if the
// key is missing or expired.
func (s *Store[V]) Get(key string) (V, bool) {
	var zero V
	if validateKey(key) != nil {
		return zero, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.data[key]
	if !exists {
		return zero, false
	}
	now := time.Now()
	if now.After(e.expiresAt) {
		delete(s.data, key)
		return zero, false
	}
	e.accessedAt = now
	return e.value, true
}

// Set stores value under key with the default TTL.
func (s *Store[V]) Set(key string, value V) error {
	return s.SetWithTTL(key, value, 0)
}

// SetWithTTL stores value under key. If ttl is 0, the default TTL is used.
// When the store is full the least recently used entry is evicted.
func (s *Store[V]) SetWithTTL(key string, value V, ttl time.Duration) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if ttl == 0 {
		ttl = s.config.DefaultTTL
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[key]; !exists && s.config.MaxSize > 0 && len(s.data) >= s.config.MaxSize {
		s.evictLRU()
	}

	s.data[key] = &entry[V]{
		value:      value,
		expiresAt:  now.Add(ttl),
		accessedAt: now,
	}
	return nil
}

// evictLRU drops the least recently used entry. Callers must hold s.mu.
func (s *Store[V]) evictLRU() {
	var lruKey string
	var lruTime time.Time
	for k, e := range s.data {
		if lruKey == "" || e.accessedAt.Before(lruTime) {
			lruKey = k
			lruTime = e.accessedAt
		}
	}
	if lruKey != "" {
		delete(s.data, lruKey)
	}
}

// Delete removes key. Missing keys are ignored.
func (s *Store[V]) Delete(key string) {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
}

// Clear removes every entry.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	s.data = make(map[string]*entry[V])
	s.mu.Unlock()
}

// Len returns the number of stored entries, including expired ones not yet
// swept.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// Name returns the store name.
func (s *Store[V]) Name() string {
	return s.config.Name
}

// Close stops the background cleanup goroutine and clears all data. It is
// safe to call more than once.
func (s *Store[V]) Close() error {
	s.closeOnce.Do(func() {
		s.cleanupTicker.Stop()
		close(s.stopCleanup)
		s.wg.Wait()

		s.Clear()
	})
	return nil
}

// cleanup runs in a background goroutine to remove expired entries.
func (s *Store[V]) cleanup() {
	defer s.wg.Done()

	for {
		select {
		case <-s.cleanupTicker.C:
			s.removeExpired()
		case <-s.stopCleanup:
			return
		}
	}
}

// removeExpired removes all expired entries from the store.
func (s *Store[V]) removeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, key)
		}
	}
}

// Stats returns current store statistics.
func (s *Store[V]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{
		Size:     len(s.data),
		MaxSize:  s.config.MaxSize,
		Capacity: s.config.MaxSize,
	}
	if stats.Capacity == 0 {
		stats.Capacity = -1 // Unlimited
	}
	return stats
}

// Stats holds store statistics.
type Stats struct {
	Size     int // Current number of entries
	MaxSize  int // Maximum allowed entries (0 = unlimited)
	Capacity int // Effective capacity (-1 = unlimited)
}

// validateKey checks that a key is non-empty, at most 250 bytes and free of
// control and whitespace characters.
func validateKey(key string) error {
	if key == "" || len(key) > 250 {
		return ErrInvalidKey
	}
	for _, r := range key {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return ErrInvalidKey
		}
	}
	return nil
}
