// Package memory provides in-memory implementations of the outbound ports.
// Every repository guards its state with a RWMutex and hands out copies.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/smartmeal/planner/internal/ports/outbound"
)

const defaultTTL = 24 * time.Hour

// CacheItem represents a cached item
type CacheItem struct {
	Value     []byte
	ExpiresAt time.Time
}

func (i CacheItem) expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// CacheRepository implements in-memory cache repository
type CacheRepository struct {
	data  map[string]CacheItem
	mutex sync.RWMutex
	stop  chan struct{}
	once  sync.Once
}

var _ outbound.CacheRepository = (*CacheRepository)(nil)

// NewCacheRepository creates a new in-memory cache repository. Expired
// entries are swept every cleanupInterval until Close is called; a zero
// interval disables the sweeper.
func NewCacheRepository(cleanupInterval time.Duration) *CacheRepository {
	repo := &CacheRepository{
		data: make(map[string]CacheItem),
		stop: make(chan struct{}),
	}

	if cleanupInterval > 0 {
		go repo.cleanup(cleanupInterval)
	}

	return repo
}

// Get retrieves a value from cache
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mutex.RLock()
	item, exists := r.data[key]
	r.mutex.RUnlock()

	if !exists || item.expired(time.Now()) {
		return nil, outbound.ErrCacheMiss
	}

	return copyBytes(item.Value), nil
}

// Set stores a value in cache with TTL
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.data[key] = CacheItem{Value: copyBytes(value), ExpiresAt: expiry(ttl)}
	return nil
}

// Delete removes a key from cache
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.data, key)
	return nil
}

// Exists checks if a key exists in cache
func (r *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	item, exists := r.data[key]
	return exists && !item.expired(time.Now()), nil
}

// MGet retrieves multiple values from cache. Missing keys are omitted.
func (r *CacheRepository) MGet(ctx context.Context, keys []string) (map[string][]byte, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make(map[string][]byte)
	now := time.Now()

	for _, key := range keys {
		if item, exists := r.data[key]; exists && !item.expired(now) {
			result[key] = copyBytes(item.Value)
		}
	}

	return result, nil
}

// MSet stores multiple values in cache
func (r *CacheRepository) MSet(ctx context.Context, items map[string][]byte, ttl time.Duration) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	expiresAt := expiry(ttl)
	for key, value := range items {
		r.data[key] = CacheItem{Value: copyBytes(value), ExpiresAt: expiresAt}
	}

	return nil
}

// Increment increments a counter stored as a decimal string, the way Redis
// INCR stores it
func (r *CacheRepository) Increment(ctx context.Context, key string) (int64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var value int64 = 1
	expiresAt := expiry(0)

	if item, exists := r.data[key]; exists && !item.expired(time.Now()) {
		current, err := strconv.ParseInt(string(item.Value), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value at %q is not an integer: %w", key, err)
		}
		value = current + 1
		expiresAt = item.ExpiresAt
	}

	r.data[key] = CacheItem{Value: []byte(strconv.FormatInt(value, 10)), ExpiresAt: expiresAt}

	return value, nil
}

// Len returns the number of stored entries, expired ones included
func (r *CacheRepository) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.data)
}

// Close stops the cleanup goroutine
func (r *CacheRepository) Close() error {
	r.once.Do(func() { close(r.stop) })
	return nil
}

// cleanup removes expired items
func (r *CacheRepository) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.purge(time.Now())
		case <-r.stop:
			return
		}
	}
}

func (r *CacheRepository) purge(now time.Time) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for key, item := range r.data {
		if item.expired(now) {
			delete(r.data, key)
		}
	}
}

func expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return time.Now().Add(ttl)
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
