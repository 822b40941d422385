package inmemorycache

import (
	"encoding/json"
	"sync"
	"time"

	"ulascansenturk/city-explorer/internal/db/citydata"
)

type cacheEntry struct {
	data       []byte
	expiration time.Time
}

type Cache interface {
	Get(query string) (*citydata.Location, bool, error)
	Set(query string, location *citydata.Location, ttl time.Duration) error
}

// InMemoryCache keeps resolved locations in process so repeated searches
// skip the database. Entries are stored encoded so callers can't mutate them.
type InMemoryCache struct {
	cache           map[string]cacheEntry
	mutex           sync.Mutex
	cleanupInterval time.Duration
	stop            chan struct{}
	stopOnce        sync.Once
}

func NewInMemoryCacheProvider(cleanupInterval time.Duration) *InMemoryCache {
	provider := &InMemoryCache{
		cache:           make(map[string]cacheEntry),
		cleanupInterval: cleanupInterval,
		stop:            make(chan struct{}),
	}

	go provider.startCleanup()

	return provider
}

func (m *InMemoryCache) Get(query string) (*citydata.Location, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	entry, exists := m.cache[query]
	if !exists {
		return nil, false, nil
	}

	if time.Now().After(entry.expiration) {
		delete(m.cache, query)
		return nil, false, nil
	}

	var location citydata.Location
	if err := json.Unmarshal(entry.data, &location); err != nil {
		return nil, false, err
	}

	return &location, true, nil
}

func (m *InMemoryCache) Set(query string, location *citydata.Location, ttl time.Duration) error {
	jsonData, err := json.Marshal(location)
	if err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.cache[query] = cacheEntry{
		data:       jsonData,
		expiration: time.Now().Add(ttl),
	}

	return nil
}

func (m *InMemoryCache) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return len(m.cache)
}

func (m *InMemoryCache) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
}

func (m *InMemoryCache) startCleanup() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.evictExpired()
		}
	}
}

func (m *InMemoryCache) evictExpired() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	now := time.Now()
	for k, v := range m.cache {
		if now.After(v.expiration) {
			delete(m.cache, k)
		}
	}
}
