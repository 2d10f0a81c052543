package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	value    []byte
	expireAt time.Time
}

// MemoryCache is the in-process fallback when Redis is disabled. Entries are
// dropped lazily on read and swept on an interval.
type MemoryCache struct {
	data   map[string]memoryItem
	mutex  sync.RWMutex
	ticker *time.Ticker
	done   chan struct{}
}

func NewMemoryCache() *MemoryCache {
	mc := &MemoryCache{
		data:   make(map[string]memoryItem),
		ticker: time.NewTicker(time.Minute),
		done:   make(chan struct{}),
	}
	go mc.sweep()
	return mc
}

func (mc *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	mc.mutex.RLock()
	item, ok := mc.data[key]
	mc.mutex.RUnlock()
	if !ok {
		return nil, ErrCacheMiss
	}
	if time.Now().After(item.expireAt) {
		mc.mutex.Lock()
		delete(mc.data, key)
		mc.mutex.Unlock()
		return nil, ErrCacheMiss
	}
	return item.value, nil
}

func (mc *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Minute
	}
	mc.mutex.Lock()
	mc.data[key] = memoryItem{value: value, expireAt: time.Now().Add(ttl)}
	mc.mutex.Unlock()
	return nil
}

func (mc *MemoryCache) Close() error {
	mc.ticker.Stop()
	close(mc.done)
	return nil
}

func (mc *MemoryCache) sweep() {
	for {
		select {
		case <-mc.done:
			return
		case now := <-mc.ticker.C:
			mc.mutex.Lock()
			for k, item := range mc.data {
				if now.After(item.expireAt) {
					delete(mc.data, k)
				}
			}
			mc.mutex.Unlock()
		}
	}
}

var _ BytesCache = (*MemoryCache)(nil)
