package client

import (
	"encoding/json"
	"sync"
	"time"
)

// readCache keeps the data payload of recent GETs. Any successful write
// through the same Client clears it so the panel sees its own changes.
type readCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]cachedRead
}

type cachedRead struct {
	data    json.RawMessage
	expires time.Time
}

func newReadCache(ttl time.Duration) *readCache {
	return &readCache{ttl: ttl, now: time.Now, entries: map[string]cachedRead{}}
}

func (rc *readCache) get(key string) (json.RawMessage, bool) {
	if rc == nil {
		return nil, false
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	entry, ok := rc.entries[key]
	if !ok {
		return nil, false
	}
	if !rc.now().Before(entry.expires) {
		delete(rc.entries, key)
		return nil, false
	}
	return entry.data, true
}

func (rc *readCache) put(key string, data json.RawMessage) {
	if rc == nil {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.entries[key] = cachedRead{data: data, expires: rc.now().Add(rc.ttl)}
}

func (rc *readCache) clear() {
	if rc == nil {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.entries = map[string]cachedRead{}
}
