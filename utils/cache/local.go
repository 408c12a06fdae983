package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// LocalCache is an in-process stand-in for RedisCache, used when no Redis is
// configured. State is lost on restart and not shared between instances.
type LocalCache struct {
	mu      sync.Mutex
	entries map[string]localEntry
	now     func() time.Time
}

type localEntry struct {
	value   string
	expires time.Time // zero means no expiry
}

func NewLocalCache() *LocalCache {
	return &LocalCache{entries: map[string]localEntry{}, now: time.Now}
}

// lookup returns the live entry for key, dropping it if expired. Callers hold mu.
func (l *LocalCache) lookup(key string) (localEntry, bool) {
	e, ok := l.entries[key]
	if !ok {
		return e, false
	}
	if !e.expires.IsZero() && !l.now().Before(e.expires) {
		delete(l.entries, key)
		return e, false
	}
	return e, true
}

func (l *LocalCache) Get(_ context.Context, key string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.lookup(key)
	if !ok {
		return "", ErrNotFound
	}
	return e.value, nil
}

func (l *LocalCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := localEntry{value: fmt.Sprint(value)}
	if expiration > 0 {
		e.expires = l.now().Add(expiration)
	}
	l.entries[key] = e
	return nil
}

func (l *LocalCache) Delete(_ context.Context, keys ...string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, k := range keys {
		delete(l.entries, k)
	}
	return nil
}

func (l *LocalCache) Exists(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.lookup(key)
	return ok, nil
}

func (l *LocalCache) Increment(_ context.Context, key string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, _ := l.lookup(key)
	n := int64(0)
	if e.value != "" {
		var err error
		if n, err = strconv.ParseInt(e.value, 10, 64); err != nil {
			return 0, fmt.Errorf("value of %s is not an integer", key)
		}
	}
	n++
	e.value = strconv.FormatInt(n, 10)
	l.entries[key] = e
	return n, nil
}

func (l *LocalCache) Expire(_ context.Context, key string, expiration time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.lookup(key); ok {
		e.expires = l.now().Add(expiration)
		l.entries[key] = e
	}
	return nil
}

// TTL follows Redis: -2ns for a missing key, -1ns for a key without expiry
func (l *LocalCache) TTL(_ context.Context, key string) (time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.lookup(key)
	switch {
	case !ok:
		return -2, nil
	case e.expires.IsZero():
		return -1, nil
	}
	return e.expires.Sub(l.now()), nil
}
