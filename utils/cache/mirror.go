package cache

import "sync"

// Mirror is a local, identifier-keyed copy of a remote list. It keeps the
// order of the list it was loaded from; inserted items go to the front.
type Mirror[K comparable, V any] struct {
	mu     sync.RWMutex
	key    func(V) K
	order  []K
	items  map[K]V
	loaded bool
}

func NewMirror[K comparable, V any](key func(V) K) *Mirror[K, V] {
	return &Mirror[K, V]{key: key, items: map[K]V{}}
}

// Replace discards the mirror's contents and loads values in order
func (m *Mirror[K, V]) Replace(values []V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.order = make([]K, 0, len(values))
	m.items = make(map[K]V, len(values))
	for _, v := range values {
		k := m.key(v)
		if _, dup := m.items[k]; !dup {
			m.order = append(m.order, k)
		}
		m.items[k] = v
	}
	m.loaded = true
}

func (m *Mirror[K, V]) Get(k K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[k]
	return v, ok
}

// Set replaces the value with the same key in place, or inserts it at the front
func (m *Mirror[K, V]) Set(v V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := m.key(v)
	if _, ok := m.items[k]; !ok {
		m.order = append([]K{k}, m.order...)
	}
	m.items[k] = v
}

// Delete removes k and reports whether it was present
func (m *Mirror[K, V]) Delete(k K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[k]; !ok {
		return false
	}
	delete(m.items, k)
	for i, o := range m.order {
		if o == k {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Invalidate empties the mirror and marks it as needing a reload
func (m *Mirror[K, V]) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.order = nil
	m.items = map[K]V{}
	m.loaded = false
}

// Values returns a copy of the mirrored values in order
func (m *Mirror[K, V]) Values() []V {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]V, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.items[k])
	}
	return out
}

func (m *Mirror[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

func (m *Mirror[K, V]) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}
