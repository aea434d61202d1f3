package storage

import (
	"context"
	"sort"
	"sync"
)

// MemoryKV keeps everything in process memory. It is the default backend
// and the one used by tests.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[Namespace]map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[Namespace]map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, ns Namespace, id string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[ns][id]
	if !ok {
		return nil, notFound(ns, id)
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryKV) Put(_ context.Context, ns Namespace, id string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bucket, ok := m.data[ns]
	if !ok {
		bucket = make(map[string][]byte)
		m.data[ns] = bucket
	}
	bucket[id] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, ns Namespace, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[ns], id)
	return nil
}

// Iterate works on a snapshot, so fn may call back into the store.
func (m *MemoryKV) Iterate(ctx context.Context, ns Namespace, fn func(id string, value []byte) error) error {
	type entry struct {
		id    string
		value []byte
	}
	m.mu.RLock()
	snapshot := make([]entry, 0, len(m.data[ns]))
	for id, v := range m.data[ns] {
		snapshot = append(snapshot, entry{id: id, value: append([]byte(nil), v...)})
	}
	m.mu.RUnlock()

	sort.Slice(snapshot, func(i, j int) bool { return snapshot[i].id < snapshot[j].id })
	for _, e := range snapshot {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(e.id, e.value); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryKV) Clear(_ context.Context, ns Namespace) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, ns)
	return nil
}

func (m *MemoryKV) Close() error { return nil }
