package storage

import "sync"

// MemStore is an in-memory Store. It is the default backend for tests and
// throwaway environments; nothing survives the process.
type MemStore struct {
	mu         sync.Mutex
	namespaces map[string]*MemKV
}

// NewMemStore constructs an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{namespaces: map[string]*MemKV{}}
}

func (s *MemStore) Namespace(name string) (KV, error) {
	if name == "" {
		return nil, ErrBadNamespace
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kv, ok := s.namespaces[name]
	if !ok {
		kv = NewMemKV()
		s.namespaces[name] = kv
	}
	return kv, nil
}

// MemKV is a map-backed KV.
type MemKV struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemKV() *MemKV {
	return &MemKV{entries: map[string][]byte{}}
}

func (kv *MemKV) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	kv.mu.RLock()
	defer kv.mu.RUnlock()
	v, ok := kv.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (kv *MemKV) Set(key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	kv.entries[key] = v
	return nil
}

func (kv *MemKV) Has(key string) bool {
	if key == "" {
		return false
	}
	kv.mu.RLock()
	defer kv.mu.RUnlock()
	_, ok := kv.entries[key]
	return ok
}
