package admin

import (
	"context"
	"errors"
	"os"
	"sync"

	"skillforge-backend/internal/cache"
)

// SnapshotStore is the persistence slot the whole console state is
// serialized into after every mutation. One slot, last write wins.
type SnapshotStore interface {
	Load(ctx context.Context) ([]byte, bool, error)
	Save(ctx context.Context, data []byte) error
}

// FileStore keeps the snapshot in a single file on disk.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("empty snapshot path")
	}
	return &FileStore{path: path}, nil
}

func (f *FileStore) Load(ctx context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (f *FileStore) Save(ctx context.Context, data []byte) error {
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// CacheStore adapts the shared cache port into a snapshot slot. Zero TTL
// keeps the slot until the next write.
type CacheStore struct {
	cache cache.Cache
	key   string
}

func NewCacheStore(c cache.Cache, key string) *CacheStore {
	return &CacheStore{cache: c, key: key}
}

func (c *CacheStore) Load(ctx context.Context) ([]byte, bool, error) {
	return c.cache.Get(ctx, c.key)
}

func (c *CacheStore) Save(ctx context.Context, data []byte) error {
	return c.cache.Set(ctx, c.key, data, 0)
}

// MemoryStore is the in-memory fake used by tests.
type MemoryStore struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, false, nil
	}
	return m.data, true, nil
}

func (m *MemoryStore) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

func (m *MemoryStore) Seed(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
}

func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
