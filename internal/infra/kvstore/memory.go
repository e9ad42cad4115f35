package kvstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"table-concierge/internal/pkg/clock"
	"table-concierge/internal/usecase/shared"
)

// MemoryStore is an in-process Store used by tests and STORE_DRIVER=memory.
type MemoryStore struct {
	mu    sync.RWMutex
	docs  map[string]*shared.Document
	clock clock.Clock
}

func NewMemoryStore(clk clock.Clock) *MemoryStore {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &MemoryStore{
		docs:  make(map[string]*shared.Document),
		clock: clk,
	}
}

func copyDoc(d *shared.Document) *shared.Document {
	data := make([]byte, len(d.Data))
	copy(data, d.Data)
	return &shared.Document{Path: d.Path, Data: data, Version: d.Version, UpdatedAt: d.UpdatedAt}
}

func (s *MemoryStore) Get(ctx context.Context, path string) (*shared.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.docs[path]
	if !ok {
		return nil, shared.ErrDocumentNotFound
	}
	return copyDoc(d), nil
}

func (s *MemoryStore) Put(ctx context.Context, path string, data []byte) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeLocked(path, data), nil
}

func (s *MemoryStore) CompareAndSwap(ctx context.Context, path string, data []byte, expected int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var current int64
	if d, ok := s.docs[path]; ok {
		current = d.Version
	}
	if current != expected {
		return 0, shared.ErrVersionConflict
	}
	return s.writeLocked(path, data), nil
}

func (s *MemoryStore) writeLocked(path string, data []byte) int64 {
	var version int64 = 1
	if d, ok := s.docs[path]; ok {
		version = d.Version + 1
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	s.docs[path] = &shared.Document{
		Path:      path,
		Data:      buf,
		Version:   version,
		UpdatedAt: s.now(),
	}
	return version
}

func (s *MemoryStore) now() time.Time {
	return s.clock.Now()
}

func (s *MemoryStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, path)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, prefix string) ([]*shared.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := strings.TrimSuffix(prefix, "/") + "/"
	out := make([]*shared.Document, 0)
	for path, d := range s.docs {
		if strings.HasPrefix(path, p) {
			out = append(out, copyDoc(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}
