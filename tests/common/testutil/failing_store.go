//go:build unit || integration

package testutil

import (
	"context"
	"strings"

	"table-concierge/internal/usecase/shared"
)

// FailingStore wraps a Store and fails every call whose path starts with
// one of FailPrefixes.
type FailingStore struct {
	shared.Store
	FailPrefixes []string
	Err          error
}

func (f *FailingStore) fails(path string) bool {
	for _, p := range f.FailPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func (f *FailingStore) Get(ctx context.Context, path string) (*shared.Document, error) {
	if f.fails(path) {
		return nil, f.Err
	}
	return f.Store.Get(ctx, path)
}

func (f *FailingStore) Put(ctx context.Context, path string, data []byte) (int64, error) {
	if f.fails(path) {
		return 0, f.Err
	}
	return f.Store.Put(ctx, path, data)
}

func (f *FailingStore) CompareAndSwap(ctx context.Context, path string, data []byte, expected int64) (int64, error) {
	if f.fails(path) {
		return 0, f.Err
	}
	return f.Store.CompareAndSwap(ctx, path, data, expected)
}

func (f *FailingStore) Delete(ctx context.Context, path string) error {
	if f.fails(path) {
		return f.Err
	}
	return f.Store.Delete(ctx, path)
}

func (f *FailingStore) List(ctx context.Context, prefix string) ([]*shared.Document, error) {
	if f.fails(prefix) {
		return nil, f.Err
	}
	return f.Store.List(ctx, prefix)
}
