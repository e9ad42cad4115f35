package shared

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"table-concierge/internal/pkg/errs"
)

var ErrMaxRetriesExceeded = errs.New("update failed after max retries")

const defaultUpdateRetries = 3

// GetJSON loads and decodes the document at path. The returned version feeds
// CompareAndSwap.
func GetJSON[T any](ctx context.Context, s Store, path string) (*T, int64, error) {
	doc, err := s.Get(ctx, path)
	if err != nil {
		return nil, 0, err
	}
	var v T
	if err := json.Unmarshal(doc.Data, &v); err != nil {
		return nil, 0, errs.Wrapf(err, "decode %s", path)
	}
	return &v, doc.Version, nil
}

func PutJSON(ctx context.Context, s Store, path string, v any) (int64, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, errs.Wrapf(err, "encode %s", path)
	}
	return s.Put(ctx, path, data)
}

// CreateJSON writes v only if path is empty; ErrVersionConflict otherwise.
func CreateJSON(ctx context.Context, s Store, path string, v any) (int64, error) {
	return SwapJSON(ctx, s, path, v, 0)
}

func SwapJSON(ctx context.Context, s Store, path string, v any, expected int64) (int64, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, errs.Wrapf(err, "encode %s", path)
	}
	return s.CompareAndSwap(ctx, path, data, expected)
}

// ListJSON decodes every document under prefix, skipping undecodable ones.
func ListJSON[T any](ctx context.Context, s Store, prefix string) ([]*T, error) {
	docs, err := s.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(docs))
	for _, d := range docs {
		var v T
		if err := json.Unmarshal(d.Data, &v); err != nil {
			slog.Warn("skipping undecodable document", "path", d.Path, "error", err.Error())
			continue
		}
		out = append(out, &v)
	}
	return out, nil
}

// UpdateJSON runs read-modify-write against one record using the store's
// optimistic version check, retrying on conflict with linear backoff.
// mutate receives nil when the document does not exist yet and returns the
// value to write.
func UpdateJSON[T any](ctx context.Context, s Store, path string, mutate func(cur *T) (*T, error)) (*T, error) {
	for attempt := 0; attempt <= defaultUpdateRetries; attempt++ {
		cur, version, err := GetJSON[T](ctx, s, path)
		if err != nil && !errors.Is(err, ErrDocumentNotFound) {
			return nil, err
		}

		next, err := mutate(cur)
		if err != nil {
			return nil, err
		}

		_, err = SwapJSON(ctx, s, path, next, version)
		if err == nil {
			return next, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return nil, err
		}

		waitTime := time.Duration(attempt+1) * 10 * time.Millisecond
		slog.Debug("retrying update after version conflict",
			"path", path,
			"attempt", attempt+1,
			"wait_time", waitTime)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(waitTime):
		}
	}
	return nil, errs.Mark(errs.Newf("update %s", path), ErrMaxRetriesExceeded)
}
