package shared

import (
	"context"
	"time"

	"table-concierge/internal/pkg/errs"
)

var (
	ErrDocumentNotFound = errs.Mark(errs.New("document not found"), errs.ErrNotFound)
	ErrVersionConflict  = errs.New("document version conflict")
)

// Document is one keyed record in the backing store. Version increases by one
// on every successful write and is the basis for optimistic concurrency.
type Document struct {
	Path      string
	Data      []byte
	Version   int64
	UpdatedAt time.Time
}

// Store is the abstract keyed-path persistence collaborator. It offers no
// cross-record transactions; CompareAndSwap is atomic per record only.
type Store interface {
	// Get returns ErrDocumentNotFound when nothing is stored at path.
	Get(ctx context.Context, path string) (*Document, error)
	// Put writes unconditionally and returns the new version.
	Put(ctx context.Context, path string, data []byte) (int64, error)
	// CompareAndSwap writes only if the stored version equals expected.
	// expected == 0 means "must not exist yet". Mismatch yields ErrVersionConflict.
	CompareAndSwap(ctx context.Context, path string, data []byte, expected int64) (int64, error)
	// Delete is idempotent.
	Delete(ctx context.Context, path string) error
	// List returns every document strictly below prefix ("prefix/..."), ordered by path.
	List(ctx context.Context, prefix string) ([]*Document, error)
}

// BucketCache is a byte-level TTL cache used for bucket status reads.
type BucketCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type OutboundMessage struct {
	To   string `json:"to"`
	Body string `json:"body"`
	Kind string `json:"kind"`
}

// MessageSender is the outbound "send message" sink. Delivery is best effort.
type MessageSender interface {
	Send(ctx context.Context, msg OutboundMessage) error
}
