package kvstore

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"table-concierge/internal/infra"
	"table-concierge/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	getDocumentSQL = `
SELECT path, data::text, version, updated_at
FROM kv_documents
WHERE path = $1`

	putDocumentSQL = `
INSERT INTO kv_documents (path, data, version)
VALUES ($1, $2::jsonb, 1)
ON CONFLICT (path) DO UPDATE
SET data = EXCLUDED.data,
    version = kv_documents.version + 1,
    updated_at = now()
RETURNING version`

	createDocumentSQL = `
INSERT INTO kv_documents (path, data, version)
VALUES ($1, $2::jsonb, 1)
ON CONFLICT (path) DO NOTHING
RETURNING version`

	swapDocumentSQL = `
UPDATE kv_documents
SET data = $2::jsonb,
    version = version + 1,
    updated_at = now()
WHERE path = $1 AND version = $3
RETURNING version`

	deleteDocumentSQL = `DELETE FROM kv_documents WHERE path = $1`

	listDocumentsSQL = `
SELECT path, data::text, version, updated_at
FROM kv_documents
WHERE starts_with(path, $1)
ORDER BY path`
)

// PostgresStore keeps every document as one JSONB row keyed by path. The
// version column backs CompareAndSwap; there are no multi-row transactions.
type PostgresStore struct {
	db     DBTX
	logger *slog.Logger
}

func NewPostgresStore(pool *pgxpool.Pool, logger *slog.Logger) *PostgresStore {
	return NewPostgresStoreWithDB(pool, logger)
}

func NewPostgresStoreWithDB(db DBTX, logger *slog.Logger) *PostgresStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStore{db: db, logger: logger}
}

func (s *PostgresStore) Get(ctx context.Context, path string) (*shared.Document, error) {
	var (
		doc  shared.Document
		data string
	)
	err := s.db.QueryRow(ctx, getDocumentSQL, path).Scan(&doc.Path, &data, &doc.Version, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrDocumentNotFound
		}
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to get document", err)
	}
	doc.Data = []byte(data)
	return &doc, nil
}

func (s *PostgresStore) Put(ctx context.Context, path string, data []byte) (int64, error) {
	var version int64
	if err := s.db.QueryRow(ctx, putDocumentSQL, path, string(data)).Scan(&version); err != nil {
		return 0, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to put document", err)
	}
	return version, nil
}

func (s *PostgresStore) CompareAndSwap(ctx context.Context, path string, data []byte, expected int64) (int64, error) {
	var (
		version int64
		err     error
	)
	if expected == 0 {
		err = s.db.QueryRow(ctx, createDocumentSQL, path, string(data)).Scan(&version)
	} else {
		err = s.db.QueryRow(ctx, swapDocumentSQL, path, string(data), expected).Scan(&version)
	}
	if err != nil {
		// No row returned: the path already existed (create) or the version moved (swap).
		if errors.Is(err, pgx.ErrNoRows) || isSerializationFailure(err) {
			return 0, shared.ErrVersionConflict
		}
		return 0, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to swap document", err)
	}
	return version, nil
}

func (s *PostgresStore) Delete(ctx context.Context, path string) error {
	if _, err := s.db.Exec(ctx, deleteDocumentSQL, path); err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to delete document", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, prefix string) ([]*shared.Document, error) {
	p := strings.TrimSuffix(prefix, "/") + "/"
	rows, err := s.db.Query(ctx, listDocumentsSQL, p)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to list documents", err)
	}
	defer rows.Close()

	out := make([]*shared.Document, 0)
	for rows.Next() {
		var (
			doc  shared.Document
			data string
		)
		if err := rows.Scan(&doc.Path, &data, &doc.Version, &doc.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan document", err)
		}
		doc.Data = []byte(data)
		out = append(out, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to iterate documents", err)
	}
	return out, nil
}

// PostgreSQL error codes treated as a lost optimistic race:
// 40001: serialization_failure
// 40P01: deadlock_detected
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", "40P01":
		return true
	default:
		return false
	}
}
