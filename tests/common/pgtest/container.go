//go:build integration

// Package pgtest starts one PostgreSQL container per test process and hands
// each caller a freshly migrated database.
package pgtest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"table-concierge/internal/infra/db"
	"table-concierge/internal/pkg/config"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	containerOnce sync.Once
	container     testcontainers.Container
	containerErr  error

	testUser     = "test"
	testPassword = "testpass"
)

var migrationFiles = []string{
	"migrations/001_initial_schema.sql",
}

// NewDatabase creates an isolated database inside the shared container,
// applies migrations and returns a pool plus the config that reaches it.
// The database is dropped on cleanup.
func NewDatabase(t *testing.T) (*pgxpool.Pool, config.DBConfig) {
	t.Helper()

	host, port := startContainer(t)
	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, host, port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "admin connection failed")
	defer adminPool.Close()

	var createErr error
	for attempt := range 5 {
		if attempt > 0 {
			time.Sleep(min(time.Duration(500+attempt*500)*time.Millisecond, 3*time.Second))
		}
		if _, createErr = adminPool.Exec(ctx, "CREATE DATABASE "+dbName); createErr == nil {
			break
		}
		slog.Warn("retrying database creation", "attempt", attempt+1, "error", createErr.Error())
	}
	require.NoError(t, createErr, "failed to create test database")

	cfg := config.DBConfig{
		Host:     host,
		Port:     port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 10,
	}

	pool, closePool, err := db.Connect(cfg)
	require.NoError(t, err, "failed to connect to test database")
	require.NoError(t, applyMigrations(ctx, pool), "failed to apply migrations")

	t.Cleanup(func() {
		closePool()

		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()
		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN)
		if err != nil {
			slog.Warn("cleanup connection failed", "database", dbName, "error", err.Error())
			return
		}
		defer cleanupPool.Close()
		if _, err := cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)"); err != nil {
			slog.Warn("failed to drop test database", "database", dbName, "error", err.Error())
		}
	})

	return pool, cfg
}

func applyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	for _, file := range migrationFiles {
		sqlContent, err := readFromRepoRoot(file)
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, string(sqlContent)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
	}
	return nil
}

// readFromRepoRoot resolves file against the working directory of whichever
// package `go test` is running in.
func readFromRepoRoot(file string) ([]byte, error) {
	var lastErr error
	for _, cand := range []string{
		file,
		filepath.Join("..", file),
		filepath.Join("..", "..", file),
		filepath.Join("..", "..", "..", file),
		filepath.Join("..", "..", "..", "..", file),
	} {
		content, err := os.ReadFile(cand)
		if err == nil {
			return content, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("failed to read migration file %s: %w", file, lastErr)
}

func startContainer(t *testing.T) (string, nat.Port) {
	t.Helper()

	containerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{
				"/var/lib/postgresql/data": "rw,size=512m",
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "full_page_writes=off",
				"-c", "synchronous_commit=off",
				"-c", "max_connections=200",
				"-c", "log_statement=none",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "integration-tests"},
		}

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		container, containerErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
	})
	require.NoError(t, containerErr, "failed to start postgres container")

	ctx := context.Background()
	mapped, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)
	return host, mapped
}
