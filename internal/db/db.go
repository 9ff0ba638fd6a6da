// Package db provides PostgreSQL persistence for pipeline artifacts.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database. Every pooled
// connection registers the pgvector types so embeddings scan natively.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the artifact tables when they don't exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS resumes (
			id         TEXT PRIMARY KEY,
			full_text  TEXT NOT NULL,
			summary    TEXT NOT NULL DEFAULT '',
			skills     JSONB,
			embedding  vector,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS resume_chunks (
			resume_id   TEXT NOT NULL,
			chunk_index INTEGER NOT NULL,
			content     TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (resume_id, chunk_index)
		)`,
		`CREATE TABLE IF NOT EXISTS job_postings (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL DEFAULT '',
			company     TEXT NOT NULL DEFAULT '',
			location    TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			url         TEXT NOT NULL DEFAULT '',
			posted_at   TIMESTAMPTZ,
			skills      JSONB,
			embedding   vector,
			fetched_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS vocabularies (
			name      TEXT PRIMARY KEY,
			dim       INTEGER NOT NULL,
			artifact  JSONB NOT NULL,
			fitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}

// vectorOrNil converts an embedding to the pgvector wire type, mapping
// empty embeddings to NULL.
func vectorOrNil(embedding []float64) any {
	if len(embedding) == 0 {
		return nil
	}
	out := make([]float32, len(embedding))
	for i, v := range embedding {
		out[i] = float32(v)
	}
	return pgvector.NewVector(out)
}

// vectorToFloat64 widens a stored embedding back to the engine's float64.
func vectorToFloat64(v pgvector.Vector) []float64 {
	slice := v.Slice()
	if len(slice) == 0 {
		return nil
	}
	out := make([]float64, len(slice))
	for i, f := range slice {
		out[i] = float64(f)
	}
	return out
}
