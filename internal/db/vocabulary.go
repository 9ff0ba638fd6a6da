package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-matcher/internal/tfidf"
)

// SaveVocabulary persists a fitted vocabulary artifact under a name.
func (db *DB) SaveVocabulary(ctx context.Context, name string, vocab *tfidf.Vocabulary) error {
	artifact, err := json.Marshal(vocab)
	if err != nil {
		return fmt.Errorf("failed to marshal vocabulary: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO vocabularies (name, dim, artifact, fitted_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (name) DO UPDATE SET
		     dim = $2,
		     artifact = $3,
		     fitted_at = NOW()`,
		name, vocab.Dim(), artifact,
	)
	if err != nil {
		return fmt.Errorf("failed to save vocabulary %s: %w", name, err)
	}
	return nil
}

// GetVocabulary loads a fitted vocabulary by name, or nil when absent.
func (db *DB) GetVocabulary(ctx context.Context, name string) (*tfidf.Vocabulary, error) {
	var artifact []byte
	err := db.pool.QueryRow(ctx,
		`SELECT artifact FROM vocabularies WHERE name = $1`,
		name,
	).Scan(&artifact)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vocabulary: %w", err)
	}

	vocab, err := tfidf.Parse(artifact)
	if err != nil {
		return nil, fmt.Errorf("stored vocabulary %s is invalid: %w", name, err)
	}
	return vocab, nil
}
