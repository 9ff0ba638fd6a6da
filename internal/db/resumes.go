package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/jonathan/job-matcher/internal/types"
)

// SaveResumeChunks stages raw chunk rows, upserting on (resume_id, chunk_index).
func (db *DB) SaveResumeChunks(ctx context.Context, chunks []types.ResumeChunk) error {
	for _, chunk := range chunks {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO resume_chunks (resume_id, chunk_index, content)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (resume_id, chunk_index) DO UPDATE SET content = $3`,
			chunk.ResumeID, chunk.ChunkIndex, chunk.Content,
		)
		if err != nil {
			return fmt.Errorf("failed to save resume chunk %s/%d: %w", chunk.ResumeID, chunk.ChunkIndex, err)
		}
	}
	return nil
}

// ListResumeChunks retrieves all staged chunk rows ordered for assembly.
func (db *DB) ListResumeChunks(ctx context.Context) ([]types.ResumeChunk, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT resume_id, chunk_index, content
		 FROM resume_chunks
		 ORDER BY resume_id, chunk_index`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume chunks: %w", err)
	}
	defer rows.Close()

	var chunks []types.ResumeChunk
	for rows.Next() {
		var chunk types.ResumeChunk
		if err := rows.Scan(&chunk.ResumeID, &chunk.ChunkIndex, &chunk.Content); err != nil {
			return nil, fmt.Errorf("failed to scan resume chunk: %w", err)
		}
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

// SaveResumeProfile upserts a featurized resume.
func (db *DB) SaveResumeProfile(ctx context.Context, profile *types.ResumeProfile) error {
	skillsJSON, err := json.Marshal(profile.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO resumes (id, full_text, summary, skills, embedding)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET
		     full_text = $2,
		     summary = $3,
		     skills = $4,
		     embedding = $5,
		     updated_at = NOW()`,
		profile.ResumeID, profile.FullText, profile.Summary, skillsJSON, vectorOrNil(profile.Vector),
	)
	if err != nil {
		return fmt.Errorf("failed to save resume profile %s: %w", profile.ResumeID, err)
	}
	return nil
}

// GetResumeProfile retrieves a featurized resume, or nil when absent.
func (db *DB) GetResumeProfile(ctx context.Context, resumeID string) (*types.ResumeProfile, error) {
	var profile types.ResumeProfile
	var skillsJSON []byte
	var embedding *pgvector.Vector

	err := db.pool.QueryRow(ctx,
		`SELECT id, full_text, summary, skills, embedding
		 FROM resumes WHERE id = $1`,
		resumeID,
	).Scan(&profile.ResumeID, &profile.FullText, &profile.Summary, &skillsJSON, &embedding)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume profile: %w", err)
	}

	// Parse JSONB fields
	if skillsJSON != nil {
		_ = json.Unmarshal(skillsJSON, &profile.Skills)
	}
	if embedding != nil {
		profile.Vector = vectorToFloat64(*embedding)
	}

	return &profile, nil
}

// ListResumeIDs returns the identifiers of all stored resume profiles.
func (db *DB) ListResumeIDs(ctx context.Context) ([]string, error) {
	rows, err := db.pool.Query(ctx, `SELECT id FROM resumes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan resume id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
