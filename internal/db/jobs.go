package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/jonathan/job-matcher/internal/types"
)

// UpsertJobPostings stores fetched postings, replacing rows that share an id.
func (db *DB) UpsertJobPostings(ctx context.Context, postings []types.JobPosting) error {
	for i := range postings {
		p := &postings[i]
		skillsJSON, err := json.Marshal(p.Skills)
		if err != nil {
			return fmt.Errorf("failed to marshal skills for job %s: %w", p.JobID, err)
		}

		_, err = db.pool.Exec(ctx,
			`INSERT INTO job_postings (id, title, company, location, description, url, posted_at, skills, embedding, fetched_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
			 ON CONFLICT (id) DO UPDATE SET
			     title = $2,
			     company = $3,
			     location = $4,
			     description = $5,
			     url = $6,
			     posted_at = $7,
			     skills = $8,
			     embedding = $9,
			     fetched_at = NOW()`,
			p.JobID, p.Title, p.Company, p.Location, p.Description, p.URL,
			p.PostedAt, skillsJSON, vectorOrNil(p.Vector),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert job posting %s: %w", p.JobID, err)
		}
	}
	return nil
}

// GetJobPosting retrieves one posting by id, or nil when absent.
func (db *DB) GetJobPosting(ctx context.Context, jobID string) (*types.JobPosting, error) {
	var p types.JobPosting
	var skillsJSON []byte
	var embedding *pgvector.Vector

	err := db.pool.QueryRow(ctx,
		`SELECT id, title, company, location, description, url, posted_at, skills, embedding
		 FROM job_postings WHERE id = $1`,
		jobID,
	).Scan(&p.JobID, &p.Title, &p.Company, &p.Location, &p.Description, &p.URL,
		&p.PostedAt, &skillsJSON, &embedding)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}

	// Parse JSONB fields
	if skillsJSON != nil {
		_ = json.Unmarshal(skillsJSON, &p.Skills)
	}
	if embedding != nil {
		p.Vector = vectorToFloat64(*embedding)
	}

	return &p, nil
}

// ListJobPostings retrieves stored postings, newest first.
func (db *DB) ListJobPostings(ctx context.Context, limit int) ([]types.JobPosting, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, title, company, location, description, url, posted_at, skills, embedding
		 FROM job_postings
		 ORDER BY posted_at DESC NULLS LAST, fetched_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	var postings []types.JobPosting
	for rows.Next() {
		var p types.JobPosting
		var skillsJSON []byte
		var embedding *pgvector.Vector

		if err := rows.Scan(&p.JobID, &p.Title, &p.Company, &p.Location, &p.Description,
			&p.URL, &p.PostedAt, &skillsJSON, &embedding); err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}

		if skillsJSON != nil {
			_ = json.Unmarshal(skillsJSON, &p.Skills)
		}
		if embedding != nil {
			p.Vector = vectorToFloat64(*embedding)
		}

		postings = append(postings, p)
	}
	return postings, nil
}
