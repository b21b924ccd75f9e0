package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"finsight/pkg/core/calc"
)

// =============================================================================
// ANALYSIS REPOSITORY - Run persistence, Postgres and in-memory
// =============================================================================

// Run is one persisted analysis run for a client.
type Run struct {
	ID        uuid.UUID            `json:"id"`
	Client    string               `json:"client"`
	CreatedAt time.Time            `json:"created_at"`
	Result    *calc.AnalysisResult `json:"result"`
}

// AnalysisRepository stores and retrieves analysis runs.
type AnalysisRepository interface {
	Save(ctx context.Context, run *Run) error
	Latest(ctx context.Context, client string) (*Run, error)
	History(ctx context.Context, client string, limit int) ([]*Run, error)
}

// PostgresRepository keeps runs in an analysis_runs table with the result as
// a JSONB blob.
//
// Schema:
//
//	CREATE TABLE IF NOT EXISTS analysis_runs (
//	  id UUID PRIMARY KEY,
//	  client TEXT NOT NULL,
//	  result_json JSONB NOT NULL,
//	  created_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX IF NOT EXISTS analysis_runs_client_idx ON analysis_runs (client, created_at DESC);
type PostgresRepository struct{}

var _ AnalysisRepository = (*PostgresRepository)(nil)

// NewPostgresRepository returns a repository over the shared pool.
func NewPostgresRepository() *PostgresRepository {
	return &PostgresRepository{}
}

// Save inserts one run.
func (r *PostgresRepository) Save(ctx context.Context, run *Run) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	payload, err := json.Marshal(run.Result)
	if err != nil {
		return fmt.Errorf("marshalling analysis result: %w", err)
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO analysis_runs (id, client, result_json, created_at) VALUES ($1, $2, $3, $4)`,
		run.ID, run.Client, payload, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving analysis run: %w", err)
	}
	return nil
}

// Latest returns the most recent run for a client.
func (r *PostgresRepository) Latest(ctx context.Context, client string) (*Run, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}
	run := &Run{Client: client}
	var payload []byte
	err := pool.QueryRow(ctx,
		`SELECT id, result_json, created_at FROM analysis_runs WHERE client = $1 ORDER BY created_at DESC LIMIT 1`,
		client).Scan(&run.ID, &payload, &run.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no analysis runs for client %q", client)
		}
		return nil, fmt.Errorf("loading latest run: %w", err)
	}
	if err := json.Unmarshal(payload, &run.Result); err != nil {
		return nil, fmt.Errorf("unmarshalling analysis result: %w", err)
	}
	return run, nil
}

// History returns up to limit runs for a client, newest first.
func (r *PostgresRepository) History(ctx context.Context, client string, limit int) ([]*Run, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}
	rows, err := pool.Query(ctx,
		`SELECT id, result_json, created_at FROM analysis_runs WHERE client = $1 ORDER BY created_at DESC LIMIT $2`,
		client, limit)
	if err != nil {
		return nil, fmt.Errorf("loading run history: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{Client: client}
		var payload []byte
		if err := rows.Scan(&run.ID, &payload, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if err := json.Unmarshal(payload, &run.Result); err != nil {
			return nil, fmt.Errorf("unmarshalling run %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// MemoryRepository keeps runs in process memory.
type MemoryRepository struct {
	mu   sync.RWMutex
	runs []*Run
}

var _ AnalysisRepository = (*MemoryRepository)(nil)

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Save appends one run.
func (r *MemoryRepository) Save(ctx context.Context, run *Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, run)
	return nil
}

// Latest returns the most recent run for a client.
func (r *MemoryRepository) Latest(ctx context.Context, client string) (*Run, error) {
	runs, err := r.History(ctx, client, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no analysis runs for client %q", client)
	}
	return runs[0], nil
}

// History returns up to limit runs for a client, newest first.
func (r *MemoryRepository) History(ctx context.Context, client string, limit int) ([]*Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var runs []*Run
	for _, run := range r.runs {
		if run.Client == client {
			runs = append(runs, run)
		}
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
