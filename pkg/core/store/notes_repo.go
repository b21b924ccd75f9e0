package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// =============================================================================
// NOTES REPOSITORY - analyst annotations attached to analysis runs
// =============================================================================

// Note is a free-text annotation an analyst attaches to a stored run,
// typically recording context the statements themselves cannot carry
// (owner drawings, one-off sales, pending disputes).
type Note struct {
	ID        uuid.UUID `json:"id"`
	RunID     uuid.UUID `json:"run_id"`
	Client    string    `json:"client"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// NotesRepository stores analyst notes.
type NotesRepository interface {
	Add(ctx context.Context, note *Note) error
	ForRun(ctx context.Context, runID uuid.UUID) ([]*Note, error)
	ForClient(ctx context.Context, client string) ([]*Note, error)
}

// PostgresNotesRepo keeps notes in the analysis_notes table.
//
// Schema:
//
//	CREATE TABLE analysis_notes (
//	    id         UUID PRIMARY KEY,
//	    run_id     UUID NOT NULL REFERENCES analysis_runs(id),
//	    client     TEXT NOT NULL,
//	    author     TEXT NOT NULL DEFAULT '',
//	    body       TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type PostgresNotesRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresNotesRepo(pool *pgxpool.Pool) *PostgresNotesRepo {
	return &PostgresNotesRepo{pool: pool}
}

func (r *PostgresNotesRepo) Add(ctx context.Context, note *Note) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO analysis_notes (id, run_id, client, author, body, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		note.ID, note.RunID, note.Client, note.Author, note.Body, note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving note: %w", err)
	}
	return nil
}

func (r *PostgresNotesRepo) ForRun(ctx context.Context, runID uuid.UUID) ([]*Note, error) {
	return r.query(ctx,
		`SELECT id, run_id, client, author, body, created_at
		 FROM analysis_notes WHERE run_id = $1 ORDER BY created_at`, runID)
}

func (r *PostgresNotesRepo) ForClient(ctx context.Context, client string) ([]*Note, error) {
	return r.query(ctx,
		`SELECT id, run_id, client, author, body, created_at
		 FROM analysis_notes WHERE client = $1 ORDER BY created_at`, client)
}

func (r *PostgresNotesRepo) query(ctx context.Context, sql string, arg interface{}) ([]*Note, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}
	rows, err := r.pool.Query(ctx, sql, arg)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var notes []*Note
	for rows.Next() {
		n := &Note{}
		if err := rows.Scan(&n.ID, &n.RunID, &n.Client, &n.Author, &n.Body, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// MemoryNotesRepo is the in-process implementation used in tests and when no
// database is configured.
type MemoryNotesRepo struct {
	mu    sync.RWMutex
	notes []*Note
}

func NewMemoryNotesRepo() *MemoryNotesRepo {
	return &MemoryNotesRepo{}
}

func (r *MemoryNotesRepo) Add(ctx context.Context, note *Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	r.notes = append(r.notes, note)
	return nil
}

func (r *MemoryNotesRepo) ForRun(ctx context.Context, runID uuid.UUID) ([]*Note, error) {
	return r.filter(func(n *Note) bool { return n.RunID == runID }), nil
}

func (r *MemoryNotesRepo) ForClient(ctx context.Context, client string) ([]*Note, error) {
	return r.filter(func(n *Note) bool { return n.Client == client }), nil
}

func (r *MemoryNotesRepo) filter(keep func(*Note) bool) []*Note {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Note
	for _, n := range r.notes {
		if keep(n) {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
