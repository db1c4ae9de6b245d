// Package database archives finished trick runs in Postgres.
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jason-s-yu/onetrick/internal/sim"
)

// ErrRunNotFound is returned by LoadRun for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Connect opens a pool and checks the connection.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS trick_runs (
	run_id     UUID PRIMARY KEY,
	dealer     INTEGER NOT NULL,
	round      INTEGER NOT NULL,
	trump      TEXT NOT NULL,
	winner     INTEGER NOT NULL,
	summary    JSONB NOT NULL,
	events     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const upsertRun = `
INSERT INTO trick_runs (run_id, dealer, round, trump, winner, summary, events)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (run_id) DO UPDATE SET
	dealer = EXCLUDED.dealer,
	round = EXCLUDED.round,
	trump = EXCLUDED.trump,
	winner = EXCLUDED.winner,
	summary = EXCLUDED.summary,
	events = EXCLUDED.events`

const selectRun = `SELECT summary, events FROM trick_runs WHERE run_id = $1`

// RunStore reads and writes the trick_runs table.
type RunStore struct {
	db DB
}

func NewRunStore(db DB) *RunStore { return &RunStore{db: db} }

// Migrate creates the trick_runs table if it does not exist.
func (s *RunStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create trick_runs: %w", err)
	}
	return nil
}

// SaveRun stores a finished run, replacing any earlier copy with the same id.
func (s *RunStore) SaveRun(ctx context.Context, res *sim.Result) error {
	summary, err := json.Marshal(res.Summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	events, err := json.Marshal(res.Events)
	if err != nil {
		return fmt.Errorf("marshal events: %w", err)
	}
	sum := res.Summary
	if _, err := s.db.Exec(ctx, upsertRun,
		res.RunID.String(), sum.Dealer, sum.Round, sum.Trump, sum.Winner, summary, events); err != nil {
		return fmt.Errorf("store run %s: %w", res.RunID, err)
	}
	return nil
}

// LoadRun reads back an archived run.
func (s *RunStore) LoadRun(ctx context.Context, runID uuid.UUID) (*sim.Result, error) {
	var summary, events []byte
	err := s.db.QueryRow(ctx, selectRun, runID.String()).Scan(&summary, &events)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}

	res := &sim.Result{RunID: runID}
	if err := json.Unmarshal(summary, &res.Summary); err != nil {
		return nil, fmt.Errorf("decode summary of %s: %w", runID, err)
	}
	if err := json.Unmarshal(events, &res.Events); err != nil {
		return nil, fmt.Errorf("decode events of %s: %w", runID, err)
	}
	return res, nil
}
