// Package store archives finished practice sessions to Postgres: the full
// turn sequence, every assigned task, and the evaluation report.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS practice_sessions (
			id UUID PRIMARY KEY,
			level TEXT NOT NULL,
			started_at TIMESTAMPTZ NOT NULL,
			ended_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			word_count INT NOT NULL,
			avg_words_per_message DOUBLE PRECISION NOT NULL,
			vocabulary_richness DOUBLE PRECISION NOT NULL,
			common_mistakes TEXT[] NOT NULL DEFAULT '{}',
			detailed_evaluation TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS practice_turns (
			session_id UUID NOT NULL REFERENCES practice_sessions(id) ON DELETE CASCADE,
			seq INT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			PRIMARY KEY (session_id, seq)
		);
		CREATE TABLE IF NOT EXISTS practice_tasks (
			session_id UUID NOT NULL REFERENCES practice_sessions(id) ON DELETE CASCADE,
			task_id INT NOT NULL,
			description TEXT NOT NULL,
			status TEXT NOT NULL,
			response TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (session_id, task_id)
		);`)
	return err
}
