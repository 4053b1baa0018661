package store

import (
	"context"
	"fmt"

	"github.com/parlolabs/parlo/internal/convo"
	"github.com/parlolabs/parlo/internal/eval"
)

// SaveSession writes a finished session and its report in one transaction.
// Callers hold the session lock for the duration of the call.
func (s *Store) SaveSession(ctx context.Context, session *convo.Session, report *eval.Report) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO practice_sessions (id, level, started_at, word_count, avg_words_per_message, vocabulary_richness, common_mistakes, detailed_evaluation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		session.ID, report.Level, session.StartedAt,
		report.WordCount, report.AvgWordsPerMessage, report.VocabularyRichness,
		report.CommonMistakes, report.DetailedEvaluation,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	for i, turn := range session.Turns() {
		_, err = tx.Exec(ctx, `
			INSERT INTO practice_turns (session_id, seq, role, content)
			VALUES ($1, $2, $3, $4)`,
			session.ID, i, turn.Role, turn.Text,
		)
		if err != nil {
			return fmt.Errorf("insert turn %d: %w", i, err)
		}
	}

	for _, task := range session.Profile().Tasks.All() {
		_, err = tx.Exec(ctx, `
			INSERT INTO practice_tasks (session_id, task_id, description, status, response)
			VALUES ($1, $2, $3, $4, $5)`,
			session.ID, task.ID, task.Description, task.Status, task.Response,
		)
		if err != nil {
			return fmt.Errorf("insert task %d: %w", task.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
