package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/porese500/simulacros/internal/domain/model"
)

// AttemptRepository история попыток симулякров
type AttemptRepository struct {
	db *pgxpool.Pool
}

// NewAttemptRepository создает новый экземпляр AttemptRepository
func NewAttemptRepository(db *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// InsertAttempt записывает попытку. session_id уникален, поэтому повторная запись той же сессии
// не создает новую строку: возвращается ID существующей и created=false.
func (r *AttemptRepository) InsertAttempt(ctx context.Context, res model.AttemptResult) (int64, bool, error) {
	answers, err := json.Marshal(res.Answers)
	if err != nil {
		return 0, false, fmt.Errorf("failed to marshal answers: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, `
		INSERT INTO attempts (session_id, user_id, subject_id, score, total_questions, correct_count,
		                      elapsed_seconds, timed_out, answers)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (session_id) DO NOTHING
		RETURNING id`,
		res.SessionID, res.UserID, res.SubjectID, res.Score, res.TotalQuestions, res.CorrectCount,
		res.ElapsedSeconds, res.TimedOut, string(answers)).
		Scan(&id)
	if err == nil {
		return id, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("failed to insert attempt: %w", err)
	}

	id, err = r.getIDBySession(ctx, res.SessionID)
	if err != nil {
		return 0, false, err
	}
	return id, false, nil
}

func (r *AttemptRepository) getIDBySession(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, "SELECT id FROM attempts WHERE session_id=$1", sessionID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to get attempt by session: %w", err)
	}
	return id, nil
}

// ListByUser возвращает попытки пользователя в хронологическом порядке
func (r *AttemptRepository) ListByUser(ctx context.Context, userID int) ([]model.AttemptRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.session_id, a.user_id, a.subject_id, s.name, a.score, a.total_questions,
		       a.correct_count, a.elapsed_seconds, a.timed_out, a.created_at
		FROM attempts a
		JOIN subjects s ON s.id = a.subject_id
		WHERE a.user_id = $1
		ORDER BY a.created_at, a.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var records []model.AttemptRecord
	for rows.Next() {
		var rec model.AttemptRecord
		if err := rows.Scan(
			&rec.ID, &rec.SessionID, &rec.UserID, &rec.SubjectID, &rec.SubjectName, &rec.Score,
			&rec.TotalQuestions, &rec.CorrectCount, &rec.ElapsedSeconds, &rec.TimedOut, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}

	return records, nil
}
