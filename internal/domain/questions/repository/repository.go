package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/porese500/simulacros/internal/domain/model"
)

const selectQuestion = `
	SELECT id, subject_id, body, option_a, option_b, option_c, option_d,
	       correct_option, active, image_url, created_at, updated_at
	FROM questions`

// QuestionRepository репозиторий банка вопросов
type QuestionRepository struct {
	db *pgxpool.Pool
}

// NewQuestionRepository создает новый экземпляр QuestionRepository
func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// ListActiveBySubject возвращает активные вопросы предмета
func (r *QuestionRepository) ListActiveBySubject(ctx context.Context, subjectID int) ([]model.Question, error) {
	return r.list(ctx, selectQuestion+" WHERE subject_id=$1 AND active ORDER BY id", subjectID)
}

// ListBySubject возвращает все вопросы предмета, включая архивные
func (r *QuestionRepository) ListBySubject(ctx context.Context, subjectID int) ([]model.Question, error) {
	return r.list(ctx, selectQuestion+" WHERE subject_id=$1 ORDER BY id", subjectID)
}

func (r *QuestionRepository) list(ctx context.Context, query string, args ...any) ([]model.Question, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}

	return questions, nil
}

// GetQuestion получает вопрос по ID
func (r *QuestionRepository) GetQuestion(ctx context.Context, id int) (*model.Question, error) {
	q, err := scanQuestion(r.db.QueryRow(ctx, selectQuestion+" WHERE id=$1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

// CreateQuestion добавляет вопрос в банк
func (r *QuestionRepository) CreateQuestion(ctx context.Context, q model.Question) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `
		INSERT INTO questions (subject_id, body, option_a, option_b, option_c, option_d, correct_option, active, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		q.SubjectID, q.Body, q.Options.A, q.Options.B, q.Options.C, q.Options.D,
		string(q.CorrectOption), q.Active, q.ImageURL).
		Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create question: %w", err)
	}
	return id, nil
}

// SetActive активирует или архивирует вопрос
func (r *QuestionRepository) SetActive(ctx context.Context, id int, active bool) error {
	tag, err := r.db.Exec(ctx, "UPDATE questions SET active=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2", active, id)
	if err != nil {
		return fmt.Errorf("failed to update question state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// CountActiveBySubject количество активных вопросов по предметам
func (r *QuestionRepository) CountActiveBySubject(ctx context.Context) (map[int]int, error) {
	rows, err := r.db.Query(ctx, "SELECT subject_id, COUNT(*) FROM questions WHERE active GROUP BY subject_id")
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var subjectID, count int
		if err := rows.Scan(&subjectID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan question count: %w", err)
		}
		counts[subjectID] = count
	}
	return counts, rows.Err()
}

func scanQuestion(row pgx.Row) (model.Question, error) {
	var q model.Question
	var correct string
	err := row.Scan(
		&q.ID, &q.SubjectID, &q.Body, &q.Options.A, &q.Options.B, &q.Options.C, &q.Options.D,
		&correct, &q.Active, &q.ImageURL, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return q, err
		}
		return q, fmt.Errorf("failed to scan question: %w", err)
	}
	q.CorrectOption = model.Option(correct)
	return q, nil
}
