package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/porese500/simulacros/internal/domain/model"
)

// SubjectRepository репозиторий предметов
type SubjectRepository struct {
	db *pgxpool.Pool
}

// NewSubjectRepository создает новый экземпляр SubjectRepository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// ListSubjects возвращает все предметы по имени
func (r *SubjectRepository) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	rows, err := r.db.Query(ctx, "SELECT id, name, duration_seconds, created_at, updated_at FROM subjects ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query subjects: %w", err)
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.DurationSeconds, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}

	return subjects, nil
}

// GetSubject получает предмет по ID
func (r *SubjectRepository) GetSubject(ctx context.Context, id int) (*model.Subject, error) {
	var s model.Subject
	err := r.db.QueryRow(ctx, "SELECT id, name, duration_seconds, created_at, updated_at FROM subjects WHERE id=$1", id).
		Scan(&s.ID, &s.Name, &s.DurationSeconds, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subject by ID: %w", err)
	}
	return &s, nil
}

// CreateSubject создает предмет
func (r *SubjectRepository) CreateSubject(ctx context.Context, name string, durationSeconds int) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, "INSERT INTO subjects (name, duration_seconds) VALUES ($1, $2) RETURNING id", name, durationSeconds).
		Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create subject: %w", err)
	}
	return id, nil
}

// UpdateDuration меняет длительность симулякра предмета
func (r *SubjectRepository) UpdateDuration(ctx context.Context, id int, durationSeconds int) error {
	tag, err := r.db.Exec(ctx, "UPDATE subjects SET duration_seconds=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2", durationSeconds, id)
	if err != nil {
		return fmt.Errorf("failed to update subject duration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
