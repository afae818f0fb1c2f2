package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/porese500/simulacros/internal/domain/dto"
	"github.com/porese500/simulacros/internal/domain/model"
)

// SubjectRepository хранилище предметов
type SubjectRepository interface {
	ListSubjects(ctx context.Context) ([]model.Subject, error)
	GetSubject(ctx context.Context, id int) (*model.Subject, error)
	CreateSubject(ctx context.Context, name string, durationSeconds int) (int, error)
	UpdateDuration(ctx context.Context, id int, durationSeconds int) error
}

// QuestionRepository чтение активного банка вопросов
type QuestionRepository interface {
	ListActiveBySubject(ctx context.Context, subjectID int) ([]model.Question, error)
	CountActiveBySubject(ctx context.Context) (map[int]int, error)
}

// SubjectService предметы и источник вопросов для симулякров
type SubjectService struct {
	subjectRepo  SubjectRepository
	questionRepo QuestionRepository
}

// NewSubjectService создает новый экземпляр SubjectService
func NewSubjectService(subjectRepo SubjectRepository, questionRepo QuestionRepository) *SubjectService {
	return &SubjectService{subjectRepo: subjectRepo, questionRepo: questionRepo}
}

// ListSubjects возвращает предметы с количеством активных вопросов
func (s *SubjectService) ListSubjects(ctx context.Context) ([]dto.SubjectSummary, error) {
	subjects, err := s.subjectRepo.ListSubjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	counts, err := s.questionRepo.CountActiveBySubject(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	summaries := make([]dto.SubjectSummary, 0, len(subjects))
	for _, subject := range subjects {
		summaries = append(summaries, dto.SubjectSummary{
			ID:              subject.ID,
			Name:            subject.Name,
			DurationSeconds: subject.DurationSeconds,
			QuestionCount:   counts[subject.ID],
		})
	}
	return summaries, nil
}

// GetSubject получает предмет по ID
func (s *SubjectService) GetSubject(ctx context.Context, id int) (*model.Subject, error) {
	subject, err := s.subjectRepo.GetSubject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	return subject, nil
}

// ListActiveQuestions возвращает активные вопросы предмета
func (s *SubjectService) ListActiveQuestions(ctx context.Context, subjectID int) ([]model.Question, error) {
	questions, err := s.questionRepo.ListActiveBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active questions: %w", err)
	}
	return questions, nil
}

// CreateSubject создает предмет с длительностью симулякра
func (s *SubjectService) CreateSubject(ctx context.Context, name string, durationSeconds int) (*model.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrEmptyName
	}
	if durationSeconds <= 0 {
		return nil, model.ErrInvalidDuration
	}

	id, err := s.subjectRepo.CreateSubject(ctx, name, durationSeconds)
	if err != nil {
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}
	return s.GetSubject(ctx, id)
}

// UpdateDuration настраивает длительность симулякра. Идущие попытки сохраняют свой таймер.
func (s *SubjectService) UpdateDuration(ctx context.Context, id int, durationSeconds int) error {
	if durationSeconds <= 0 {
		return model.ErrInvalidDuration
	}
	if err := s.subjectRepo.UpdateDuration(ctx, id, durationSeconds); err != nil {
		return fmt.Errorf("failed to update duration: %w", err)
	}
	return nil
}
