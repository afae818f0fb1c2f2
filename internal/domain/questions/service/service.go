package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/porese500/simulacros/internal/domain/dto"
	"github.com/porese500/simulacros/internal/domain/model"
)

// QuestionRepository хранилище банка вопросов
type QuestionRepository interface {
	ListBySubject(ctx context.Context, subjectID int) ([]model.Question, error)
	GetQuestion(ctx context.Context, id int) (*model.Question, error)
	CreateQuestion(ctx context.Context, q model.Question) (int, error)
	SetActive(ctx context.Context, id int, active bool) error
}

// SubjectLookup проверка существования предмета
type SubjectLookup interface {
	GetSubject(ctx context.Context, id int) (*model.Subject, error)
}

// QuestionService управление банком вопросов
type QuestionService struct {
	questionRepo QuestionRepository
	subjects     SubjectLookup
}

// NewQuestionService создает новый экземпляр QuestionService
func NewQuestionService(questionRepo QuestionRepository, subjects SubjectLookup) *QuestionService {
	return &QuestionService{questionRepo: questionRepo, subjects: subjects}
}

// ListQuestions возвращает весь банк предмета, включая архивные вопросы
func (s *QuestionService) ListQuestions(ctx context.Context, subjectID int) ([]model.Question, error) {
	if _, err := s.subjects.GetSubject(ctx, subjectID); err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	questions, err := s.questionRepo.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// CreateQuestion проверяет и добавляет активный вопрос в банк предмета
func (s *QuestionService) CreateQuestion(ctx context.Context, subjectID int, req dto.CreateQuestionRequest) (*model.Question, error) {
	correct, err := model.ParseOption(req.CorrectOption)
	if err != nil {
		return nil, err
	}

	q := model.Question{
		SubjectID: subjectID,
		Body:      strings.TrimSpace(req.Body),
		Options: model.Options{
			A: strings.TrimSpace(req.OptionA),
			B: strings.TrimSpace(req.OptionB),
			C: strings.TrimSpace(req.OptionC),
			D: strings.TrimSpace(req.OptionD),
		},
		CorrectOption: correct,
		Active:        true,
		ImageURL:      req.ImageURL,
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.subjects.GetSubject(ctx, subjectID); err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	id, err := s.questionRepo.CreateQuestion(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	q.ID = id
	return &q, nil
}

// SetActive активирует или архивирует вопрос. Архивный вопрос не попадает в новые попытки.
func (s *QuestionService) SetActive(ctx context.Context, id int, active bool) (*model.Question, error) {
	if err := s.questionRepo.SetActive(ctx, id, active); err != nil {
		return nil, fmt.Errorf("failed to set question state: %w", err)
	}
	q, err := s.questionRepo.GetQuestion(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return q, nil
}
