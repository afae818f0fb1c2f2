package service

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"
	"github.com/porese500/simulacros/internal/domain/dto"
	"github.com/porese500/simulacros/internal/domain/model"
	"github.com/porese500/simulacros/internal/infra/events"
)

// AttemptRepository хранилище попыток
type AttemptRepository interface {
	InsertAttempt(ctx context.Context, res model.AttemptResult) (id int64, created bool, err error)
	ListByUser(ctx context.Context, userID int) ([]model.AttemptRecord, error)
}

// FinishedEvent полезная нагрузка события simulacro.finished
type FinishedEvent struct {
	AttemptID      int64     `json:"attempt_id"`
	SessionID      uuid.UUID `json:"session_id"`
	UserID         int       `json:"user_id"`
	SubjectID      int       `json:"subject_id"`
	Score          int       `json:"score"`
	CorrectCount   int       `json:"correct_count"`
	TotalQuestions int       `json:"total_questions"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
	TimedOut       bool      `json:"timed_out"`
}

// ResultService запись результатов и прогресс пользователей
type ResultService struct {
	attemptRepo AttemptRepository
	publisher   events.Publisher
}

// NewResultService создает новый экземпляр ResultService
func NewResultService(attemptRepo AttemptRepository, publisher events.Publisher) *ResultService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ResultService{attemptRepo: attemptRepo, publisher: publisher}
}

// RecordAttempt сохраняет итог попытки не более одного раза на сессию и публикует событие.
// Ошибка публикации только логируется.
func (s *ResultService) RecordAttempt(ctx context.Context, res model.AttemptResult) (int64, error) {
	id, created, err := s.attemptRepo.InsertAttempt(ctx, res)
	if err != nil {
		return 0, fmt.Errorf("failed to record attempt: %w", err)
	}
	if !created {
		log.Printf("attempt for session %s already recorded as %d", res.SessionID, id)
		return id, nil
	}

	event := FinishedEvent{
		AttemptID:      id,
		SessionID:      res.SessionID,
		UserID:         res.UserID,
		SubjectID:      res.SubjectID,
		Score:          res.Score,
		CorrectCount:   res.CorrectCount,
		TotalQuestions: res.TotalQuestions,
		ElapsedSeconds: res.ElapsedSeconds,
		TimedOut:       res.TimedOut,
	}
	if err := s.publisher.Publish(events.SimulacroFinished, event); err != nil {
		log.Printf("failed to publish %s for attempt %d: %v", events.SimulacroFinished, id, err)
	}
	return id, nil
}

// Progress возвращает прогресс пользователя по предметам
func (s *ResultService) Progress(ctx context.Context, userID int) ([]dto.SubjectProgress, error) {
	records, err := s.attemptRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	return Summarize(records), nil
}

// Summarize группирует хронологическую историю попыток по предметам.
// Средний балл округляется половиной вверх, предметы упорядочены по имени.
func Summarize(records []model.AttemptRecord) []dto.SubjectProgress {
	bySubject := make(map[int]*dto.SubjectProgress)
	sums := make(map[int]int)

	for _, rec := range records {
		p, ok := bySubject[rec.SubjectID]
		if !ok {
			p = &dto.SubjectProgress{SubjectID: rec.SubjectID, SubjectName: rec.SubjectName}
			bySubject[rec.SubjectID] = p
		}
		p.Attempts++
		p.Scores = append(p.Scores, rec.Score)
		if rec.Score > p.BestScore {
			p.BestScore = rec.Score
		}
		p.LastScore = rec.Score
		p.LastAttemptAt = rec.CreatedAt
		sums[rec.SubjectID] += rec.Score
	}

	progress := make([]dto.SubjectProgress, 0, len(bySubject))
	for id, p := range bySubject {
		p.AverageScore = (2*sums[id] + p.Attempts) / (2 * p.Attempts)
		progress = append(progress, *p)
	}
	sort.Slice(progress, func(i, j int) bool {
		if progress[i].SubjectName != progress[j].SubjectName {
			return progress[i].SubjectName < progress[j].SubjectName
		}
		return progress[i].SubjectID < progress[j].SubjectID
	})
	return progress
}
