package model

import (
	"time"

	"github.com/google/uuid"
)

// AttemptResult итог завершенной попытки, который записывается один раз
type AttemptResult struct {
	SessionID      uuid.UUID      `json:"session_id"`
	UserID         int            `json:"user_id"`
	SubjectID      int            `json:"subject_id"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	CorrectCount   int            `json:"correct_count"`
	ElapsedSeconds int            `json:"elapsed_seconds"`
	Answers        map[int]Option `json:"answers"`
	TimedOut       bool           `json:"timed_out"`
}

// AttemptRecord сохраненная попытка из истории пользователя
type AttemptRecord struct {
	ID             int64     `json:"id"`
	SessionID      uuid.UUID `json:"session_id"`
	UserID         int       `json:"user_id"`
	SubjectID      int       `json:"subject_id"`
	SubjectName    string    `json:"subject_name"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CorrectCount   int       `json:"correct_count"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
	TimedOut       bool      `json:"timed_out"`
	CreatedAt      time.Time `json:"created_at"`
}
