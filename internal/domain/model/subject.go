package model

import (
	"errors"
	"time"
)

var ErrInvalidDuration = errors.New("duration must be positive")

// Subject представляет предмет (materia) с собственным банком вопросов
// и настроенной длительностью симулякра.
type Subject struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	DurationSeconds int       `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Duration длительность симулякра
func (s Subject) Duration() time.Duration {
	return time.Duration(s.DurationSeconds) * time.Second
}
