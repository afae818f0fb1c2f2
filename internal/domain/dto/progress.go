package dto

import "time"

// SubjectProgress прогресс пользователя по одному предмету
type SubjectProgress struct {
	SubjectID     int       `json:"subject_id"`
	SubjectName   string    `json:"subject_name"`
	Attempts      int       `json:"attempts"`
	AverageScore  int       `json:"average_score"`
	BestScore     int       `json:"best_score"`
	LastScore     int       `json:"last_score"`
	LastAttemptAt time.Time `json:"last_attempt_at"`
	Scores        []int     `json:"scores"`
}

// ProgressResponse ответ GET /users/{id}/progress
type ProgressResponse struct {
	UserID   int               `json:"user_id"`
	Subjects []SubjectProgress `json:"subjects"`
}
