package simulacro

import (
	"context"
	"log"

	"github.com/porese500/simulacros/internal/domain/model"
)

// QuestionStore источник предметов и активных вопросов
type QuestionStore interface {
	GetSubject(ctx context.Context, subjectID int) (*model.Subject, error)
	ListActiveQuestions(ctx context.Context, subjectID int) ([]model.Question, error)
}

// ResultSink принимает итог попытки и возвращает ее идентификатор
type ResultSink interface {
	RecordAttempt(ctx context.Context, result model.AttemptResult) (int64, error)
}

// Level уровень уведомления
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
)

// Notice уведомление для пользователя (аналог toast)
type Notice struct {
	Level   Level
	Message string
	Err     error
}

// Notifier доставляет уведомления пользователю
type Notifier interface {
	Notify(n Notice)
}

// Observer получает события раннера в порядке их возникновения.
// Методы вызываются из горутины доставки событий, медленный наблюдатель не задерживает
// таймер и операции раннера. Недоставленные тики схлопываются в последний.
type Observer interface {
	Started(s Snapshot)
	Changed(s Snapshot)
	Ticked(t Tick)
	Finished(r Result)
	Closed()
}

// NopObserver игнорирует все события
type NopObserver struct{}

func (NopObserver) Started(Snapshot) {}
func (NopObserver) Changed(Snapshot) {}
func (NopObserver) Ticked(Tick)      {}
func (NopObserver) Finished(Result)  {}
func (NopObserver) Closed()          {}

// LogNotifier пишет уведомления в стандартный лог
type LogNotifier struct {
	UserID int
}

func (n LogNotifier) Notify(notice Notice) {
	if notice.Err != nil {
		log.Printf("user %d: %s: %v", n.UserID, notice.Message, notice.Err)
		return
	}
	log.Printf("user %d: %s", n.UserID, notice.Message)
}
