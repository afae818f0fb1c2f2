package simulacro

import (
	"time"

	"github.com/google/uuid"
	"github.com/porese500/simulacros/internal/domain/model"
)

// State состояние раннера симулякра
type State int

const (
	StateIdle State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// attempt изменяемое состояние текущей попытки. Принадлежит раннеру, доступ только под его мьютексом.
type attempt struct {
	id        uuid.UUID
	subject   model.Subject
	questions []model.Question
	position  map[int]int
	answers   map[int]model.Option
	cursor    int
	remaining int
	total     int
	startedAt time.Time
}

func newAttempt(subject model.Subject, questions []model.Question, now time.Time) *attempt {
	position := make(map[int]int, len(questions))
	for i, q := range questions {
		position[q.ID] = i
	}
	return &attempt{
		id:        uuid.New(),
		subject:   subject,
		questions: questions,
		position:  position,
		answers:   make(map[int]model.Option),
		remaining: subject.DurationSeconds,
		total:     subject.DurationSeconds,
		startedAt: now,
	}
}

func (a *attempt) tick() Tick {
	return Tick{
		SessionID:        a.id,
		RemainingSeconds: a.remaining,
		TotalSeconds:     a.total,
		Cursor:           a.cursor,
		QuestionCount:    len(a.questions),
	}
}

// Snapshot копия состояния раннера на момент вызова
type Snapshot struct {
	State            State
	SessionID        uuid.UUID
	Subject          model.Subject
	Questions        []model.Question
	Answers          map[int]model.Option
	Cursor           int
	RemainingSeconds int
	TotalSeconds     int
	StartedAt        time.Time
	Result           *Result
}

// Current вопрос под курсором
func (s Snapshot) Current() (model.Question, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Questions) {
		return model.Question{}, false
	}
	return s.Questions[s.Cursor], true
}

// AnsweredCount количество вопросов с выбранным ответом
func (s Snapshot) AnsweredCount() int {
	return len(s.Answers)
}

// Tick событие обратного отсчета
type Tick struct {
	SessionID        uuid.UUID
	RemainingSeconds int
	TotalSeconds     int
	Cursor           int
	QuestionCount    int
}

// ReviewItem разбор одного вопроса после завершения
type ReviewItem struct {
	Question model.Question
	Chosen   model.Option
	Answered bool
	Correct  bool
}

// Result итог попытки. После создания не изменяется.
type Result struct {
	SessionID      uuid.UUID
	Subject        model.Subject
	Score          int
	TotalQuestions int
	CorrectCount   int
	ElapsedSeconds int
	TimedOut       bool
	Answers        map[int]model.Option
	Review         []ReviewItem
}

// AttemptResult преобразует итог в запись для Result Sink
func (r Result) AttemptResult(userID int) model.AttemptResult {
	answers := make(map[int]model.Option, len(r.Answers))
	for k, v := range r.Answers {
		answers[k] = v
	}
	return model.AttemptResult{
		SessionID:      r.SessionID,
		UserID:         userID,
		SubjectID:      r.Subject.ID,
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		CorrectCount:   r.CorrectCount,
		ElapsedSeconds: r.ElapsedSeconds,
		Answers:        answers,
		TimedOut:       r.TimedOut,
	}
}
