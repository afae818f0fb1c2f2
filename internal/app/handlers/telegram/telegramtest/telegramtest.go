// Package telegramtest содержит заглушки telebot.Context и раннера для тестов обработчиков.
package telegramtest

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/porese500/simulacros/internal/domain/model"
	"github.com/porese500/simulacros/internal/infra/timer"
	"github.com/porese500/simulacros/internal/simulacro"
	"gopkg.in/telebot.v4"
)

// Context реализует telebot.Context для callback-обработчиков.
// Методы, которые не переопределены, вызывают панику встроенного nil-интерфейса.
type Context struct {
	telebot.Context

	User    *telebot.User
	Payload string

	mu        sync.Mutex
	responses []*telebot.CallbackResponse
	sent      []interface{}
}

// NewCallback контекст нажатия кнопки пользователем userID с данными data
func NewCallback(userID int64, data string) *Context {
	return &Context{User: &telebot.User{ID: userID, FirstName: "Ana"}, Payload: data}
}

func (c *Context) Sender() *telebot.User { return c.User }
func (c *Context) Chat() *telebot.Chat   { return &telebot.Chat{ID: c.User.ID} }
func (c *Context) Data() string          { return c.Payload }

func (c *Context) Callback() *telebot.Callback {
	return &telebot.Callback{Sender: c.User, Data: c.Payload}
}

func (c *Context) Respond(resp ...*telebot.CallbackResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(resp) == 0 {
		c.responses = append(c.responses, &telebot.CallbackResponse{})
		return nil
	}
	c.responses = append(c.responses, resp[0])
	return nil
}

func (c *Context) Send(what interface{}, _ ...interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, what)
	return nil
}

// LastResponse текст последнего ответа на callback
func (c *Context) LastResponse() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.responses) == 0 {
		return ""
	}
	return c.responses[len(c.responses)-1].Text
}

// Sent отправленные сообщения
func (c *Context) Sent() []interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]interface{}(nil), c.sent...)
}

// Store банк вопросов в памяти: у предмета id вопросы id*100+i с верным ответом A
type Store struct {
	subjects  map[int]model.Subject
	questions map[int][]model.Question
}

func NewStore() *Store {
	return &Store{subjects: make(map[int]model.Subject), questions: make(map[int][]model.Question)}
}

func (s *Store) AddSubject(id, durationSeconds, questionCount int) {
	s.subjects[id] = model.Subject{ID: id, Name: "Materia", DurationSeconds: durationSeconds}
	for i := 1; i <= questionCount; i++ {
		s.questions[id] = append(s.questions[id], model.Question{
			ID:            id*100 + i,
			SubjectID:     id,
			Body:          "Pregunta",
			Options:       model.Options{A: "a", B: "b", C: "c", D: "d"},
			CorrectOption: model.OptionA,
			Active:        true,
		})
	}
}

func (s *Store) GetSubject(_ context.Context, id int) (*model.Subject, error) {
	subject, ok := s.subjects[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &subject, nil
}

func (s *Store) ListActiveQuestions(_ context.Context, id int) ([]model.Question, error) {
	return append([]model.Question(nil), s.questions[id]...), nil
}

type nopSink struct{}

func (nopSink) RecordAttempt(context.Context, model.AttemptResult) (int64, error) { return 1, nil }

type idleTicker struct{ ch chan time.Time }

func (t idleTicker) C() <-chan time.Time { return t.ch }
func (t idleTicker) Stop()               {}

// NewRunner раннер поверх store, таймер которого никогда не тикает
func NewRunner(userID int, store *Store) *simulacro.Runner {
	return simulacro.NewRunner(userID, simulacro.Deps{
		Store: store,
		Sink:  nopSink{},
		Tickers: func(time.Duration) timer.Ticker {
			return idleTicker{ch: make(chan time.Time)}
		},
		Rand: rand.New(rand.NewSource(1)),
	})
}
