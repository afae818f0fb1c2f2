package simulacro

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/porese500/simulacros/internal/domain/model"
	"github.com/porese500/simulacros/internal/infra/timer"
)

// fakeStore хранит предметы и вопросы в памяти.
type fakeStore struct {
	mu        sync.Mutex
	subjects  map[int]model.Subject
	questions map[int][]model.Question
}

func newFakeStore() *fakeStore {
	return &fakeStore{subjects: map[int]model.Subject{}, questions: map[int][]model.Question{}}
}

func (s *fakeStore) addSubject(id, duration, questionCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subjects[id] = model.Subject{ID: id, Name: fmt.Sprintf("Materia %d", id), DurationSeconds: duration}
	for i := 1; i <= questionCount; i++ {
		s.questions[id] = append(s.questions[id], makeQuestion(id*1000+i, id, model.OptionA))
	}
}

func (s *fakeStore) GetSubject(_ context.Context, id int) (*model.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subjects[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &sub, nil
}

func (s *fakeStore) ListActiveQuestions(_ context.Context, subjectID int) ([]model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Question
	for _, q := range s.questions[subjectID] {
		if q.Active {
			out = append(out, q)
		}
	}
	return out, nil
}

func makeQuestion(id, subjectID int, correct model.Option) model.Question {
	return model.Question{
		ID:            id,
		SubjectID:     subjectID,
		Body:          fmt.Sprintf("Pregunta %d", id),
		Options:       model.Options{A: "a", B: "b", C: "c", D: "d"},
		CorrectOption: correct,
		Active:        true,
	}
}

// fakeSink считает записи и может возвращать ошибку.
type fakeSink struct {
	mu      sync.Mutex
	err     error
	records []model.AttemptResult
}

func (s *fakeSink) RecordAttempt(_ context.Context, r model.AttemptResult) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.records)), nil
}

func (s *fakeSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

var errSinkDown = errors.New("sink unavailable")

// fakeNotifier запоминает уведомления.
type fakeNotifier struct {
	mu      sync.Mutex
	notices []Notice
}

func (n *fakeNotifier) Notify(notice Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

func (n *fakeNotifier) warnings() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, notice := range n.notices {
		if notice.Level == LevelWarning {
			c++
		}
	}
	return c
}

// recordingObserver передает тики и завершения в каналы, чтобы тесты могли синхронизироваться.
type recordingObserver struct {
	ticks    chan Tick
	finished chan Result
	mu       sync.Mutex
	started  int
	changed  int
	closed   int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{ticks: make(chan Tick, 128), finished: make(chan Result, 8)}
}

func (o *recordingObserver) Started(Snapshot) { o.mu.Lock(); o.started++; o.mu.Unlock() }
func (o *recordingObserver) Changed(Snapshot) { o.mu.Lock(); o.changed++; o.mu.Unlock() }
func (o *recordingObserver) Closed()          { o.mu.Lock(); o.closed++; o.mu.Unlock() }
func (o *recordingObserver) Ticked(t Tick)    { o.ticks <- t }
func (o *recordingObserver) Finished(r Result) {
	o.finished <- r
}

// fakeTicker тикер, управляемый тестом.
type fakeTicker struct {
	ch      chan time.Time
	stopped chan struct{}
	once    sync.Once
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()               { f.once.Do(func() { close(f.stopped) }) }

type fakeClock struct {
	mu      sync.Mutex
	tickers []*fakeTicker
}

func (c *fakeClock) factory(time.Duration) timer.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTicker{ch: make(chan time.Time), stopped: make(chan struct{})}
	c.tickers = append(c.tickers, t)
	return t
}

func (c *fakeClock) last(t *testing.T) *fakeTicker {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.tickers) == 0 {
		t.Fatalf("таймер не был запущен")
	}
	return c.tickers[len(c.tickers)-1]
}

// fire отправляет n тиков в последний созданный тикер.
func (c *fakeClock) fire(t *testing.T, n int) {
	t.Helper()
	tk := c.last(t)
	for i := 0; i < n; i++ {
		select {
		case tk.ch <- time.Now():
		case <-time.After(time.Second):
			t.Fatalf("тик %d не был принят таймером", i+1)
		}
	}
}

type harness struct {
	runner   *Runner
	store    *fakeStore
	sink     *fakeSink
	notifier *fakeNotifier
	observer *recordingObserver
	clock    *fakeClock
}

func newHarness() *harness {
	h := &harness{
		store:    newFakeStore(),
		sink:     &fakeSink{},
		notifier: &fakeNotifier{},
		observer: newRecordingObserver(),
		clock:    &fakeClock{},
	}
	h.runner = NewRunner(42, Deps{
		Store:    h.store,
		Sink:     h.sink,
		Notifier: h.notifier,
		Observer: h.observer,
		Tickers:  h.clock.factory,
		Rand:     rand.New(rand.NewSource(1)),
	})
	return h
}

func (h *harness) waitTick(t *testing.T) Tick {
	t.Helper()
	select {
	case tk := <-h.observer.ticks:
		return tk
	case <-time.After(time.Second):
		t.Fatalf("событие тика не получено")
	}
	return Tick{}
}

func (h *harness) waitFinished(t *testing.T) Result {
	t.Helper()
	select {
	case r := <-h.observer.finished:
		return r
	case <-time.After(time.Second):
		t.Fatalf("событие завершения не получено")
	}
	return Result{}
}
