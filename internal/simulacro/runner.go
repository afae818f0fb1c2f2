package simulacro

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/porese500/simulacros/internal/domain/model"
	"github.com/porese500/simulacros/internal/infra/timer"
)

var (
	ErrNoQuestionsAvailable  = errors.New("no questions available for subject")
	ErrAttemptAlreadyRunning = errors.New("attempt already running")
	ErrNotRunning            = errors.New("no attempt running")
	ErrUnknownQuestion       = errors.New("question is not part of the attempt")
	ErrOutOfRange            = errors.New("question position out of range")
)

const (
	tickInterval          = time.Second
	defaultPersistTimeout = 10 * time.Second
)

// Deps зависимости раннера. Store и Sink обязательны, остальное имеет значения по умолчанию.
type Deps struct {
	Store          QuestionStore
	Sink           ResultSink
	Notifier       Notifier
	Observer       Observer
	Tickers        timer.Factory
	Rand           *rand.Rand
	PersistTimeout time.Duration
	Now            func() time.Time
}

// Runner проводит одну попытку симулякра за раз: Idle -> Running -> Finished -> (Close) Idle.
// Все операции и тики таймера сериализуются мьютексом.
type Runner struct {
	userID         int
	store          QuestionStore
	sink           ResultSink
	notifier       Notifier
	observer       Observer
	tickers        timer.Factory
	rnd            *rand.Rand
	persistTimeout time.Duration
	now            func() time.Time

	mu      sync.Mutex
	state   State
	attempt *attempt
	result  *Result
	cancel  context.CancelFunc

	// events доставляет события наблюдателю вне r.mu и вне горутины таймера
	events dispatcher
	// wg отслеживает фоновые записи результатов
	wg sync.WaitGroup
}

// NewRunner создает раннер для пользователя userID
func NewRunner(userID int, deps Deps) *Runner {
	r := &Runner{
		userID:         userID,
		store:          deps.Store,
		sink:           deps.Sink,
		notifier:       deps.Notifier,
		observer:       deps.Observer,
		tickers:        deps.Tickers,
		rnd:            deps.Rand,
		persistTimeout: deps.PersistTimeout,
		now:            deps.Now,
	}
	if r.notifier == nil {
		r.notifier = LogNotifier{UserID: userID}
	}
	if r.observer == nil {
		r.observer = NopObserver{}
	}
	if r.tickers == nil {
		r.tickers = timer.NewTicker
	}
	if r.rnd == nil {
		r.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if r.persistTimeout <= 0 {
		r.persistTimeout = defaultPersistTimeout
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// UserID владелец раннера
func (r *Runner) UserID() int {
	return r.userID
}

// State текущее состояние
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Start начинает попытку по предмету. Из Running возвращает ErrAttemptAlreadyRunning,
// из Finished неявно заменяет завершенную попытку новой.
func (r *Runner) Start(ctx context.Context, subjectID int) (Snapshot, error) {
	r.mu.Lock()

	if r.state == StateRunning {
		r.mu.Unlock()
		return Snapshot{}, ErrAttemptAlreadyRunning
	}

	subject, err := r.store.GetSubject(ctx, subjectID)
	if err != nil {
		r.mu.Unlock()
		return Snapshot{}, fmt.Errorf("failed to get subject %d: %w", subjectID, err)
	}
	if subject.DurationSeconds <= 0 {
		r.mu.Unlock()
		return Snapshot{}, fmt.Errorf("subject %d: %w", subjectID, model.ErrInvalidDuration)
	}

	questions, err := r.store.ListActiveQuestions(ctx, subjectID)
	if err != nil {
		r.mu.Unlock()
		return Snapshot{}, fmt.Errorf("failed to list questions for subject %d: %w", subjectID, err)
	}

	pool := usable(subjectID, questions)
	if len(pool) == 0 {
		r.mu.Unlock()
		return Snapshot{}, ErrNoQuestionsAvailable
	}
	shuffle(r.rnd, pool)

	a := newAttempt(*subject, pool, r.now())
	r.attempt = a
	r.result = nil
	r.state = StateRunning
	r.startTimerLocked(a.id)

	log.Printf("simulacro: user %d started subject %d (%d questions, %ds), session %s",
		r.userID, subjectID, len(pool), a.total, a.id)

	snap := r.snapshotLocked()
	r.emitAndUnlock(func() { r.observer.Started(snap) })
	return snap, nil
}

// SelectAnswer записывает ответ на вопрос. Повторный выбор перезаписывает предыдущий.
func (r *Runner) SelectAnswer(questionID int, option model.Option) (Snapshot, error) {
	if !option.Valid() {
		return Snapshot{}, fmt.Errorf("%w: %q", model.ErrInvalidOption, option)
	}

	r.mu.Lock()
	if r.state != StateRunning {
		r.mu.Unlock()
		return Snapshot{}, ErrNotRunning
	}
	if _, ok := r.attempt.position[questionID]; !ok {
		r.mu.Unlock()
		return Snapshot{}, fmt.Errorf("%w: %d", ErrUnknownQuestion, questionID)
	}
	r.attempt.answers[questionID] = option

	snap := r.snapshotLocked()
	r.emitAndUnlock(func() { r.observer.Changed(snap) })
	return snap, nil
}

// Next переходит к следующему вопросу, на последнем остается на месте
func (r *Runner) Next() (Snapshot, error) {
	return r.move(func(cursor, n int) int {
		if cursor+1 < n {
			return cursor + 1
		}
		return cursor
	})
}

// Prev переходит к предыдущему вопросу, на первом остается на месте
func (r *Runner) Prev() (Snapshot, error) {
	return r.move(func(cursor, _ int) int {
		if cursor > 0 {
			return cursor - 1
		}
		return cursor
	})
}

// Goto переходит к вопросу по позиции (с нуля)
func (r *Runner) Goto(position int) (Snapshot, error) {
	r.mu.Lock()
	if r.state != StateRunning {
		r.mu.Unlock()
		return Snapshot{}, ErrNotRunning
	}
	if position < 0 || position >= len(r.attempt.questions) {
		r.mu.Unlock()
		return Snapshot{}, fmt.Errorf("%w: %d", ErrOutOfRange, position)
	}
	r.attempt.cursor = position

	snap := r.snapshotLocked()
	r.emitAndUnlock(func() { r.observer.Changed(snap) })
	return snap, nil
}

func (r *Runner) move(next func(cursor, n int) int) (Snapshot, error) {
	r.mu.Lock()
	if r.state != StateRunning {
		r.mu.Unlock()
		return Snapshot{}, ErrNotRunning
	}
	r.attempt.cursor = next(r.attempt.cursor, len(r.attempt.questions))

	snap := r.snapshotLocked()
	r.emitAndUnlock(func() { r.observer.Changed(snap) })
	return snap, nil
}

// Finish завершает попытку вручную. Повторный вызов возвращает тот же результат
// без повторного подсчета и записи.
func (r *Runner) Finish() (Result, error) {
	r.mu.Lock()
	switch r.state {
	case StateFinished:
		res := *r.result
		r.mu.Unlock()
		return res, nil
	case StateIdle:
		r.mu.Unlock()
		return Result{}, ErrNotRunning
	}

	res := r.finishLocked(false)
	r.emitAndUnlock(func() { r.observer.Finished(res) })
	return res, nil
}

// Close возвращает раннер в Idle и отбрасывает попытку. Незавершенная попытка не записывается.
func (r *Runner) Close() {
	r.mu.Lock()
	if r.state == StateIdle {
		r.mu.Unlock()
		return
	}
	r.stopTimerLocked()
	r.state = StateIdle
	r.attempt = nil
	r.result = nil

	r.emitAndUnlock(func() { r.observer.Closed() })
}

// Snapshot текущее состояние
func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Result итог последней завершенной попытки
func (r *Runner) Result() (Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.result == nil {
		return Result{}, false
	}
	return *r.result, true
}

// Wait ожидает завершения фоновых записей результатов и доставки событий наблюдателю
func (r *Runner) Wait() {
	r.wg.Wait()
	r.events.wait()
}

// tick обрабатывает один тик таймера попытки gen. Возвращает false, когда отсчет нужно остановить.
func (r *Runner) tick(gen uuid.UUID) bool {
	r.mu.Lock()
	if r.state != StateRunning || r.attempt == nil || r.attempt.id != gen {
		r.mu.Unlock()
		return false
	}

	a := r.attempt
	if a.remaining > 0 {
		a.remaining--
	}
	t := a.tick()
	r.events.push(true, func() { r.observer.Ticked(t) })

	if a.remaining > 0 {
		r.mu.Unlock()
		return true
	}

	res := r.finishLocked(true)
	r.emitAndUnlock(func() { r.observer.Finished(res) })
	return false
}

// finishLocked переводит попытку в Finished, останавливает таймер и запускает запись результата.
// Вызывается под r.mu только из Running.
func (r *Runner) finishLocked(timedOut bool) Result {
	a := r.attempt
	r.stopTimerLocked()

	elapsed := a.total - a.remaining
	if timedOut {
		elapsed = a.total
	}

	answers := make(map[int]model.Option, len(a.answers))
	for k, v := range a.answers {
		answers[k] = v
	}
	correct, review := grade(a.questions, answers)

	res := Result{
		SessionID:      a.id,
		Subject:        a.subject,
		Score:          Score(correct, len(a.questions)),
		TotalQuestions: len(a.questions),
		CorrectCount:   correct,
		ElapsedSeconds: elapsed,
		TimedOut:       timedOut,
		Answers:        answers,
		Review:         review,
	}
	r.result = &res
	r.state = StateFinished

	log.Printf("simulacro: user %d finished session %s: score %d (%d/%d), elapsed %ds, timeout=%t",
		r.userID, a.id, res.Score, correct, res.TotalQuestions, elapsed, timedOut)

	r.persist(res)
	return res
}

// persist записывает результат в фоне. Ошибка записи не меняет состояние раннера,
// пользователь получает предупреждение через Notifier.
func (r *Runner) persist(res Result) {
	if r.sink == nil {
		log.Printf("simulacro: no result sink configured, session %s not recorded", res.SessionID)
		return
	}

	record := res.AttemptResult(r.userID)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.persistTimeout)
		defer cancel()

		id, err := r.sink.RecordAttempt(ctx, record)
		if err != nil {
			log.Printf("simulacro: failed to record session %s for user %d: %v", res.SessionID, r.userID, err)
			r.notifier.Notify(Notice{
				Level:   LevelWarning,
				Message: "No se pudo guardar tu resultado. Tu puntaje sigue siendo válido para esta sesión.",
				Err:     err,
			})
			return
		}
		log.Printf("simulacro: session %s recorded as attempt %d", res.SessionID, id)
	}()
}

func (r *Runner) startTimerLocked(gen uuid.UUID) {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	t := r.tickers(tickInterval)
	go timer.Run(ctx, t, func() bool { return r.tick(gen) })
}

func (r *Runner) stopTimerLocked() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *Runner) snapshotLocked() Snapshot {
	snap := Snapshot{State: r.state}
	if r.result != nil {
		res := *r.result
		snap.Result = &res
	}
	a := r.attempt
	if a == nil {
		return snap
	}

	snap.SessionID = a.id
	snap.Subject = a.subject
	snap.Questions = append([]model.Question(nil), a.questions...)
	snap.Answers = make(map[int]model.Option, len(a.answers))
	for k, v := range a.answers {
		snap.Answers[k] = v
	}
	snap.Cursor = a.cursor
	snap.RemainingSeconds = a.remaining
	snap.TotalSeconds = a.total
	snap.StartedAt = a.startedAt
	return snap
}

// emitAndUnlock ставит события в очередь наблюдателя и отпускает r.mu.
// Очередь заполняется под r.mu, поэтому порядок событий совпадает с порядком переходов.
func (r *Runner) emitAndUnlock(events ...func()) {
	for _, emit := range events {
		r.events.push(false, emit)
	}
	r.mu.Unlock()
}
