package simulacro

import "sync"

// Sessions хранит по одному раннеру на ключ (Telegram ID пользователя).
// Один пользователь не может вести две попытки одновременно.
type Sessions struct {
	mu      sync.Mutex
	runners map[int64]*Runner
	// retired удаленные раннеры, чьи записи результатов и события еще не завершены
	retired sync.WaitGroup
}

func NewSessions() *Sessions {
	return &Sessions{runners: make(map[int64]*Runner)}
}

// GetOrCreate возвращает раннер по ключу, создавая его через create при отсутствии
func (s *Sessions) GetOrCreate(key int64, create func() *Runner) *Runner {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.runners[key]; ok {
		return r
	}
	r := create()
	s.runners[key] = r
	return r
}

// Lookup возвращает раннер, если он уже создан
func (s *Sessions) Lookup(key int64) (*Runner, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runners[key]
	return r, ok
}

// Remove закрывает попытку и удаляет раннер
func (s *Sessions) Remove(key int64) {
	s.mu.Lock()
	r, ok := s.runners[key]
	delete(s.runners, key)
	s.mu.Unlock()

	if ok {
		r.Close()
		s.retired.Add(1)
		go func() {
			defer s.retired.Done()
			r.Wait()
		}()
	}
}

// Running количество раннеров с попыткой в процессе
func (s *Sessions) Running() int {
	s.mu.Lock()
	runners := make([]*Runner, 0, len(s.runners))
	for _, r := range s.runners {
		runners = append(runners, r)
	}
	s.mu.Unlock()

	n := 0
	for _, r := range runners {
		if r.State() == StateRunning {
			n++
		}
	}
	return n
}

// Shutdown останавливает таймеры всех попыток и дожидается фоновых записей,
// в том числе у раннеров, удаленных через Remove
func (s *Sessions) Shutdown() {
	s.mu.Lock()
	runners := make([]*Runner, 0, len(s.runners))
	for key, r := range s.runners {
		runners = append(runners, r)
		delete(s.runners, key)
	}
	s.mu.Unlock()

	for _, r := range runners {
		r.Close()
		r.Wait()
	}
	s.retired.Wait()
}
