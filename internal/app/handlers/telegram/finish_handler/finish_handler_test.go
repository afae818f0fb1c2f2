package finish_handler

import (
	"context"
	"testing"

	"github.com/porese500/simulacros/internal/app/handlers/telegram/telegramtest"
	messageService "github.com/porese500/simulacros/internal/domain/messages/service"
	"github.com/porese500/simulacros/internal/domain/model"
	"github.com/porese500/simulacros/internal/simulacro"
)

const userID = 7

// newSession запускает попытку, закрывает ее и запускает новую. Возвращает ID прошлой и текущей сессии.
func newSession(t *testing.T) (*simulacro.Sessions, *simulacro.Runner, string, string) {
	t.Helper()
	store := telegramtest.NewStore()
	store.AddSubject(1, 600, 3)
	store.AddSubject(2, 600, 3)

	sessions := simulacro.NewSessions()
	runner := sessions.GetOrCreate(userID, func() *simulacro.Runner { return telegramtest.NewRunner(userID, store) })

	old, err := runner.Start(context.Background(), 1)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	runner.Close()
	current, err := runner.Start(context.Background(), 2)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	return sessions, runner, old.SessionID.String(), current.SessionID.String()
}

func TestFinishHandler(t *testing.T) {
	messages := messageService.NewMessageService(nil)
	notRunning := messages.Text(context.Background(), model.MsgNotRunning)

	sessions, runner, oldID, currentID := newSession(t)
	defer sessions.Shutdown()
	h := NewFinishHandler(sessions, messages)

	// Кнопка прошлой попытки не завершает текущую
	c := telegramtest.NewCallback(userID, oldID)
	if err := h.Handle(c); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if c.LastResponse() != notRunning {
		t.Errorf("ожидался ответ %q, получено %q", notRunning, c.LastResponse())
	}
	if runner.State() != simulacro.StateRunning {
		t.Fatalf("прошлая кнопка изменила попытку: %s", runner.State())
	}

	c = telegramtest.NewCallback(userID, currentID)
	if err := h.Handle(c); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if runner.State() != simulacro.StateFinished {
		t.Errorf("попытка не завершена: %s", runner.State())
	}
	if c.LastResponse() != "" {
		t.Errorf("неожиданный ответ: %q", c.LastResponse())
	}

	// Пользователь без попытки
	c = telegramtest.NewCallback(userID+1, currentID)
	if err := h.Handle(c); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if c.LastResponse() != notRunning {
		t.Errorf("ожидался ответ %q, получено %q", notRunning, c.LastResponse())
	}
}
