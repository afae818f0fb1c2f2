package navigate_handler

import (
	"context"
	"testing"

	"github.com/porese500/simulacros/internal/app/handlers/telegram/presenter"
	"github.com/porese500/simulacros/internal/app/handlers/telegram/telegramtest"
	messageService "github.com/porese500/simulacros/internal/domain/messages/service"
	"github.com/porese500/simulacros/internal/domain/model"
	"github.com/porese500/simulacros/internal/simulacro"
)

const userID = 7

func TestNavigateHandler(t *testing.T) {
	store := telegramtest.NewStore()
	store.AddSubject(1, 600, 3)

	sessions := simulacro.NewSessions()
	defer sessions.Shutdown()
	runner := sessions.GetOrCreate(userID, func() *simulacro.Runner { return telegramtest.NewRunner(userID, store) })
	if _, err := runner.Start(context.Background(), 1); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	messages := messageService.NewMessageService(nil)
	h := NewNavigateHandler(sessions, messages)

	steps := []struct {
		data   string
		cursor int
	}{
		{presenter.NavNext, 1},
		{presenter.NavNext, 2},
		{presenter.NavNext, 2},
		{presenter.NavPrev, 1},
		{"0", 0},
		{"9", 0},
	}
	for _, step := range steps {
		if err := h.Handle(telegramtest.NewCallback(userID, step.data)); err != nil {
			t.Fatalf("Handle(%s): %v", step.data, err)
		}
		if got := runner.Snapshot().Cursor; got != step.cursor {
			t.Errorf("после %s ожидался курсор %d, получено %d", step.data, step.cursor, got)
		}
	}

	c := telegramtest.NewCallback(userID+1, presenter.NavNext)
	if err := h.Handle(c); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if want := messages.Text(context.Background(), model.MsgNotRunning); c.LastResponse() != want {
		t.Errorf("ожидался ответ %q, получено %q", want, c.LastResponse())
	}
}
