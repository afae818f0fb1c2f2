package review_handler

import (
	"context"
	"strings"
	"testing"

	"github.com/porese500/simulacros/internal/app/handlers/telegram/telegramtest"
	messageService "github.com/porese500/simulacros/internal/domain/messages/service"
	"github.com/porese500/simulacros/internal/domain/model"
	"github.com/porese500/simulacros/internal/simulacro"
	"gopkg.in/telebot.v4"
)

const userID = 7

func TestReviewHandler(t *testing.T) {
	store := telegramtest.NewStore()
	store.AddSubject(1, 600, 2)
	store.AddSubject(2, 600, 2)

	sessions := simulacro.NewSessions()
	defer sessions.Shutdown()
	runner := sessions.GetOrCreate(userID, func() *simulacro.Runner { return telegramtest.NewRunner(userID, store) })

	old, err := runner.Start(context.Background(), 1)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if _, err := runner.Finish(); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	current, err := runner.Start(context.Background(), 2)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	messages := messageService.NewMessageService(nil)
	notRunning := messages.Text(context.Background(), model.MsgNotRunning)
	h := NewReviewHandler(sessions, messages, "POR ESE 500")

	// Разбор недоступен, пока попытка идет
	c := telegramtest.NewCallback(userID, current.SessionID.String())
	if err := h.Handle(c); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if c.LastResponse() != notRunning || len(c.Sent()) != 0 {
		t.Errorf("разбор идущей попытки: ответ %q, отправлено %d", c.LastResponse(), len(c.Sent()))
	}

	if _, err := runner.Finish(); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	c = telegramtest.NewCallback(userID, old.SessionID.String())
	if err := h.Handle(c); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if c.LastResponse() != notRunning || len(c.Sent()) != 0 {
		t.Errorf("разбор прошлой попытки: ответ %q, отправлено %d", c.LastResponse(), len(c.Sent()))
	}

	c = telegramtest.NewCallback(userID, current.SessionID.String())
	if err := h.Handle(c); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	sent := c.Sent()
	if len(sent) != 1 {
		t.Fatalf("ожидался один документ, отправлено %d", len(sent))
	}
	doc, ok := sent[0].(*telebot.Document)
	if !ok {
		t.Fatalf("ожидался *telebot.Document, получено %T", sent[0])
	}
	if !strings.HasSuffix(doc.FileName, ".pdf") || doc.MIME != "application/pdf" {
		t.Errorf("неверный документ: %s, %s", doc.FileName, doc.MIME)
	}
}
