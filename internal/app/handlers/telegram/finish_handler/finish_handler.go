package finish_handler

import (
	"context"

	messageService "github.com/porese500/simulacros/internal/domain/messages/service"
	"github.com/porese500/simulacros/internal/domain/model"
	"github.com/porese500/simulacros/internal/simulacro"
	"gopkg.in/telebot.v4"
)

// FinishHandler ручное завершение попытки кнопкой "Terminar"
type FinishHandler struct {
	sessions       *simulacro.Sessions
	messageService *messageService.MessageService
}

func NewFinishHandler(sessions *simulacro.Sessions, messageService *messageService.MessageService) *FinishHandler {
	return &FinishHandler{sessions: sessions, messageService: messageService}
}

// Handle завершает попытку. Data кнопки содержит ID сессии, кнопки прошлых попыток игнорируются.
func (h *FinishHandler) Handle(c telebot.Context) error {
	notRunning := &telebot.CallbackResponse{Text: h.messageService.Text(context.Background(), model.MsgNotRunning)}

	runner, ok := h.sessions.Lookup(c.Sender().ID)
	if !ok {
		return c.Respond(notRunning)
	}
	if snap := runner.Snapshot(); snap.SessionID.String() != c.Data() {
		return c.Respond(notRunning)
	}

	// Экран результата показывает наблюдатель раннера
	if _, err := runner.Finish(); err != nil {
		return c.Respond(notRunning)
	}
	return c.Respond()
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *FinishHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
