package close_handler

import (
	"github.com/porese500/simulacros/internal/simulacro"
	"gopkg.in/telebot.v4"
)

// CloseHandler закрывает экран результата и возвращает пользователя в Idle
type CloseHandler struct {
	sessions *simulacro.Sessions
}

func NewCloseHandler(sessions *simulacro.Sessions) *CloseHandler {
	return &CloseHandler{sessions: sessions}
}

func (h *CloseHandler) Handle(c telebot.Context) error {
	runner, ok := h.sessions.Lookup(c.Sender().ID)
	if ok && runner.Snapshot().SessionID.String() == c.Data() {
		h.sessions.Remove(c.Sender().ID)
	}
	return c.Respond()
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *CloseHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
