package navigate_handler

import (
	"context"
	"strconv"

	"github.com/porese500/simulacros/internal/app/handlers/telegram/presenter"
	messageService "github.com/porese500/simulacros/internal/domain/messages/service"
	"github.com/porese500/simulacros/internal/domain/model"
	"github.com/porese500/simulacros/internal/simulacro"
	"gopkg.in/telebot.v4"
)

// NavigateHandler переход между вопросами: prev, next или номер позиции
type NavigateHandler struct {
	sessions       *simulacro.Sessions
	messageService *messageService.MessageService
}

func NewNavigateHandler(sessions *simulacro.Sessions, messageService *messageService.MessageService) *NavigateHandler {
	return &NavigateHandler{sessions: sessions, messageService: messageService}
}

func (h *NavigateHandler) Handle(c telebot.Context) error {
	runner, ok := h.sessions.Lookup(c.Sender().ID)
	if !ok {
		return c.Respond(&telebot.CallbackResponse{Text: h.messageService.Text(context.Background(), model.MsgNotRunning)})
	}

	var err error
	switch data := c.Data(); data {
	case presenter.NavPrev:
		_, err = runner.Prev()
	case presenter.NavNext:
		_, err = runner.Next()
	default:
		pos, convErr := strconv.Atoi(data)
		if convErr != nil {
			return c.Respond()
		}
		_, err = runner.Goto(pos)
	}
	if err != nil {
		return c.Respond(&telebot.CallbackResponse{Text: h.messageService.Text(context.Background(), model.MsgNotRunning)})
	}
	return c.Respond()
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *NavigateHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
