package answer_handler

import (
	"context"
	"errors"
	"log"

	"github.com/porese500/simulacros/internal/app/handlers/telegram/presenter"
	messageService "github.com/porese500/simulacros/internal/domain/messages/service"
	"github.com/porese500/simulacros/internal/domain/model"
	"github.com/porese500/simulacros/internal/simulacro"
	"gopkg.in/telebot.v4"
)

// AnswerHandler выбор варианта ответа на текущий вопрос
type AnswerHandler struct {
	sessions       *simulacro.Sessions
	messageService *messageService.MessageService
}

func NewAnswerHandler(sessions *simulacro.Sessions, messageService *messageService.MessageService) *AnswerHandler {
	return &AnswerHandler{sessions: sessions, messageService: messageService}
}

func (h *AnswerHandler) Handle(c telebot.Context) error {
	ctx := context.Background()

	questionID, option, err := presenter.ParseAnswer(c.Data())
	if err != nil {
		log.Printf("invalid answer callback from %d: %v", c.Sender().ID, err)
		return c.Respond()
	}

	runner, ok := h.sessions.Lookup(c.Sender().ID)
	if !ok {
		return c.Respond(&telebot.CallbackResponse{Text: h.messageService.Text(ctx, model.MsgNotRunning)})
	}

	// Экран вопроса обновляет наблюдатель раннера
	if _, err := runner.SelectAnswer(questionID, option); err != nil {
		if errors.Is(err, simulacro.ErrNotRunning) || errors.Is(err, simulacro.ErrUnknownQuestion) {
			return c.Respond(&telebot.CallbackResponse{Text: h.messageService.Text(ctx, model.MsgNotRunning)})
		}
		log.Printf("failed to select answer for %d: %v", c.Sender().ID, err)
		return c.Respond(&telebot.CallbackResponse{Text: h.messageService.Text(ctx, model.MsgUnknownError)})
	}
	return c.Respond(&telebot.CallbackResponse{Text: "Respuesta " + string(option)})
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *AnswerHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
