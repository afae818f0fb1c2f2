package progress_handler

import (
	"context"
	"log"

	"github.com/porese500/simulacros/internal/app/handlers/telegram/presenter"
	messageService "github.com/porese500/simulacros/internal/domain/messages/service"
	"github.com/porese500/simulacros/internal/domain/model"
	resultsService "github.com/porese500/simulacros/internal/domain/results/service"
	usersService "github.com/porese500/simulacros/internal/domain/users/service"
	"gopkg.in/telebot.v4"
)

// ProgressHandler показывает пользователю его прогресс по предметам
type ProgressHandler struct {
	userService    *usersService.UserService
	resultService  *resultsService.ResultService
	messageService *messageService.MessageService
}

func NewProgressHandler(
	userService *usersService.UserService,
	resultService *resultsService.ResultService,
	messageService *messageService.MessageService,
) *ProgressHandler {
	return &ProgressHandler{userService: userService, resultService: resultService, messageService: messageService}
}

func (h *ProgressHandler) Handle(c telebot.Context) error {
	ctx := context.Background()

	user, err := h.userService.GetUserByTelegramID(ctx, c.Sender().ID)
	if err != nil || user == nil {
		return c.Respond(&telebot.CallbackResponse{Text: h.messageService.Text(ctx, model.MsgUnknownError)})
	}

	progress, err := h.resultService.Progress(ctx, user.ID)
	if err != nil {
		log.Printf("failed to get progress for user %d: %v", user.ID, err)
		return c.Respond(&telebot.CallbackResponse{Text: h.messageService.Text(ctx, model.MsgUnknownError)})
	}
	if len(progress) == 0 {
		return c.Send(h.messageService.Text(ctx, model.MsgNoProgress))
	}
	return c.Send(presenter.ProgressText(progress), telebot.ModeHTML)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *ProgressHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
