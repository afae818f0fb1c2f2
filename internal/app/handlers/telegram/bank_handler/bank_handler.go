package bank_handler

import (
	"context"
	"log"

	"github.com/porese500/simulacros/internal/app/handlers/telegram/presenter"
	messageService "github.com/porese500/simulacros/internal/domain/messages/service"
	"github.com/porese500/simulacros/internal/domain/model"
	subjectsService "github.com/porese500/simulacros/internal/domain/subjects/service"
	usersService "github.com/porese500/simulacros/internal/domain/users/service"
	"gopkg.in/telebot.v4"
)

// BankHandler сводка банка вопросов для преподавателей и администраторов
type BankHandler struct {
	userService    *usersService.UserService
	subjectService *subjectsService.SubjectService
	messageService *messageService.MessageService
	botUsername    string
}

func NewBankHandler(
	userService *usersService.UserService,
	subjectService *subjectsService.SubjectService,
	messageService *messageService.MessageService,
	botUsername string,
) *BankHandler {
	return &BankHandler{
		userService:    userService,
		subjectService: subjectService,
		messageService: messageService,
		botUsername:    botUsername,
	}
}

func (h *BankHandler) Handle(c telebot.Context) error {
	ctx := context.Background()

	user, err := h.userService.GetUserByTelegramID(ctx, c.Sender().ID)
	if err != nil || user == nil || !model.CanManageContent(user.Role) {
		return c.Respond(&telebot.CallbackResponse{Text: h.messageService.Text(ctx, model.MsgForbidden)})
	}

	subjects, err := h.subjectService.ListSubjects(ctx)
	if err != nil {
		log.Printf("failed to list subjects: %v", err)
		return c.Respond(&telebot.CallbackResponse{Text: h.messageService.Text(ctx, model.MsgUnknownError)})
	}
	if len(subjects) == 0 {
		return c.Send(h.messageService.Text(ctx, model.MsgNoSubjects))
	}
	return c.Send(presenter.BankText(subjects, h.botUsername), &telebot.SendOptions{
		ParseMode:             telebot.ModeHTML,
		DisableWebPagePreview: true,
	})
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *BankHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
