package subjects_handler

import (
	"context"
	"log"

	"github.com/porese500/simulacros/internal/app/handlers/telegram/presenter"
	messageService "github.com/porese500/simulacros/internal/domain/messages/service"
	"github.com/porese500/simulacros/internal/domain/model"
	subjectsService "github.com/porese500/simulacros/internal/domain/subjects/service"
	"gopkg.in/telebot.v4"
)

// SubjectsHandler список предметов для выбора симулякра
type SubjectsHandler struct {
	subjectService *subjectsService.SubjectService
	messageService *messageService.MessageService
}

// NewSubjectsHandler возвращает новый экземпляр обработчика
func NewSubjectsHandler(subjectService *subjectsService.SubjectService, messageService *messageService.MessageService) *SubjectsHandler {
	return &SubjectsHandler{subjectService: subjectService, messageService: messageService}
}

func (h *SubjectsHandler) Handle(c telebot.Context) error {
	ctx := context.Background()

	subjects, err := h.subjectService.ListSubjects(ctx)
	if err != nil {
		log.Printf("failed to list subjects: %v", err)
		return c.Respond(&telebot.CallbackResponse{Text: h.messageService.Text(ctx, model.MsgUnknownError)})
	}

	menu := presenter.SubjectsMenu(subjects)
	if len(menu.InlineKeyboard) == 0 {
		return c.Send(h.messageService.Text(ctx, model.MsgNoSubjects))
	}
	return c.Send(h.messageService.Text(ctx, model.MsgChooseSubject), menu)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *SubjectsHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
