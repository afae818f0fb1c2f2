package start_simulacro_handler

import (
	"context"
	"errors"
	"log"
	"strconv"

	messageService "github.com/porese500/simulacros/internal/domain/messages/service"
	"github.com/porese500/simulacros/internal/domain/model"
	usersService "github.com/porese500/simulacros/internal/domain/users/service"
	"github.com/porese500/simulacros/internal/simulacro"
	"gopkg.in/telebot.v4"
)

// RunnerFactory создает раннер пользователя, отображающий попытку в чате
type RunnerFactory func(user *model.User, chat telebot.Recipient) *simulacro.Runner

// StartSimulacroHandler обработка выбора предмета: запуск попытки
type StartSimulacroHandler struct {
	userService    *usersService.UserService
	messageService *messageService.MessageService
	sessions       *simulacro.Sessions
	newRunner      RunnerFactory
}

// NewStartSimulacroHandler возвращает новый экземпляр обработчика
func NewStartSimulacroHandler(
	userService *usersService.UserService,
	messageService *messageService.MessageService,
	sessions *simulacro.Sessions,
	newRunner RunnerFactory,
) *StartSimulacroHandler {
	return &StartSimulacroHandler{
		userService:    userService,
		messageService: messageService,
		sessions:       sessions,
		newRunner:      newRunner,
	}
}

// Handle обрабатывает callback кнопки предмета, Data содержит ID предмета
func (h *StartSimulacroHandler) Handle(c telebot.Context) error {
	ctx := context.Background()

	subjectID, err := strconv.Atoi(c.Data())
	if err != nil {
		return c.Respond(&telebot.CallbackResponse{Text: h.messageService.Text(ctx, model.MsgUnknownError)})
	}

	user, err := h.userService.GetUserByTelegramID(ctx, c.Sender().ID)
	if err != nil || user == nil {
		if err != nil {
			log.Printf("failed to get user %d: %v", c.Sender().ID, err)
		}
		return c.Respond(&telebot.CallbackResponse{Text: h.messageService.Text(ctx, model.MsgUnknownError)})
	}

	if msg := h.Launch(ctx, c, user, subjectID); msg != "" {
		return c.Respond(&telebot.CallbackResponse{Text: msg, ShowAlert: true})
	}
	return c.Respond()
}

// Launch запускает попытку по предмету. Возвращает текст для пользователя, если запуск отклонен.
func (h *StartSimulacroHandler) Launch(ctx context.Context, c telebot.Context, user *model.User, subjectID int) string {
	if !model.CanTakeSimulacro(user.Role) {
		return h.messageService.Text(ctx, model.MsgForbidden)
	}

	runner := h.sessions.GetOrCreate(c.Sender().ID, func() *simulacro.Runner {
		return h.newRunner(user, c.Chat())
	})

	_, err := runner.Start(ctx, subjectID)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, simulacro.ErrNoQuestionsAvailable):
		return h.messageService.Text(ctx, model.MsgNoQuestions)
	case errors.Is(err, simulacro.ErrAttemptAlreadyRunning):
		return h.messageService.Text(ctx, model.MsgAlreadyRunning)
	case errors.Is(err, model.ErrNotFound):
		return h.messageService.Text(ctx, model.MsgNoSubjects)
	default:
		log.Printf("failed to start simulacro for user %d, subject %d: %v", user.ID, subjectID, err)
		return h.messageService.Text(ctx, model.MsgUnknownError)
	}
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *StartSimulacroHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
