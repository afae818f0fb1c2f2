package start_handler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/porese500/simulacros/internal/app/handlers/telegram/presenter"
	messageService "github.com/porese500/simulacros/internal/domain/messages/service"
	"github.com/porese500/simulacros/internal/domain/model"
	usersService "github.com/porese500/simulacros/internal/domain/users/service"
	"gopkg.in/telebot.v4"
)

// Launcher запуск попытки по ссылке sim_<id>
type Launcher interface {
	Launch(ctx context.Context, c telebot.Context, user *model.User, subjectID int) string
}

// StartHandler структура для обработки команды /start
type StartHandler struct {
	userService    *usersService.UserService
	messageService *messageService.MessageService
	launcher       Launcher
}

// NewStartHandler возвращает структуру обработчика
func NewStartHandler(
	userService *usersService.UserService,
	messageService *messageService.MessageService,
	launcher Launcher,
) *StartHandler {
	return &StartHandler{
		userService:    userService,
		messageService: messageService,
		launcher:       launcher,
	}
}

// Handle регистрирует пользователя и показывает меню по роли.
// С payload sim_<id> сразу запускает симулякр предмета.
func (h *StartHandler) Handle(c telebot.Context) error {
	sender := c.Sender()
	ctx := context.Background()

	fullName := strings.TrimSpace(sender.FirstName + " " + sender.LastName)
	user, err := h.userService.GetOrCreateUser(ctx, sender.ID, sender.Username, fullName)
	if err != nil {
		log.Printf("failed to process user %d: %v", sender.ID, err)
		return c.Send(h.messageService.Text(ctx, model.MsgUnknownError))
	}

	if subjectID, ok := presenter.ParseDeepLink(c.Message().Payload); ok {
		if msg := h.launcher.Launch(ctx, c, user, subjectID); msg != "" {
			return c.Send(msg)
		}
		return nil
	}

	welcome := h.messageService.Text(ctx, model.MsgWelcome)
	if sender.FirstName != "" {
		welcome = fmt.Sprintf("%s, %s", sender.FirstName, welcome)
	}

	return c.Send(welcome, &telebot.SendOptions{
		ParseMode:   telebot.ModeHTML,
		ReplyMarkup: presenter.MainMenu(user.Role, h.messageService.GetButtons(ctx)),
	})
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *StartHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
