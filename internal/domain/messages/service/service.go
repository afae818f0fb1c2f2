package service

import (
	"context"
	"errors"
	"log"

	"github.com/porese500/simulacros/internal/domain/model"
)

// defaults тексты бота, если в таблице messages нет переопределения
var defaults = map[string]string{
	model.MsgWelcome:          "¡Hola! Bienvenido a POR ESE 500. Elige una opción para comenzar.",
	model.MsgChooseSubject:    "Elige la materia para tu simulacro:",
	model.MsgNoSubjects:       "Todavía no hay materias disponibles.",
	model.MsgNoQuestions:      "Esta materia aún no tiene preguntas activas.",
	model.MsgAlreadyRunning:   "Ya tienes un simulacro en curso. Termínalo antes de iniciar otro.",
	model.MsgNotRunning:       "No tienes un simulacro en curso.",
	model.MsgTimeUp:           "⏰ ¡Se acabó el tiempo!",
	model.MsgResultSaveFailed: "No se pudo guardar tu resultado. Tu puntaje sigue siendo válido para esta sesión.",
	model.MsgNoProgress:       "Aún no has realizado simulacros.",
	model.MsgForbidden:        "No tienes permiso para esta acción.",
	model.MsgUnknownError:     "Ocurrió un error. Inténtalo de nuevo.",

	model.ButtonSimulacros: "📝 Simulacros",
	model.ButtonProgress:   "📈 Mi progreso",
	model.ButtonBank:       "🗂 Banco de preguntas",
	model.ButtonFinish:     "Terminar",
	model.ButtonReview:     "Revisión PDF",
	model.ButtonClose:      "Cerrar",
}

// MessageRepository источник переопределенных текстов
type MessageRepository interface {
	GetMessageByKey(ctx context.Context, messageKey string) (string, error)
}

// MessageService содержит логику для работы с сообщениями
type MessageService struct {
	messageRepo MessageRepository
}

// NewMessageService создает новый экземпляр MessageService
func NewMessageService(messageRepo MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

// Text возвращает текст по ключу из базы данных или встроенный текст по умолчанию
func (s *MessageService) Text(ctx context.Context, messageKey string) string {
	if s.messageRepo != nil {
		text, err := s.messageRepo.GetMessageByKey(ctx, messageKey)
		if err == nil {
			return text
		}
		if !errors.Is(err, model.ErrNotFound) {
			log.Printf("failed to get message %s: %v", messageKey, err)
		}
	}
	if text, ok := defaults[messageKey]; ok {
		return text
	}
	return messageKey
}

// GetButtons возвращает тексты кнопок главного меню
func (s *MessageService) GetButtons(ctx context.Context) map[string]string {
	buttons := make(map[string]string)
	for _, key := range []string{model.ButtonSimulacros, model.ButtonProgress, model.ButtonBank} {
		buttons[key] = s.Text(ctx, key)
	}
	return buttons
}
