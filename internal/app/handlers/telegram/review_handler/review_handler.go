package review_handler

import (
	"bytes"
	"context"
	"log"
	"strings"
	"time"

	messageService "github.com/porese500/simulacros/internal/domain/messages/service"
	"github.com/porese500/simulacros/internal/domain/model"
	"github.com/porese500/simulacros/internal/infra/report"
	"github.com/porese500/simulacros/internal/simulacro"
	"gopkg.in/telebot.v4"
)

// ReviewHandler отправляет PDF-разбор завершенной попытки
type ReviewHandler struct {
	sessions       *simulacro.Sessions
	messageService *messageService.MessageService
	title          string
}

func NewReviewHandler(sessions *simulacro.Sessions, messageService *messageService.MessageService, title string) *ReviewHandler {
	return &ReviewHandler{sessions: sessions, messageService: messageService, title: title}
}

func (h *ReviewHandler) Handle(c telebot.Context) error {
	ctx := context.Background()

	runner, ok := h.sessions.Lookup(c.Sender().ID)
	if !ok {
		return c.Respond(&telebot.CallbackResponse{Text: h.messageService.Text(ctx, model.MsgNotRunning)})
	}
	res, ok := runner.Result()
	if !ok || res.SessionID.String() != c.Data() {
		return c.Respond(&telebot.CallbackResponse{Text: h.messageService.Text(ctx, model.MsgNotRunning)})
	}

	finishedAt := time.Now()
	pdf, err := report.GenerateReviewPDF(reviewData(h.title, c.Sender(), res, finishedAt))
	if err != nil {
		log.Printf("failed to generate review for session %s: %v", res.SessionID, err)
		return c.Respond(&telebot.CallbackResponse{Text: h.messageService.Text(ctx, model.MsgUnknownError)})
	}

	doc := &telebot.Document{
		File:     telebot.FromReader(bytes.NewReader(pdf)),
		FileName: report.FileName(res.Subject.Name, finishedAt),
		MIME:     "application/pdf",
	}
	if err := c.Send(doc); err != nil {
		log.Printf("failed to send review for session %s: %v", res.SessionID, err)
		return c.Respond(&telebot.CallbackResponse{Text: h.messageService.Text(ctx, model.MsgUnknownError)})
	}
	return c.Respond()
}

func reviewData(title string, sender *telebot.User, res simulacro.Result, finishedAt time.Time) report.ReviewData {
	items := make([]report.ReviewItem, 0, len(res.Review))
	for _, r := range res.Review {
		items = append(items, report.ReviewItem{
			Question: r.Question,
			Chosen:   r.Chosen,
			Answered: r.Answered,
			Correct:  r.Correct,
		})
	}
	return report.ReviewData{
		Title:          title,
		StudentName:    strings.TrimSpace(sender.FirstName + " " + sender.LastName),
		SubjectName:    res.Subject.Name,
		Score:          res.Score,
		CorrectCount:   res.CorrectCount,
		TotalQuestions: res.TotalQuestions,
		ElapsedSeconds: res.ElapsedSeconds,
		TimedOut:       res.TimedOut,
		FinishedAt:     finishedAt,
		Items:          items,
	}
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *ReviewHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
