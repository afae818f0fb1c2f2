package presenter

import (
	"log"
	"sync"

	"github.com/porese500/simulacros/internal/simulacro"
	"gopkg.in/telebot.v4"
)

// Sender подмножество *telebot.Bot для отправки и редактирования сообщений
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
	Edit(msg telebot.Editable, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// Labels тексты кнопок, подставляемые в экраны попытки
type Labels struct {
	Finish string
	Review string
	Close  string
}

// Presenter отображает попытку одного пользователя в его чате:
// сообщение таймера редактируется каждую секунду, сообщение вопроса при каждом изменении.
type Presenter struct {
	sender Sender
	chat   telebot.Recipient
	labels Labels

	mu          sync.Mutex
	timerMsg    *telebot.Message
	questionMsg *telebot.Message
}

var (
	_ simulacro.Observer = (*Presenter)(nil)
	_ simulacro.Notifier = (*Presenter)(nil)
)

func New(sender Sender, chat telebot.Recipient, labels Labels) *Presenter {
	return &Presenter{sender: sender, chat: chat, labels: labels}
}

func (p *Presenter) Started(s simulacro.Snapshot) {
	timerMsg, err := p.sender.Send(p.chat, TimerText(s.RemainingSeconds, s.Cursor, len(s.Questions)))
	if err != nil {
		log.Printf("presenter: failed to send timer message: %v", err)
	}

	text, markup := QuestionView(s, p.labels.Finish)
	questionMsg, err := p.sender.Send(p.chat, text, &telebot.SendOptions{ParseMode: telebot.ModeHTML, ReplyMarkup: markup})
	if err != nil {
		log.Printf("presenter: failed to send question: %v", err)
	}

	p.mu.Lock()
	p.timerMsg, p.questionMsg = timerMsg, questionMsg
	p.mu.Unlock()
}

// Changed редактирует только сообщение вопроса. Строка таймера обновится со следующим тиком.
func (p *Presenter) Changed(s simulacro.Snapshot) {
	p.mu.Lock()
	questionMsg := p.questionMsg
	p.mu.Unlock()

	if questionMsg == nil {
		return
	}
	text, markup := QuestionView(s, p.labels.Finish)
	p.edit(questionMsg, text, &telebot.SendOptions{ParseMode: telebot.ModeHTML, ReplyMarkup: markup})
}

func (p *Presenter) Ticked(t simulacro.Tick) {
	p.mu.Lock()
	timerMsg := p.timerMsg
	p.mu.Unlock()

	if timerMsg != nil {
		p.edit(timerMsg, TimerText(t.RemainingSeconds, t.Cursor, t.QuestionCount))
	}
}

func (p *Presenter) Finished(r simulacro.Result) {
	p.mu.Lock()
	questionMsg := p.questionMsg
	p.mu.Unlock()

	text, markup := ResultView(r, p.labels.Review, p.labels.Close)
	opts := &telebot.SendOptions{ParseMode: telebot.ModeHTML, ReplyMarkup: markup}
	if questionMsg != nil {
		p.edit(questionMsg, text, opts)
		return
	}
	if _, err := p.sender.Send(p.chat, text, opts); err != nil {
		log.Printf("presenter: failed to send result: %v", err)
	}
}

func (p *Presenter) Closed() {
	p.mu.Lock()
	timerMsg, questionMsg := p.timerMsg, p.questionMsg
	p.timerMsg, p.questionMsg = nil, nil
	p.mu.Unlock()

	if timerMsg != nil {
		p.edit(timerMsg, "⏹ Simulacro cerrado")
	}
	if questionMsg != nil {
		p.edit(questionMsg, "Puedes iniciar otro simulacro desde el menú con /start.")
	}
}

// Notify отправляет уведомление отдельным сообщением
func (p *Presenter) Notify(n simulacro.Notice) {
	text := n.Message
	if n.Level == simulacro.LevelWarning {
		text = "⚠️ " + text
	}
	if _, err := p.sender.Send(p.chat, text); err != nil {
		log.Printf("presenter: failed to send notice: %v", err)
	}
}

func (p *Presenter) edit(msg *telebot.Message, what interface{}, opts ...interface{}) {
	if _, err := p.sender.Edit(msg, what, opts...); err != nil {
		log.Printf("presenter: failed to edit message %d: %v", msg.ID, err)
	}
}
