package events

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/streadway/amqp"
)

type recordingChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (c *recordingChannel) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return c.err
}

func (c *recordingChannel) Close() error { return nil }

// TestPublishUsesEventTypeAsRoutingKey проверяет формат сообщения.
func TestPublishUsesEventTypeAsRoutingKey(t *testing.T) {
	ch := &recordingChannel{}
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	p := &AMQPPublisher{channel: ch, exchange: "simulacros", now: func() time.Time { return fixed }}

	if err := p.Publish(SimulacroFinished, map[string]int{"score": 70}); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if ch.exchange != "simulacros" || ch.key != SimulacroFinished {
		t.Errorf("неверная маршрутизация: %s/%s", ch.exchange, ch.key)
	}
	if ch.msg.ContentType != "application/json" {
		t.Errorf("неверный тип содержимого: %s", ch.msg.ContentType)
	}

	var got struct {
		Type       string         `json:"type"`
		OccurredAt time.Time      `json:"occurred_at"`
		Payload    map[string]int `json:"payload"`
	}
	if err := json.Unmarshal(ch.msg.Body, &got); err != nil {
		t.Fatalf("тело сообщения не JSON: %v", err)
	}
	if got.Type != SimulacroFinished || got.Payload["score"] != 70 || !got.OccurredAt.Equal(fixed) {
		t.Errorf("неверное тело сообщения: %+v", got)
	}
}

func TestPublishWrapsChannelError(t *testing.T) {
	boom := errors.New("channel closed")
	p := &AMQPPublisher{channel: &recordingChannel{err: boom}, exchange: "x", now: time.Now}

	if err := p.Publish(SimulacroFinished, nil); !errors.Is(err, boom) {
		t.Errorf("ожидалась исходная ошибка канала, получено %v", err)
	}
}
