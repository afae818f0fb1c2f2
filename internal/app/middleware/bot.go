package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gopkg.in/telebot.v4"
)

// Logger логирует входящие обновления Telegram в JSON.
// Если логгер не передан, используется log.Default().
func Logger(logger ...*log.Logger) telebot.MiddlewareFunc {
	l := log.Default()
	if len(logger) > 0 {
		l = logger[0]
	}
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			data, _ := json.MarshalIndent(c.Update(), "", "  ")
			l.Println(string(data))
			return next(c)
		}
	}
}

// Recover перехватывает панику обработчика и передает ее в onError.
// По умолчанию паника только логируется.
func Recover(onError ...func(error, telebot.Context)) telebot.MiddlewareFunc {
	handleError := func(err error, c telebot.Context) {
		log.Printf("Recovered from panic: %v", err)
	}
	if len(onError) > 0 {
		handleError = onError[0]
	}

	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					var e error
					switch x := r.(type) {
					case error:
						e = x
					case string:
						e = errors.New(x)
					default:
						e = fmt.Errorf("panic: %v", x)
					}
					handleError(e, c)
					err = e
				}
			}()
			return next(c)
		}
	}
}

// TraceActions логирует действие пользователя и ошибку обработчика
func TraceActions(enabled bool) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			err := next(c)
			if !enabled || c.Sender() == nil {
				return err
			}

			action := "unknown"
			if cb := c.Callback(); cb != nil {
				action = "callback " + cb.Unique + " " + c.Data()
			} else if msg := c.Message(); msg != nil {
				action = "message " + msg.Text
			}
			if err != nil {
				log.Printf("user %d: %s: %v", c.Sender().ID, action, err)
			} else {
				log.Printf("user %d: %s", c.Sender().ID, action)
			}
			return err
		}
	}
}
