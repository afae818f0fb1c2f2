package middleware

import (
	"errors"
	"testing"

	"gopkg.in/telebot.v4"
)

func TestRecoverConvertsPanic(t *testing.T) {
	var got error
	handler := Recover(func(err error, c telebot.Context) { got = err })(func(c telebot.Context) error {
		panic("boom")
	})

	err := handler(nil)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("ожидалась ошибка boom, получено %v", err)
	}
	if got == nil {
		t.Errorf("обработчик ошибки не был вызван")
	}
}

func TestRecoverPassesThrough(t *testing.T) {
	want := errors.New("handler failed")
	handler := Recover()(func(c telebot.Context) error { return want })

	if err := handler(nil); !errors.Is(err, want) {
		t.Errorf("ожидалась исходная ошибка, получено %v", err)
	}
}
