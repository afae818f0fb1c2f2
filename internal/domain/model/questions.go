package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Option вариант ответа на вопрос симулякра
type Option string

const (
	OptionA Option = "A"
	OptionB Option = "B"
	OptionC Option = "C"
	OptionD Option = "D"
)

// AllOptions порядок вариантов при отображении вопроса
var AllOptions = []Option{OptionA, OptionB, OptionC, OptionD}

var (
	ErrInvalidOption    = errors.New("option must be one of A, B, C, D")
	ErrEmptyQuestion    = errors.New("question body is empty")
	ErrMissingOption    = errors.New("question option is empty")
	ErrQuestionMismatch = errors.New("question belongs to another subject")
)

// Valid проверяет, что вариант входит в множество A-D
func (o Option) Valid() bool {
	switch o {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// ParseOption разбирает вариант без учета регистра и пробелов
func ParseOption(s string) (Option, error) {
	o := Option(strings.ToUpper(strings.TrimSpace(s)))
	if !o.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidOption, s)
	}
	return o, nil
}

// Options тексты четырех вариантов ответа
type Options struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// Text возвращает текст варианта
func (o Options) Text(opt Option) string {
	switch opt {
	case OptionA:
		return o.A
	case OptionB:
		return o.B
	case OptionC:
		return o.C
	case OptionD:
		return o.D
	}
	return ""
}

// Question представляет вопрос из банка вопросов предмета
type Question struct {
	ID            int       `json:"id"`
	SubjectID     int       `json:"subject_id"`
	Body          string    `json:"body"`
	Options       Options   `json:"options"`
	CorrectOption Option    `json:"correct_option"`
	Active        bool      `json:"active"`
	ImageURL      *string   `json:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Validate проверяет инварианты вопроса: непустой текст, четыре непустых варианта
// и правильный ответ из множества A-D.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Body) == "" {
		return ErrEmptyQuestion
	}
	for _, opt := range AllOptions {
		if strings.TrimSpace(q.Options.Text(opt)) == "" {
			return fmt.Errorf("%w: %s", ErrMissingOption, opt)
		}
	}
	if !q.CorrectOption.Valid() {
		return fmt.Errorf("%w: correct option %q", ErrInvalidOption, q.CorrectOption)
	}
	return nil
}
