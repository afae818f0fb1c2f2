package model

import (
	"errors"
	"testing"
)

func validQuestion() Question {
	return Question{
		ID:            1,
		SubjectID:     1,
		Body:          "¿Cuánto es 2 + 2?",
		Options:       Options{A: "3", B: "4", C: "5", D: "22"},
		CorrectOption: OptionB,
		Active:        true,
	}
}

// TestQuestionValidate проверяет инварианты вопроса.
func TestQuestionValidate(t *testing.T) {
	if err := validQuestion().Validate(); err != nil {
		t.Fatalf("корректный вопрос не прошел проверку: %v", err)
	}

	q := validQuestion()
	q.Options.C = "  "
	if err := q.Validate(); !errors.Is(err, ErrMissingOption) {
		t.Errorf("ожидалась ErrMissingOption, получено %v", err)
	}

	q = validQuestion()
	q.CorrectOption = "E"
	if err := q.Validate(); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("ожидалась ErrInvalidOption, получено %v", err)
	}

	q = validQuestion()
	q.Body = ""
	if err := q.Validate(); !errors.Is(err, ErrEmptyQuestion) {
		t.Errorf("ожидалась ErrEmptyQuestion, получено %v", err)
	}
}

// TestParseOption проверяет разбор вариантов ответа.
func TestParseOption(t *testing.T) {
	for in, want := range map[string]Option{"a": OptionA, " B ": OptionB, "c": OptionC, "D": OptionD} {
		got, err := ParseOption(in)
		if err != nil {
			t.Fatalf("ParseOption(%q) вернул ошибку: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseOption(%q) = %s, ожидалось %s", in, got, want)
		}
	}
	if _, err := ParseOption("AB"); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("ожидалась ErrInvalidOption, получено %v", err)
	}
}
