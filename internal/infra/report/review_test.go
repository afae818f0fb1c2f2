package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/porese500/simulacros/internal/domain/model"
)

func TestGenerateReviewPDF(t *testing.T) {
	q := model.Question{
		ID:            1,
		SubjectID:     1,
		Body:          "¿Cuál es la raíz cuadrada de 81?",
		Options:       model.Options{A: "7", B: "8", C: "9", D: "10"},
		CorrectOption: model.OptionC,
		Active:        true,
	}
	data := ReviewData{
		Title:          "POR ESE 500",
		StudentName:    "María Núñez",
		SubjectName:    "Matemáticas",
		Score:          50,
		CorrectCount:   1,
		TotalQuestions: 2,
		ElapsedSeconds: 95,
		FinishedAt:     time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC),
		Items: []ReviewItem{
			{Question: q, Chosen: model.OptionC, Answered: true, Correct: true},
			{Question: q},
		},
	}

	pdf, err := GenerateReviewPDF(data)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("результат не является PDF-документом")
	}
}

func TestFileName(t *testing.T) {
	at := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
	cases := map[string]string{
		"Matemáticas Básicas": "revision_matem_ticas_b_sicas_20260504_0930.pdf",
		"Física 2":            "revision_f_sica_2_20260504_0930.pdf",
		"¿?":                  "revision_simulacro_20260504_0930.pdf",
	}
	for in, want := range cases {
		if got := FileName(in, at); got != want {
			t.Errorf("FileName(%q) = %q, ожидалось %q", in, got, want)
		}
	}
}
