package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/porese500/simulacros/internal/domain/model"
	"github.com/porese500/simulacros/internal/infra/timer"
)

// ReviewItem один вопрос в разборе попытки
type ReviewItem struct {
	Question model.Question
	Chosen   model.Option
	Answered bool
	Correct  bool
}

// ReviewData данные для PDF-разбора завершенной попытки
type ReviewData struct {
	Title          string
	StudentName    string
	SubjectName    string
	Score          int
	CorrectCount   int
	TotalQuestions int
	ElapsedSeconds int
	TimedOut       bool
	FinishedAt     time.Time
	Items          []ReviewItem
}

// GenerateReviewPDF формирует PDF с итогом и разбором каждого вопроса.
// Используются встроенные шрифты с кодировкой cp1252, которой достаточно для испанского текста.
func GenerateReviewPDF(r ReviewData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(tr(r.Title), false)
	pdf.AddPage()

	// Заголовок
	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 10, tr(fmt.Sprintf("%s · Revisión del simulacro", r.Title)), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 12)
	status := "Finalizado por el estudiante"
	if r.TimedOut {
		status = "Tiempo agotado"
	}
	info := fmt.Sprintf("Estudiante: %s\nMateria: %s\nPuntaje: %d/100 (%d de %d correctas)\nTiempo empleado: %s\nEstado: %s\nFecha: %s\n",
		r.StudentName, r.SubjectName, r.Score, r.CorrectCount, r.TotalQuestions,
		timer.FormatRemaining(r.ElapsedSeconds), status, r.FinishedAt.Format("02/01/2006 15:04"))
	pdf.MultiCell(0, 7, tr(info), "", "L", false)
	pdf.Ln(4)

	for i, item := range r.Items {
		q := item.Question

		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 7, tr(fmt.Sprintf("Pregunta %d", i+1)), "", "L", false)

		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(q.Body), "", "L", false)
		for _, opt := range model.AllOptions {
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s) %s", opt, q.Options.Text(opt))), "", "L", false)
		}

		chosen := "sin respuesta"
		if item.Answered {
			chosen = string(item.Chosen)
		}
		verdict := "Incorrecta"
		if item.Correct {
			verdict = "Correcta"
			pdf.SetTextColor(0, 128, 0)
		} else {
			pdf.SetTextColor(180, 0, 0)
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("Tu respuesta: %s · Correcta: %s · %s", chosen, q.CorrectOption, verdict)), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render review pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName имя файла разбора
func FileName(subjectName string, finishedAt time.Time) string {
	return fmt.Sprintf("revision_%s_%s.pdf", slug(subjectName), finishedAt.Format("20060102_1504"))
}

func slug(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case len(out) > 0 && out[len(out)-1] != '_':
			out = append(out, '_')
		}
	}
	for len(out) > 0 && out[len(out)-1] == '_' {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return "simulacro"
	}
	return string(out)
}
