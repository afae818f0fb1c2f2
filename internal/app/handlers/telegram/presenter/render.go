package presenter

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/porese500/simulacros/internal/domain/dto"
	"github.com/porese500/simulacros/internal/domain/model"
	"github.com/porese500/simulacros/internal/infra/timer"
	"github.com/porese500/simulacros/internal/simulacro"
	"gopkg.in/telebot.v4"
)

// Данные кнопок навигации
const (
	NavPrev = "prev"
	NavNext = "next"
)

// TimerText строка таймера: оставшееся время и номер текущего вопроса
func TimerText(remaining, cursor, count int) string {
	return fmt.Sprintf("⏱ %s · Pregunta %d/%d", timer.FormatRemaining(remaining), cursor+1, count)
}

// QuestionView текст и клавиатура вопроса под курсором
func QuestionView(snap simulacro.Snapshot, finishText string) (string, *telebot.ReplyMarkup) {
	q, ok := snap.Current()
	if !ok {
		return "", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b> · Pregunta %d de %d\n\n", html.EscapeString(snap.Subject.Name), snap.Cursor+1, len(snap.Questions))
	b.WriteString(html.EscapeString(q.Body))
	b.WriteString("\n\n")
	for _, opt := range model.AllOptions {
		fmt.Fprintf(&b, "<b>%s)</b> %s\n", opt, html.EscapeString(q.Options.Text(opt)))
	}
	fmt.Fprintf(&b, "\nRespondidas: %d/%d", snap.AnsweredCount(), len(snap.Questions))

	chosen, answered := snap.Answers[q.ID]
	optionRow := make([]telebot.InlineButton, 0, len(model.AllOptions))
	for _, opt := range model.AllOptions {
		text := string(opt)
		if answered && chosen == opt {
			text = "✅ " + text
		}
		optionRow = append(optionRow, telebot.InlineButton{
			Unique: model.SimAnswerKey,
			Text:   text,
			Data:   strconv.Itoa(q.ID) + "|" + string(opt),
		})
	}

	var navRow []telebot.InlineButton
	if snap.Cursor > 0 {
		navRow = append(navRow, telebot.InlineButton{Unique: model.SimNavKey, Text: "◀", Data: NavPrev})
	}
	if snap.Cursor < len(snap.Questions)-1 {
		navRow = append(navRow, telebot.InlineButton{Unique: model.SimNavKey, Text: "▶", Data: NavNext})
	}

	keyboard := [][]telebot.InlineButton{optionRow}
	if len(navRow) > 0 {
		keyboard = append(keyboard, navRow)
	}
	keyboard = append(keyboard, []telebot.InlineButton{{Unique: model.SimFinishKey, Text: finishText, Data: snap.SessionID.String()}})

	return b.String(), &telebot.ReplyMarkup{InlineKeyboard: keyboard}
}

// ResultView экран результата завершенной попытки
func ResultView(res simulacro.Result, reviewText, closeText string) (string, *telebot.ReplyMarkup) {
	var b strings.Builder
	if res.TimedOut {
		b.WriteString("⏰ ¡Se acabó el tiempo!\n\n")
	}
	fmt.Fprintf(&b, "🏁 <b>Simulacro terminado</b>\n")
	fmt.Fprintf(&b, "Materia: %s\n", html.EscapeString(res.Subject.Name))
	fmt.Fprintf(&b, "Puntaje: <b>%d</b>/100\n", res.Score)
	fmt.Fprintf(&b, "Correctas: %d de %d\n", res.CorrectCount, res.TotalQuestions)
	fmt.Fprintf(&b, "Tiempo empleado: %s", timer.FormatRemaining(res.ElapsedSeconds))

	session := res.SessionID.String()
	markup := &telebot.ReplyMarkup{InlineKeyboard: [][]telebot.InlineButton{
		{{Unique: model.SimReviewKey, Text: reviewText, Data: session}},
		{{Unique: model.SimCloseKey, Text: closeText, Data: session}},
	}}
	return b.String(), markup
}

// SubjectsMenu кнопки выбора предмета. Предметы без активных вопросов не показываются.
func SubjectsMenu(subjects []dto.SubjectSummary) *telebot.ReplyMarkup {
	var keyboard [][]telebot.InlineButton
	for _, s := range subjects {
		if s.QuestionCount == 0 {
			continue
		}
		keyboard = append(keyboard, []telebot.InlineButton{{
			Unique: model.SimStartKey,
			Text:   fmt.Sprintf("%s · %d min", s.Name, (s.DurationSeconds+59)/60),
			Data:   strconv.Itoa(s.ID),
		}})
	}
	return &telebot.ReplyMarkup{InlineKeyboard: keyboard}
}

// MainMenu главное меню по возможностям роли
func MainMenu(role model.Role, buttons map[string]string) *telebot.ReplyMarkup {
	var keyboard [][]telebot.InlineButton
	if model.CanTakeSimulacro(role) {
		keyboard = append(keyboard,
			[]telebot.InlineButton{{Unique: model.SimulacrosKey, Text: buttons[model.ButtonSimulacros], Data: model.SimulacrosKey}},
			[]telebot.InlineButton{{Unique: model.ProgressKey, Text: buttons[model.ButtonProgress], Data: model.ProgressKey}},
		)
	}
	if model.CanManageContent(role) {
		keyboard = append(keyboard,
			[]telebot.InlineButton{{Unique: model.BankKey, Text: buttons[model.ButtonBank], Data: model.BankKey}},
		)
	}
	return &telebot.ReplyMarkup{InlineKeyboard: keyboard}
}

// ProgressText сводка прогресса по предметам
func ProgressText(progress []dto.SubjectProgress) string {
	var b strings.Builder
	b.WriteString("📈 <b>Tu progreso</b>\n")
	for _, p := range progress {
		fmt.Fprintf(&b, "\n<b>%s</b>\n", html.EscapeString(p.SubjectName))
		fmt.Fprintf(&b, "Intentos: %d · Promedio: %d · Mejor: %d · Último: %d\n", p.Attempts, p.AverageScore, p.BestScore, p.LastScore)
		fmt.Fprintf(&b, "Historial: %s\n", scoreSeries(p.Scores))
	}
	return b.String()
}

func scoreSeries(scores []int) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, " → ")
}

// BankText сводка банка вопросов и ссылки запуска для преподавателя
func BankText(subjects []dto.SubjectSummary, botUsername string) string {
	var b strings.Builder
	b.WriteString("🗂 <b>Banco de preguntas</b>\n")
	for _, s := range subjects {
		fmt.Fprintf(&b, "\n<b>%s</b> (id %d)\n", html.EscapeString(s.Name), s.ID)
		fmt.Fprintf(&b, "Preguntas activas: %d · Duración: %s\n", s.QuestionCount, timer.FormatRemaining(s.DurationSeconds))
		fmt.Fprintf(&b, "Enlace: %s\n", DeepLink(botUsername, s.ID))
	}
	return b.String()
}

// DeepLink ссылка, запускающая симулякр предмета через /start
func DeepLink(botUsername string, subjectID int) string {
	return fmt.Sprintf("https://t.me/%s?start=%s%d", botUsername, model.DeepLinkPrefix, subjectID)
}

// ParseDeepLink извлекает ID предмета из payload команды /start
func ParseDeepLink(payload string) (int, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(payload), model.DeepLinkPrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(rest)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ParseAnswer разбирает данные кнопки ответа "questionID|option"
func ParseAnswer(data string) (int, model.Option, error) {
	rawID, rawOpt, ok := strings.Cut(data, "|")
	if !ok {
		return 0, "", fmt.Errorf("malformed answer data %q", data)
	}
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return 0, "", fmt.Errorf("malformed question id %q: %w", rawID, err)
	}
	opt, err := model.ParseOption(rawOpt)
	if err != nil {
		return 0, "", err
	}
	return id, opt, nil
}
