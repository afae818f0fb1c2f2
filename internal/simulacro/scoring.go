package simulacro

import "github.com/porese500/simulacros/internal/domain/model"

// Score переводит количество верных ответов в шкалу 0-100.
// Округление half-up: 1 из 8 (12.5) дает 13. При total == 0 результат 0.
func Score(correct, total int) int {
	if total <= 0 || correct <= 0 {
		return 0
	}
	if correct > total {
		correct = total
	}
	return (200*correct + total) / (2 * total)
}

// grade сравнивает ответы с правильными вариантами в порядке вопросов попытки.
// Вопрос без ответа считается неверным.
func grade(questions []model.Question, answers map[int]model.Option) (int, []ReviewItem) {
	correct := 0
	review := make([]ReviewItem, 0, len(questions))
	for _, q := range questions {
		chosen, answered := answers[q.ID]
		ok := answered && chosen == q.CorrectOption
		if ok {
			correct++
		}
		review = append(review, ReviewItem{
			Question: q,
			Chosen:   chosen,
			Answered: answered,
			Correct:  ok,
		})
	}
	return correct, review
}
