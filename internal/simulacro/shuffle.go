package simulacro

import (
	"log"
	"math/rand"

	"github.com/porese500/simulacros/internal/domain/model"
)

// shuffle перемешивает вопросы на месте (Fisher-Yates в rand.Shuffle)
func shuffle(rnd *rand.Rand, questions []model.Question) {
	rnd.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
}

// usable отбирает вопросы, пригодные для попытки: активные, относящиеся к предмету,
// прошедшие Validate и без повторов ID. Остальные пропускаются с записью в лог.
func usable(subjectID int, questions []model.Question) []model.Question {
	seen := make(map[int]bool, len(questions))
	out := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		if seen[q.ID] {
			continue
		}
		if !q.Active {
			continue
		}
		if q.SubjectID != subjectID {
			log.Printf("simulacro: skipping question %d: %v", q.ID, model.ErrQuestionMismatch)
			continue
		}
		if err := q.Validate(); err != nil {
			log.Printf("simulacro: skipping malformed question %d: %v", q.ID, err)
			continue
		}
		seen[q.ID] = true
		out = append(out, q)
	}
	return out
}
