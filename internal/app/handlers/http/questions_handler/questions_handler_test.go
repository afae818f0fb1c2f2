package questions_handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/porese500/simulacros/internal/domain/dto"
	"github.com/porese500/simulacros/internal/domain/model"
)

type fakeQuestionService struct {
	questions map[int]model.Question
	failList  bool
}

func (f *fakeQuestionService) ListQuestions(ctx context.Context, subjectID int) ([]model.Question, error) {
	if f.failList {
		return nil, errors.New("connection refused")
	}
	var out []model.Question
	for _, q := range f.questions {
		if q.SubjectID == subjectID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestionService) CreateQuestion(ctx context.Context, subjectID int, req dto.CreateQuestionRequest) (*model.Question, error) {
	correct, err := model.ParseOption(req.CorrectOption)
	if err != nil {
		return nil, err
	}
	q := model.Question{
		ID:            len(f.questions) + 1,
		SubjectID:     subjectID,
		Body:          req.Body,
		Options:       model.Options{A: req.OptionA, B: req.OptionB, C: req.OptionC, D: req.OptionD},
		CorrectOption: correct,
		Active:        true,
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	f.questions[q.ID] = q
	return &q, nil
}

func (f *fakeQuestionService) SetActive(ctx context.Context, id int, active bool) (*model.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	q.Active = active
	f.questions[id] = q
	return &q, nil
}

func newRouter(svc *fakeQuestionService) *mux.Router {
	h := NewQuestionsHandler(svc)
	r := mux.NewRouter()
	r.HandleFunc("/subjects/{id}/questions", h.List).Methods(http.MethodGet)
	r.HandleFunc("/subjects/{id}/questions", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/questions/{id}/active", h.SetActive).Methods(http.MethodPatch)
	return r
}

func serve(router *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestListQuestions(t *testing.T) {
	svc := &fakeQuestionService{questions: map[int]model.Question{
		1: {ID: 1, SubjectID: 1, Body: "2+2", Active: true},
		2: {ID: 2, SubjectID: 1, Body: "3+3", Active: false},
		3: {ID: 3, SubjectID: 2, Body: "Capital", Active: true},
	}}
	router := newRouter(svc)

	rec := serve(router, http.MethodGet, "/subjects/1/questions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался статус 200, получено %d", rec.Code)
	}
	var got []model.Question
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ожидалось 2 вопроса вместе с архивным, получено %d", len(got))
	}

	if rec := serve(router, http.MethodGet, "/subjects/abc/questions", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("нечисловой id: ожидался 400, получено %d", rec.Code)
	}

	svc.failList = true
	if rec := serve(router, http.MethodGet, "/subjects/1/questions", ""); rec.Code != http.StatusInternalServerError {
		t.Errorf("ошибка хранилища: ожидался 500, получено %d", rec.Code)
	}
}

func TestCreateQuestion(t *testing.T) {
	svc := &fakeQuestionService{questions: make(map[int]model.Question)}
	router := newRouter(svc)

	rec := serve(router, http.MethodPost, "/subjects/1/questions",
		`{"body":"2+2","option_a":"3","option_b":"4","option_c":"5","option_d":"22","correct_option":"b"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("ожидался статус 201, получено %d: %s", rec.Code, rec.Body.String())
	}
	var created model.Question
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	if created.CorrectOption != model.OptionB || !created.Active {
		t.Errorf("неверно создан вопрос: %+v", created)
	}

	cases := map[string]string{
		"неверный вариант": `{"body":"2+2","option_a":"3","option_b":"4","option_c":"5","option_d":"22","correct_option":"E"}`,
		"пустой вариант":   `{"body":"2+2","option_a":"3","option_b":"","option_c":"5","option_d":"22","correct_option":"A"}`,
		"пустой текст":     `{"body":"","option_a":"3","option_b":"4","option_c":"5","option_d":"22","correct_option":"A"}`,
		"битый JSON":       `{"body":`,
	}
	for name, body := range cases {
		if rec := serve(router, http.MethodPost, "/subjects/1/questions", body); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: ожидался 400, получено %d", name, rec.Code)
		}
	}
	if len(svc.questions) != 1 {
		t.Errorf("невалидные вопросы не должны сохраняться, сохранено %d", len(svc.questions))
	}
}

func TestSetQuestionActive(t *testing.T) {
	svc := &fakeQuestionService{questions: map[int]model.Question{5: {ID: 5, SubjectID: 1, Active: true}}}
	router := newRouter(svc)

	rec := serve(router, http.MethodPatch, "/questions/5/active", `{"active":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался статус 200, получено %d", rec.Code)
	}
	if svc.questions[5].Active {
		t.Errorf("вопрос не архивирован")
	}

	if rec := serve(router, http.MethodPatch, "/questions/99/active", `{"active":true}`); rec.Code != http.StatusNotFound {
		t.Errorf("несуществующий вопрос: ожидался 404, получено %d", rec.Code)
	}
	if rec := serve(router, http.MethodPatch, "/questions/5/active", `active`); rec.Code != http.StatusBadRequest {
		t.Errorf("битое тело: ожидался 400, получено %d", rec.Code)
	}
}
