package questions_handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/porese500/simulacros/internal/app/handlers/http/common"
	"github.com/porese500/simulacros/internal/domain/dto"
	"github.com/porese500/simulacros/internal/domain/model"
	httpError "github.com/porese500/simulacros/pkg/http"
)

type QuestionService interface {
	ListQuestions(ctx context.Context, subjectID int) ([]model.Question, error)
	CreateQuestion(ctx context.Context, subjectID int, req dto.CreateQuestionRequest) (*model.Question, error)
	SetActive(ctx context.Context, id int, active bool) (*model.Question, error)
}

// QuestionsHandler банк вопросов предмета
type QuestionsHandler struct {
	questionService QuestionService
}

func NewQuestionsHandler(questionService QuestionService) *QuestionsHandler {
	return &QuestionsHandler{questionService: questionService}
}

// List GET /subjects/{id}/questions, включая архивные
func (h *QuestionsHandler) List(w http.ResponseWriter, r *http.Request) {
	subjectID, err := common.PathID(r, "id")
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	questions, err := h.questionService.ListQuestions(r.Context(), subjectID)
	if err != nil {
		httpError.ErrorResponse(w, common.StatusFromError(err), "Failed to list questions")
		return
	}
	httpError.JSONResponse(w, http.StatusOK, questions)
}

// Create POST /subjects/{id}/questions
func (h *QuestionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	subjectID, err := common.PathID(r, "id")
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req dto.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	q, err := h.questionService.CreateQuestion(r.Context(), subjectID, req)
	if err != nil {
		httpError.ErrorResponse(w, common.StatusFromError(err), err.Error())
		return
	}
	httpError.JSONResponse(w, http.StatusCreated, q)
}

// SetActive PATCH /questions/{id}/active
func (h *QuestionsHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := common.PathID(r, "id")
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req dto.SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	q, err := h.questionService.SetActive(r.Context(), id, req.Active)
	if err != nil {
		httpError.ErrorResponse(w, common.StatusFromError(err), err.Error())
		return
	}
	httpError.JSONResponse(w, http.StatusOK, q)
}
