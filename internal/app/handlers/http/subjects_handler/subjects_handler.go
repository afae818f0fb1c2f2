package subjects_handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/porese500/simulacros/internal/app/handlers/http/common"
	"github.com/porese500/simulacros/internal/domain/dto"
	"github.com/porese500/simulacros/internal/domain/model"
	httpError "github.com/porese500/simulacros/pkg/http"
)

type SubjectService interface {
	ListSubjects(ctx context.Context) ([]dto.SubjectSummary, error)
	CreateSubject(ctx context.Context, name string, durationSeconds int) (*model.Subject, error)
	UpdateDuration(ctx context.Context, id int, durationSeconds int) error
}

// SubjectsHandler список предметов, создание и настройка длительности
type SubjectsHandler struct {
	subjectService SubjectService
}

// NewSubjectsHandler создает новый экземпляр обработчика
func NewSubjectsHandler(subjectService SubjectService) *SubjectsHandler {
	return &SubjectsHandler{subjectService: subjectService}
}

// List GET /subjects
func (h *SubjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.subjectService.ListSubjects(r.Context())
	if err != nil {
		log.Printf("failed to list subjects: %v", err)
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to list subjects")
		return
	}
	httpError.JSONResponse(w, http.StatusOK, subjects)
}

// Create POST /subjects
func (h *SubjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	subject, err := h.subjectService.CreateSubject(r.Context(), req.Name, req.DurationSeconds)
	if err != nil {
		httpError.ErrorResponse(w, common.StatusFromError(err), err.Error())
		return
	}
	httpError.JSONResponse(w, http.StatusCreated, subject)
}

// UpdateDuration PUT /subjects/{id}/duration
func (h *SubjectsHandler) UpdateDuration(w http.ResponseWriter, r *http.Request) {
	id, err := common.PathID(r, "id")
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req dto.UpdateDurationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.subjectService.UpdateDuration(r.Context(), id, req.DurationSeconds); err != nil {
		httpError.ErrorResponse(w, common.StatusFromError(err), err.Error())
		return
	}
	httpError.JSONResponse(w, http.StatusOK, map[string]any{
		"id":               id,
		"duration_seconds": req.DurationSeconds,
	})
}
