package user_progress_handler

import (
	"context"
	"log"
	"net/http"

	"github.com/porese500/simulacros/internal/app/handlers/http/common"
	"github.com/porese500/simulacros/internal/domain/dto"
	"github.com/porese500/simulacros/internal/domain/model"
	"github.com/porese500/simulacros/internal/infra/auth"
	httpError "github.com/porese500/simulacros/pkg/http"
)

type ProgressService interface {
	Progress(ctx context.Context, userID int) ([]dto.SubjectProgress, error)
}

// UserProgressHandler прогресс пользователя по предметам
type UserProgressHandler struct {
	resultService ProgressService
}

func NewUserProgressHandler(resultService ProgressService) *UserProgressHandler {
	return &UserProgressHandler{resultService: resultService}
}

// ServeHTTP GET /users/{id}/progress. Студент видит только свой прогресс.
func (h *UserProgressHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := common.PathID(r, "id")
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	id, ok := auth.IdentityFrom(r.Context())
	if !ok {
		httpError.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if !model.CanViewProgressOf(id.Role, id.UserID, userID) {
		httpError.ErrorResponse(w, http.StatusForbidden, "Forbidden")
		return
	}

	progress, err := h.resultService.Progress(r.Context(), userID)
	if err != nil {
		log.Printf("failed to get progress for user %d: %v", userID, err)
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to get progress")
		return
	}
	if progress == nil {
		progress = []dto.SubjectProgress{}
	}

	httpError.JSONResponse(w, http.StatusOK, dto.ProgressResponse{UserID: userID, Subjects: progress})
}
