package update_user_role_handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/porese500/simulacros/internal/app/handlers/http/common"
	"github.com/porese500/simulacros/internal/domain/dto"
	httpError "github.com/porese500/simulacros/pkg/http"
)

type UserService interface {
	UpdateUserRole(ctx context.Context, username string, roleName string) (int, error)
}

// UpdateUserRoleHandler структура для обработчика
type UpdateUserRoleHandler struct {
	userService UserService
}

// NewUpdateUserRoleHandler создает новый экземпляр обработчика
func NewUpdateUserRoleHandler(userService UserService) *UpdateUserRoleHandler {
	return &UpdateUserRoleHandler{userService: userService}
}

// ServeHTTP POST /users/update_role
func (h *UpdateUserRoleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var request dto.UpdateUserRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if request.Username == "" || request.RoleName == "" {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Missing username or role_name")
		return
	}

	userID, err := h.userService.UpdateUserRole(r.Context(), request.Username, request.RoleName)
	if err != nil {
		httpError.ErrorResponse(w, common.StatusFromError(err), fmt.Sprintf("Failed to update user role: %v", err))
		return
	}

	httpError.JSONResponse(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("User %s role updated to %s", request.Username, request.RoleName),
		"user_id": userID,
	})
}
