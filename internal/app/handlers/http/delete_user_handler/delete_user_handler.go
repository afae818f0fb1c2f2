package delete_user_handler

import (
	"context"
	"net/http"

	"github.com/porese500/simulacros/internal/app/handlers/http/common"
	httpError "github.com/porese500/simulacros/pkg/http"
)

type UserService interface {
	DeleteUser(ctx context.Context, userID int) error
}

// DeleteUserHandler удаляет пользователя вместе с его попытками
type DeleteUserHandler struct {
	userService UserService
}

func NewDeleteUserHandler(userService UserService) *DeleteUserHandler {
	return &DeleteUserHandler{userService: userService}
}

// ServeHTTP DELETE /users/{id}
func (h *DeleteUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := common.PathID(r, "id")
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userService.DeleteUser(r.Context(), userID); err != nil {
		httpError.ErrorResponse(w, common.StatusFromError(err), "Failed to delete user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
