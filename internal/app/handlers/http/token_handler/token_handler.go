package token_handler

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/porese500/simulacros/internal/app/handlers/http/common"
	"github.com/porese500/simulacros/internal/domain/dto"
	"github.com/porese500/simulacros/internal/domain/model"
	httpError "github.com/porese500/simulacros/pkg/http"
)

const AdminKeyHeader = "X-Admin-Key"

type UserLookup interface {
	GetUserByID(ctx context.Context, userID int) (*model.User, error)
}

type TokenIssuer interface {
	Issue(userID int, role model.Role) (string, error)
	TTL() time.Duration
}

// TokenHandler выпускает токен для существующего пользователя по ключу администратора
type TokenHandler struct {
	users    UserLookup
	issuer   TokenIssuer
	adminKey string
}

func NewTokenHandler(users UserLookup, issuer TokenIssuer, adminKey string) *TokenHandler {
	return &TokenHandler{users: users, issuer: issuer, adminKey: adminKey}
}

// ServeHTTP POST /auth/token
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get(AdminKeyHeader)
	if h.adminKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(h.adminKey)) != 1 {
		httpError.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req dto.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID <= 0 {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.GetUserByID(r.Context(), req.UserID)
	if err != nil {
		httpError.ErrorResponse(w, common.StatusFromError(err), "User not found")
		return
	}

	token, err := h.issuer.Issue(user.ID, user.Role)
	if err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	httpError.JSONResponse(w, http.StatusOK, dto.TokenResponse{
		Token:     token,
		ExpiresIn: int(h.issuer.TTL().Seconds()),
	})
}
