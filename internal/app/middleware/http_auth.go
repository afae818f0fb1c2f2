package middleware

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/porese500/simulacros/internal/domain/model"
	"github.com/porese500/simulacros/internal/infra/auth"
	httpError "github.com/porese500/simulacros/pkg/http"
)

// TokenParser проверяет bearer-токен запроса
type TokenParser interface {
	FromRequest(r *http.Request) (auth.Identity, error)
}

// Authenticate проверяет токен для всех запросов, кроме путей из public
func Authenticate(parser TokenParser, public ...string) mux.MiddlewareFunc {
	skip := make(map[string]struct{}, len(public))
	for _, p := range public {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			id, err := parser.FromRequest(r)
			if err != nil {
				if errors.Is(err, auth.ErrMissingToken) {
					httpError.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
					return
				}
				httpError.ErrorResponse(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// Require пропускает запрос, только если роль пользователя удовлетворяет предикату
func Require(allowed func(model.Role) bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFrom(r.Context())
		if !ok {
			httpError.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !allowed(id.Role) {
			httpError.ErrorResponse(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireFunc то же, что Require, для http.HandlerFunc
func RequireFunc(allowed func(model.Role) bool, next http.HandlerFunc) http.Handler {
	return Require(allowed, next)
}
