package user_progress_handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/porese500/simulacros/internal/domain/dto"
	"github.com/porese500/simulacros/internal/domain/model"
	"github.com/porese500/simulacros/internal/infra/auth"
)

type fakeProgress struct{}

func (fakeProgress) Progress(ctx context.Context, userID int) ([]dto.SubjectProgress, error) {
	return []dto.SubjectProgress{{SubjectID: 1, SubjectName: "Química", Attempts: 2, AverageScore: 55}}, nil
}

func request(userID string, id *auth.Identity) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/users/"+userID+"/progress", nil)
	req = mux.SetURLVars(req, map[string]string{"id": userID})
	if id != nil {
		req = req.WithContext(auth.WithIdentity(req.Context(), *id))
	}
	return req
}

func TestProgressAccess(t *testing.T) {
	h := NewUserProgressHandler(fakeProgress{})

	cases := []struct {
		name   string
		target string
		id     *auth.Identity
		status int
	}{
		{"студент смотрит себя", "4", &auth.Identity{UserID: 4, Role: model.RoleEstudiante}, http.StatusOK},
		{"студент смотрит другого", "5", &auth.Identity{UserID: 4, Role: model.RoleEstudiante}, http.StatusForbidden},
		{"преподаватель смотрит студента", "5", &auth.Identity{UserID: 1, Role: model.RoleProfesor}, http.StatusOK},
		{"без токена", "5", nil, http.StatusUnauthorized},
		{"битый ID", "x", &auth.Identity{UserID: 1, Role: model.RoleAdmin}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, request(tc.target, tc.id))
		if rec.Code != tc.status {
			t.Errorf("%s: ожидался статус %d, получено %d", tc.name, tc.status, rec.Code)
		}
	}
}
