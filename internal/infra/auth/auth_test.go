package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/porese500/simulacros/internal/domain/model"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("secret", time.Hour)

	token, err := m.Issue(15, model.RoleProfesor)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if claims.UserID != 15 || claims.Role != model.RoleProfesor {
		t.Errorf("неверные данные токена: %+v", claims)
	}
}

// TestParseRejectsForeignAndExpired проверяет чужую подпись и истекший срок.
func TestParseRejectsForeignAndExpired(t *testing.T) {
	m := NewManager("secret", time.Hour)
	other := NewManager("other", time.Hour)

	token, _ := other.Issue(1, model.RoleAdmin)
	if _, err := m.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ожидалась ErrInvalidToken для чужой подписи, получено %v", err)
	}

	expired := NewManager("secret", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _ = expired.Issue(1, model.RoleAdmin)
	if _, err := m.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ожидалась ErrInvalidToken для истекшего токена, получено %v", err)
	}
}

func TestFromRequest(t *testing.T) {
	m := NewManager("secret", time.Hour)
	token, _ := m.Issue(3, model.RoleEstudiante)

	r := httptest.NewRequest("GET", "/subjects", nil)
	if _, err := m.FromRequest(r); !errors.Is(err, ErrMissingToken) {
		t.Errorf("ожидалась ErrMissingToken, получено %v", err)
	}

	r.Header.Set("Authorization", "Bearer "+token)
	id, err := m.FromRequest(r)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if id.UserID != 3 || id.Role != model.RoleEstudiante {
		t.Errorf("неверный пользователь: %+v", id)
	}

	ctx := WithIdentity(context.Background(), id)
	if got, ok := IdentityFrom(ctx); !ok || got != id {
		t.Errorf("пользователь не сохранен в контексте")
	}
}
