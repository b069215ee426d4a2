package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/brandcraft-backend/internal/services"
)

type stubAuth struct {
	services.AuthService
	refreshed string
}

func (s *stubAuth) RefreshUser(_ context.Context, token string) (services.TokenPair, error) {
	s.refreshed = token
	return services.TokenPair{AccessToken: "a", RefreshToken: "r2", ExpiresIn: 60}, nil
}

func TestRefreshReadsBodyToken(t *testing.T) {
	svc := &stubAuth{}
	r := newRouter(uuid.Nil)
	r.POST("/api/refresh", NewAuthHandler(svc).Refresh)

	w := do(t, r, http.MethodPost, "/api/refresh", strings.NewReader(`{"refresh_token":"r1"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if svc.refreshed != "r1" {
		t.Fatalf("refreshed %q", svc.refreshed)
	}
	if !strings.Contains(w.Body.String(), `"refresh_token":"r2"`) {
		t.Fatalf("body=%s", w.Body.String())
	}

	w = do(t, r, http.MethodPost, "/api/refresh", strings.NewReader(`not json`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed body status=%d", w.Code)
	}
}
