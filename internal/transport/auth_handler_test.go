package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"oraya/internal/service"
	"oraya/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAuthService struct {
	password string
}

func (s *stubAuthService) VerifyPassword(ctx context.Context, candidate string) error {
	if candidate != s.password {
		return service.ErrInvalidPassword
	}
	return nil
}

func newAuthRouter(sessions *session.Manager) chi.Router {
	r := chi.NewRouter()
	NewAuthHandler(&stubAuthService{password: "admin123"}, sessions, zap.NewNop()).RegisterRoutes(r)
	return r
}

func TestAuthHandler_StatusDefaultsToFalse(t *testing.T) {
	sessions := session.NewManager(testSecret, "test-session", false)
	router := newAuthRouter(sessions)

	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"admin":false}`, w.Body.String())
}

func TestAuthHandler_LoginGrantsAdminFlag(t *testing.T) {
	sessions := session.NewManager(testSecret, "test-session", false)
	router := newAuthRouter(sessions)

	body, _ := json.Marshal(map[string]string{"password": "admin123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	// The flag rides the session cookie on the next request.
	statusReq := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	for _, c := range w.Result().Cookies() {
		statusReq.AddCookie(c)
	}
	statusW := httptest.NewRecorder()
	router.ServeHTTP(statusW, statusReq)

	require.Equal(t, http.StatusOK, statusW.Code)
	assert.JSONEq(t, `{"admin":true}`, statusW.Body.String())
}

func TestAuthHandler_LoginRejectsBadPassword(t *testing.T) {
	sessions := session.NewManager(testSecret, "test-session", false)
	router := newAuthRouter(sessions)

	body, _ := json.Marshal(map[string]string{"password": "nope"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies(), "a failed login must not set a session cookie")
}

func TestAuthHandler_LoginRequiresPassword(t *testing.T) {
	sessions := session.NewManager(testSecret, "test-session", false)
	router := newAuthRouter(sessions)

	req := httptest.NewRequest(http.MethodPost, "/api/auth", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
