package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"oraya/internal/domain"
	"oraya/internal/repository"
	"oraya/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCartService struct {
	result domain.Cart
	err    error
}

func (s *stubCartService) Add(ctx context.Context, cart domain.Cart, pid string, delta int) (domain.Cart, error) {
	if s.err != nil {
		return cart, s.err
	}
	return s.result, nil
}

func newCartRouter(svc *stubCartService, sessions *session.Manager) chi.Router {
	r := chi.NewRouter()
	NewCartHandler(svc, sessions, zap.NewNop()).RegisterRoutes(r)
	return r
}

func TestCartHandler_GetEmpty(t *testing.T) {
	sessions := session.NewManager(testSecret, "test-session", false)
	router := newCartRouter(&stubCartService{}, sessions)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestCartHandler_Add(t *testing.T) {
	sessions := session.NewManager(testSecret, "test-session", false)
	router := newCartRouter(&stubCartService{result: domain.Cart{"p1": 2}}, sessions)

	body, _ := json.Marshal(map[string]interface{}{"pid": "p1", "qty": 2})
	req := httptest.NewRequest(http.MethodPost, "/api/cart", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"p1":2}`, w.Body.String())

	// The updated cart is committed to the session cookie.
	followup := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		followup.AddCookie(c)
	}
	assert.Equal(t, 2, sessions.Get(followup).Cart()["p1"])
}

func TestCartHandler_AddMissingFields(t *testing.T) {
	sessions := session.NewManager(testSecret, "test-session", false)
	router := newCartRouter(&stubCartService{}, sessions)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing qty", `{"pid":"p1"}`},
		{"missing pid", `{"qty":2}`},
		{"not json", `pid=p1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/cart", bytes.NewReader([]byte(tt.body)))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCartHandler_AddErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"unknown product", repository.ErrProductNotFound, http.StatusNotFound},
		{"insufficient stock", repository.ErrInsufficientStock, http.StatusBadRequest},
		{"store failure", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := session.NewManager(testSecret, "test-session", false)
			router := newCartRouter(&stubCartService{err: tt.err}, sessions)

			body, _ := json.Marshal(map[string]interface{}{"pid": "p1", "qty": 1})
			req := httptest.NewRequest(http.MethodPost, "/api/cart", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestCartHandler_Clear(t *testing.T) {
	sessions := session.NewManager(testSecret, "test-session", false)
	router := newCartRouter(&stubCartService{}, sessions)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart", nil)
	for _, c := range cartCookie(t, sessions, domain.Cart{"p1": 3}) {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())

	followup := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		followup.AddCookie(c)
	}
	assert.True(t, sessions.Get(followup).Cart().IsEmpty())
}
