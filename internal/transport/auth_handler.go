package transport

import (
	"errors"
	"net/http"

	"oraya/internal/middleware"
	"oraya/internal/service"
	"oraya/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoginRequest represents the admin login payload
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// AuthHandler handles admin session authentication
type AuthHandler struct {
	authService service.AuthService
	sessions    *session.Manager
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, sessions *session.Manager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Get("/", h.Status)
		r.Post("/", h.Login)
	})
}

// Status reports whether the session holds the admin flag
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(r)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"admin": sess.IsAdmin()})
}

// Login verifies the shared admin password and grants the session flag
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "password required")
		return
	}

	if err := h.authService.VerifyPassword(r.Context(), req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidPassword) {
			h.logger.Warn("Admin login rejected", zap.String("remote_addr", r.RemoteAddr))
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid password")
			return
		}
		h.logger.Error("Password verification failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to verify password")
		return
	}

	sess := h.sessions.Get(r)
	sess.SetAdmin(true)
	if err := sess.Save(w, r); err != nil {
		h.logger.Error("Failed to save session", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	h.logger.Info("Admin logged in")
	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
