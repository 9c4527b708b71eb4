package transport

import (
	"errors"
	"net/http"

	"oraya/internal/middleware"
	"oraya/internal/repository"
	"oraya/internal/service"
	"oraya/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CartRequest represents the cart mutation payload. Qty may be negative to
// remove items; required-ness is checked against the pointer so zero-valued
// fields are still rejected as missing.
type CartRequest struct {
	ProductID string `json:"pid" validate:"required"`
	Qty       *int   `json:"qty" validate:"required"`
}

// CartHandler handles HTTP requests for the session cart
type CartHandler struct {
	cartService service.CartService
	sessions    *session.Manager
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, sessions *session.Manager, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		sessions:    sessions,
		logger:      logger,
	}
}

// RegisterRoutes registers the cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Post("/", h.Add)
		r.Delete("/", h.Clear)
	})
}

// Get returns the session's cart mapping
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(r)
	middleware.RespondWithJSON(w, http.StatusOK, sess.Cart())
}

// Add applies a quantity delta for one product to the session cart
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req CartRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Cart request validation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "missing pid or qty")
		return
	}

	sess := h.sessions.Get(r)

	cart, err := h.cartService.Add(r.Context(), sess.Cart(), req.ProductID, *req.Qty)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, repository.ErrInsufficientStock):
			middleware.RespondWithError(w, http.StatusBadRequest, "insufficient stock")
		default:
			h.logger.Error("Cart add failed", zap.String("product_id", req.ProductID), zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update cart")
		}
		return
	}

	sess.SetCart(cart)
	if err := sess.Save(w, r); err != nil {
		h.logger.Error("Failed to save session", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, cart)
}

// Clear empties the session cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(r)
	sess.ClearCart()
	if err := sess.Save(w, r); err != nil {
		h.logger.Error("Failed to save session", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]int{})
}
