package transport

import (
	"errors"
	"net/http"

	"oraya/internal/domain"
	"oraya/internal/middleware"
	"oraya/internal/repository"
	"oraya/internal/service"
	"oraya/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlaceOrderRequest represents the checkout payload
type PlaceOrderRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone" validate:"required,phone"`
}

// PlaceOrderResponse represents a successful checkout
type PlaceOrderResponse struct {
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// OrderHandler handles HTTP requests for checkout and order administration
type OrderHandler struct {
	orderService service.OrderService
	sessions     *session.Manager
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, sessions *session.Manager, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		sessions:     sessions,
		logger:       logger,
	}
}

// RegisterRoutes registers checkout (public) and admin order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", h.Place)

		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			r.Get("/", h.List)
			r.Put("/", h.UpdateStatus)
			r.Delete("/", h.Delete)
		})
	})
}

// Place runs the order transaction against the session cart and clears the
// cart only after the transaction has committed.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order request validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess := h.sessions.Get(r)

	orderID, err := h.orderService.PlaceOrder(r.Context(), req.Name, req.Address, req.Phone, sess.Cart())
	if err != nil {
		if ve, ok := service.AsValidationError(err); ok {
			middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
				{Field: ve.Field, Message: ve.Message},
			})
			return
		}

		switch {
		case errors.Is(err, service.ErrEmptyCart):
			middleware.RespondWithError(w, http.StatusBadRequest, "cart is empty")
		case errors.Is(err, repository.ErrProductNotFound),
			errors.Is(err, repository.ErrInsufficientStock):
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid product or insufficient stock")
		default:
			h.logger.Error("Order placement failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to place order")
		}
		return
	}

	sess.ClearCart()
	if err := sess.Save(w, r); err != nil {
		// The order is committed; a cart that fails to clear is not worth a
		// user-facing error.
		h.logger.Error("Failed to clear cart after order", zap.String("order_id", orderID.String()), zap.Error(err))
	}

	middleware.RespondWithJSON(w, http.StatusOK, PlaceOrderResponse{
		OrderID: orderID.String(),
		Message: "Order placed successfully",
	})
}

// List returns all orders, newest first
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListOrders(r.Context())
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// UpdateStatus sets the status of an order identified by query parameters
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	idParam := r.URL.Query().Get("id")
	status := r.URL.Query().Get("status")
	if idParam == "" || status == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing id or status")
		return
	}

	id, err := uuid.Parse(idParam)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if !domain.ValidOrderStatus(status) {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid status")
		return
	}

	if err := h.orderService.UpdateStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("Failed to update order", zap.String("order_id", idParam), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update order")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Delete removes an order identified by query parameter
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	idParam := r.URL.Query().Get("id")
	if idParam == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing id")
		return
	}

	id, err := uuid.Parse(idParam)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := h.orderService.DeleteOrder(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("Failed to delete order", zap.String("order_id", idParam), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete order")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
