package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	"oraya/internal/domain"
	"oraya/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlaceOrderTimeout bounds the order transaction. Expiry rolls back and
// surfaces as a store error; there are no automatic retries.
const PlaceOrderTimeout = 5 * time.Second

// TransactionManager begins database transactions. *sql.DB satisfies it.
type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// OrderService defines the interface for order business logic
type OrderService interface {
	PlaceOrder(ctx context.Context, customerName, address, phone string, cart domain.Cart) (uuid.UUID, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

type orderService struct {
	db          TransactionManager
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	logger      *zap.Logger
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(
	db TransactionManager,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	logger *zap.Logger,
) OrderService {
	return &orderService{
		db:          db,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

// PlaceOrder validates the cart against live stock, snapshots line items,
// decrements inventory and inserts the order record in a single transaction.
// Either every stock change and the order row persist together, or none do.
func (s *orderService) PlaceOrder(ctx context.Context, customerName, address, phone string, cart domain.Cart) (uuid.UUID, error) {
	if strings.TrimSpace(customerName) == "" {
		return uuid.Nil, NewValidationError("name", "name is required")
	}
	if strings.TrimSpace(address) == "" {
		return uuid.Nil, NewValidationError("address", "address is required")
	}
	if strings.TrimSpace(phone) == "" {
		return uuid.Nil, NewValidationError("phone", "phone is required")
	}
	if !domain.ValidPhone(phone) {
		return uuid.Nil, NewValidationError("phone", "invalid phone number")
	}
	if cart.IsEmpty() {
		return uuid.Nil, ErrEmptyCart
	}

	// Stable ascending lock order across concurrent checkouts avoids
	// deadlocks between transactions sharing products.
	pids := make([]string, 0, len(cart))
	for pid := range cart {
		pids = append(pids, pid)
	}
	sort.Strings(pids)

	txCtx, cancel := context.WithTimeout(ctx, PlaceOrderTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		s.logger.Error("failed to begin order transaction", zap.Error(err))
		return uuid.Nil, err
	}
	// Rollback is a no-op once the transaction has committed.
	defer tx.Rollback()

	var total int64
	items := make([]domain.LineItem, 0, len(pids))

	for _, pid := range pids {
		qty := cart[pid]

		product, err := s.productRepo.FindByIDForUpdate(txCtx, tx, pid)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				s.logger.Warn("order rejected, unknown product", zap.String("product_id", pid))
				return uuid.Nil, repository.ErrProductNotFound
			}
			s.logger.Error("failed to read product for order", zap.String("product_id", pid), zap.Error(err))
			return uuid.Nil, err
		}

		if product.Stock < qty {
			s.logger.Warn("order rejected, insufficient stock",
				zap.String("product_id", pid),
				zap.Int("requested", qty),
				zap.Int("available", product.Stock),
			)
			return uuid.Nil, repository.ErrInsufficientStock
		}

		if err := s.productRepo.DecrementStock(txCtx, tx, pid, qty); err != nil {
			s.logger.Error("failed to decrement stock", zap.String("product_id", pid), zap.Error(err))
			return uuid.Nil, err
		}

		items = append(items, domain.LineItem{
			ProductID: pid,
			Name:      product.Name,
			Quantity:  qty,
			UnitPrice: product.Price,
		})
		total += product.Price * int64(qty)
	}

	total += domain.DeliveryFee

	order := &domain.Order{
		ID:           uuid.New(),
		CustomerName: customerName,
		Address:      address,
		Phone:        phone,
		Items:        items,
		Total:        total,
		Status:       domain.OrderStatusPending,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.orderRepo.Insert(txCtx, tx, order); err != nil {
		s.logger.Error("failed to insert order", zap.String("order_id", order.ID.String()), zap.Error(err))
		return uuid.Nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit order transaction", zap.String("order_id", order.ID.String()), zap.Error(err))
		return uuid.Nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.Int("line_items", len(items)),
		zap.Int64("total", total),
	)

	return order.ID, nil
}

// ListOrders retrieves all orders, newest first
func (s *orderService) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orderRepo.List(ctx)
}

// UpdateStatus sets the status of an order. Any value from the closed set is
// accepted in any order; no transition sequence is enforced.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.logger.Info("order status updated",
		zap.String("order_id", id.String()),
		zap.String("status", status),
	)
	return nil
}

// DeleteOrder removes an order record
func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("order deleted", zap.String("order_id", id.String()))
	return nil
}
