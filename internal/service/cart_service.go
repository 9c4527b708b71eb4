package service

import (
	"context"

	"oraya/internal/domain"
	"oraya/internal/repository"

	"go.uber.org/zap"
)

// CartService defines the interface for cart mutations. The cart itself lives
// in the caller's session; this service only validates against inventory.
type CartService interface {
	Add(ctx context.Context, cart domain.Cart, pid string, delta int) (domain.Cart, error)
}

type cartService struct {
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

// NewCartService creates a new instance of CartService
func NewCartService(productRepo repository.ProductRepository, logger *zap.Logger) CartService {
	return &cartService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// Add applies delta to the cart quantity for pid after checking the requested
// cumulative quantity against current stock. The check is early feedback
// only; stock can still change before checkout, where it is re-validated
// authoritatively. The input cart is returned unchanged on error.
func (s *cartService) Add(ctx context.Context, cart domain.Cart, pid string, delta int) (domain.Cart, error) {
	stock, err := s.productRepo.GetStock(ctx, pid)
	if err != nil {
		return cart, err
	}

	requested := cart[pid] + delta
	if requested > stock {
		s.logger.Debug("cart add rejected, insufficient stock",
			zap.String("product_id", pid),
			zap.Int("requested", requested),
			zap.Int("available", stock),
		)
		return cart, repository.ErrInsufficientStock
	}

	updated := cart.Clone()
	updated.Add(pid, delta)
	return updated, nil
}
