package service

import (
	"context"

	"oraya/internal/domain"
	"oraya/internal/repository"
)

// CatalogService defines the interface for reading the product catalog
type CatalogService interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

func (s *catalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}
