package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"oraya/internal/domain"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductRepository defines the interface for inventory data access. The
// ForUpdate/Decrement pair runs inside the order transaction so that
// check-then-decrement is indivisible per product.
type ProductRepository interface {
	List(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	GetStock(ctx context.Context, id string) (int, error)
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (*domain.Product, error)
	DecrementStock(ctx context.Context, tx *sql.Tx, id string, qty int) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// List retrieves the full catalog ordered by product id
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, name, price, description, sku, image_url, stock
		FROM products
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
			&product.Description,
			&product.SKU,
			&product.ImageURL,
			&product.Stock,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, name, price, description, sku, image_url, stock
		FROM products
		WHERE id = $1
	`

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Description,
		&product.SKU,
		&product.ImageURL,
		&product.Stock,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// GetStock returns the current stock counter for a product
func (r *productRepository) GetStock(ctx context.Context, id string) (int, error) {
	query := `SELECT stock FROM products WHERE id = $1`

	var stock int
	err := r.db.QueryRowContext(ctx, query, id).Scan(&stock)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrProductNotFound
		}
		return 0, fmt.Errorf("failed to get stock: %w", err)
	}

	return stock, nil
}

// FindByIDForUpdate retrieves a product inside tx and takes a row lock on it.
// Concurrent order transactions touching the same product serialize here.
func (r *productRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (*domain.Product, error) {
	query := `
		SELECT id, name, price, description, sku, image_url, stock
		FROM products
		WHERE id = $1
		FOR UPDATE
	`

	product := &domain.Product{}
	err := tx.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Description,
		&product.SKU,
		&product.ImageURL,
		&product.Stock,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to lock product row: %w", err)
	}

	return product, nil
}

// DecrementStock subtracts qty from a product's stock inside tx. The guard in
// the WHERE clause keeps stock from ever going negative, even if the caller's
// check raced with another writer.
func (r *productRepository) DecrementStock(ctx context.Context, tx *sql.Tx, id string, qty int) error {
	query := `
		UPDATE products
		SET stock = stock - $2
		WHERE id = $1 AND stock >= $2
	`

	result, err := tx.ExecContext(ctx, query, id, qty)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrInsufficientStock
	}

	return nil
}
