package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"oraya/internal/domain"
	"oraya/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCatalogService struct {
	products []*domain.Product
	err      error
}

func (s *stubCatalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func newProductRouter(svc *stubCatalogService) chi.Router {
	r := chi.NewRouter()
	NewProductHandler(svc, zap.NewNop()).RegisterRoutes(r)
	return r
}

func TestProductHandler_List(t *testing.T) {
	router := newProductRouter(&stubCatalogService{products: []*domain.Product{
		{ID: "p1", Name: "Solaria", Price: 150, Stock: 10},
		{ID: "p5", Name: "Eclipsia", Price: 189, Stock: 10},
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var products []*domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 2)
	assert.Equal(t, "Solaria", products[0].Name)
	assert.Equal(t, int64(189), products[1].Price)
}

func TestProductHandler_Get(t *testing.T) {
	router := newProductRouter(&stubCatalogService{products: []*domain.Product{
		{ID: "p1", Name: "Solaria", Price: 150, Stock: 10},
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/products/p1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var product domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, "Solaria", product.Name)
}

func TestProductHandler_GetNotFound(t *testing.T) {
	router := newProductRouter(&stubCatalogService{})

	req := httptest.NewRequest(http.MethodGet, "/api/products/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductHandler_ListFailure(t *testing.T) {
	router := newProductRouter(&stubCatalogService{err: assert.AnError})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
