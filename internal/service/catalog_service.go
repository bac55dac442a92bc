package service

import (
	"context"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// CatalogService defines the interface for product business logic
type CatalogService interface {
	CreateProduct(ctx context.Context, product *domain.Product) (string, error)
	ListProducts(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*domain.Product, int64, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

// CreateProduct stores a new product and returns its identifier. Duplicate
// names are allowed.
func (s *catalogService) CreateProduct(ctx context.Context, product *domain.Product) (string, error) {
	if product.Sizes == nil {
		product.Sizes = []domain.Size{}
	}

	id, err := s.productRepo.Create(ctx, product)
	if err != nil {
		return "", fmt.Errorf("failed to create product: %w", err)
	}

	return id, nil
}

// ListProducts returns a page of products matching the filter and the total
// match count
func (s *catalogService) ListProducts(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*domain.Product, int64, error) {
	products, total, err := s.productRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return products, total, nil
}
