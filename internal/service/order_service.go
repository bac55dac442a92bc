package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InvalidProductIDError reports a line item whose product reference is not a
// well-formed identifier
type InvalidProductIDError struct {
	ID string
}

func (e *InvalidProductIDError) Error() string {
	return fmt.Sprintf("invalid product ID: %s", e.ID)
}

// ProductNotFoundError reports a line item whose product reference is well
// formed but matches no stored product
type ProductNotFoundError struct {
	ID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ID)
}

// OrderLine is one requested (product, quantity) pair in an order
type OrderLine struct {
	ProductID string
	Qty       int
}

// OrderService defines the interface for order business logic
type OrderService interface {
	PlaceOrder(ctx context.Context, userID string, lines []OrderLine) (string, error)
	ListOrders(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, int64, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// PlaceOrder resolves every line against the product catalog, accumulates the
// order total, and inserts a single order document. Any invalid or missing
// product reference aborts the whole order before anything is written, so a
// failed order never persists partial state.
func (s *orderService) PlaceOrder(ctx context.Context, userID string, lines []OrderLine) (string, error) {
	var total float64
	items := make([]domain.OrderItem, 0, len(lines))

	for _, line := range lines {
		productID, err := primitive.ObjectIDFromHex(line.ProductID)
		if err != nil {
			return "", &InvalidProductIDError{ID: line.ProductID}
		}

		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return "", &ProductNotFoundError{ID: line.ProductID}
			}
			return "", fmt.Errorf("failed to resolve product %s: %w", line.ProductID, err)
		}

		total += product.Price * float64(line.Qty)

		items = append(items, domain.OrderItem{
			ProductDetails: domain.ProductDetails{
				Name: product.Name,
				ID:   line.ProductID,
			},
			Qty: line.Qty,
		})
	}

	order := &domain.Order{
		UserID:    userID,
		Items:     items,
		Total:     total,
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}

	return id, nil
}

// ListOrders returns a page of the user's orders and the total count
func (s *orderService) ListOrders(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, int64, error) {
	orders, total, err := s.orderRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, total, nil
}
