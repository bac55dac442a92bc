package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mock repositories for testing
type mockProductRepository struct {
	products map[primitive.ObjectID]*domain.Product
	failWith error
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[primitive.ObjectID]*domain.Product),
	}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) (string, error) {
	if m.failWith != nil {
		return "", m.failWith
	}
	product.ID = primitive.NewObjectID()
	m.products[product.ID] = product
	return product.ID.Hex(), nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*domain.Product, int64, error) {
	if m.failWith != nil {
		return nil, 0, m.failWith
	}
	products := make([]*domain.Product, 0, len(m.products))
	for _, p := range m.products {
		products = append(products, p)
	}
	return products, int64(len(products)), nil
}

type mockOrderRepository struct {
	orders   []*domain.Order
	failWith error
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{}
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) (string, error) {
	if m.failWith != nil {
		return "", m.failWith
	}
	order.ID = primitive.NewObjectID()
	m.orders = append(m.orders, order)
	return order.ID.Hex(), nil
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, int64, error) {
	if m.failWith != nil {
		return nil, 0, m.failWith
	}
	matching := []*domain.Order{}
	for _, o := range m.orders {
		if o.UserID == userID {
			matching = append(matching, o)
		}
	}
	total := int64(len(matching))
	if offset > len(matching) {
		return []*domain.Order{}, total, nil
	}
	matching = matching[offset:]
	if limit < len(matching) {
		matching = matching[:limit]
	}
	return matching, total, nil
}

func seedProduct(repo *mockProductRepository, name string, price float64) string {
	id, _ := repo.Create(context.Background(), &domain.Product{
		Name:  name,
		Price: price,
		Sizes: []domain.Size{{Size: "M", Quantity: 5}},
	})
	return id
}

func TestProperty_OrderTotalIsSumOfLineTotals(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("the stored total equals the sum of price*qty over all lines", prop.ForAll(
		func(prices []float64, qtys []int) bool {
			productRepo := newMockProductRepository()
			orderRepo := newMockOrderRepository()
			service := NewOrderService(orderRepo, productRepo)
			ctx := context.Background()

			n := len(prices)
			if len(qtys) < n {
				n = len(qtys)
			}
			if n == 0 {
				return true
			}

			var want float64
			lines := make([]OrderLine, 0, n)
			for i := 0; i < n; i++ {
				id := seedProduct(productRepo, "item", prices[i])
				lines = append(lines, OrderLine{ProductID: id, Qty: qtys[i]})
				want += prices[i] * float64(qtys[i])
			}

			if _, err := service.PlaceOrder(ctx, "u1", lines); err != nil {
				return false
			}

			got := orderRepo.orders[0].Total
			return math.Abs(got-want) < 1e-9
		},
		gen.SliceOf(gen.Float64Range(0, 500)),
		gen.SliceOf(gen.IntRange(1, 20)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestPlaceOrderBuildsDenormalizedSnapshot(t *testing.T) {
	productRepo := newMockProductRepository()
	orderRepo := newMockOrderRepository()
	service := NewOrderService(orderRepo, productRepo)
	ctx := context.Background()

	productID := seedProduct(productRepo, "Tee", 20.0)

	id, err := service.PlaceOrder(ctx, "u1", []OrderLine{{ProductID: productID, Qty: 2}})
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a non-empty order id")
	}

	order := orderRepo.orders[0]
	if order.Total != 40.0 {
		t.Errorf("total = %v, want 40.0", order.Total)
	}
	if len(order.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(order.Items))
	}

	item := order.Items[0]
	if item.ProductDetails.ID != productID {
		t.Errorf("productDetails.id = %q, want %q", item.ProductDetails.ID, productID)
	}
	if item.ProductDetails.Name != "Tee" {
		t.Errorf("productDetails.name = %q, want %q", item.ProductDetails.Name, "Tee")
	}
	if item.Qty != 2 {
		t.Errorf("qty = %d, want 2", item.Qty)
	}
	if order.CreatedAt.IsZero() {
		t.Error("createdAt was not set")
	}

	// A later product edit must not leak into the stored order
	oid, _ := primitive.ObjectIDFromHex(productID)
	productRepo.products[oid].Name = "Renamed Tee"
	if orderRepo.orders[0].Items[0].ProductDetails.Name != "Tee" {
		t.Error("order item snapshot changed after product edit")
	}
}

func TestPlaceOrderWithNoLinesPersistsZeroTotal(t *testing.T) {
	productRepo := newMockProductRepository()
	orderRepo := newMockOrderRepository()
	service := NewOrderService(orderRepo, productRepo)

	id, err := service.PlaceOrder(context.Background(), "u1", nil)
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a non-empty order id")
	}

	order := orderRepo.orders[0]
	if order.Total != 0 {
		t.Errorf("total = %v, want 0", order.Total)
	}
	if len(order.Items) != 0 {
		t.Errorf("items = %+v, want none", order.Items)
	}
	if order.Items == nil {
		t.Error("items should be stored as an empty list, not null")
	}
}

func TestPlaceOrderRejectsMalformedProductID(t *testing.T) {
	productRepo := newMockProductRepository()
	orderRepo := newMockOrderRepository()
	service := NewOrderService(orderRepo, productRepo)
	ctx := context.Background()

	goodID := seedProduct(productRepo, "Tee", 20.0)

	_, err := service.PlaceOrder(ctx, "u1", []OrderLine{
		{ProductID: goodID, Qty: 1},
		{ProductID: "not-a-hex-id", Qty: 1},
	})

	var invalidID *InvalidProductIDError
	if !errors.As(err, &invalidID) {
		t.Fatalf("expected InvalidProductIDError, got %v", err)
	}
	if invalidID.ID != "not-a-hex-id" {
		t.Errorf("error cites %q, want %q", invalidID.ID, "not-a-hex-id")
	}
	if len(orderRepo.orders) != 0 {
		t.Errorf("expected zero persisted orders, got %d", len(orderRepo.orders))
	}
}

func TestPlaceOrderRejectsMissingProduct(t *testing.T) {
	productRepo := newMockProductRepository()
	orderRepo := newMockOrderRepository()
	service := NewOrderService(orderRepo, productRepo)
	ctx := context.Background()

	missingID := primitive.NewObjectID().Hex()

	_, err := service.PlaceOrder(ctx, "u1", []OrderLine{{ProductID: missingID, Qty: 1}})

	var notFound *ProductNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ProductNotFoundError, got %v", err)
	}
	if notFound.ID != missingID {
		t.Errorf("error cites %q, want %q", notFound.ID, missingID)
	}
	if len(orderRepo.orders) != 0 {
		t.Errorf("expected zero persisted orders, got %d", len(orderRepo.orders))
	}
}

func TestPlaceOrderWrapsStoreErrors(t *testing.T) {
	productRepo := newMockProductRepository()
	orderRepo := newMockOrderRepository()
	service := NewOrderService(orderRepo, productRepo)
	ctx := context.Background()

	storeErr := errors.New("connection reset")
	productRepo.failWith = storeErr

	_, err := service.PlaceOrder(ctx, "u1", []OrderLine{{ProductID: primitive.NewObjectID().Hex(), Qty: 1}})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected the store error to be wrapped, got %v", err)
	}

	var invalidID *InvalidProductIDError
	var notFound *ProductNotFoundError
	if errors.As(err, &invalidID) || errors.As(err, &notFound) {
		t.Error("store errors must not surface as client errors")
	}
}

func TestListOrdersPassesThroughRepository(t *testing.T) {
	productRepo := newMockProductRepository()
	orderRepo := newMockOrderRepository()
	service := NewOrderService(orderRepo, productRepo)
	ctx := context.Background()

	productID := seedProduct(productRepo, "Tee", 10.0)
	for i := 0; i < 3; i++ {
		if _, err := service.PlaceOrder(ctx, "u1", []OrderLine{{ProductID: productID, Qty: 1}}); err != nil {
			t.Fatalf("PlaceOrder failed: %v", err)
		}
	}
	if _, err := service.PlaceOrder(ctx, "u2", []OrderLine{{ProductID: productID, Qty: 1}}); err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	orders, total, err := service.ListOrders(ctx, "u1", 2, 0)
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(orders) != 2 {
		t.Errorf("page size = %d, want 2", len(orders))
	}
	for _, o := range orders {
		if o.UserID != "u1" {
			t.Errorf("order for user %q leaked into u1's listing", o.UserID)
		}
	}
}
