package transport

import (
	"errors"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/pagination"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderItemRequest represents one requested line item
type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Qty       int    `json:"qty" validate:"gte=1"`
}

// CreateOrderRequest represents the order creation payload
type CreateOrderRequest struct {
	UserID string             `json:"userId" validate:"required"`
	// Items must be present but may be empty; an order with no lines is
	// stored with a zero total.
	Items []OrderItemRequest `json:"items" validate:"required,dive"`
}

// CreateOrderResponse carries the identifier of a created order
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// ProductDetailsView is the product snapshot inside an order line item
type ProductDetailsView struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// OrderItemView is the response shape of an order line item
type OrderItemView struct {
	ProductDetails ProductDetailsView `json:"productDetails"`
	Qty            int                `json:"qty"`
}

// OrderSummary is the listing view of an order
type OrderSummary struct {
	ID    string          `json:"id"`
	Items []OrderItemView `json:"items"`
	Total float64         `json:"total"`
}

// OrderListResponse represents a page of a user's orders
type OrderListResponse struct {
	Data []OrderSummary  `json:"data"`
	Page pagination.Page `json:"page"`
}

// OrderHandler handles HTTP requests for order operations
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/orders", h.Create)
	r.Get("/orders/{user_id}", h.ListByUser)
}

// Create handles order creation. Invalid product references map to 400,
// missing products to 404, everything else to 500.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order creation validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lines := make([]service.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, service.OrderLine{
			ProductID: item.ProductID,
			Qty:       item.Qty,
		})
	}

	id, err := h.orderService.PlaceOrder(r.Context(), req.UserID, lines)
	if err != nil {
		var invalidID *service.InvalidProductIDError
		if errors.As(err, &invalidID) {
			middleware.RespondWithError(w, http.StatusBadRequest, invalidID.Error())
			return
		}

		var notFound *service.ProductNotFoundError
		if errors.As(err, &notFound) {
			middleware.RespondWithError(w, http.StatusNotFound, notFound.Error())
			return
		}

		h.logger.Error("Order creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	h.logger.Info("Order created",
		zap.String("order_id", id),
		zap.String("user_id", req.UserID),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, CreateOrderResponse{ID: id})
}

// ListByUser handles listing a user's orders with pagination
func (h *OrderHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	limit, offset, validationErrors := parsePagination(r)
	if len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}

	userID := chi.URLParam(r, "user_id")

	orders, total, err := h.orderService.ListOrders(r.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error("Order listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	data := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		items := make([]OrderItemView, 0, len(o.Items))
		for _, item := range o.Items {
			items = append(items, OrderItemView{
				ProductDetails: ProductDetailsView{
					Name: item.ProductDetails.Name,
					ID:   item.ProductDetails.ID,
				},
				Qty: item.Qty,
			})
		}

		data = append(data, OrderSummary{
			ID:    o.ID.Hex(),
			Items: items,
			Total: o.Total,
		})
	}

	response := OrderListResponse{
		Data: data,
		Page: pagination.New(limit, offset, total),
	}

	middleware.RespondWithJSON(w, http.StatusOK, response)
}
