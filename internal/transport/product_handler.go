package transport

import (
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/pagination"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SizeRequest represents one size entry in a product creation payload
type SizeRequest struct {
	Size     string `json:"size" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// CreateProductRequest represents the product creation payload
type CreateProductRequest struct {
	Name  string        `json:"name" validate:"required"`
	Price float64       `json:"price" validate:"gte=0"`
	Sizes []SizeRequest `json:"sizes" validate:"dive"`
}

// CreateProductResponse carries the identifier of a created product
type CreateProductResponse struct {
	ID string `json:"id"`
}

// ProductSummary is the listing view of a product. Sizes are intentionally
// omitted from list responses.
type ProductSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ProductListResponse represents a page of products
type ProductListResponse struct {
	Data []ProductSummary `json:"data"`
	Page pagination.Page  `json:"page"`
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalogService service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Post("/products", h.Create)
	r.Get("/products", h.List)
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product creation validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		// JSON decode error
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sizes := make([]domain.Size, 0, len(req.Sizes))
	for _, s := range req.Sizes {
		sizes = append(sizes, domain.Size{Size: s.Size, Quantity: s.Quantity})
	}

	product := &domain.Product{
		Name:  req.Name,
		Price: req.Price,
		Sizes: sizes,
	}

	id, err := h.catalogService.CreateProduct(r.Context(), product)
	if err != nil {
		h.logger.Error("Product creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.String("product_id", id))
	middleware.RespondWithJSON(w, http.StatusCreated, CreateProductResponse{ID: id})
}

// List handles product listing with optional name/size filters and pagination
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, validationErrors := parsePagination(r)
	if len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}

	filter := repository.ProductFilter{
		Name: r.URL.Query().Get("name"),
		Size: r.URL.Query().Get("size"),
	}

	products, total, err := h.catalogService.ListProducts(r.Context(), filter, limit, offset)
	if err != nil {
		h.logger.Error("Product listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	data := make([]ProductSummary, 0, len(products))
	for _, p := range products {
		data = append(data, ProductSummary{
			ID:    p.ID.Hex(),
			Name:  p.Name,
			Price: p.Price,
		})
	}

	response := ProductListResponse{
		Data: data,
		Page: pagination.New(limit, offset, total),
	}

	middleware.RespondWithJSON(w, http.StatusOK, response)
}
