package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"storefront/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductFilter holds the optional predicates for listing products. A zero
// value matches every product.
type ProductFilter struct {
	// Name matches products whose name contains it as a case-insensitive
	// substring.
	Name string
	// Size matches products having at least one size with this exact label.
	Size string
}

// query translates the filter into a MongoDB predicate
func (f ProductFilter) query() bson.M {
	q := bson.M{}

	if f.Name != "" {
		q["name"] = primitive.Regex{
			Pattern: regexp.QuoteMeta(f.Name),
			Options: "i",
		}
	}

	if f.Size != "" {
		q["sizes.size"] = f.Size
	}

	return q
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (string, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*domain.Product, int64, error)
}

type productRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a new instance of ProductRepository backed by
// the products collection
func NewProductRepository(db *mongo.Database) ProductRepository {
	return &productRepository{collection: db.Collection("products")}
}

// Create inserts a new product and returns its generated identifier
func (r *productRepository) Create(ctx context.Context, product *domain.Product) (string, error) {
	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return "", fmt.Errorf("failed to create product: %w", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted ID type %T", result.InsertedID)
	}

	return id.Hex(), nil
}

// FindByID retrieves a product by its identifier
func (r *productRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	product := &domain.Product{}

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List retrieves a page of products matching the filter, sorted by creation
// order, along with the total match count
func (r *productRepository) List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*domain.Product, int64, error) {
	query := filter.query()

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	products := []*domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, total, nil
}
