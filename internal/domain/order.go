package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order represents a user's purchase record. Line items carry a denormalized
// snapshot of the product taken at creation time, so later product edits do
// not affect existing orders.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	Items     []OrderItem        `bson:"items" json:"items"`
	Total     float64            `bson:"total" json:"total"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// OrderItem is a single line item within an order
type OrderItem struct {
	ProductDetails ProductDetails `bson:"productDetails" json:"productDetails"`
	Qty            int            `bson:"qty" json:"qty"`
}

// ProductDetails is the product snapshot embedded in an order line item
type ProductDetails struct {
	Name string `bson:"name" json:"name"`
	ID   string `bson:"id" json:"id"`
}
