package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// LineItem references a menu item by id; the price is snapshotted when the
// item enters the cart so an admin price edit cannot change an order mid-session.
type LineItem struct {
	MenuItemID primitive.ObjectID `bson:"menuItem" json:"menuItemId"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Price      float64            `bson:"price" json:"price"`
}

// Order doubles as the cart: a user's current cart is their single order
// with status "pending".
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Items     []LineItem         `bson:"items" json:"items"`
	Total     float64            `bson:"total" json:"total"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// PopulatedItem is a line item joined against the menu catalog for display.
type PopulatedItem struct {
	MenuItem MenuItem `json:"menuItem"`
	Quantity int      `json:"quantity"`
	Price    float64  `json:"price"`
}

type PopulatedOrder struct {
	ID     string          `json:"id,omitempty"`
	Items  []PopulatedItem `json:"items"`
	Total  float64         `json:"total"`
	Status string          `json:"status,omitempty"`
}

// EmptyCart is the shape clients receive when no pending order exists.
func EmptyCart() *PopulatedOrder {
	return &PopulatedOrder{Items: []PopulatedItem{}, Total: 0}
}
