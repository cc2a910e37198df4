package domain

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusNotProcess OrderStatus = "Not Process"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// ValidStatuses is the closed set of order lifecycle labels, in display order.
var ValidStatuses = []OrderStatus{
	StatusNotProcess,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// StatusList renders the valid statuses, comma separated, for error
// messages enumerating the allowed set.
func StatusList() string {
	names := make([]string, len(ValidStatuses))
	for i, s := range ValidStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// IsValidStatus reports whether status is a case-sensitive exact match to
// a member of the enum. "delivered", "CANCELLED" and legacy misspellings
// like "deliverd" are all invalid; there is no normalization layer.
func IsValidStatus(status OrderStatus) bool {
	switch status {
	case StatusNotProcess, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// Order is the persisted record of a payment-authorized purchase.
// Products holds the cart's product ids captured at checkout; they are
// never re-validated against the catalog afterward and may dangle if a
// product is later deleted.
type Order struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Products  []primitive.ObjectID `bson:"products"`
	Buyer     primitive.ObjectID   `bson:"buyer"`
	Payment   PaymentResult        `bson:"payment"`
	Status    OrderStatus          `bson:"status"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

// OrderView is the read-side projection of an Order: product references
// resolved minus the binary photo payload, buyer reduced to display name.
type OrderView struct {
	ID        primitive.ObjectID `json:"_id"`
	Products  []Product          `json:"products"`
	Buyer     BuyerRef           `json:"buyer"`
	Payment   PaymentResult      `json:"payment"`
	Status    OrderStatus        `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
}

type BuyerRef struct {
	Name string `json:"name"`
}

// CartItem is one entry of the client-submitted cart at checkout. Only
// the id and price matter to the workflow; the client's other product
// fields are ignored.
type CartItem struct {
	ID    primitive.ObjectID `json:"_id"`
	Price float64            `json:"price"`
}

type OrderRepository interface {
	// Create persists a new order document and fills in its assigned id.
	Create(ctx context.Context, order *Order) error
	// ListByBuyer returns the buyer's orders, newest first.
	ListByBuyer(ctx context.Context, buyer primitive.ObjectID) ([]Order, error)
	// ListAll returns every order, newest first.
	ListAll(ctx context.Context) ([]Order, error)
	// UpdateStatus sets only the status field and returns the updated
	// document, or ErrOrderNotFound if no document matches id.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status OrderStatus) (*Order, error)
}

type OrderUseCase interface {
	Checkout(ctx context.Context, buyer primitive.ObjectID, nonce string, cart []CartItem) error
	ClientToken(ctx context.Context) (string, error)
	OrdersForBuyer(ctx context.Context, buyer primitive.ObjectID) ([]OrderView, error)
	AllOrders(ctx context.Context) ([]OrderView, error)
	TransitionStatus(ctx context.Context, orderID string, status OrderStatus) (*OrderView, error)
}
