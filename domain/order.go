package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus enumerates the order lifecycle states.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// ValidStatus reports whether s is one of the known order statuses. Any
// valid status may follow any other; there is no transition graph.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// OrderLine is a frozen value copy of a cart line priced at checkout time.
// Later catalog changes never alter it.
type OrderLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Order is an immutable record of a completed checkout. Only Status (and
// UpdatedAt alongside it) ever changes after creation.
type Order struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"userId"`
	Lines           []OrderLine     `json:"lines"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress string          `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       *time.Time      `json:"updatedAt,omitempty"`
}

// OrderStore defines the append-only storage interface for orders.
type OrderStore interface {
	// Append stores the order under the next sequential ID and returns the
	// stored order. IDs are monotonic and unique under concurrent appends.
	Append(ctx context.Context, order Order) (Order, error)
	// Get returns the order only if it belongs to userID.
	Get(ctx context.Context, id, userID int64) (Order, error)
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
	// ListAll is unrestricted and intended for admin callers.
	ListAll(ctx context.Context) ([]Order, error)
	// UpdateStatus sets the order's status, rejecting values outside the
	// status enum with InvalidStatusError.
	UpdateStatus(ctx context.Context, id int64, status OrderStatus) (Order, error)
}
