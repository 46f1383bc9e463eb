package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one product+quantity pairing in a cart. ProductID is a weak
// reference: the product may have been deleted since the line was added.
type CartLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Cart holds a user's pending lines. One cart per user, created lazily.
type Cart struct {
	UserID    int64      `json:"userId"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartViewLine is a cart line joined against the catalog for display.
type CartViewLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Image     string          `json:"image,omitempty"`
}

// CartView is the read model for a cart: lines whose product no longer
// exists are omitted rather than surfaced as errors.
type CartView struct {
	UserID    int64           `json:"userId"`
	Lines     []CartViewLine  `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CartStore defines the storage interface for carts.
type CartStore interface {
	// GetOrCreate returns the user's cart, creating an empty one on first
	// access. Creation is idempotent per user.
	GetOrCreate(ctx context.Context, userID int64) (Cart, error)
	// AddLine accumulates quantity onto an existing line for the product,
	// or appends a new line.
	AddLine(ctx context.Context, userID int64, productID string, quantity int) (Cart, error)
	// UpdateLine replaces the line's quantity; quantity <= 0 removes it.
	// Returns a LineNotFoundError when the product is not in the cart.
	UpdateLine(ctx context.Context, userID int64, productID string, quantity int) (Cart, error)
	// RemoveLine deletes the line if present, no-op otherwise.
	RemoveLine(ctx context.Context, userID int64, productID string) (Cart, error)
	// Clear empties the cart's lines, no-op if the cart is absent.
	Clear(ctx context.Context, userID int64) error
}
