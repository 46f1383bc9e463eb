// Package domain defines the core business types and store contracts.
package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product represents a catalog product. Price and Stock are the source of
// truth at order time.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
}

// ProductPatch describes a partial update. Nil fields retain the prior value.
type ProductPatch struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	Images      *[]string        `json:"images"`
	Brand       *string          `json:"brand"`
	Category    *string          `json:"category"`
	Stock       *int             `json:"stock"`
}

// ListFilter narrows and paginates List results.
type ListFilter struct {
	Query    string // substring match on name or description
	Brand    string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Page     int // 1-based; 0 means first page
	PageSize int // 0 means no pagination
}

// CatalogStore defines the storage interface for products.
type CatalogStore interface {
	Create(ctx context.Context, product Product) error
	Get(ctx context.Context, id string) (Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) (Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]Product, int, error)
	// DecrementStock reduces a single product's stock, failing with
	// InsufficientStockError when amount exceeds the current level.
	DecrementStock(ctx context.Context, id string, amount int) (int, error)
	// Reserve decrements stock for every line or for none: the check and
	// the decrement happen under one lock, so a failed reservation leaves
	// every stock level untouched.
	Reserve(ctx context.Context, lines []CartLine) error
	// Release undoes a prior Reserve for the same lines.
	Release(ctx context.Context, lines []CartLine) error
}
