// Package store provides storage implementations for the storefront.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"watchstore/domain"
)

// InMemoryCatalog is a thread-safe in-memory domain.CatalogStore.
type InMemoryCatalog struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

// NewInMemoryCatalog constructs an empty InMemoryCatalog.
func NewInMemoryCatalog() *InMemoryCatalog {
	return &InMemoryCatalog{
		products: make(map[string]domain.Product),
	}
}

// compile-time assertion that InMemoryCatalog implements domain.CatalogStore
var _ domain.CatalogStore = (*InMemoryCatalog)(nil)

func validateProduct(p domain.Product) error {
	if p.ID == "" {
		return domain.NewInvalidProductError("id", "cannot be empty", p.ID)
	}
	if p.Name == "" {
		return domain.NewInvalidProductError("name", "cannot be empty", p.Name)
	}
	if p.Price.IsNegative() {
		return domain.NewInvalidProductError("price", "must be non-negative", p.Price)
	}
	if p.Stock < 0 {
		return domain.NewInvalidProductError("stock", "must be non-negative", p.Stock)
	}
	return nil
}

func (s *InMemoryCatalog) Create(ctx context.Context, product domain.Product) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := validateProduct(product); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ID]; exists {
		return domain.NewDuplicateProductError(product.ID)
	}
	s.products[product.ID] = product
	return nil
}

func (s *InMemoryCatalog) Get(ctx context.Context, id string) (domain.Product, error) {
	select {
	case <-ctx.Done():
		return domain.Product{}, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, domain.NewProductNotFoundError(id)
	}
	return p, nil
}

// Update applies a partial patch: nil fields keep their prior value.
func (s *InMemoryCatalog) Update(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error) {
	select {
	case <-ctx.Done():
		return domain.Product{}, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, domain.NewProductNotFoundError(id)
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Images != nil {
		p.Images = *patch.Images
	}
	if patch.Brand != nil {
		p.Brand = *patch.Brand
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}

	if err := validateProduct(p); err != nil {
		return domain.Product{}, err
	}
	s.products[id] = p
	return p, nil
}

func (s *InMemoryCatalog) Delete(ctx context.Context, id string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return domain.NewProductNotFoundError(id)
	}
	delete(s.products, id)
	return nil
}

// List returns the filtered page plus the total match count before paging.
func (s *InMemoryCatalog) List(ctx context.Context, filter domain.ListFilter) ([]domain.Product, int, error) {
	select {
	case <-ctx.Done():
		return nil, 0, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	query := strings.ToLower(filter.Query)
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		if filter.Brand != "" && !strings.EqualFold(p.Brand, filter.Brand) {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		if filter.MinPrice != nil && p.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && p.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		out = append(out, p)
	}

	// map iteration order is random; pagination needs a stable order
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	total := len(out)
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * filter.PageSize
		if start >= total {
			return []domain.Product{}, total, nil
		}
		end := start + filter.PageSize
		if end > total {
			end = total
		}
		out = out[start:end]
	}
	return out, total, nil
}

// DecrementStock reduces one product's stock level in place.
func (s *InMemoryCatalog) DecrementStock(ctx context.Context, id string, amount int) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return 0, domain.NewProductNotFoundError(id)
	}
	if amount > p.Stock {
		return p.Stock, domain.NewInsufficientStockError(id, p.Name, p.Stock, amount)
	}
	p.Stock -= amount
	s.products[id] = p
	return p.Stock, nil
}

// Reserve checks and decrements stock for all lines under one lock. It
// either applies every decrement or none.
func (s *InMemoryCatalog) Reserve(ctx context.Context, lines []domain.CartLine) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range lines {
		p, ok := s.products[line.ProductID]
		if !ok {
			return domain.NewProductNotFoundError(line.ProductID)
		}
		if line.Quantity > p.Stock {
			return domain.NewInsufficientStockError(line.ProductID, p.Name, p.Stock, line.Quantity)
		}
	}
	for _, line := range lines {
		p := s.products[line.ProductID]
		p.Stock -= line.Quantity
		s.products[line.ProductID] = p
	}
	return nil
}

// Release returns previously reserved quantities to stock. Lines whose
// product has since been deleted are skipped.
func (s *InMemoryCatalog) Release(ctx context.Context, lines []domain.CartLine) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range lines {
		p, ok := s.products[line.ProductID]
		if !ok {
			continue
		}
		p.Stock += line.Quantity
		s.products[line.ProductID] = p
	}
	return nil
}
