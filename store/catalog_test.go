package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"watchstore/domain"
)

func newProduct(id, name, brand, category string, price string, stock int) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Brand:    brand,
		Category: category,
		Stock:    stock,
	}
}

func TestCatalogCreateGet(t *testing.T) {
	s := NewInMemoryCatalog()
	ctx := context.Background()

	p := newProduct("p1", "Seamaster", "Omega", "dive", "5200.00", 8)
	if err := s.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Create(ctx, p); !domain.IsDuplicateProductError(err) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	got, err := s.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Seamaster" || !got.Price.Equal(p.Price) {
		t.Fatalf("unexpected product: %+v", got)
	}

	if _, err := s.Get(ctx, "missing"); !domain.IsProductNotFoundError(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCatalogCreateValidation(t *testing.T) {
	s := NewInMemoryCatalog()
	ctx := context.Background()

	cases := []struct {
		name    string
		product domain.Product
	}{
		{"empty id", newProduct("", "X", "", "", "1.00", 1)},
		{"empty name", newProduct("p1", "", "", "", "1.00", 1)},
		{"negative price", newProduct("p1", "X", "", "", "-1.00", 1)},
		{"negative stock", newProduct("p1", "X", "", "", "1.00", -1)},
	}
	for _, tc := range cases {
		if err := s.Create(ctx, tc.product); !domain.IsInvalidProductError(err) {
			t.Errorf("%s: expected invalid product error, got %v", tc.name, err)
		}
	}
}

func TestCatalogPartialUpdate(t *testing.T) {
	s := NewInMemoryCatalog()
	ctx := context.Background()

	if err := s.Create(ctx, newProduct("p1", "Seamaster", "Omega", "dive", "5200.00", 8)); err != nil {
		t.Fatalf("create: %v", err)
	}

	newPrice := decimal.RequireFromString("4999.00")
	got, err := s.Update(ctx, "p1", domain.ProductPatch{Price: &newPrice})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !got.Price.Equal(newPrice) {
		t.Fatalf("price not updated: %s", got.Price)
	}
	// omitted fields retain their prior value
	if got.Name != "Seamaster" || got.Brand != "Omega" || got.Stock != 8 {
		t.Fatalf("omitted fields changed: %+v", got)
	}

	if _, err := s.Update(ctx, "missing", domain.ProductPatch{}); !domain.IsProductNotFoundError(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCatalogDelete(t *testing.T) {
	s := NewInMemoryCatalog()
	ctx := context.Background()

	if err := s.Create(ctx, newProduct("p1", "X", "", "", "1.00", 1)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Delete(ctx, "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "p1"); !domain.IsProductNotFoundError(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCatalogListFilters(t *testing.T) {
	s := NewInMemoryCatalog()
	ctx := context.Background()

	seed := []domain.Product{
		newProduct("p1", "Seamaster Diver", "Omega", "dive", "5200.00", 8),
		newProduct("p2", "Submariner", "Rolex", "dive", "10950.00", 3),
		newProduct("p3", "Tank Must", "Cartier", "dress", "2990.00", 12),
	}
	for _, p := range seed {
		if err := s.Create(ctx, p); err != nil {
			t.Fatalf("create %s: %v", p.ID, err)
		}
	}

	out, total, err := s.List(ctx, domain.ListFilter{Category: "dive"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(out) != 2 {
		t.Fatalf("expected 2 dive watches, got %d", total)
	}

	// brand and category filters ignore case
	out, _, err = s.List(ctx, domain.ListFilter{Brand: "ROLEX", Category: "Dive"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 || out[0].ID != "p2" {
		t.Fatalf("case-insensitive filter failed: %+v", out)
	}

	out, _, err = s.List(ctx, domain.ListFilter{Query: "submar"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 || out[0].ID != "p2" {
		t.Fatalf("substring filter failed: %+v", out)
	}

	max := decimal.RequireFromString("6000.00")
	out, _, err = s.List(ctx, domain.ListFilter{MaxPrice: &max})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("price filter failed: %+v", out)
	}

	out, total, err = s.List(ctx, domain.ListFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(out) != 1 {
		t.Fatalf("pagination failed: total=%d page=%d", total, len(out))
	}
}

func TestCatalogDecrementStock(t *testing.T) {
	s := NewInMemoryCatalog()
	ctx := context.Background()

	if err := s.Create(ctx, newProduct("p1", "X", "", "", "1.00", 5)); err != nil {
		t.Fatalf("create: %v", err)
	}

	left, err := s.DecrementStock(ctx, "p1", 2)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if left != 3 {
		t.Fatalf("expected stock 3, got %d", left)
	}

	if _, err := s.DecrementStock(ctx, "p1", 4); !domain.IsInsufficientStockError(err) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	got, _ := s.Get(ctx, "p1")
	if got.Stock != 3 {
		t.Fatalf("failed decrement mutated stock: %d", got.Stock)
	}
}

func TestCatalogReserveAllOrNothing(t *testing.T) {
	s := NewInMemoryCatalog()
	ctx := context.Background()

	if err := s.Create(ctx, newProduct("p1", "A", "", "", "1.00", 5)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Create(ctx, newProduct("p2", "B", "", "", "1.00", 1)); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := s.Reserve(ctx, []domain.CartLine{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 2},
	})
	if !domain.IsInsufficientStockError(err) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	// nothing was applied, p1 included
	a, _ := s.Get(ctx, "p1")
	b, _ := s.Get(ctx, "p2")
	if a.Stock != 5 || b.Stock != 1 {
		t.Fatalf("failed reserve mutated stock: a=%d b=%d", a.Stock, b.Stock)
	}

	lines := []domain.CartLine{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	}
	if err := s.Reserve(ctx, lines); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	a, _ = s.Get(ctx, "p1")
	b, _ = s.Get(ctx, "p2")
	if a.Stock != 3 || b.Stock != 0 {
		t.Fatalf("reserve not applied: a=%d b=%d", a.Stock, b.Stock)
	}

	if err := s.Release(ctx, lines); err != nil {
		t.Fatalf("release: %v", err)
	}
	a, _ = s.Get(ctx, "p1")
	if a.Stock != 5 {
		t.Fatalf("release not applied: %d", a.Stock)
	}
}

func TestCatalogReserveMissingProduct(t *testing.T) {
	s := NewInMemoryCatalog()
	ctx := context.Background()

	if err := s.Create(ctx, newProduct("p1", "A", "", "", "1.00", 5)); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := s.Reserve(ctx, []domain.CartLine{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "gone", Quantity: 1},
	})
	if !domain.IsProductNotFoundError(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	a, _ := s.Get(ctx, "p1")
	if a.Stock != 5 {
		t.Fatalf("failed reserve mutated stock: %d", a.Stock)
	}
}
