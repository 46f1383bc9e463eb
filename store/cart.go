package store

import (
	"context"
	"sync"
	"time"

	"watchstore/domain"
)

// InMemoryCarts is a thread-safe in-memory domain.CartStore holding one
// cart per user.
type InMemoryCarts struct {
	mu    sync.Mutex
	carts map[int64]domain.Cart
	now   func() time.Time
}

// NewInMemoryCarts constructs an empty InMemoryCarts.
func NewInMemoryCarts() *InMemoryCarts {
	return &InMemoryCarts{
		carts: make(map[int64]domain.Cart),
		now:   time.Now,
	}
}

// compile-time assertion that InMemoryCarts implements domain.CartStore
var _ domain.CartStore = (*InMemoryCarts)(nil)

// getOrCreateLocked must be called with mu held.
func (s *InMemoryCarts) getOrCreateLocked(userID int64) domain.Cart {
	c, ok := s.carts[userID]
	if !ok {
		c = domain.Cart{UserID: userID, Lines: []domain.CartLine{}, UpdatedAt: s.now()}
		s.carts[userID] = c
	}
	return c
}

func (s *InMemoryCarts) GetOrCreate(ctx context.Context, userID int64) (domain.Cart, error) {
	select {
	case <-ctx.Done():
		return domain.Cart{}, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCart(s.getOrCreateLocked(userID)), nil
}

// AddLine merges quantity into an existing line for the product or appends
// a new line. Quantity validation is the caller's job.
func (s *InMemoryCarts) AddLine(ctx context.Context, userID int64, productID string, quantity int) (domain.Cart, error) {
	select {
	case <-ctx.Done():
		return domain.Cart{}, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getOrCreateLocked(userID)
	merged := false
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		c.Lines = append(c.Lines, domain.CartLine{ProductID: productID, Quantity: quantity})
	}
	c.UpdatedAt = s.now()
	s.carts[userID] = c
	return copyCart(c), nil
}

// UpdateLine replaces the line's quantity; quantity <= 0 removes the line.
// The product must already be in the cart, otherwise a LineNotFoundError is
// returned and the cart is left unchanged.
func (s *InMemoryCarts) UpdateLine(ctx context.Context, userID int64, productID string, quantity int) (domain.Cart, error) {
	select {
	case <-ctx.Done():
		return domain.Cart{}, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getOrCreateLocked(userID)
	found := false
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			found = true
			break
		}
	}
	if !found {
		return domain.Cart{}, domain.NewLineNotFoundError(userID, productID)
	}
	if quantity <= 0 {
		c.Lines = dropLine(c.Lines, productID)
	} else {
		for i := range c.Lines {
			if c.Lines[i].ProductID == productID {
				c.Lines[i].Quantity = quantity
				break
			}
		}
	}
	c.UpdatedAt = s.now()
	s.carts[userID] = c
	return copyCart(c), nil
}

func (s *InMemoryCarts) RemoveLine(ctx context.Context, userID int64, productID string) (domain.Cart, error) {
	select {
	case <-ctx.Done():
		return domain.Cart{}, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getOrCreateLocked(userID)
	c.Lines = dropLine(c.Lines, productID)
	c.UpdatedAt = s.now()
	s.carts[userID] = c
	return copyCart(c), nil
}

func (s *InMemoryCarts) Clear(ctx context.Context, userID int64) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		return nil
	}
	c.Lines = []domain.CartLine{}
	c.UpdatedAt = s.now()
	s.carts[userID] = c
	return nil
}

func dropLine(lines []domain.CartLine, productID string) []domain.CartLine {
	out := lines[:0]
	for _, l := range lines {
		if l.ProductID != productID {
			out = append(out, l)
		}
	}
	return out
}

// copyCart returns a cart whose line slice is detached from store-owned
// memory.
func copyCart(c domain.Cart) domain.Cart {
	lines := make([]domain.CartLine, len(c.Lines))
	copy(lines, c.Lines)
	c.Lines = lines
	return c
}
