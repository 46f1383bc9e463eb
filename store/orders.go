package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"watchstore/domain"
)

// InMemoryOrders provides safe concurrent access to orders. Orders are
// append-only; only the status field is ever mutated.
type InMemoryOrders struct {
	mu     sync.Mutex
	orders map[int64]domain.Order
	nextID int64
	now    func() time.Time
}

// NewInMemoryOrders returns an initialized InMemoryOrders.
func NewInMemoryOrders() *InMemoryOrders {
	return &InMemoryOrders{
		orders: make(map[int64]domain.Order),
		nextID: 1,
		now:    time.Now,
	}
}

// compile-time assertion that InMemoryOrders implements domain.OrderStore
var _ domain.OrderStore = (*InMemoryOrders)(nil)

// Append stores the order under the next sequential ID. ID assignment
// happens under the lock, so IDs stay monotonic and unique regardless of
// caller interleaving.
func (s *InMemoryOrders) Append(ctx context.Context, order domain.Order) (domain.Order, error) {
	select {
	case <-ctx.Done():
		return domain.Order{}, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = s.nextID
	s.nextID++
	s.orders[order.ID] = order
	return order, nil
}

// Get returns the order only when it belongs to userID; a foreign order is
// indistinguishable from an absent one.
func (s *InMemoryOrders) Get(ctx context.Context, id, userID int64) (domain.Order, error) {
	select {
	case <-ctx.Done():
		return domain.Order{}, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok || o.UserID != userID {
		return domain.Order{}, domain.NewOrderNotFoundError(id)
	}
	return o, nil
}

func (s *InMemoryOrders) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryOrders) ListAll(ctx context.Context) ([]domain.Order, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateStatus sets the order's status. Any valid status may follow any
// other; only enum membership is checked.
func (s *InMemoryOrders) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error) {
	select {
	case <-ctx.Done():
		return domain.Order{}, ctx.Err()
	default:
	}

	if !domain.ValidStatus(status) {
		return domain.Order{}, domain.NewInvalidStatusError(status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return domain.Order{}, domain.NewOrderNotFoundError(id)
	}
	o.Status = status
	updated := s.now()
	o.UpdatedAt = &updated
	s.orders[id] = o
	return o, nil
}
