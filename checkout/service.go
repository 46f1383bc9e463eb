// Package checkout implements the cart → order transition: the one piece of
// the storefront that must behave atomically from the client's point of
// view.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"watchstore/domain"
)

// Service runs checkouts against the three backing stores. A single mutex
// serializes the validate+commit sequence, so two concurrent checkouts can
// never both pass the stock check for the same units.
type Service struct {
	catalog domain.CatalogStore
	carts   domain.CartStore
	orders  domain.OrderStore

	mu     sync.Mutex
	now    func() time.Time
	tracer trace.Tracer
}

// NewService constructs a checkout Service over the given stores.
func NewService(catalog domain.CatalogStore, carts domain.CartStore, orders domain.OrderStore) *Service {
	return &Service{
		catalog: catalog,
		carts:   carts,
		orders:  orders,
		now:     time.Now,
		tracer:  otel.Tracer("watchstore/checkout"),
	}
}

// Checkout converts the user's cart into an order: it validates every line
// against the catalog, snapshots current prices into frozen order lines,
// reserves stock, appends the order, and clears the cart. Any failure
// leaves catalog, cart, and order store untouched.
func (s *Service) Checkout(ctx context.Context, userID int64, shippingAddress, paymentMethod string) (domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "checkout",
		trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.Order{}, s.fail(span, err)
	}
	if len(cart.Lines) == 0 {
		return domain.Order{}, s.fail(span, domain.NewEmptyCartError(userID))
	}
	span.SetAttributes(attribute.Int("cart.lines", len(cart.Lines)))

	// Validate and price every line before mutating anything. The whole
	// operation aborts on the first missing or under-stocked product.
	lines := make([]domain.OrderLine, 0, len(cart.Lines))
	total := decimal.Zero
	for _, line := range cart.Lines {
		p, err := s.catalog.Get(ctx, line.ProductID)
		if err != nil {
			return domain.Order{}, s.fail(span, err)
		}
		if line.Quantity > p.Stock {
			return domain.Order{}, s.fail(span,
				domain.NewInsufficientStockError(p.ID, p.Name, p.Stock, line.Quantity))
		}
		subtotal := p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		lines = append(lines, domain.OrderLine{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  line.Quantity,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}

	order := domain.Order{
		UserID:          userID,
		Lines:           lines,
		TotalAmount:     total,
		Status:          domain.StatusPending,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		CreatedAt:       s.now(),
	}

	// Commit. Reserve re-checks stock under the catalog's own lock, so a
	// stock mutation that slipped in through a non-checkout path (an admin
	// update) still cannot drive stock negative: the reservation fails
	// whole and nothing has been written.
	if err := s.catalog.Reserve(ctx, cart.Lines); err != nil {
		return domain.Order{}, s.fail(span, err)
	}
	stored, err := s.orders.Append(ctx, order)
	if err != nil {
		if rerr := s.catalog.Release(ctx, cart.Lines); rerr != nil {
			slog.Error("stock release after failed append", "user_id", userID, "error", rerr)
		}
		return domain.Order{}, s.fail(span, fmt.Errorf("append order: %w", err))
	}
	if err := s.carts.Clear(ctx, userID); err != nil {
		slog.Error("cart clear after checkout", "user_id", userID, "order_id", stored.ID, "error", err)
	}

	span.SetAttributes(attribute.Int64("order.id", stored.ID))
	span.SetStatus(codes.Ok, "")
	slog.Info("checkout complete",
		"user_id", userID, "order_id", stored.ID,
		"lines", len(stored.Lines), "total", stored.TotalAmount.String())
	return stored, nil
}

// CartView joins the user's cart against the catalog for display. Lines
// whose product no longer exists are silently hidden, not errors.
func (s *Service) CartView(ctx context.Context, userID int64) (domain.CartView, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.CartView{}, err
	}

	view := domain.CartView{
		UserID:    cart.UserID,
		Lines:     []domain.CartViewLine{},
		Total:     decimal.Zero,
		UpdatedAt: cart.UpdatedAt,
	}
	for _, line := range cart.Lines {
		p, err := s.catalog.Get(ctx, line.ProductID)
		if err != nil {
			if domain.IsProductNotFoundError(err) {
				continue
			}
			return domain.CartView{}, err
		}
		subtotal := p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		vl := domain.CartViewLine{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  line.Quantity,
			Subtotal:  subtotal,
		}
		if len(p.Images) > 0 {
			vl.Image = p.Images[0]
		}
		view.Lines = append(view.Lines, vl)
		view.Total = view.Total.Add(subtotal)
	}
	return view, nil
}

func (s *Service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
