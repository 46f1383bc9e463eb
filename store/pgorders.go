package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "github.com/lib/pq"

	"watchstore/domain"
)

// PGOrders persists orders to PostgreSQL. Line items are stored as a JSONB
// value copy, matching their frozen-snapshot semantics.
type PGOrders struct {
	db *sql.DB
}

const pgOrdersSchema = `CREATE TABLE IF NOT EXISTS orders (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL,
	lines JSONB NOT NULL,
	total_amount NUMERIC(12,2) NOT NULL,
	status TEXT NOT NULL,
	shipping_address TEXT NOT NULL,
	payment_method TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ
)`

// NewPGOrders opens a Postgres-backed order store and ensures its table
// exists.
func NewPGOrders(databaseURL string) (*PGOrders, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(pgOrdersSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &PGOrders{db: db}, nil
}

// compile-time assertion that PGOrders implements domain.OrderStore
var _ domain.OrderStore = (*PGOrders)(nil)

// Close releases the underlying connection pool.
func (s *PGOrders) Close() error {
	return s.db.Close()
}

// Append inserts the order, letting the sequence assign its ID.
func (s *PGOrders) Append(ctx context.Context, order domain.Order) (domain.Order, error) {
	lines, err := json.Marshal(order.Lines)
	if err != nil {
		return domain.Order{}, err
	}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO orders (user_id, lines, total_amount, status, shipping_address, payment_method, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		order.UserID, lines, order.TotalAmount, string(order.Status),
		order.ShippingAddress, order.PaymentMethod, order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (s *PGOrders) Get(ctx context.Context, id, userID int64) (domain.Order, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, lines, total_amount, status, shipping_address, payment_method, created_at, updated_at
		 FROM orders WHERE id = $1 AND user_id = $2`, id, userID)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, domain.NewOrderNotFoundError(id)
	}
	return o, err
}

func (s *PGOrders) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, lines, total_amount, status, shipping_address, payment_method, created_at, updated_at
		 FROM orders WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (s *PGOrders) ListAll(ctx context.Context) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, lines, total_amount, status, shipping_address, payment_method, created_at, updated_at
		 FROM orders ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (s *PGOrders) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error) {
	if !domain.ValidStatus(status) {
		return domain.Order{}, domain.NewInvalidStatusError(status)
	}
	row := s.db.QueryRowContext(ctx,
		`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1
		 RETURNING id, user_id, lines, total_amount, status, shipping_address, payment_method, created_at, updated_at`,
		id, string(status), time.Now())
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, domain.NewOrderNotFoundError(id)
	}
	return o, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		o       domain.Order
		lines   []byte
		status  string
		updated sql.NullTime
	)
	if err := row.Scan(&o.ID, &o.UserID, &lines, &o.TotalAmount, &status,
		&o.ShippingAddress, &o.PaymentMethod, &o.CreatedAt, &updated); err != nil {
		return domain.Order{}, err
	}
	if err := json.Unmarshal(lines, &o.Lines); err != nil {
		return domain.Order{}, err
	}
	o.Status = domain.OrderStatus(status)
	if updated.Valid {
		t := updated.Time
		o.UpdatedAt = &t
	}
	return o, nil
}

func collectOrders(rows *sql.Rows) ([]domain.Order, error) {
	defer rows.Close()
	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
