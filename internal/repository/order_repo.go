package repository

import (
	"context"
	"errors"
	"time"

	"ZeeCrownAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicateAttempt means an order for this attempt token already
	// exists; a retried commit must return that order, not create another.
	ErrDuplicateAttempt = errors.New("order already exists for attempt token")
)

type OrderRepository struct {
	DB DB
}

func NewOrderRepository(db DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// Insert creates the order row and returns its id. A unique violation on
// attempttoken maps to ErrDuplicateAttempt.
func (r *OrderRepository) Insert(ctx context.Context, o *model.Order) (int64, error) {
	query := `
		INSERT INTO orders (userid, shippingaddress, totalprice, status, paymentmethod, attempttoken, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING orderid
	`
	var id int64
	err := r.DB.QueryRow(ctx, query,
		o.UserID, o.ShippingAddress, o.TotalPrice, o.Status, o.PaymentMethod, o.AttemptToken, time.Now(),
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicateAttempt
		}
		return 0, err
	}
	return id, nil
}

// InsertItems writes one orderitems row per line. No surrounding transaction:
// a failure here leaves an order without its full item set, which the commit
// service reports for reconciliation instead of hiding.
func (r *OrderRepository) InsertItems(ctx context.Context, orderID int64, items []model.OrderItem) error {
	query := `
		INSERT INTO orderitems (orderid, productid, quantity, priceatpurchase)
		VALUES ($1, $2, $3, $4)
	`
	for _, it := range items {
		if _, err := r.DB.Exec(ctx, query, orderID, it.ProductID, it.Quantity, it.PriceAtPurchase); err != nil {
			return err
		}
	}
	return nil
}

// FindByToken returns the order committed under the given attempt token.
func (r *OrderRepository) FindByToken(ctx context.Context, token string) (*model.Order, error) {
	query := `
		SELECT orderid, userid, shippingaddress, totalprice, status, paymentmethod, attempttoken, created_at
		FROM orders WHERE attempttoken=$1
	`
	return r.scanOrder(r.DB.QueryRow(ctx, query, token))
}

// GetByID returns one order scoped to its owner.
func (r *OrderRepository) GetByID(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	query := `
		SELECT orderid, userid, shippingaddress, totalprice, status, paymentmethod, attempttoken, created_at
		FROM orders WHERE orderid=$1 AND userid=$2
	`
	return r.scanOrder(r.DB.QueryRow(ctx, query, orderID, userID))
}

// GetByUser returns the user's orders, newest first.
func (r *OrderRepository) GetByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	query := `
		SELECT orderid, userid, shippingaddress, totalprice, status, paymentmethod, attempttoken, created_at
		FROM orders WHERE userid=$1 ORDER BY orderid DESC
	`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		var created time.Time
		if err := rows.Scan(&o.OrderID, &o.UserID, &o.ShippingAddress, &o.TotalPrice, &o.Status, &o.PaymentMethod, &o.AttemptToken, &created); err != nil {
			return nil, err
		}
		o.CreatedAt = &created
		out = append(out, o)
	}
	return out, rows.Err()
}

// GetItems returns the line items of an order.
func (r *OrderRepository) GetItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	query := `
		SELECT orderitemid, orderid, productid, quantity, priceatpurchase
		FROM orderitems WHERE orderid=$1 ORDER BY orderitemid
	`
	rows, err := r.DB.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.OrderItemID, &it.OrderID, &it.ProductID, &it.Quantity, &it.PriceAtPurchase); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *OrderRepository) scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var created time.Time
	err := row.Scan(&o.OrderID, &o.UserID, &o.ShippingAddress, &o.TotalPrice, &o.Status, &o.PaymentMethod, &o.AttemptToken, &created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	o.CreatedAt = &created
	return &o, nil
}
