package repository

import (
	"context"
	"errors"

	"ZeeCrownAPI/internal/model"
)

type CartRepository struct {
	DB DB
}

func NewCartRepository(db DB) *CartRepository {
	return &CartRepository{DB: db}
}

// Lines returns the user's cart joined with current product name and price.
func (r *CartRepository) Lines(ctx context.Context, userID int64) ([]model.CartLine, error) {
	query := `
		SELECT ci.productid, p.name, p.price, p.imageurl, ci.quantity
		FROM cartitems ci
		JOIN products p ON p.productid = ci.productid
		WHERE ci.userid=$1 AND p.deleted_at IS NULL
		ORDER BY ci.cartitemid
	`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []model.CartLine
	for rows.Next() {
		var l model.CartLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.Price, &l.ImageURL, &l.Quantity); err != nil {
			return nil, err
		}
		l.Subtotal = l.Price * float64(l.Quantity)
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// Items returns the raw cart rows for a user, snapshot-shaped.
func (r *CartRepository) Items(ctx context.Context, userID int64) ([]model.CartItem, error) {
	query := `SELECT cartitemid, userid, productid, quantity FROM cartitems WHERE userid=$1 ORDER BY cartitemid`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var it model.CartItem
		if err := rows.Scan(&it.CartItemID, &it.UserID, &it.ProductID, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Upsert inserts a cart row or increments quantity for an existing (userid, productid).
func (r *CartRepository) Upsert(ctx context.Context, userID, productID int64, qty int) error {
	query := `
		INSERT INTO cartitems (userid, productid, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (userid, productid)
		DO UPDATE SET quantity = cartitems.quantity + EXCLUDED.quantity
	`
	_, err := r.DB.Exec(ctx, query, userID, productID, qty)
	return err
}

// SetQuantity sets the exact quantity for a cart row. A quantity below one
// removes the row; a zero-quantity row never exists.
func (r *CartRepository) SetQuantity(ctx context.Context, userID, productID int64, qty int) error {
	if qty < 1 {
		return r.Remove(ctx, userID, productID)
	}
	query := `UPDATE cartitems SET quantity=$1 WHERE userid=$2 AND productid=$3`
	tag, err := r.DB.Exec(ctx, query, qty, userID, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("cart item not found")
	}
	return nil
}

// Remove removes one product's row from the user's cart
func (r *CartRepository) Remove(ctx context.Context, userID, productID int64) error {
	query := `DELETE FROM cartitems WHERE userid=$1 AND productid=$2`
	_, err := r.DB.Exec(ctx, query, userID, productID)
	return err
}

// Clear removes all cart rows for a user
func (r *CartRepository) Clear(ctx context.Context, userID int64) error {
	query := `DELETE FROM cartitems WHERE userid=$1`
	_, err := r.DB.Exec(ctx, query, userID)
	return err
}

// DeleteProducts removes the given product rows from the user's cart. Used by
// the order commit step so only the lines that went into the order are removed.
func (r *CartRepository) DeleteProducts(ctx context.Context, userID int64, productIDs []int64) error {
	if len(productIDs) == 0 {
		return nil
	}
	query := `DELETE FROM cartitems WHERE userid=$1 AND productid = ANY($2)`
	_, err := r.DB.Exec(ctx, query, userID, productIDs)
	return err
}

// Replace clears the user's cart and inserts the given items in one pass.
func (r *CartRepository) Replace(ctx context.Context, userID int64, items []model.CartItem) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cartitems WHERE userid=$1`, userID); err != nil {
		return err
	}
	for _, it := range items {
		_, err := tx.Exec(ctx,
			`INSERT INTO cartitems (userid, productid, quantity) VALUES ($1, $2, $3)`,
			userID, it.ProductID, it.Quantity,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
