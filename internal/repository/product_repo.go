package repository

import (
	"context"
	"errors"

	"ZeeCrownAPI/internal/model"

	"github.com/jackc/pgx/v5"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository struct {
	DB DB
}

func NewProductRepository(db DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) GetByID(ctx context.Context, productID int64) (*model.Product, error) {
	query := `SELECT productid, name, price, imageurl, category FROM products WHERE productid=$1 AND deleted_at IS NULL`
	var p model.Product
	err := r.DB.QueryRow(ctx, query, productID).Scan(&p.ProductID, &p.Name, &p.Price, &p.ImageURL, &p.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}
