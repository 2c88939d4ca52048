package services

import (
	"context"
	"errors"

	"ZeeCrownAPI/internal/model"
	"ZeeCrownAPI/internal/repository"
)

type CartService struct {
	Carts    *repository.CartRepository
	Products *repository.ProductRepository
}

func NewCartService(carts *repository.CartRepository, products *repository.ProductRepository) *CartService {
	return &CartService{Carts: carts, Products: products}
}

// Get returns the cart (items + total)
func (s *CartService) Get(ctx context.Context, userID int64) (*model.CartResponse, error) {
	lines, err := s.Carts.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}
	var total float64
	for _, l := range lines {
		total += l.Subtotal
	}
	if lines == nil {
		lines = []model.CartLine{}
	}
	return &model.CartResponse{Items: lines, Total: total}, nil
}

// Add inserts a product or increments its quantity
func (s *CartService) Add(ctx context.Context, userID, productID int64, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.Carts.Upsert(ctx, userID, productID, qty)
}

// Update sets the exact quantity; zero or less removes the row, a
// zero-quantity row never exists.
func (s *CartService) Update(ctx context.Context, userID, productID int64, qty int) error {
	return s.Carts.SetQuantity(ctx, userID, productID, qty)
}

// Remove removes one product from the cart
func (s *CartService) Remove(ctx context.Context, userID, productID int64) error {
	return s.Carts.Remove(ctx, userID, productID)
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, userID int64) error {
	return s.Carts.Clear(ctx, userID)
}
