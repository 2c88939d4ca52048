package services

import (
	"context"

	"ZeeCrownAPI/internal/model"
)

// Store interfaces consumed by the checkout services. The pgx repositories
// satisfy them in production; tests hand in mocks.

type CartStore interface {
	Lines(ctx context.Context, userID int64) ([]model.CartLine, error)
	Items(ctx context.Context, userID int64) ([]model.CartItem, error)
	Replace(ctx context.Context, userID int64, items []model.CartItem) error
	Clear(ctx context.Context, userID int64) error
	DeleteProducts(ctx context.Context, userID int64, productIDs []int64) error
}

type AddressStore interface {
	GetByID(ctx context.Context, userID, addressID int64) (*model.Address, error)
}

type ProductStore interface {
	GetByID(ctx context.Context, productID int64) (*model.Product, error)
}

type ShippingRuleStore interface {
	ActiveRules(ctx context.Context) ([]model.ShippingRule, error)
}

type OrderStore interface {
	Insert(ctx context.Context, o *model.Order) (int64, error)
	InsertItems(ctx context.Context, orderID int64, items []model.OrderItem) error
	FindByToken(ctx context.Context, token string) (*model.Order, error)
}

// PaymentCoordinator resolves an online payment authorization. Authorize
// blocks until the gateway callback settles the attempt or ctx expires.
type PaymentCoordinator interface {
	Authorize(ctx context.Context, userID int64, amount float64) (*model.PaymentAuthorization, error)
}
