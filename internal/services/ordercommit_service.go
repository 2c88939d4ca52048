package services

import (
	"context"
	"errors"
	"log"
	"math"

	"ZeeCrownAPI/internal/model"
	"ZeeCrownAPI/internal/repository"
)

// amountEpsilon is the tolerance when comparing the committed subtotal
// against the amount the payment was authorized for.
const amountEpsilon = 0.009

// CommitInput is everything the orchestrator resolved before asking for the
// atomic-intent step.
type CommitInput struct {
	UserID        int64
	AddressID     int64
	PaymentMethod model.PaymentMethod
	AttemptToken  string
	Expected      Quote
}

// OrderCommitService persists an order from the current cart. There is no
// multi-statement transaction underneath: each step fails fast and a partial
// state is left detectable rather than hidden or rolled back.
type OrderCommitService struct {
	Carts     CartStore
	Addresses AddressStore
	Orders    OrderStore
	Pricing   *PricingService
}

func NewOrderCommitService(carts CartStore, addresses AddressStore, orders OrderStore, pricing *PricingService) *OrderCommitService {
	return &OrderCommitService{
		Carts:     carts,
		Addresses: addresses,
		Orders:    orders,
		Pricing:   pricing,
	}
}

func (s *OrderCommitService) Commit(ctx context.Context, in CommitInput) (*model.Order, error) {
	// 1. caller identity
	if in.UserID == 0 {
		return nil, ErrUnauthenticated
	}

	// 2. address, scoped to the caller
	addr, err := s.Addresses.GetByID(ctx, in.UserID, in.AddressID)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, &StorageError{Op: "address load", Err: err}
	}

	// 3. flatten for the order record
	shippingAddress := addr.ShippingLabel()

	// 4. current cart joined with product prices
	lines, err := s.Carts.Lines(ctx, in.UserID)
	if err != nil {
		return nil, &StorageError{Op: "cart load", Err: err}
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// 5. the recomputed subtotal is authoritative; divergence from the amount
	// the payment was authorized for means the cart changed mid-attempt.
	subtotal := s.Pricing.ComputeSubtotal(lines)
	if math.Abs(subtotal-in.Expected.Subtotal) > amountEpsilon {
		return nil, ErrAmountMismatch
	}
	total := subtotal + in.Expected.ShippingFee

	var completed []string

	// 6. order row
	order := &model.Order{
		UserID:          in.UserID,
		ShippingAddress: shippingAddress,
		TotalPrice:      total,
		Status:          model.OrderStatusProcessing,
		PaymentMethod:   string(in.PaymentMethod),
		AttemptToken:    in.AttemptToken,
	}
	orderID, err := s.Orders.Insert(ctx, order)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateAttempt) {
			// retried attempt: return the order already committed under this token
			existing, findErr := s.Orders.FindByToken(ctx, in.AttemptToken)
			if findErr != nil {
				return nil, &StorageError{Op: "duplicate attempt lookup", Err: findErr}
			}
			return existing, nil
		}
		return nil, &StorageError{Op: "order insert", Err: err}
	}
	order.OrderID = orderID
	completed = append(completed, "order_inserted")

	// 7. line items with the prices captured in step 4
	items := make([]model.OrderItem, 0, len(lines))
	productIDs := make([]int64, 0, len(lines))
	for _, l := range lines {
		items = append(items, model.OrderItem{
			OrderID:         orderID,
			ProductID:       l.ProductID,
			Quantity:        l.Quantity,
			PriceAtPurchase: l.Price,
		})
		productIDs = append(productIDs, l.ProductID)
	}
	if err := s.Orders.InsertItems(ctx, orderID, items); err != nil {
		return nil, s.partial(orderID, completed, err)
	}
	completed = append(completed, "items_inserted")

	// 8. delete exactly the cart rows that went into the order
	if err := s.Carts.DeleteProducts(ctx, in.UserID, productIDs); err != nil {
		return nil, s.partial(orderID, completed, err)
	}

	return order, nil
}

func (s *OrderCommitService) partial(orderID int64, completed []string, err error) error {
	pce := &PartialCommitError{OrderID: orderID, Completed: completed, Err: err}
	log.Printf("reconciliation needed: %v", pce)
	return pce
}
