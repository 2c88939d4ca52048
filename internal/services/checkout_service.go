package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"ZeeCrownAPI/internal/model"
	"ZeeCrownAPI/internal/repository"

	"github.com/google/uuid"
)

// CheckoutService runs one checkout attempt as a sequential state machine:
// INIT -> CART_PREPARED -> PRICED -> PAYMENT_RESOLVED -> COMMITTED ->
// RESTORED -> DONE, with FAILED reachable from any state and CANCELLED only
// out of the payment step. The buy-now path stages its single item through
// the live cart; the restore is the compensating action and runs no matter
// which terminal state the attempt reaches.
type CheckoutService struct {
	Pricing   *PricingService
	Snapshots *CartSnapshotManager
	Payments  PaymentCoordinator
	Commit    *OrderCommitService
	Products  ProductStore
	Carts     CartStore

	AttemptTimeout time.Duration

	mu       sync.Mutex
	inflight map[int64]string // userID -> attempt token
}

func NewCheckoutService(
	pricing *PricingService,
	snapshots *CartSnapshotManager,
	payments PaymentCoordinator,
	commit *OrderCommitService,
	products ProductStore,
	carts CartStore,
	attemptTimeout time.Duration,
) *CheckoutService {
	return &CheckoutService{
		Pricing:        pricing,
		Snapshots:      snapshots,
		Payments:       payments,
		Commit:         commit,
		Products:       products,
		Carts:          carts,
		AttemptTimeout: attemptTimeout,
		inflight:       make(map[int64]string),
	}
}

// QuoteCart prices the user's current cart for the pre-flight checkout
// screen. Same engine, same rule read path as the attempt itself.
func (s *CheckoutService) QuoteCart(ctx context.Context, userID int64) (Quote, error) {
	lines, err := s.Carts.Lines(ctx, userID)
	if err != nil {
		return Quote{}, &StorageError{Op: "cart load", Err: err}
	}
	return s.Pricing.PriceCart(ctx, lines), nil
}

// PlaceOrder runs one checkout attempt end to end. A cancelled payment is not
// an error: the result carries the CANCELLED state and err is nil.
func (s *CheckoutService) PlaceOrder(ctx context.Context, in model.PlaceOrderInput) (*model.PlaceOrderResult, error) {
	// INIT: validate before touching any backend resource
	if in.UserID == 0 {
		return nil, ErrUnauthenticated
	}
	if in.AddressID == 0 {
		return nil, ErrNoAddressSelected
	}
	if !in.PaymentMethod.Valid() {
		return nil, ErrInvalidPayment
	}
	switch in.Origin {
	case model.OriginCart:
	case model.OriginBuyNow:
		if in.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
	default:
		return nil, ErrInvalidOrigin
	}

	token, err := s.acquire(in.UserID)
	if err != nil {
		return nil, err
	}
	defer s.release(in.UserID)

	// The attempt handle the caller gets back even on failure paths.
	result := &model.PlaceOrderResult{AttemptToken: token, State: model.CheckoutStateInit}

	// Restore must run even when the attempt context has expired, so the
	// cleanup keeps the values of ctx without its cancellation.
	cleanupCtx := context.WithoutCancel(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.AttemptTimeout)
	defer cancel()

	// CART_PREPARED: buy-now stages its single item through the live cart
	var (
		snap      *model.CartSnapshot
		staged    []model.CartItem
		committed bool
	)
	if in.Origin == model.OriginBuyNow {
		product, err := s.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return s.fail(result, ErrProductNotFound)
			}
			return s.fail(result, &StorageError{Op: "product load", Err: err})
		}

		snap, err = s.Snapshots.Snapshot(ctx, in.UserID)
		if err != nil {
			return s.fail(result, err)
		}

		staged = []model.CartItem{{UserID: in.UserID, ProductID: product.ProductID, Quantity: in.Quantity}}
		if err := s.Snapshots.Replace(ctx, in.UserID, staged); err != nil {
			return s.fail(result, err)
		}

		defer func() {
			// RESTORED: compensate regardless of the terminal state. After a
			// successful commit the staged rows are gone, so that is what the
			// conflict check must expect to find.
			expect := staged
			if committed {
				expect = nil
			}
			s.Snapshots.Restore(cleanupCtx, in.UserID, snap, expect)
			log.Printf("checkout %s: %s", token, model.CheckoutStateRestored)
		}()
	}
	s.transition(result, token, model.CheckoutStateCartPrepared)

	// PRICED: one authoritative computation for the whole attempt
	lines, err := s.Carts.Lines(ctx, in.UserID)
	if err != nil {
		return s.fail(result, &StorageError{Op: "cart load", Err: err})
	}
	if len(lines) == 0 {
		return s.fail(result, ErrEmptyCart)
	}
	quote := s.Pricing.PriceCart(ctx, lines)
	result.Subtotal = quote.Subtotal
	result.ShippingFee = quote.ShippingFee
	result.Total = quote.Total
	s.transition(result, token, model.CheckoutStatePriced)

	// PAYMENT_RESOLVED: COD passes through immediately
	if in.PaymentMethod == model.PaymentMethodOnline {
		_, err := s.Payments.Authorize(ctx, in.UserID, quote.Total)
		if err != nil {
			if errors.Is(err, ErrPaymentCancelled) {
				result.State = model.CheckoutStateCancelled
				log.Printf("checkout %s: cancelled by user", token)
				return result, nil
			}
			return s.fail(result, err)
		}
	}
	s.transition(result, token, model.CheckoutStatePaymentResolved)

	// COMMITTED
	order, err := s.Commit.Commit(ctx, CommitInput{
		UserID:        in.UserID,
		AddressID:     in.AddressID,
		PaymentMethod: in.PaymentMethod,
		AttemptToken:  token,
		Expected:      quote,
	})
	if err != nil {
		return s.fail(result, err)
	}
	committed = true
	result.OrderID = order.OrderID
	s.transition(result, token, model.CheckoutStateCommitted)

	result.State = model.CheckoutStateDone
	log.Printf("checkout %s: done, order %d", token, order.OrderID)
	return result, nil
}

func (s *CheckoutService) acquire(userID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[userID]; busy {
		return "", ErrCheckoutInProgress
	}
	token := uuid.NewString()
	s.inflight[userID] = token
	return token, nil
}

func (s *CheckoutService) release(userID int64) {
	s.mu.Lock()
	delete(s.inflight, userID)
	s.mu.Unlock()
}

func (s *CheckoutService) transition(result *model.PlaceOrderResult, token string, state model.CheckoutState) {
	if result.State.IsTerminal() {
		return
	}
	result.State = state
	log.Printf("checkout %s: %s", token, state)
}

func (s *CheckoutService) fail(result *model.PlaceOrderResult, err error) (*model.PlaceOrderResult, error) {
	result.State = model.CheckoutStateFailed
	return result, err
}
