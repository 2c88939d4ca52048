package services

import (
	"context"
	"errors"
	"testing"

	"ZeeCrownAPI/internal/model"
	"ZeeCrownAPI/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommitHarness(carts *fakeCartStore) (*OrderCommitService, *fakeOrderStore) {
	pricing := NewPricingService(&fakeRuleStore{rules: tierRules()}, 500, 50)
	orders := newFakeOrderStore()
	svc := NewOrderCommitService(carts, &fakeAddressStore{addr: testAddress()}, orders, pricing)
	return svc, orders
}

func commitInput(token string, expected Quote) CommitInput {
	return CommitInput{
		UserID:        1,
		AddressID:     7,
		PaymentMethod: model.PaymentMethodCOD,
		AttemptToken:  token,
		Expected:      expected,
	}
}

func TestCommit_Success(t *testing.T) {
	carts := newFakeCartStore(map[int64]float64{1: 100, 2: 150})
	carts.items = map[int64]int{1: 2, 2: 1}
	svc, orders := newCommitHarness(carts)

	order, err := svc.Commit(context.Background(), commitInput("tok-1", Quote{Subtotal: 350, ShippingFee: 0, Total: 350}))

	require.NoError(t, err)
	assert.Equal(t, 350.0, order.TotalPrice)
	assert.Equal(t, model.OrderStatusProcessing, order.Status)
	assert.Equal(t, "12A, MG Road, Pune, MH 411001, India", order.ShippingAddress)

	items := orders.items[order.OrderID]
	require.Len(t, items, 2)
	// purchase-time prices copied from the join read, cart rows deleted
	assert.Equal(t, 100.0, items[0].PriceAtPurchase)
	assert.Empty(t, carts.items)
}

func TestCommit_ShippingLabelOmitsAbsentLandmark(t *testing.T) {
	landmark := "Near Clock Tower"
	addr := testAddress()
	addr.Landmark = &landmark
	assert.Equal(t, "12A, MG Road, Near Clock Tower, Pune, MH 411001, India", addr.ShippingLabel())

	addr.Landmark = nil
	assert.Equal(t, "12A, MG Road, Pune, MH 411001, India", addr.ShippingLabel())
}

func TestCommit_Unauthenticated(t *testing.T) {
	svc, _ := newCommitHarness(newFakeCartStore(nil))

	in := commitInput("tok", Quote{})
	in.UserID = 0
	_, err := svc.Commit(context.Background(), in)

	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCommit_AddressNotFound(t *testing.T) {
	carts := newFakeCartStore(map[int64]float64{1: 100})
	carts.items = map[int64]int{1: 1}
	pricing := NewPricingService(&fakeRuleStore{rules: tierRules()}, 500, 50)
	svc := NewOrderCommitService(carts, &fakeAddressStore{err: repository.ErrAddressNotFound}, newFakeOrderStore(), pricing)

	_, err := svc.Commit(context.Background(), commitInput("tok", Quote{Subtotal: 100}))

	require.ErrorIs(t, err, ErrAddressNotFound)
}

func TestCommit_EmptyCart(t *testing.T) {
	svc, orders := newCommitHarness(newFakeCartStore(map[int64]float64{1: 100}))

	_, err := svc.Commit(context.Background(), commitInput("tok", Quote{}))

	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, orders.orders)
}

func TestCommit_AmountMismatch(t *testing.T) {
	carts := newFakeCartStore(map[int64]float64{1: 100})
	carts.items = map[int64]int{1: 1} // subtotal 100
	svc, orders := newCommitHarness(carts)

	// payment was authorized against a different cart state
	_, err := svc.Commit(context.Background(), commitInput("tok", Quote{Subtotal: 250, ShippingFee: 50}))

	require.ErrorIs(t, err, ErrAmountMismatch)
	assert.Empty(t, orders.orders)
	assert.Equal(t, map[int64]int{1: 1}, carts.items)
}

func TestCommit_DuplicateTokenReturnsExistingOrder(t *testing.T) {
	carts := newFakeCartStore(map[int64]float64{1: 100})
	carts.items = map[int64]int{1: 1}
	svc, _ := newCommitHarness(carts)

	quote := Quote{Subtotal: 100, ShippingFee: 50, Total: 150}
	first, err := svc.Commit(context.Background(), commitInput("tok-dup", quote))
	require.NoError(t, err)

	// retried attempt with the same token and a re-staged cart
	carts.items = map[int64]int{1: 1}
	second, err := svc.Commit(context.Background(), commitInput("tok-dup", quote))
	require.NoError(t, err)
	assert.Equal(t, first.OrderID, second.OrderID)
}

func TestCommit_ItemInsertFailureIsPartial(t *testing.T) {
	carts := newFakeCartStore(map[int64]float64{1: 100})
	carts.items = map[int64]int{1: 1}
	svc, orders := newCommitHarness(carts)
	orders.itemsErr = errors.New("items insert failed")

	_, err := svc.Commit(context.Background(), commitInput("tok", Quote{Subtotal: 100, ShippingFee: 50}))

	var pce *PartialCommitError
	require.ErrorAs(t, err, &pce)
	assert.Equal(t, []string{"order_inserted"}, pce.Completed)
	// the orphaned order row is left for reconciliation, not deleted
	assert.Len(t, orders.orders, 1)
	// cart rows were not deleted
	assert.Equal(t, map[int64]int{1: 1}, carts.items)
}

func TestCommit_CartDeleteFailureIsPartial(t *testing.T) {
	carts := newFakeCartStore(map[int64]float64{1: 100})
	carts.items = map[int64]int{1: 1}
	carts.deleteErr = errors.New("delete failed")
	svc, _ := newCommitHarness(carts)

	_, err := svc.Commit(context.Background(), commitInput("tok", Quote{Subtotal: 100, ShippingFee: 50}))

	var pce *PartialCommitError
	require.ErrorAs(t, err, &pce)
	assert.Equal(t, []string{"order_inserted", "items_inserted"}, pce.Completed)
}
