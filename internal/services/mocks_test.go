package services

import (
	"context"
	"sort"

	"ZeeCrownAPI/internal/model"
	"ZeeCrownAPI/internal/repository"
)

// fakeCartStore keeps cart rows in a map so tests can assert on the cart
// state an attempt leaves behind.
type fakeCartStore struct {
	prices map[int64]float64
	names  map[int64]string
	items  map[int64]int // productID -> quantity

	linesErr   error
	replaceErr error
	deleteErr  error

	replaceCalls int
	deleteCalls  int
}

func newFakeCartStore(prices map[int64]float64) *fakeCartStore {
	names := make(map[int64]string, len(prices))
	for id := range prices {
		names[id] = "product"
	}
	return &fakeCartStore{prices: prices, names: names, items: map[int64]int{}}
}

func (f *fakeCartStore) productIDs() []int64 {
	ids := make([]int64, 0, len(f.items))
	for id := range f.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (f *fakeCartStore) Lines(_ context.Context, _ int64) ([]model.CartLine, error) {
	if f.linesErr != nil {
		return nil, f.linesErr
	}
	var lines []model.CartLine
	for _, id := range f.productIDs() {
		qty := f.items[id]
		lines = append(lines, model.CartLine{
			ProductID: id,
			Name:      f.names[id],
			Price:     f.prices[id],
			Quantity:  qty,
			Subtotal:  f.prices[id] * float64(qty),
		})
	}
	return lines, nil
}

func (f *fakeCartStore) Items(_ context.Context, userID int64) ([]model.CartItem, error) {
	var items []model.CartItem
	for _, id := range f.productIDs() {
		items = append(items, model.CartItem{UserID: userID, ProductID: id, Quantity: f.items[id]})
	}
	return items, nil
}

func (f *fakeCartStore) Replace(_ context.Context, _ int64, items []model.CartItem) error {
	f.replaceCalls++
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.items = map[int64]int{}
	for _, it := range items {
		f.items[it.ProductID] = it.Quantity
	}
	return nil
}

func (f *fakeCartStore) Clear(_ context.Context, _ int64) error {
	f.items = map[int64]int{}
	return nil
}

func (f *fakeCartStore) DeleteProducts(_ context.Context, _ int64, productIDs []int64) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for _, id := range productIDs {
		delete(f.items, id)
	}
	return nil
}

type fakeAddressStore struct {
	addr *model.Address
	err  error
}

func (f *fakeAddressStore) GetByID(_ context.Context, _, _ int64) (*model.Address, error) {
	return f.addr, f.err
}

type fakeProductStore struct {
	products map[int64]*model.Product
}

func (f *fakeProductStore) GetByID(_ context.Context, productID int64) (*model.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

type fakeRuleStore struct {
	rules []model.ShippingRule
	err   error
}

func (f *fakeRuleStore) ActiveRules(_ context.Context) ([]model.ShippingRule, error) {
	return f.rules, f.err
}

// fakeOrderStore records inserted orders and items, and enforces the
// attempt-token uniqueness the real table carries.
type fakeOrderStore struct {
	nextID    int64
	orders    map[string]*model.Order // token -> order
	items     map[int64][]model.OrderItem
	insertErr error
	itemsErr  error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{nextID: 1, orders: map[string]*model.Order{}, items: map[int64][]model.OrderItem{}}
}

func (f *fakeOrderStore) Insert(_ context.Context, o *model.Order) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	if _, exists := f.orders[o.AttemptToken]; exists {
		return 0, repository.ErrDuplicateAttempt
	}
	id := f.nextID
	f.nextID++
	stored := *o
	stored.OrderID = id
	f.orders[o.AttemptToken] = &stored
	return id, nil
}

func (f *fakeOrderStore) InsertItems(_ context.Context, orderID int64, items []model.OrderItem) error {
	if f.itemsErr != nil {
		return f.itemsErr
	}
	f.items[orderID] = items
	return nil
}

func (f *fakeOrderStore) FindByToken(_ context.Context, token string) (*model.Order, error) {
	o, ok := f.orders[token]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return o, nil
}

// fakePayments resolves every authorization to a fixed outcome.
type fakePayments struct {
	err     error
	amounts []float64
	entered chan struct{} // closed/signalled when Authorize is reached, if set
	proceed chan struct{} // blocks Authorize until signalled, if set
}

func (f *fakePayments) Authorize(ctx context.Context, _ int64, amount float64) (*model.PaymentAuthorization, error) {
	f.amounts = append(f.amounts, amount)
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.proceed != nil {
		select {
		case <-f.proceed:
		case <-ctx.Done():
			return nil, &PaymentFailedError{Reason: "payment authorization timed out"}
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &model.PaymentAuthorization{Status: model.PaymentStatusAuthorized, Amount: amount}, nil
}
