package services

import (
	"context"
	"log"

	"ZeeCrownAPI/internal/config"
	"ZeeCrownAPI/internal/model"
)

// CartSnapshotManager captures, replaces, and restores a user's cart. It is
// engaged only by buy-now checkouts, which stage the single requested item
// through the live cart and must put the prior contents back afterwards.
type CartSnapshotManager struct {
	Carts  CartStore
	Policy config.RestoreConflictPolicy
}

func NewCartSnapshotManager(carts CartStore, policy config.RestoreConflictPolicy) *CartSnapshotManager {
	return &CartSnapshotManager{Carts: carts, Policy: policy}
}

// Snapshot captures the current cart contents. Read-only.
func (m *CartSnapshotManager) Snapshot(ctx context.Context, userID int64) (*model.CartSnapshot, error) {
	items, err := m.Carts.Items(ctx, userID)
	if err != nil {
		return nil, &StorageError{Op: "cart snapshot", Err: err}
	}
	return &model.CartSnapshot{UserID: userID, Items: items}, nil
}

// Replace overwrites the cart with the given items.
func (m *CartSnapshotManager) Replace(ctx context.Context, userID int64, items []model.CartItem) error {
	if err := m.Carts.Replace(ctx, userID, items); err != nil {
		return &StorageError{Op: "cart replace", Err: err}
	}
	return nil
}

// Restore puts the snapshot back, best-effort. It runs in the attempt's
// cleanup phase, so a failure here is logged rather than returned — the
// original error, if any, must not be masked. staged is what the attempt
// wrote into the cart; under the preserve policy a cart that no longer
// matches it is left alone.
func (m *CartSnapshotManager) Restore(ctx context.Context, userID int64, snap *model.CartSnapshot, staged []model.CartItem) {
	if snap == nil {
		return
	}

	if m.Policy == config.RestorePreserve {
		current, err := m.Carts.Items(ctx, userID)
		if err != nil {
			log.Printf("cart restore for user %d: cannot inspect cart, restoring anyway: %v", userID, err)
		} else if !sameCartItems(current, staged) {
			log.Printf("cart restore for user %d skipped: cart modified during attempt", userID)
			return
		}
	}

	if err := m.Carts.Replace(ctx, userID, snap.Items); err != nil {
		log.Printf("cart restore for user %d failed, cart left in staged state: %v", userID, err)
	}
}

func sameCartItems(a, b []model.CartItem) bool {
	if len(a) != len(b) {
		return false
	}
	qty := make(map[int64]int, len(a))
	for _, it := range a {
		qty[it.ProductID] = it.Quantity
	}
	for _, it := range b {
		if qty[it.ProductID] != it.Quantity {
			return false
		}
	}
	return true
}
