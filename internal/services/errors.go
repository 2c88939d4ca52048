package services

import (
	"errors"
	"fmt"
)

var (
	ErrNoAddressSelected  = errors.New("no delivery address selected")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrInvalidOrigin      = errors.New("unknown checkout origin")
	ErrInvalidPayment     = errors.New("unknown payment method")
	ErrEmptyCart          = errors.New("cart is empty, nothing to checkout")
	ErrAddressNotFound    = errors.New("address not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrUnauthenticated    = errors.New("no authenticated user")
	ErrPaymentCancelled   = errors.New("payment cancelled by user")
	ErrCheckoutInProgress = errors.New("a checkout attempt is already in progress")
	ErrAmountMismatch     = errors.New("cart total diverged from authorized amount")
)

// PaymentFailedError carries the gateway-provided reason for a failed
// authorization.
type PaymentFailedError struct {
	Reason string
}

func (e *PaymentFailedError) Error() string {
	return fmt.Sprintf("payment failed: %s", e.Reason)
}

// StorageError wraps a backend read/write failure with the operation that hit it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// PartialCommitError reports a commit that failed after at least one write
// succeeded. The completed steps are recorded, in order, so the partial state
// can be found and reconciled; it is never auto-corrected.
type PartialCommitError struct {
	OrderID   int64
	Completed []string
	Err       error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("order %d left partially committed after %v: %v", e.OrderID, e.Completed, e.Err)
}

func (e *PartialCommitError) Unwrap() error { return e.Err }
