package model

type CheckoutState string

const (
	CheckoutStateInit            CheckoutState = "INIT"
	CheckoutStateCartPrepared    CheckoutState = "CART_PREPARED"
	CheckoutStatePriced          CheckoutState = "PRICED"
	CheckoutStatePaymentResolved CheckoutState = "PAYMENT_RESOLVED"
	CheckoutStateCommitted       CheckoutState = "COMMITTED"
	CheckoutStateRestored        CheckoutState = "RESTORED"
	CheckoutStateDone            CheckoutState = "DONE"
	CheckoutStateFailed          CheckoutState = "FAILED"
	CheckoutStateCancelled       CheckoutState = "CANCELLED"
)

func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutStateDone || s == CheckoutStateFailed || s == CheckoutStateCancelled
}

// String representation (for logging)
func (s CheckoutState) String() string {
	return string(s)
}

type CartOrigin string

const (
	OriginCart   CartOrigin = "CART"
	OriginBuyNow CartOrigin = "BUY_NOW"
)

// PlaceOrderInput is the single entry point the UI layer hands the
// orchestrator. ProductID/Quantity are only meaningful for OriginBuyNow.
type PlaceOrderInput struct {
	UserID        int64
	AddressID     int64
	PaymentMethod PaymentMethod
	Origin        CartOrigin
	ProductID     int64
	Quantity      int
}

// PlaceOrderResult reports the terminal state of one checkout attempt.
type PlaceOrderResult struct {
	OrderID      int64         `json:"orderid,omitempty"`
	State        CheckoutState `json:"state"`
	AttemptToken string        `json:"attempt_token"`
	Subtotal     float64       `json:"subtotal"`
	ShippingFee  float64       `json:"shippingfee"`
	Total        float64       `json:"total"`
}
