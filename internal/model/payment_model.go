package model

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodOnline PaymentMethod = "ONLINE"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodOnline
}

type PaymentStatus string

const (
	PaymentStatusPending     PaymentStatus = "pending"
	PaymentStatusAuthorized  PaymentStatus = "authorized"
	PaymentStatusCancelled   PaymentStatus = "cancelled"
	PaymentStatusFailed      PaymentStatus = "failed"
	PaymentStatusNotRequired PaymentStatus = "not_required"
)

// PaymentAuthorization exists only for the duration of an online payment
// attempt; it is never persisted independently of the resulting order.
type PaymentAuthorization struct {
	GatewayOrderID string
	RedirectURL    string
	Amount         float64
	Currency       string
	Status         PaymentStatus
}

// PaymentOutcome is what the gateway notification resolves an in-flight
// authorization to.
type PaymentOutcome struct {
	GatewayOrderID string
	Status         PaymentStatus
	Reason         string
}
