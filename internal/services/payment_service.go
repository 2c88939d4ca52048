package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	mt "ZeeCrownAPI/external/midtrans"
	"ZeeCrownAPI/internal/model"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/sony/gobreaker/v2"
)

// SnapAPI is the slice of the midtrans snap client the coordinator uses.
type SnapAPI interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// PaymentService creates a gateway-side payment order, hands the shopper to
// the hosted authorization UI (redirect URL), and blocks the attempt until
// the signed notification webhook resolves it. One of three terminal
// outcomes: authorized, cancelled by the user, or failed.
type PaymentService struct {
	Snap      SnapAPI
	Currency  string
	ServerKey string

	breaker *gobreaker.CircuitBreaker[*snap.Response]

	mu      sync.Mutex
	pending map[string]chan model.PaymentOutcome
}

func NewPaymentService(snapClient SnapAPI, currency, serverKey string) *PaymentService {
	return &PaymentService{
		Snap:      snapClient,
		Currency:  currency,
		ServerKey: serverKey,
		breaker: gobreaker.NewCircuitBreaker[*snap.Response](gobreaker.Settings{
			Name: "midtrans-snap",
		}),
		pending: make(map[string]chan model.PaymentOutcome),
	}
}

// Authorize creates the gateway payment order and waits for its outcome.
// Returns ErrPaymentCancelled when the shopper backs out, *PaymentFailedError
// on gateway failure or when ctx expires before the callback arrives.
func (s *PaymentService) Authorize(ctx context.Context, userID int64, amount float64) (*model.PaymentAuthorization, error) {
	externalRef := fmt.Sprintf("RCPT-%d-%s", userID, uuid.NewString())

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  externalRef,
			GrossAmt: int64(amount),
		},
	}

	resp, err := s.breaker.Execute(func() (*snap.Response, error) {
		r, snapErr := s.Snap.CreateTransaction(req)
		if snapErr != nil {
			return nil, snapErr
		}
		return r, nil
	})
	if err != nil {
		return nil, &PaymentFailedError{Reason: err.Error()}
	}

	ch := make(chan model.PaymentOutcome, 1)
	s.mu.Lock()
	s.pending[externalRef] = ch
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.pending, externalRef)
		s.mu.Unlock()
	}()

	auth := &model.PaymentAuthorization{
		GatewayOrderID: externalRef,
		RedirectURL:    resp.RedirectURL,
		Amount:         amount,
		Currency:       s.Currency,
		Status:         model.PaymentStatusPending,
	}

	select {
	case outcome := <-ch:
		switch outcome.Status {
		case model.PaymentStatusAuthorized:
			auth.Status = model.PaymentStatusAuthorized
			return auth, nil
		case model.PaymentStatusCancelled:
			return nil, ErrPaymentCancelled
		default:
			reason := outcome.Reason
			if reason == "" {
				reason = "rejected by gateway"
			}
			return nil, &PaymentFailedError{Reason: reason}
		}
	case <-ctx.Done():
		return nil, &PaymentFailedError{Reason: "payment authorization timed out"}
	}
}

// Resolve delivers a gateway outcome to the attempt waiting on it. Returns
// false for unknown or stale refs, which the webhook treats as a no-op so
// redelivered notifications stay harmless.
func (s *PaymentService) Resolve(outcome model.PaymentOutcome) bool {
	s.mu.Lock()
	ch, ok := s.pending[outcome.GatewayOrderID]
	if ok {
		delete(s.pending, outcome.GatewayOrderID)
	}
	s.mu.Unlock()
	if !ok {
		return false
	}
	ch <- outcome
	return true
}

// HandleNotification verifies and applies one gateway notification payload.
func (s *PaymentService) HandleNotification(ctx context.Context, payload map[string]interface{}) error {
	orderIDStr, ok := payload["order_id"].(string)
	if !ok {
		return fmt.Errorf("missing order_id")
	}

	statusCode, _ := payload["status_code"].(string)
	grossAmount, _ := payload["gross_amount"].(string)
	signature, _ := payload["signature_key"].(string)

	if !mt.VerifySignature(orderIDStr, statusCode, grossAmount, signature, s.ServerKey) {
		return fmt.Errorf("invalid signature")
	}

	transactionStatus, _ := payload["transaction_status"].(string)
	fraudStatus, _ := payload["fraud_status"].(string)

	status, terminal := mt.OutcomeFromNotification(transactionStatus, fraudStatus)
	if !terminal {
		return nil
	}

	delivered := s.Resolve(model.PaymentOutcome{
		GatewayOrderID: orderIDStr,
		Status:         status,
		Reason:         transactionStatus,
	})
	if !delivered {
		log.Printf("payment notification for %s (%s) had no waiting attempt", orderIDStr, transactionStatus)
	}
	return nil
}
