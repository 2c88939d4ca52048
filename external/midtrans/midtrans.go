package midtrans

import (
	"crypto/sha512"
	"encoding/hex"
	"os"

	"ZeeCrownAPI/internal/model"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

func NewSnapClient() *snap.Client {
	var client snap.Client

	client.New(
		os.Getenv("MIDTRANS_SERVER_KEY"),
		midtrans.Sandbox,
	)

	return &client
}

func VerifySignature(
	orderID string,
	statusCode string,
	grossAmount string,
	signature string,
	serverKey string,
) bool {

	raw := orderID + statusCode + grossAmount + serverKey
	hash := sha512.Sum512([]byte(raw))
	expected := hex.EncodeToString(hash[:])

	return expected == signature
}

// OutcomeFromNotification maps the gateway transaction status to a payment
// outcome. "cancel" is the user backing out of the hosted UI; it is not an
// error. A pending status returns false: nothing to resolve yet.
func OutcomeFromNotification(transactionStatus, fraudStatus string) (model.PaymentStatus, bool) {
	switch transactionStatus {
	case "settlement":
		return model.PaymentStatusAuthorized, true
	case "capture":
		if fraudStatus == "accept" {
			return model.PaymentStatusAuthorized, true
		}
		return model.PaymentStatusFailed, true
	case "cancel":
		return model.PaymentStatusCancelled, true
	case "deny", "expire", "failure":
		return model.PaymentStatusFailed, true
	}
	return model.PaymentStatusPending, false
}
