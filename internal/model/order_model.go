package model

import "time"

const OrderStatusProcessing = "processing"

// Order represents an entry in the orders table
type Order struct {
	OrderID         int64      `json:"orderid"`
	UserID          int64      `json:"userid"`
	ShippingAddress string     `json:"shippingaddress"`
	TotalPrice      float64    `json:"totalprice"`
	Status          string     `json:"status"`
	PaymentMethod   string     `json:"paymentmethod"`
	AttemptToken    string     `json:"-"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

// OrderItem represents a row in the orderitems table. PriceAtPurchase is a
// point-in-time copy of the product price, decoupled from later changes.
type OrderItem struct {
	OrderItemID     int64   `json:"orderitemid"`
	OrderID         int64   `json:"orderid"`
	ProductID       int64   `json:"productid"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"priceatpurchase"`
}
