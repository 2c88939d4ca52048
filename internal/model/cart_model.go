package model

// CartItem is a row in cartitems, unique per (userid, productid)
type CartItem struct {
	CartItemID int64 `json:"cartitemid"`
	UserID     int64 `json:"userid"`
	ProductID  int64 `json:"productid"`
	Quantity   int   `json:"quantity"`
}

// CartLine is what the API exposes (joined with products.name and price)
type CartLine struct {
	ProductID int64   `json:"productid"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  *string `json:"imageurl,omitempty"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// CartResponse is returned when calling GET /cart
type CartResponse struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
}

// CartSnapshot holds the full prior contents of a user's cart, captured
// before a buy-now checkout overwrites it. Owned by the in-flight attempt
// that took it and discarded once restore completes.
type CartSnapshot struct {
	UserID int64
	Items  []CartItem
}
