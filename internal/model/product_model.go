package model

// Product represents an entry in the products table
type Product struct {
	ProductID int64   `json:"productid"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  *string `json:"imageurl,omitempty"`
	Category  *string `json:"category,omitempty"`
}
