package model

import (
	"fmt"
	"strings"
)

type Address struct {
	AddressID    int64   `json:"addressid"`
	UserID       int64   `json:"userid"`
	HouseNo      string  `json:"houseno"`
	Street       string  `json:"street"`
	Landmark     *string `json:"landmark,omitempty"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	PostalCode   string  `json:"postalcode"`
	Country      string  `json:"country"`
	MobileNumber string  `json:"mobilenumber"`
}

// ShippingLabel flattens the address into the human-readable string stored
// on the order. The landmark segment is omitted when absent.
func (a *Address) ShippingLabel() string {
	parts := []string{a.HouseNo, a.Street}
	if a.Landmark != nil && strings.TrimSpace(*a.Landmark) != "" {
		parts = append(parts, *a.Landmark)
	}
	parts = append(parts,
		a.City,
		fmt.Sprintf("%s %s", a.State, a.PostalCode),
		a.Country,
	)
	return strings.Join(parts, ", ")
}
