package model

// ShippingRule is one tier of the threshold-based shipping fee policy.
// Rules are read ordered by minordervalue descending; the first active rule
// whose minordervalue does not exceed the subtotal applies.
type ShippingRule struct {
	RuleID        int64   `json:"ruleid"`
	MinOrderValue float64 `json:"minordervalue"`
	Charge        float64 `json:"charge"`
	IsActive      bool    `json:"isactive"`
}
