package services

import (
	"context"
	"log"

	"ZeeCrownAPI/internal/model"
)

// Quote is the result of pricing a set of lines once. The same quote feeds
// both payment authorization and order commit; shipping is never resolved a
// second time within one attempt.
type Quote struct {
	Subtotal    float64 `json:"subtotal"`
	ShippingFee float64 `json:"shippingfee"`
	Total       float64 `json:"total"`
}

type PricingService struct {
	Rules ShippingRuleStore

	// Fallback policy when no rule tier applies or the rule read fails.
	FreeShippingThreshold float64
	FlatShippingFee       float64
}

func NewPricingService(rules ShippingRuleStore, freeThreshold, flatFee float64) *PricingService {
	return &PricingService{
		Rules:                 rules,
		FreeShippingThreshold: freeThreshold,
		FlatShippingFee:       flatFee,
	}
}

// ComputeSubtotal sums price*quantity over the lines. Zero for an empty set.
func (s *PricingService) ComputeSubtotal(lines []model.CartLine) float64 {
	var subtotal float64
	for _, l := range lines {
		subtotal += l.Price * float64(l.Quantity)
	}
	return subtotal
}

// ResolveShippingFee picks, among active rules with minordervalue <= subtotal,
// the one with the largest minordervalue. Rules arrive ordered descending, so
// the first applicable rule wins. An empty rule set falls back to the fixed
// policy.
func (s *PricingService) ResolveShippingFee(subtotal float64, rules []model.ShippingRule) float64 {
	for _, r := range rules {
		if r.IsActive && r.MinOrderValue <= subtotal {
			return r.Charge
		}
	}
	return s.fallbackFee(subtotal)
}

func (s *PricingService) fallbackFee(subtotal float64) float64 {
	if subtotal == 0 {
		return 0
	}
	if subtotal >= s.FreeShippingThreshold {
		return 0
	}
	return s.FlatShippingFee
}

// PriceCart reads the rule tiers once and returns the authoritative quote for
// the lines. A failed rule read degrades to the fallback policy instead of
// failing the attempt.
func (s *PricingService) PriceCart(ctx context.Context, lines []model.CartLine) Quote {
	subtotal := s.ComputeSubtotal(lines)

	rules, err := s.Rules.ActiveRules(ctx)
	if err != nil {
		log.Printf("shipping rules unavailable, using fallback policy: %v", err)
		rules = nil
	}

	fee := s.ResolveShippingFee(subtotal, rules)
	return Quote{
		Subtotal:    subtotal,
		ShippingFee: fee,
		Total:       subtotal + fee,
	}
}
