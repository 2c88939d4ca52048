package repository

import (
	"context"

	"ZeeCrownAPI/internal/model"
)

type ShippingRepository struct {
	DB DB
}

func NewShippingRepository(db DB) *ShippingRepository {
	return &ShippingRepository{DB: db}
}

// ActiveRules returns active tiers ordered by minordervalue descending, the
// order the pricing engine expects.
func (r *ShippingRepository) ActiveRules(ctx context.Context) ([]model.ShippingRule, error) {
	query := `
		SELECT ruleid, minordervalue, charge, isactive
		FROM shippingrules
		WHERE isactive = TRUE
		ORDER BY minordervalue DESC
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []model.ShippingRule
	for rows.Next() {
		var s model.ShippingRule
		if err := rows.Scan(&s.RuleID, &s.MinOrderValue, &s.Charge, &s.IsActive); err != nil {
			return nil, err
		}
		rules = append(rules, s)
	}
	return rules, rows.Err()
}
