package domain

import "time"

// Product is a sellable catalog record. The catalog store owns these; other
// components receive copies and must route stock changes through the store.
type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Price       float64    `json:"price"`
	Stock       int        `json:"stock"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Shippable   bool       `json:"shippable"`
	WeightGrams float64    `json:"weight_grams,omitempty"`
}

// IsExpired reports whether the product can no longer be sold at the given
// time. Products without an expiry never expire.
func (p *Product) IsExpired(now time.Time) bool {
	return p.ExpiresAt != nil && !now.Before(*p.ExpiresAt)
}
