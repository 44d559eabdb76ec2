package domain

import "time"

type CartViewItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// CartView is the renderer-facing snapshot of the cart: line items plus the
// totals a checkout would charge right now. It is derived state, safe to
// cache and rebuild at any time.
type CartView struct {
	SessionID    string         `json:"session_id"`
	Items        []CartViewItem `json:"items"`
	Subtotal     float64        `json:"subtotal"`
	ShippingCost float64        `json:"shipping_cost"`
	Total        float64        `json:"total"`
	CapturedAt   time.Time      `json:"captured_at"`
}
