package checkout

import "time"

type ReceiptLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// Receipt is the snapshot produced when a checkout completes. It belongs to
// the caller; the cart is empty by the time it is returned.
type Receipt struct {
	ID               string        `json:"id"`
	Lines            []ReceiptLine `json:"lines"`
	Subtotal         float64       `json:"subtotal"`
	ShippingCost     float64       `json:"shipping_cost"`
	Total            float64       `json:"total"`
	RemainingBalance float64       `json:"remaining_balance"`
	CompletedAt      time.Time     `json:"completed_at"`
}
