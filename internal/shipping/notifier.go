package shipping

import "context"

// PackageItem is one physical unit handed to the shipment service. Checkout
// expands line quantities, so three units of one product arrive as three
// items.
type PackageItem struct {
	Name        string  `json:"name"`
	WeightGrams float64 `json:"weight_grams"`
}

// Notifier receives the shippable items of a committed checkout. Checkout
// treats it as fire-and-forget: an error is logged by the caller and never
// aborts the committed transaction.
type Notifier interface {
	NotifyShipment(ctx context.Context, items []PackageItem) error
}

// TotalWeightKg sums item weights and converts to kilograms.
func TotalWeightKg(items []PackageItem) float64 {
	var grams float64
	for _, item := range items {
		grams += item.WeightGrams
	}
	return grams / 1000
}
