// Package shipping computes shipping cost from item weights and defines the
// shipment-notifier boundary checkout publishes to.
package shipping

// Line is the weight-relevant view of a cart line.
type Line struct {
	Shippable   bool
	WeightGrams float64
	Quantity    int
}

// Cost returns the shipping cost for the given lines: total shippable weight
// in kilograms times the per-kilogram rate. Empty or fully non-shippable
// input costs zero.
func Cost(lines []Line, ratePerKg float64) float64 {
	var totalGrams float64
	for _, l := range lines {
		if l.Shippable {
			totalGrams += l.WeightGrams * float64(l.Quantity)
		}
	}
	return totalGrams / 1000 * ratePerKg
}
