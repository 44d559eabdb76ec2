package shipping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCost_EmptyCart(t *testing.T) {
	assert.Zero(t, Cost(nil, 30))
}

func TestCost_NoShippableLines(t *testing.T) {
	lines := []Line{
		{Shippable: false, WeightGrams: 0, Quantity: 3},
		{Shippable: false, WeightGrams: 0, Quantity: 1},
	}
	assert.Zero(t, Cost(lines, 30))
}

func TestCost_ShippableLines(t *testing.T) {
	lines := []Line{
		{Shippable: true, WeightGrams: 700, Quantity: 3}, // 2100g
		{Shippable: false, Quantity: 5},
		{Shippable: true, WeightGrams: 500, Quantity: 2}, // 1000g
	}

	// (2100 + 1000) / 1000 * 30
	assert.InDelta(t, 93.0, Cost(lines, 30), 1e-9)
}

func TestCost_ZeroRate(t *testing.T) {
	lines := []Line{{Shippable: true, WeightGrams: 700, Quantity: 1}}
	assert.Zero(t, Cost(lines, 0))
}

func TestTotalWeightKg(t *testing.T) {
	items := []PackageItem{
		{Name: "Cheese", WeightGrams: 700},
		{Name: "Cheese", WeightGrams: 700},
		{Name: "Cheese", WeightGrams: 700},
	}
	assert.InDelta(t, 2.1, TotalWeightKg(items), 1e-9)
}
