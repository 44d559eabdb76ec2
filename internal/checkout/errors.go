package checkout

import "errors"

var (
	ErrEmptyCart         = errors.New("cart is empty, nothing to checkout")
	ErrExpiredItem       = errors.New("cart contains an expired item")
	ErrNegativeStock     = errors.New("product stock is negative")
	ErrIllegalTransition = errors.New("illegal transition of checkout status")
)
